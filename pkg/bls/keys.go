package bls

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/hkdf"
)

const (
	// MinSeedLen is the minimum amount of key material accepted by KeyFromSeed.
	MinSeedLen = 32

	keyGenSalt = "BLS-SIG-KEYGEN-SALT-"
	// 48 bytes = ceil((3 * ceil(log2(r))) / 16), per the IETF KeyGen procedure
	keyGenOKMLen = 48
)

var ErrShortSeed = errors.New("bls seed too short")

// SecretKey is a scalar in [1, r). It is used by signer tooling and tests; the
// bridge itself only ever verifies.
type SecretKey struct {
	scalar *big.Int
}

// GenerateKey draws a uniformly random secret key from r.
// A nil reader falls back to crypto/rand.
func GenerateKey(r io.Reader) (*SecretKey, error) {
	if r == nil {
		r = rand.Reader
	}
	max := new(big.Int).Sub(fr.Modulus(), big.NewInt(1))
	s, err := rand.Int(r, max)
	if err != nil {
		return nil, fmt.Errorf("failed to draw scalar: %w", err)
	}
	s.Add(s, big.NewInt(1))
	return &SecretKey{scalar: s}, nil
}

// KeyFromSeed derives a secret key deterministically from seed using HKDF-SHA256.
// Re-salting on a zero scalar follows the IETF BLS KeyGen loop.
func KeyFromSeed(seed []byte) (*SecretKey, error) {
	if len(seed) < MinSeedLen {
		return nil, ErrShortSeed
	}

	salt := []byte(keyGenSalt)
	ikm := append(append([]byte{}, seed...), 0x00)
	info := []byte{0x00, keyGenOKMLen}

	for {
		digest := sha256.Sum256(salt)
		salt = digest[:]

		okm := make([]byte, keyGenOKMLen)
		if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, salt, info), okm); err != nil {
			return nil, fmt.Errorf("failed to expand seed: %w", err)
		}

		s := new(big.Int).SetBytes(okm)
		s.Mod(s, fr.Modulus())
		if s.Sign() != 0 {
			return &SecretKey{scalar: s}, nil
		}
	}
}

// SecretKeyFromBytes decodes a 32-byte big-endian scalar.
func SecretKeyFromBytes(b []byte) (*SecretKey, error) {
	if len(b) != fr.Bytes {
		return nil, fmt.Errorf("secret key must be %d bytes, got %d", fr.Bytes, len(b))
	}
	s := new(big.Int).SetBytes(b)
	if s.Sign() == 0 || s.Cmp(fr.Modulus()) >= 0 {
		return nil, errors.New("secret key out of range")
	}
	return &SecretKey{scalar: s}, nil
}

// Bytes returns the 32-byte big-endian scalar.
func (sk *SecretKey) Bytes() []byte {
	return sk.scalar.FillBytes(make([]byte, fr.Bytes))
}

// PublicKey returns sk * g2.
func (sk *SecretKey) PublicKey() *PublicKey {
	_, _, _, g2 := bls12381.Generators()
	pk := new(PublicKey)
	pk.point.ScalarMultiplication(&g2, sk.scalar)
	return pk
}

// Sign returns sk * H(message).
func (sk *SecretKey) Sign(message []byte) (*Signature, error) {
	h, err := bls12381.HashToG1(message, []byte(DST))
	if err != nil {
		return nil, fmt.Errorf("failed to hash message to curve: %w", err)
	}
	sig := new(Signature)
	sig.point.ScalarMultiplication(&h, sk.scalar)
	return sig, nil
}
