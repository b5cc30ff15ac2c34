// Package bls verifies BLS12-381 short signatures that authorize inbound bridge mints.
//
// Signatures live in G1 and public keys in G2 (the "minimal signature size"
// variant). Messages are hashed to G1 with the hash_to_curve suite named by DST.
package bls

import (
	"errors"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// DST is the domain-separation tag mixed into hash-to-curve for every bridge signature.
const DST = "BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_NUL_"

const (
	// PublicKeyLen is the compressed size of a G2 public key.
	PublicKeyLen = bls12381.SizeOfG2AffineCompressed
	// SignatureLen is the compressed size of a G1 signature.
	SignatureLen = bls12381.SizeOfG1AffineCompressed
)

var (
	ErrInvalidPublicKey = errors.New("invalid bls public key")
	ErrInvalidSignature = errors.New("invalid bls signature")
)

// PublicKey is a point on G2.
type PublicKey struct {
	point bls12381.G2Affine
}

// Signature is a point on G1.
type Signature struct {
	point bls12381.G1Affine
}

// PublicKeyFromBytes decodes a compressed or uncompressed G2 point.
// The identity point and points outside the prime-order subgroup are rejected.
func PublicKeyFromBytes(b []byte) (*PublicKey, error) {
	pk := new(PublicKey)
	n, err := pk.point.SetBytes(b)
	if err != nil || n != len(b) || pk.point.IsInfinity() {
		return nil, ErrInvalidPublicKey
	}
	return pk, nil
}

// SignatureFromBytes decodes a compressed or uncompressed G1 point.
func SignatureFromBytes(b []byte) (*Signature, error) {
	sig := new(Signature)
	n, err := sig.point.SetBytes(b)
	if err != nil || n != len(b) || sig.point.IsInfinity() {
		return nil, ErrInvalidSignature
	}
	return sig, nil
}

// Bytes returns the compressed encoding of the public key.
func (pk *PublicKey) Bytes() []byte {
	b := pk.point.Bytes()
	return b[:]
}

// Bytes returns the compressed encoding of the signature.
func (s *Signature) Bytes() []byte {
	b := s.point.Bytes()
	return b[:]
}

// Verify reports whether signature is a valid signature over message by publicKey.
// Malformed encodings yield false; Verify never panics and never returns an error.
func Verify(publicKey, message, signature []byte) (valid bool) {
	defer func() {
		if recover() != nil {
			valid = false
		}
	}()

	pk, err := PublicKeyFromBytes(publicKey)
	if err != nil {
		return false
	}
	sig, err := SignatureFromBytes(signature)
	if err != nil {
		return false
	}
	return VerifyPoints(pk, message, sig)
}

// VerifyPoints checks e(sig, g2) == e(H(message), pk) for already decoded points.
func VerifyPoints(pk *PublicKey, message []byte, sig *Signature) bool {
	if pk == nil || sig == nil {
		return false
	}

	h, err := bls12381.HashToG1(message, []byte(DST))
	if err != nil {
		return false
	}

	_, _, _, g2 := bls12381.Generators()
	var negG2 bls12381.G2Affine
	negG2.Neg(&g2)

	ok, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{sig.point, h},
		[]bls12381.G2Affine{negG2, pk.point},
	)
	return err == nil && ok
}
