package bridge

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethmath "github.com/ethereum/go-ethereum/common/math"
)

// Wire layout of a signed swap event, version 1:
//
//	magic   "XBSE"      4 bytes
//	version 0x01        1 byte
//	ulen    uint16 BE   2 bytes
//	user    ulen bytes
//	amount  uint128 BE  16 bytes
//	nonce   uint64 BE   8 bytes
const (
	eventMagic   = "XBSE"
	eventVersion = 0x01

	headerLen  = len(eventMagic) + 1 + 2
	amountLen  = 16
	nonceLen   = 8
	MaxUserLen = math.MaxUint16
)

// MaxAmount is the largest amount a single event can carry (2^127 - 1).
var MaxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))

var (
	ErrMalformedEvent = errors.New("malformed swap event")
	ErrInvalidUser    = errors.New("user must be 1..65535 bytes")
	ErrInvalidAmount  = errors.New("amount must be in 1..2^127-1")
)

// SwapEvent describes one outbound lock, or the counterpart event a mint consumes.
type SwapEvent struct {
	User   []byte
	Amount *big.Int
	Nonce  uint64
}

type eventJSON struct {
	User   hexutil.Bytes `json:"user"`
	Amount string        `json:"amount"`
	Nonce  uint64        `json:"nonce"`
}

func (e SwapEvent) view() eventJSON {
	amount := "0"
	if e.Amount != nil {
		amount = e.Amount.String()
	}
	return eventJSON{User: e.User, Amount: amount, Nonce: e.Nonce}
}

// MarshalJSON renders the user as 0x-hex and the amount as a decimal string.
func (e SwapEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.view())
}

func (e *SwapEvent) UnmarshalJSON(b []byte) error {
	var v eventJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	amount, ok := new(big.Int).SetString(v.Amount, 10)
	if !ok {
		return fmt.Errorf("invalid amount %q", v.Amount)
	}
	*e = SwapEvent{User: v.User, Amount: amount, Nonce: v.Nonce}
	return nil
}

func validAmount(amount *big.Int) bool {
	return amount != nil && amount.Sign() > 0 && amount.Cmp(MaxAmount) <= 0
}

func validUser(user []byte) bool {
	return len(user) > 0 && len(user) <= MaxUserLen
}

// EncodeSwapEvent returns the canonical bytes a signer attests to.
func EncodeSwapEvent(e *SwapEvent) ([]byte, error) {
	if !validUser(e.User) {
		return nil, ErrInvalidUser
	}
	if !validAmount(e.Amount) {
		return nil, ErrInvalidAmount
	}

	buf := make([]byte, 0, headerLen+len(e.User)+amountLen+nonceLen)
	buf = append(buf, eventMagic...)
	buf = append(buf, eventVersion)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(e.User)))
	buf = append(buf, e.User...)
	buf = append(buf, ethmath.PaddedBigBytes(e.Amount, amountLen)...)
	buf = binary.BigEndian.AppendUint64(buf, e.Nonce)
	return buf, nil
}

// DecodeSwapEvent parses canonical bytes. Anything but an exact, in-range
// encoding is rejected.
func DecodeSwapEvent(b []byte) (*SwapEvent, error) {
	if len(b) < headerLen+1+amountLen+nonceLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedEvent, len(b))
	}
	if !bytes.Equal(b[:len(eventMagic)], []byte(eventMagic)) {
		return nil, fmt.Errorf("%w: bad magic", ErrMalformedEvent)
	}
	if b[len(eventMagic)] != eventVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedEvent, b[len(eventMagic)])
	}

	ulen := int(binary.BigEndian.Uint16(b[len(eventMagic)+1 : headerLen]))
	if ulen == 0 {
		return nil, fmt.Errorf("%w: empty user", ErrMalformedEvent)
	}
	if len(b) != headerLen+ulen+amountLen+nonceLen {
		return nil, fmt.Errorf("%w: length %d does not match user length %d", ErrMalformedEvent, len(b), ulen)
	}

	off := headerLen
	user := bytes.Clone(b[off : off+ulen])
	off += ulen
	amount := new(big.Int).SetBytes(b[off : off+amountLen])
	off += amountLen
	if !validAmount(amount) {
		return nil, fmt.Errorf("%w: amount out of range", ErrMalformedEvent)
	}
	nonce := binary.BigEndian.Uint64(b[off:])

	return &SwapEvent{User: user, Amount: amount, Nonce: nonce}, nil
}
