package htlc

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SwapID identifies a swap. It is chosen by the initiator.
type SwapID [32]byte

// ParseSwapID decodes a 0x-prefixed 32-byte hex string.
func ParseSwapID(s string) (SwapID, error) {
	var id SwapID
	b, err := hexutil.Decode(s)
	if err != nil {
		return id, fmt.Errorf("invalid swap id: %w", err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("invalid swap id: want %d bytes, got %d", len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}

func (id SwapID) String() string {
	return hexutil.Encode(id[:])
}

// Phase is the lifecycle position of a swap. Redeemed and Refunded are terminal.
type Phase uint8

const (
	PhaseCreated Phase = iota + 1
	PhaseRedeemed
	PhaseRefunded
)

func (p Phase) String() string {
	switch p {
	case PhaseCreated:
		return "created"
	case PhaseRedeemed:
		return "redeemed"
	case PhaseRefunded:
		return "refunded"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Terminal reports whether no further transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseRedeemed || p == PhaseRefunded
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "created":
		*p = PhaseCreated
	case "redeemed":
		*p = PhaseRedeemed
	case "refunded":
		*p = PhaseRefunded
	default:
		return fmt.Errorf("unknown swap phase %q", b)
	}
	return nil
}

// Swap is one hashed time-locked contract.
type Swap struct {
	ID          SwapID
	Initiator   string
	Participant string
	Amount      *big.Int
	HashLock    [32]byte
	// Deadline is the absolute ledger time from which refund is allowed and redeem is not.
	Deadline  uint64
	CreatedAt uint64
	// Secret is set once the swap is redeemed.
	Secret []byte
	Phase  Phase
}

func (s *Swap) Redeemed() bool { return s.Phase == PhaseRedeemed }
func (s *Swap) Refunded() bool { return s.Phase == PhaseRefunded }

type swapJSON struct {
	ID          hexutil.Bytes `json:"id"`
	Initiator   string        `json:"initiator"`
	Participant string        `json:"participant"`
	Amount      string        `json:"amount"`
	HashLock    hexutil.Bytes `json:"hash_lock"`
	Deadline    uint64        `json:"deadline"`
	CreatedAt   uint64        `json:"created_at"`
	Secret      hexutil.Bytes `json:"secret,omitempty"`
	Phase       Phase         `json:"phase"`
	// read-only views of Phase
	Redeemed bool `json:"redeemed"`
	Refunded bool `json:"refunded"`
}

func (s Swap) MarshalJSON() ([]byte, error) {
	amount := "0"
	if s.Amount != nil {
		amount = s.Amount.String()
	}
	return json.Marshal(swapJSON{
		ID:          s.ID[:],
		Initiator:   s.Initiator,
		Participant: s.Participant,
		Amount:      amount,
		HashLock:    s.HashLock[:],
		Deadline:    s.Deadline,
		CreatedAt:   s.CreatedAt,
		Secret:      s.Secret,
		Phase:       s.Phase,
		Redeemed:    s.Redeemed(),
		Refunded:    s.Refunded(),
	})
}

func (s *Swap) UnmarshalJSON(b []byte) error {
	var v swapJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if len(v.ID) != len(s.ID) || len(v.HashLock) != len(s.HashLock) {
		return fmt.Errorf("invalid swap record: id %d bytes, hash lock %d bytes", len(v.ID), len(v.HashLock))
	}
	amount, ok := new(big.Int).SetString(v.Amount, 10)
	if !ok {
		return fmt.Errorf("invalid swap amount %q", v.Amount)
	}

	*s = Swap{
		Initiator:   v.Initiator,
		Participant: v.Participant,
		Amount:      amount,
		Deadline:    v.Deadline,
		CreatedAt:   v.CreatedAt,
		Secret:      v.Secret,
		Phase:       v.Phase,
	}
	copy(s.ID[:], v.ID)
	copy(s.HashLock[:], v.HashLock)
	return nil
}
