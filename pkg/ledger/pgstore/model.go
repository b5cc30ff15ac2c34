package pgstore

import (
	"time"

	"github.com/uptrace/bun"
)

// EntryDao is a data access object that maps directly to the 'ledger_entries' table in PostgreSQL.
type EntryDao struct {
	bun.BaseModel `bun:"table:ledger_entries,alias:le"`
	Key           []byte    `bun:"key,pk,type:bytea"`
	Value         []byte    `bun:"value,notnull,type:bytea"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,nullzero,default:current_timestamp"`
}
