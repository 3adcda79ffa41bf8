package database

import (
	"errors"
	"log"

	"gorm.io/gorm"
)

// allocationAttempts bounds retries of a conflicting allocation transaction.
const allocationAttempts = 3

// RunInTxRetry runs fn in a transaction and retries it on duplicate-key
// failures, up to allocationAttempts times. This is the serialization point
// for quotation-number allocation: two concurrent creations in the same
// period can both compute the same "next" number, but only one insert passes
// the unique index — the loser re-runs the whole read-allocate-insert cycle.
// The final duplicate-key error is returned unwrapped so the HTTP layer maps
// it to a conflict.
func RunInTxRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < allocationAttempts; attempt++ {
		err = db.Transaction(fn)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		log.Printf("allocation conflict, retrying (attempt %d): %v", attempt+1, err)
	}
	return err
}
