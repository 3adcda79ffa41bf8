package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTxTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func TestRunInTxRetryRecoversFromTransientConflict(t *testing.T) {
	db := setupTxTestDB(t)

	// Two racing losses, then the re-run allocation goes through.
	attempts := 0
	err := RunInTxRetry(db, func(tx *gorm.DB) error {
		attempts++
		if attempts < 3 {
			return gorm.ErrDuplicatedKey
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRunInTxRetryGivesUpAfterBoundedAttempts(t *testing.T) {
	db := setupTxTestDB(t)

	attempts := 0
	err := RunInTxRetry(db, func(tx *gorm.DB) error {
		attempts++
		return gorm.ErrDuplicatedKey
	})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Equal(t, allocationAttempts, attempts)
}

func TestRunInTxRetryDoesNotRetryOtherErrors(t *testing.T) {
	db := setupTxTestDB(t)

	sentinel := errors.New("sequence exhausted")
	attempts := 0
	err := RunInTxRetry(db, func(tx *gorm.DB) error {
		attempts++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, attempts)
}
