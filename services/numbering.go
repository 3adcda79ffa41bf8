package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"quotation-backend/models"

	"gorm.io/gorm"
)

// maxSequence is the largest suffix expressible in the fixed 4-digit width.
// The zero-padded width is load-bearing: "most recent quotation" relies on
// string ordering of quotation numbers, which is only equivalent to numeric
// ordering while every suffix has the same width.
const maxSequence = 9999

// Period returns the numbering period (YYYYMM) for the given issuance time.
func Period(t time.Time) string {
	return t.Format("200601")
}

// NextQuotationNumber computes the next number for the period by scanning
// already-issued numbers with the same prefix. Numbers reset to 0001 each
// period; prior periods never influence allocation.
//
// The caller must run this inside the same transaction as the insert of the
// resulting quotation: the unique index on quotation_number is what actually
// guarantees at-most-one-writer-per-number, and a duplicate-key failure on
// commit means a concurrent allocation won the race (retry the whole
// transaction, see database.RunInTxRetry).
func NextQuotationNumber(tx *gorm.DB, period string) (string, error) {
	var last models.Quotation
	err := tx.Select("quotation_number").
		Where("quotation_number LIKE ?", period+"-%").
		Order("quotation_number DESC").
		Limit(1).
		First(&last).Error

	next := 1
	if err == nil {
		seq, perr := parseSequence(last.QuotationNumber, period)
		if perr != nil {
			return "", perr
		}
		next = seq + 1
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	if next > maxSequence {
		return "", ErrSequenceExhausted
	}
	return fmt.Sprintf("%s-%04d", period, next), nil
}

// parseSequence extracts the numeric suffix of a quotation number. The suffix
// is parsed numerically rather than compared as a string so a malformed row
// surfaces as an error instead of corrupting the sequence.
func parseSequence(number, period string) (int, error) {
	suffix, ok := strings.CutPrefix(number, period+"-")
	if !ok {
		return 0, fmt.Errorf("quotation number %q does not belong to period %s", number, period)
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("malformed quotation number %q", number)
	}
	return seq, nil
}
