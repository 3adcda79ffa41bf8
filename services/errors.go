package services

import "errors"

// Sentinel errors returned by the business-rule services. The HTTP layer maps
// them to statuses in middlewares.ErrorHandler.
var (
	// ErrSequenceExhausted means more than 9999 quotations were issued in one
	// period; the creation attempt fails and is not retried.
	ErrSequenceExhausted = errors.New("quotation number sequence exhausted for period")

	// ErrInvalidStage is returned for a stage value outside the six
	// enumerated pipeline stages.
	ErrInvalidStage = errors.New("invalid opportunity stage")

	// ErrInvalidStatus is returned for a quotation status outside the
	// enumerated values.
	ErrInvalidStatus = errors.New("invalid quotation status")

	// ErrHasDependents blocks deletion of a record that is still referenced
	// by opportunities or quotations.
	ErrHasDependents = errors.New("record still has dependent records")
)
