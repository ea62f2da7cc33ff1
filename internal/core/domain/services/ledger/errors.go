package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOperationRejected   = errors.New("operation rejected")
	ErrFinalizationBlocked = errors.New("finalization blocked")
)

// RejectionError carries a rejected ValidationResult through an error return.
type RejectionError struct {
	Result ValidationResult
}

func NewRejectionError(result ValidationResult) *RejectionError {
	return &RejectionError{Result: result}
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrOperationRejected, e.Result.Reason, e.Result.Message)
}

func (e *RejectionError) Unwrap() error {
	return ErrOperationRejected
}

// FinalizationBlockedError carries every blocking reason of a refused finalization.
type FinalizationBlockedError struct {
	Result FinalizationResult
}

func NewFinalizationBlockedError(result FinalizationResult) *FinalizationBlockedError {
	return &FinalizationBlockedError{Result: result}
}

func (e *FinalizationBlockedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrFinalizationBlocked, strings.Join(e.Result.Messages(), "; "))
}

func (e *FinalizationBlockedError) Unwrap() error {
	return ErrFinalizationBlocked
}
