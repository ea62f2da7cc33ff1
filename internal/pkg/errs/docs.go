// Package errs defines the error vocabulary shared by the domain, the
// repositories and the HTTP adapter.
//
// Every struct error unwraps to one sentinel, so callers branch with errors.Is
// and never inspect messages:
//
//	ErrValueIsRequired   missing identifier, lot code, note
//	ErrValueIsInvalid    malformed weight, category, status
//	ErrValueIsOutOfRange negative weight or price
//	ErrObjectNotFound    unknown classification or order
//	ErrVersionIsInvalid  optimistic-lock conflict on save
//
// Ledger rejections are not errors of this package; they are decisions carried
// by ledger.ValidationResult.
package errs
