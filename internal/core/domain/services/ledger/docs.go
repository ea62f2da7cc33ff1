// Package ledger is the classification weight ledger: the pure computations that
// gate every change to a classification.
//
// The package provides:
//   - Aggregate: category, waste, return, classified and expected totals
//   - Progress: completion percentage, zero when nothing is expected
//   - ValidateOperation: budget check for a new pallet, waste or return entry
//   - ValidateAdjustment: budget and sign check for a multi-category correction
//   - EvaluateFinalization: whether a classification may be locked
//   - Valuation: category weights priced at the classification's unit prices
//
// Every function is a free function over the records it receives. Nothing is
// cached and nothing is mutated; callers load a snapshot, ask the ledger, and
// persist only what it accepted. Decisions are returned as values. An error is
// returned only for malformed input, such as a nil or unconstructed record.
//
// Records passed together share one budget: the expected weight of the batch is
// the sum of the expected weights of its records.
package ledger
