// Package classification provides the Classification aggregate: one lot of
// produce being sorted into size categories.
//
// The package includes:
//   - Classification: the aggregate root holding the expected weight, category
//     prices, manual adjustments and every registered entry
//   - PalletEntry, WasteEntry, ReturnEntry: the child entities that consume weight
//   - Category: the XL/L/M/S size buckets
//   - Status: the Open -> Finalized state machine
//
// Key business rules:
//   - A classification is created Open with a positive expected weight
//   - Entries are append-only; pallets belong to exactly one category
//   - A category weight (pallets plus manual adjustment) is never negative
//   - Once Finalized, no mutator succeeds
//
// Budget checks (the running total never exceeding the expected weight) are
// not enforced here; they belong to the ledger domain service, which callers
// consult before mutating the aggregate.
package classification
