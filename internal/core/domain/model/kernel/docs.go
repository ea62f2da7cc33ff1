// Package kernel holds the value objects shared by every aggregate of the
// classification domain: identifiers, weights and unit prices.
//
// Weights and prices are backed by github.com/shopspring/decimal so budget
// comparisons never suffer from binary floating point drift.
package kernel
