package ledger_test

import (
	"testing"
	"time"

	"packhouse/internal/core/domain/model/classification"
	"packhouse/internal/core/domain/model/kernel"
	"packhouse/internal/core/domain/services/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordBuilder struct {
	t *testing.T
	c *classification.Classification
}

func newRecord(t *testing.T, expected string) *recordBuilder {
	t.Helper()

	prices := classification.NewPrices(
		kernel.MustPrice("10"), kernel.MustPrice("0"), kernel.MustPrice("0"), kernel.MustPrice("0"))
	c, err := classification.NewClassification(
		kernel.NewUUID(), kernel.NewUUID(), "LOT-"+expected, kernel.MustWeight(expected), prices)
	require.NoError(t, err)

	return &recordBuilder{t: t, c: c}
}

func (b *recordBuilder) pallet(category classification.Category, weight string) *recordBuilder {
	_, err := b.c.AddPallet(category, kernel.MustWeight(weight))
	require.NoError(b.t, err)
	return b
}

func (b *recordBuilder) waste(weight string) *recordBuilder {
	_, err := b.c.AddWaste(kernel.MustWeight(weight), "damaged")
	require.NoError(b.t, err)
	return b
}

func (b *recordBuilder) ret(weight string) *recordBuilder {
	_, err := b.c.AddReturn(kernel.MustWeight(weight), "rejected at dock")
	require.NoError(b.t, err)
	return b
}

func (b *recordBuilder) prices(xl, l, m, s string) *recordBuilder {
	require.NoError(b.t, b.c.SetPrices(classification.NewPrices(
		kernel.MustPrice(xl), kernel.MustPrice(l), kernel.MustPrice(m), kernel.MustPrice(s))))
	return b
}

func (b *recordBuilder) finalized() *recordBuilder {
	require.NoError(b.t, b.c.Finalize(time.Now()))
	return b
}

func (b *recordBuilder) build() []*classification.Classification {
	return []*classification.Classification{b.c}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestAggregate(t *testing.T) {
	first := newRecord(t, "100").pallet(classification.XL, "30").pallet(classification.XL, "10").
		pallet(classification.S, "5").waste("2").ret("1.5")
	second := newRecord(t, "50").pallet(classification.L, "20").waste("0.5")
	require.NoError(t, second.c.ApplyAdjustment(map[classification.Category]decimal.Decimal{
		classification.L: dec("-4"),
	}))
	records := []*classification.Classification{first.c, second.c}

	totals, err := ledger.Aggregate(records)
	require.NoError(t, err)

	assert.True(t, dec("40").Equal(totals.Category(classification.XL)))
	assert.True(t, dec("16").Equal(totals.Category(classification.L)))
	assert.True(t, totals.Category(classification.M).IsZero())
	assert.True(t, dec("5").Equal(totals.Category(classification.S)))
	assert.True(t, dec("2.5").Equal(totals.Waste))
	assert.True(t, dec("1.5").Equal(totals.Returns))
	assert.True(t, dec("65").Equal(totals.Classified))
	assert.True(t, dec("150").Equal(totals.Expected))
	assert.True(t, dec("85").Equal(totals.Remaining()))
	assert.InDelta(t, 43.333, totals.Progress, 0.001)

	t.Run("should be idempotent", func(t *testing.T) {
		again, err := ledger.Aggregate(records)
		require.NoError(t, err)
		assert.Equal(t, totals, again)
	})

	t.Run("should not depend on record order", func(t *testing.T) {
		reversed, err := ledger.Aggregate([]*classification.Classification{second.c, first.c})
		require.NoError(t, err)
		assert.True(t, totals.Classified.Equal(reversed.Classified))
		assert.True(t, totals.Expected.Equal(reversed.Expected))
	})

	t.Run("should return zero totals for an empty set", func(t *testing.T) {
		empty, err := ledger.Aggregate(nil)
		require.NoError(t, err)
		assert.True(t, empty.Classified.IsZero())
		assert.Zero(t, empty.Progress)
		assert.Len(t, empty.Categories, 4)
	})

	t.Run("should fail on malformed records", func(t *testing.T) {
		_, err := ledger.Aggregate([]*classification.Classification{first.c, nil})
		require.ErrorIs(t, err, classification.ErrClassificationIsNotConstructed)
		assert.Contains(t, err.Error(), "record 1")
	})
}

func TestProgress(t *testing.T) {
	tests := map[string]struct {
		classified string
		expected   string
		want       float64
	}{
		"zero expected weight": {classified: "10", expected: "0", want: 0},
		"nothing classified":   {classified: "0", expected: "100", want: 0},
		"half":                 {classified: "50", expected: "100", want: 50},
		"complete":             {classified: "100", expected: "100", want: 100},
		"over classified":      {classified: "120", expected: "100", want: 120},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := ledger.Progress(ledger.AggregatedTotals{
				Classified: dec(tt.classified),
				Expected:   dec(tt.expected),
			})
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestValidateOperation(t *testing.T) {
	tests := map[string]struct {
		records   func(t *testing.T) []*classification.Classification
		candidate string
		kind      ledger.OperationKind
		outcome   ledger.Outcome
		reason    ledger.ReasonCode
		remaining string
		message   string
	}{
		"accepts silently below the warning threshold": {
			records: func(t *testing.T) []*classification.Classification {
				return newRecord(t, "100").pallet(classification.XL, "50").build()
			},
			candidate: "44", kind: ledger.PalletOperation,
			outcome: ledger.Accepted, reason: ledger.ReasonNone, remaining: "50",
		},
		"warns when crossing ninety five percent": {
			records: func(t *testing.T) []*classification.Classification {
				return newRecord(t, "100").pallet(classification.XL, "90").build()
			},
			candidate: "6", kind: ledger.PalletOperation,
			outcome: ledger.AcceptedWithWarning, reason: ledger.ReasonNearCompletion, remaining: "10",
			message: "96.0%",
		},
		"does not warn at exactly ninety five percent": {
			records:   func(t *testing.T) []*classification.Classification { return newRecord(t, "100").build() },
			candidate: "95", kind: ledger.WasteOperation,
			outcome: ledger.Accepted, reason: ledger.ReasonNone, remaining: "100",
		},
		"accepts reaching the expected weight exactly": {
			records:   func(t *testing.T) []*classification.Classification { return newRecord(t, "100").waste("40").build() },
			candidate: "60", kind: ledger.ReturnOperation,
			outcome: ledger.AcceptedWithWarning, reason: ledger.ReasonNearCompletion, remaining: "60",
		},
		"rejects a pallet over budget": {
			records: func(t *testing.T) []*classification.Classification {
				return newRecord(t, "100").pallet(classification.L, "95").build()
			},
			candidate: "5.001", kind: ledger.PalletOperation,
			outcome: ledger.Rejected, reason: ledger.ReasonBudgetExceeded, remaining: "5",
			message: "only 5 kg can still be classified",
		},
		"rejects waste over budget": {
			records: func(t *testing.T) []*classification.Classification {
				return newRecord(t, "100").pallet(classification.L, "90").build()
			},
			candidate: "11", kind: ledger.WasteOperation,
			outcome: ledger.Rejected, reason: ledger.ReasonBudgetExceeded, remaining: "10",
			message: "recorded as waste",
		},
		"rejects a return over budget": {
			records:   func(t *testing.T) []*classification.Classification { return newRecord(t, "100").ret("99").build() },
			candidate: "2", kind: ledger.ReturnOperation,
			outcome: ledger.Rejected, reason: ledger.ReasonBudgetExceeded, remaining: "1",
			message: "returned",
		},
		"rejects zero weight as invalid input": {
			records:   func(t *testing.T) []*classification.Classification { return newRecord(t, "100").build() },
			candidate: "0", kind: ledger.PalletOperation,
			outcome: ledger.Rejected, reason: ledger.ReasonInvalidInput, remaining: "100",
		},
		"rejects negative weight before the budget check": {
			records: func(t *testing.T) []*classification.Classification {
				return newRecord(t, "100").pallet(classification.XL, "100").build()
			},
			candidate: "-1", kind: ledger.WasteOperation,
			outcome: ledger.Rejected, reason: ledger.ReasonInvalidInput, remaining: "0",
		},
		"rejects an unknown kind": {
			records:   func(t *testing.T) []*classification.Classification { return newRecord(t, "100").build() },
			candidate: "1", kind: ledger.UnknownOperation,
			outcome: ledger.Rejected, reason: ledger.ReasonInvalidInput, remaining: "100",
		},
		"rejects any entry on a finalized classification": {
			records: func(t *testing.T) []*classification.Classification {
				return newRecord(t, "100").pallet(classification.XL, "10").finalized().build()
			},
			candidate: "1", kind: ledger.PalletOperation,
			outcome: ledger.Rejected, reason: ledger.ReasonClassificationFinalized, remaining: "90",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result, err := ledger.ValidateOperation(dec(tt.candidate), tt.kind, tt.records(t))

			require.NoError(t, err)
			assert.Equal(t, tt.outcome, result.Outcome)
			assert.Equal(t, tt.reason, result.Reason)
			assert.True(t, dec(tt.remaining).Equal(result.RemainingWeight),
				"remaining %s, want %s", result.RemainingWeight, tt.remaining)
			if tt.message != "" {
				assert.Contains(t, result.Message, tt.message)
			}
			if tt.outcome == ledger.Accepted {
				assert.Empty(t, result.Message)
			}
		})
	}
}

func TestValidateOperation_ReportsCurrentProgress(t *testing.T) {
	records := newRecord(t, "200").pallet(classification.M, "50").build()

	result, err := ledger.ValidateOperation(dec("10"), ledger.PalletOperation, records)

	require.NoError(t, err)
	assert.InDelta(t, 25.0, result.CurrentProgress, 1e-9)
}

func TestValidateOperation_ZeroExpectedWeightRejectsEverything(t *testing.T) {
	c, err := classification.RestoreClassification(classification.RestoreParams{
		ID:      kernel.NewUUID(),
		OrderID: kernel.NewUUID(),
		LotCode: "LEGACY",
		Status:  classification.Open,
	})
	require.NoError(t, err)

	result, err := ledger.ValidateOperation(dec("0.001"), ledger.PalletOperation, []*classification.Classification{c})

	require.NoError(t, err)
	assert.Equal(t, ledger.ReasonBudgetExceeded, result.Reason)
	assert.Zero(t, result.CurrentProgress)
}

func TestValidateOperation_BudgetInvariantHolds(t *testing.T) {
	record := newRecord(t, "250")
	records := record.build()
	kinds := []ledger.OperationKind{ledger.PalletOperation, ledger.WasteOperation, ledger.ReturnOperation}
	candidates := []string{"40", "75.5", "12", "90", "33.25", "8", "60", "1", "0.75", "20", "5"}

	for i, candidate := range candidates {
		kind := kinds[i%len(kinds)]

		result, err := ledger.ValidateOperation(dec(candidate), kind, records)
		require.NoError(t, err)

		if result.Accepted() {
			switch kind {
			case ledger.PalletOperation:
				record.pallet(classification.Categories()[i%4], candidate)
			case ledger.WasteOperation:
				record.waste(candidate)
			case ledger.ReturnOperation:
				record.ret(candidate)
			}
		}

		totals, err := ledger.Aggregate(records)
		require.NoError(t, err)
		assert.True(t, totals.Classified.LessThanOrEqual(totals.Expected),
			"step %d: classified %s exceeds expected %s", i, totals.Classified, totals.Expected)
	}
}

func TestValidateOperation_SharedBudgetAcrossRecords(t *testing.T) {
	records := []*classification.Classification{
		newRecord(t, "50").pallet(classification.XL, "50").c,
		newRecord(t, "50").pallet(classification.L, "20").c,
	}

	result, err := ledger.ValidateOperation(dec("31"), ledger.PalletOperation, records)

	require.NoError(t, err)
	assert.Equal(t, ledger.ReasonBudgetExceeded, result.Reason)
	assert.True(t, dec("30").Equal(result.RemainingWeight))
}

func TestValidateAdjustment(t *testing.T) {
	t.Run("should reject an all zero correction as a no-op", func(t *testing.T) {
		records := newRecord(t, "100").pallet(classification.XL, "100").build()

		result, err := ledger.ValidateAdjustment(map[classification.Category]decimal.Decimal{
			classification.XL: decimal.Zero,
			classification.L:  decimal.Zero,
		}, records)

		require.NoError(t, err)
		assert.Equal(t, ledger.Rejected, result.Outcome)
		assert.Equal(t, ledger.ReasonNoOpAdjustment, result.Reason)
		assert.Empty(t, result.Deltas)
	})

	t.Run("should reject an empty correction", func(t *testing.T) {
		result, err := ledger.ValidateAdjustment(nil, newRecord(t, "100").build())

		require.NoError(t, err)
		assert.Equal(t, ledger.ReasonNoOpAdjustment, result.Reason)
	})

	t.Run("should forward only non zero deltas", func(t *testing.T) {
		records := newRecord(t, "100").pallet(classification.XL, "40").pallet(classification.L, "10").build()

		result, err := ledger.ValidateAdjustment(map[classification.Category]decimal.Decimal{
			classification.XL: dec("-5"),
			classification.L:  dec("5"),
			classification.M:  dec("12"),
			classification.S:  decimal.Zero,
		}, records)

		require.NoError(t, err)
		assert.Equal(t, ledger.Accepted, result.Outcome)
		assert.Len(t, result.Deltas, 3)
		assert.NotContains(t, result.Deltas, classification.S)
		assert.True(t, dec("12").Equal(result.CombinedDelta))
	})

	t.Run("should apply the budget check to the combined delta", func(t *testing.T) {
		records := newRecord(t, "100").pallet(classification.XL, "90").build()

		result, err := ledger.ValidateAdjustment(map[classification.Category]decimal.Decimal{
			classification.L: dec("6"),
			classification.M: dec("5"),
		}, records)

		require.NoError(t, err)
		assert.Equal(t, ledger.ReasonBudgetExceeded, result.Reason)
		assert.True(t, dec("10").Equal(result.RemainingWeight))
		assert.Nil(t, result.Deltas)
	})

	t.Run("should warn near completion", func(t *testing.T) {
		records := newRecord(t, "100").pallet(classification.XL, "90").build()

		result, err := ledger.ValidateAdjustment(map[classification.Category]decimal.Decimal{
			classification.L: dec("8"),
		}, records)

		require.NoError(t, err)
		assert.Equal(t, ledger.AcceptedWithWarning, result.Outcome)
		assert.Len(t, result.Deltas, 1)
	})

	t.Run("should reject a category going negative", func(t *testing.T) {
		records := newRecord(t, "100").pallet(classification.XL, "10").build()

		result, err := ledger.ValidateAdjustment(map[classification.Category]decimal.Decimal{
			classification.XL: dec("-10.5"),
		}, records)

		require.NoError(t, err)
		assert.Equal(t, ledger.ReasonNegativeCategoryWeight, result.Reason)
		assert.Contains(t, result.Message, "XL")
	})

	t.Run("should reject corrections on a finalized classification", func(t *testing.T) {
		records := newRecord(t, "100").pallet(classification.XL, "100").finalized().build()

		result, err := ledger.ValidateAdjustment(map[classification.Category]decimal.Decimal{
			classification.XL: dec("-1"),
		}, records)

		require.NoError(t, err)
		assert.Equal(t, ledger.ReasonClassificationFinalized, result.Reason)
	})

	t.Run("should reject unknown categories as invalid input", func(t *testing.T) {
		result, err := ledger.ValidateAdjustment(map[classification.Category]decimal.Decimal{
			classification.Category(9): dec("1"),
		}, newRecord(t, "100").build())

		require.NoError(t, err)
		assert.Equal(t, ledger.ReasonInvalidInput, result.Reason)
	})
}

func TestValidateAdjustment_ChecksEachRecord(t *testing.T) {
	records := []*classification.Classification{
		newRecord(t, "50").pallet(classification.XL, "30").c,
		newRecord(t, "60").pallet(classification.XL, "20").c,
	}

	result, err := ledger.ValidateAdjustment(map[classification.Category]decimal.Decimal{
		classification.XL: dec("-25"),
	}, records)

	require.NoError(t, err)
	assert.Equal(t, ledger.Rejected, result.Outcome)
	assert.Equal(t, ledger.ReasonNegativeCategoryWeight, result.Reason)
	assert.Contains(t, result.Message, "XL of LOT-60 would be -5 kg")
	assert.NotContains(t, result.Message, "LOT-50")
	assert.Nil(t, result.Deltas)

	accepted, err := ledger.ValidateAdjustment(map[classification.Category]decimal.Decimal{
		classification.XL: dec("-20"),
	}, records)

	require.NoError(t, err)
	assert.Equal(t, ledger.Accepted, accepted.Outcome)
}

func TestEvaluateFinalization(t *testing.T) {
	evaluate := func(t *testing.T, records []*classification.Classification) ledger.FinalizationResult {
		t.Helper()
		totals, err := ledger.Aggregate(records)
		require.NoError(t, err)
		result, err := ledger.EvaluateFinalization(records, ledger.Progress(totals))
		require.NoError(t, err)
		return result
	}

	t.Run("should finalize a fully classified and priced lot", func(t *testing.T) {
		records := newRecord(t, "100").pallet(classification.XL, "100").prices("10", "0", "0", "0").build()

		result := evaluate(t, records)

		assert.True(t, result.CanFinalize)
		assert.Empty(t, result.BlockingReasons)
		assert.Equal(t, []classification.Category{classification.XL}, result.ClassifiedCategories)
		assert.Equal(t, []classification.Category{classification.L, classification.M, classification.S},
			result.UnclassifiedCategories)
	})

	t.Run("should block an unpriced classified category", func(t *testing.T) {
		records := newRecord(t, "100").pallet(classification.XL, "100").prices("0", "0", "0", "0").build()

		result := evaluate(t, records)

		assert.False(t, result.CanFinalize)
		require.Len(t, result.BlockingReasons, 1)
		assert.Equal(t, ledger.BlockedMissingCategoryPrice, result.BlockingReasons[0].Code)
		assert.Equal(t, classification.XL, result.BlockingReasons[0].Category)
		assert.Contains(t, result.BlockingReasons[0].Message, "XL")
	})

	t.Run("should report every outstanding issue at once", func(t *testing.T) {
		records := newRecord(t, "100").pallet(classification.L, "30").pallet(classification.S, "10").waste("5").
			prices("10", "0", "7", "0").build()

		result := evaluate(t, records)

		assert.False(t, result.CanFinalize)
		codes := make([]ledger.BlockingCode, 0, len(result.BlockingReasons))
		for _, r := range result.BlockingReasons {
			codes = append(codes, r.Code)
		}
		assert.Equal(t, []ledger.BlockingCode{
			ledger.BlockedMissingCategoryPrice,
			ledger.BlockedMissingCategoryPrice,
			ledger.BlockedIncompleteProgress,
		}, codes)
		assert.Len(t, result.Messages(), 3)
	})

	t.Run("should block a lot without pallets", func(t *testing.T) {
		records := newRecord(t, "100").waste("60").ret("40").build()

		result := evaluate(t, records)

		assert.False(t, result.CanFinalize)
		require.Len(t, result.BlockingReasons, 1)
		assert.Equal(t, ledger.BlockedNoClassifiedCategories, result.BlockingReasons[0].Code)
		assert.Empty(t, result.ClassifiedCategories)
	})

	t.Run("should not count adjustments as classified categories", func(t *testing.T) {
		record := newRecord(t, "100").pallet(classification.XL, "90")
		require.NoError(t, record.c.ApplyAdjustment(map[classification.Category]decimal.Decimal{
			classification.M: dec("10"),
		}))

		result := evaluate(t, record.build())

		assert.True(t, result.CanFinalize)
		assert.NotContains(t, result.ClassifiedCategories, classification.M)
	})

	t.Run("should block an already finalized classification", func(t *testing.T) {
		records := newRecord(t, "100").pallet(classification.XL, "100").finalized().build()

		result := evaluate(t, records)

		assert.False(t, result.CanFinalize)
		require.Len(t, result.BlockingReasons, 1)
		assert.Equal(t, ledger.BlockedAlreadyFinalized, result.BlockingReasons[0].Code)
	})

	t.Run("should block with a zero expected weight", func(t *testing.T) {
		pallet, err := classification.RestorePalletEntry(kernel.NewUUID(), classification.XL, kernel.MustWeight("5"), time.Now())
		require.NoError(t, err)
		c, err := classification.RestoreClassification(classification.RestoreParams{
			ID:      kernel.NewUUID(),
			OrderID: kernel.NewUUID(),
			LotCode: "LEGACY",
			Prices:  classification.NewPrices(kernel.MustPrice("1"), kernel.Price{}, kernel.Price{}, kernel.Price{}),
			Pallets: []*classification.PalletEntry{pallet},
			Status:  classification.Open,
		})
		require.NoError(t, err)

		result := evaluate(t, []*classification.Classification{c})

		assert.False(t, result.CanFinalize)
		assert.Equal(t, ledger.BlockedIncompleteProgress, result.BlockingReasons[0].Code)
	})

	t.Run("should fail on malformed records", func(t *testing.T) {
		_, err := ledger.EvaluateFinalization([]*classification.Classification{nil}, 100)
		require.ErrorIs(t, err, classification.ErrClassificationIsNotConstructed)
	})
}

func TestValue(t *testing.T) {
	records := []*classification.Classification{
		newRecord(t, "100").pallet(classification.XL, "40").pallet(classification.L, "12.5").waste("3").
			prices("10", "8.4", "6", "4").c,
		newRecord(t, "20").pallet(classification.XL, "10").prices("12", "0", "0", "0").c,
	}

	valuation, err := ledger.Value(records)

	require.NoError(t, err)
	assert.True(t, dec("520").Equal(valuation.Categories[classification.XL]))
	assert.True(t, dec("105").Equal(valuation.Categories[classification.L]))
	assert.True(t, valuation.Categories[classification.M].IsZero())
	assert.True(t, dec("625").Equal(valuation.Total))
}

func TestErrors(t *testing.T) {
	rejection := ledger.NewRejectionError(ledger.ValidationResult{
		Outcome: ledger.Rejected,
		Reason:  ledger.ReasonBudgetExceeded,
		Message: "too heavy",
	})
	require.ErrorIs(t, rejection, ledger.ErrOperationRejected)
	assert.Equal(t, "operation rejected: budget_exceeded: too heavy", rejection.Error())

	blocked := ledger.NewFinalizationBlockedError(ledger.FinalizationResult{
		BlockingReasons: []ledger.BlockingReason{{Message: "a"}, {Message: "b"}},
	})
	require.ErrorIs(t, blocked, ledger.ErrFinalizationBlocked)
	assert.Equal(t, "finalization blocked: a; b", blocked.Error())
}
