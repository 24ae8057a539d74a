package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"shophub-api/internal/pricing"
)

func line(price int64, qty int32) pricing.Line {
	return pricing.Line{Price: decimal.NewFromInt(price), Quantity: qty}
}

func staleLine(qty int32) pricing.Line {
	return pricing.Line{Price: decimal.Zero, Quantity: qty, Stale: true}
}

func TestCalculator_Subtotal(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultConfig())

	t.Run("sums_price_times_quantity", func(t *testing.T) {
		subtotal := calc.Subtotal([]pricing.Line{line(400, 2), line(700, 1)})
		assert.True(t, subtotal.Equal(decimal.NewFromInt(1500)))
	})

	t.Run("empty_cart_is_zero", func(t *testing.T) {
		assert.True(t, calc.Subtotal(nil).IsZero())
	})

	t.Run("stale_lines_excluded", func(t *testing.T) {
		subtotal := calc.Subtotal([]pricing.Line{line(400, 1), staleLine(3)})
		assert.True(t, subtotal.Equal(decimal.NewFromInt(400)))
	})
}

func TestCalculator_Quote(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultConfig())

	t.Run("no_discount", func(t *testing.T) {
		q := calc.Quote([]pricing.Line{line(1200, 1)}, false)
		assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(1200)))
		assert.True(t, q.DiscountAmount.IsZero())
		assert.True(t, q.FinalTotal.Equal(decimal.NewFromInt(1200)))
	})

	t.Run("discount_applied", func(t *testing.T) {
		q := calc.Quote([]pricing.Line{line(1200, 1)}, true)
		assert.True(t, q.DiscountAmount.Equal(decimal.NewFromInt(150)))
		assert.True(t, q.FinalTotal.Equal(decimal.NewFromInt(1050)))
	})

	t.Run("discount_never_exceeds_subtotal", func(t *testing.T) {
		q := calc.Quote([]pricing.Line{line(100, 1)}, true)
		assert.True(t, q.DiscountAmount.Equal(decimal.NewFromInt(100)))
		assert.True(t, q.FinalTotal.IsZero())
	})

	t.Run("final_total_never_negative", func(t *testing.T) {
		q := calc.Quote(nil, true)
		assert.False(t, q.FinalTotal.IsNegative())
		assert.True(t, q.DiscountAmount.IsZero())
	})
}

func TestCalculator_Toggle(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultConfig())

	t.Run("enable_at_threshold", func(t *testing.T) {
		applied, err := calc.Toggle([]pricing.Line{line(1000, 1)}, false)
		assert.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("enable_below_threshold_rejected", func(t *testing.T) {
		_, err := calc.Toggle([]pricing.Line{line(999, 1)}, false)
		assert.ErrorIs(t, err, pricing.ErrDiscountNotEligible)
	})

	t.Run("disable_always_allowed", func(t *testing.T) {
		applied, err := calc.Toggle([]pricing.Line{line(100, 1)}, true)
		assert.NoError(t, err)
		assert.False(t, applied)
	})
}

func TestCalculator_Reconcile(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultConfig())

	t.Run("still_eligible_keeps_discount", func(t *testing.T) {
		applied, autoRemoved := calc.Reconcile([]pricing.Line{line(400, 1), line(700, 1)}, true)
		assert.True(t, applied)
		assert.False(t, autoRemoved)
	})

	t.Run("drop_below_threshold_auto_removes", func(t *testing.T) {
		// A(400) + B(700) = 1100, discount on; removing B leaves 400.
		applied, autoRemoved := calc.Reconcile([]pricing.Line{line(400, 1)}, true)
		assert.False(t, applied)
		assert.True(t, autoRemoved)
	})

	t.Run("inactive_discount_never_auto_removed", func(t *testing.T) {
		applied, autoRemoved := calc.Reconcile([]pricing.Line{line(100, 1)}, false)
		assert.False(t, applied)
		assert.False(t, autoRemoved)
	})
}

func TestCalculator_ScenarioTwoProducts(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultConfig())
	both := []pricing.Line{line(400, 1), line(700, 1)}

	applied, err := calc.Toggle(both, false)
	assert.NoError(t, err)
	assert.True(t, applied)

	q := calc.Quote(both, applied)
	assert.True(t, q.FinalTotal.Equal(decimal.NewFromInt(950)))

	afterRemove := []pricing.Line{line(400, 1)}
	applied, autoRemoved := calc.Reconcile(afterRemove, applied)
	assert.False(t, applied)
	assert.True(t, autoRemoved)

	q = calc.Quote(afterRemove, applied)
	assert.True(t, q.FinalTotal.Equal(decimal.NewFromInt(400)))
}
