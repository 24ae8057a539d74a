package pricing

import (
	"net/http"

	"github.com/shopspring/decimal"

	"shophub-api/internal/pkg/apperror"
)

// ErrDiscountNotEligible is returned when a caller tries to enable the
// threshold discount while the subtotal is below the minimum. It is a
// client condition, not a server fault.
var ErrDiscountNotEligible = apperror.New(
	apperror.CodeNotEligible,
	"Cart subtotal does not meet the discount minimum",
	http.StatusUnprocessableEntity,
)

// Line is the slice of a resolved cart line the calculator cares about.
// Stale lines carry their last-known quantity but no resolvable price and
// never contribute to the subtotal.
type Line struct {
	Price    decimal.Decimal
	Quantity int32
	Stale    bool
}

type Config struct {
	MinimumForDiscount decimal.Decimal
	DiscountAmount     decimal.Decimal
}

func DefaultConfig() Config {
	return Config{
		MinimumForDiscount: decimal.NewFromInt(1000),
		DiscountAmount:     decimal.NewFromInt(150),
	}
}

type Quote struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalTotal     decimal.Decimal `json:"finalTotal"`
}

type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	if cfg.MinimumForDiscount.IsZero() && cfg.DiscountAmount.IsZero() {
		cfg = DefaultConfig()
	}
	return &Calculator{cfg: cfg}
}

func (c *Calculator) Config() Config {
	return c.cfg
}

// Subtotal sums price*quantity over non-stale lines.
func (c *Calculator) Subtotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Stale {
			continue
		}
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Quote prices the cart under the given discount flag. The discount never
// exceeds the subtotal and the final total never goes negative.
func (c *Calculator) Quote(lines []Line, discountApplied bool) Quote {
	subtotal := c.Subtotal(lines)

	discount := decimal.Zero
	if discountApplied {
		discount = c.cfg.DiscountAmount
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	}

	final := subtotal.Sub(discount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return Quote{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		FinalTotal:     final,
	}
}

// Eligible reports whether the discount may be active for these lines.
func (c *Calculator) Eligible(lines []Line) bool {
	return c.Subtotal(lines).GreaterThanOrEqual(c.cfg.MinimumForDiscount)
}

// Toggle flips the discount flag on user request. Enabling below the
// threshold fails with ErrDiscountNotEligible and leaves the flag as-is.
func (c *Calculator) Toggle(lines []Line, applied bool) (bool, error) {
	if applied {
		return false, nil
	}
	if !c.Eligible(lines) {
		return false, ErrDiscountNotEligible
	}
	return true, nil
}

// Reconcile re-checks an active discount after a subtotal change.
// autoRemoved distinguishes a forced clear from a user-initiated one so
// the presentation layer can message them differently.
func (c *Calculator) Reconcile(lines []Line, applied bool) (stillApplied bool, autoRemoved bool) {
	if !applied {
		return false, false
	}
	if c.Eligible(lines) {
		return true, false
	}
	return false, true
}
