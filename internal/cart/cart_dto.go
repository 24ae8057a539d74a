package cart

import (
	"time"

	"github.com/shopspring/decimal"

	"shophub-api/internal/pricing"
)

// Entry is a persisted cart row: a weak reference to a product plus a
// quantity. Position records insertion order for UI stability only.
type Entry struct {
	UserID    string
	ProductID string
	Quantity  int32
	Position  int32
	AddedAt   time.Time
}

// ResolvedLine is an Entry joined with live catalog data at read time.
// It is never persisted; the current price always wins over whatever the
// product cost when it was added.
type ResolvedLine struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name,omitempty"`
	Image     string          `json:"image,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int32           `json:"stock"`
	Quantity  int32           `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Stale     bool            `json:"stale,omitempty"`
}

type ToggleRequest struct {
	UserID    string `json:"userId" binding:"required" validate:"required"`
	ProductID string `json:"productId" binding:"required" validate:"required"`
	Quantity  int32  `json:"quantity"`
}

type UpdateRequest struct {
	UserID    string `json:"userId" binding:"required" validate:"required"`
	ProductID string `json:"productId" binding:"required" validate:"required"`
	// Range is enforced by the engine so an out-of-bounds value is a
	// domain rejection, not a malformed request.
	Quantity int32 `json:"quantity"`
}

type RemoveRequest struct {
	UserID    string `json:"userId" binding:"required" validate:"required"`
	ProductID string `json:"productId" binding:"required" validate:"required"`
}

type QuoteRequest struct {
	UserID          string `json:"userId" binding:"required" validate:"required"`
	DiscountApplied bool   `json:"discountApplied"`
	Toggle          bool   `json:"toggle"`
}

// CartResponse is the shape every read and quantity mutation returns.
// Count is the number of distinct products, not the sum of quantities;
// the navigation badge renders it directly.
type CartResponse struct {
	Cart  []ResolvedLine `json:"cart"`
	Count int            `json:"count"`
}

type ToggleResponse struct {
	InCart  bool           `json:"inCart"`
	Cart    []ResolvedLine `json:"cart"`
	Count   int            `json:"count"`
	Message string         `json:"message,omitempty"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type QuoteResponse struct {
	Cart            []ResolvedLine `json:"cart"`
	Pricing         pricing.Quote  `json:"pricing"`
	DiscountApplied bool           `json:"discountApplied"`
	AutoRemoved     bool           `json:"autoRemoved,omitempty"`
	Message         string         `json:"message,omitempty"`
}
