package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ref is the slice of a product the cart engine reads: current price and
// stock, resolved at read time (no price lock-in).
type Ref struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Image string          `json:"image"`
	Price decimal.Decimal `json:"price"`
	Stock int32           `json:"stock"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Stock       int32           `json:"stock"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type CreateRequest struct {
	Name        string  `json:"name" binding:"required" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Price       float64 `json:"price" binding:"required" validate:"required,gt=0"`
	Stock       int32   `json:"stock" validate:"gte=0"`
}

type UpdateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int32   `json:"stock" validate:"gte=0"`
}
