package seed

import (
	"context"
	"database/sql"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shophub-api/internal/product"
)

func SeedProducts(db *sql.DB) error {
	ctx := context.Background()
	repo := product.NewRepository(db)

	products := []product.Product{
		{
			Name:        "Wireless Headphones",
			Description: "Over-ear, 30h battery",
			Category:    "electronics",
			Image:       "https://images.shophub.dev/headphones.jpg",
			Price:       decimal.NewFromInt(1200),
			Stock:       25,
		},
		{
			Name:        "Canvas Tote Bag",
			Description: "Organic cotton, 15L",
			Category:    "accessories",
			Image:       "https://images.shophub.dev/tote.jpg",
			Price:       decimal.NewFromInt(400),
			Stock:       60,
		},
		{
			Name:        "Ceramic Mug",
			Description: "350ml, dishwasher safe",
			Category:    "home",
			Image:       "https://images.shophub.dev/mug.jpg",
			Price:       decimal.NewFromInt(250),
			Stock:       120,
		},
		{
			Name:        "Desk Lamp",
			Description: "Dimmable LED",
			Category:    "home",
			Image:       "https://images.shophub.dev/lamp.jpg",
			Price:       decimal.NewFromInt(700),
			Stock:       40,
		},
	}

	for _, p := range products {
		p.ID = uuid.NewString()
		if _, err := repo.Create(ctx, p); err != nil {
			return err
		}
		log.Printf("seeded product %s (%s)", p.Name, p.ID)
	}

	return nil
}
