package product

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"shophub-api/internal/shared/database"
)

//go:generate mockgen -source=product_repo.go -destination=../mock/product/product_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx database.DBTX) Repository

	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db database.DBTX
}

func NewRepository(db database.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx database.DBTX) Repository {
	return &repository{db: tx}
}

const productColumns = `id, name, description, category, image, price, stock, created_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (Product, error) {
	var p Product
	var price decimal.Decimal
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Image, &price, &p.Stock, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	p.Price = price
	return p, nil
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (r *repository) Create(ctx context.Context, p Product) (Product, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO products (id, name, description, category, image, price, stock)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+productColumns,
		p.ID, p.Name, p.Description, p.Category, p.Image, p.Price, p.Stock)
	return scanProduct(row)
}

func (r *repository) Update(ctx context.Context, p Product) (Product, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE products
		 SET name = $2, description = $3, category = $4, image = $5, price = $6, stock = $7
		 WHERE id = $1
		 RETURNING `+productColumns,
		p.ID, p.Name, p.Description, p.Category, p.Image, p.Price, p.Stock)
	return scanProduct(row)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}
