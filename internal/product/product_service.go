package product

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	producterrors "shophub-api/internal/product/errors"
)

// Resolver is the read-only view the cart engine depends on. Resolution
// always reflects the catalog's current price; there is no price lock-in.
type Resolver interface {
	Resolve(ctx context.Context, productID string) (Ref, error)
}

//go:generate mockgen -source=product_service.go -destination=../mock/product/product_service_mock.go -package=mock
type Service interface {
	Resolver

	List(ctx context.Context) ([]Product, error)
	Detail(ctx context.Context, productID string) (Product, error)
	Create(ctx context.Context, req CreateRequest) (Product, error)
	Update(ctx context.Context, productID string, req UpdateRequest) (Product, error)
	Delete(ctx context.Context, productID string) error
}

type service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(r Repository) Service {
	return &service{
		repo:     r,
		validate: validator.New(),
	}
}

func parseProductID(productID string) (uuid.UUID, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return uuid.Nil, producterrors.ErrInvalidProductID
	}
	return id, nil
}

func (s *service) Resolve(ctx context.Context, productID string) (Ref, error) {
	pid, err := parseProductID(productID)
	if err != nil {
		return Ref{}, err
	}

	p, err := s.repo.GetByID(ctx, pid)
	if err == sql.ErrNoRows {
		return Ref{}, producterrors.ErrProductNotFound
	}
	if err != nil {
		return Ref{}, err
	}

	return Ref{
		ID:    p.ID,
		Name:  p.Name,
		Image: p.Image,
		Price: p.Price,
		Stock: p.Stock,
	}, nil
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

func (s *service) Detail(ctx context.Context, productID string) (Product, error) {
	pid, err := parseProductID(productID)
	if err != nil {
		return Product{}, err
	}

	p, err := s.repo.GetByID(ctx, pid)
	if err == sql.ErrNoRows {
		return Product{}, producterrors.ErrProductNotFound
	}
	return p, err
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return Product{}, producterrors.ErrInvalidPrice
	}

	p := Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Price:       decimal.NewFromFloat(req.Price),
		Stock:       req.Stock,
	}
	return s.repo.Create(ctx, p)
}

func (s *service) Update(ctx context.Context, productID string, req UpdateRequest) (Product, error) {
	pid, err := parseProductID(productID)
	if err != nil {
		return Product{}, err
	}
	if err := s.validate.Struct(req); err != nil {
		return Product{}, producterrors.ErrInvalidPrice
	}

	p := Product{
		ID:          pid.String(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
		Price:       decimal.NewFromFloat(req.Price),
		Stock:       req.Stock,
	}

	updated, err := s.repo.Update(ctx, p)
	if err == sql.ErrNoRows {
		return Product{}, producterrors.ErrProductNotFound
	}
	return updated, err
}

// Delete removes the product from the catalog only. Cart entries keep
// their weak reference and surface as stale lines on the next read.
func (s *service) Delete(ctx context.Context, productID string) error {
	pid, err := parseProductID(productID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, pid)
}
