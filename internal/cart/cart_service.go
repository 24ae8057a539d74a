package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	carterrors "shophub-api/internal/cart/errors"
	"shophub-api/internal/outbox"
	"shophub-api/internal/pricing"
	"shophub-api/internal/product"
	producterrors "shophub-api/internal/product/errors"
)

const (
	// Quantity bounds enforced on every persisted entry.
	MinQuantity int32 = 1
	MaxQuantity int32 = 10

	EventCartUpdated = "CART_UPDATED"
	EventCartCleared = "CART_CLEARED"

	aggregateCart = "cart"
)

// CartEventPayload is the fan-out message written to the outbox alongside
// every committed mutation.
type CartEventPayload struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
}

//go:generate mockgen -source=cart_service.go -destination=../mock/cart/cart_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, userID string) (CartResponse, error)
	Toggle(ctx context.Context, req ToggleRequest) (ToggleResponse, error)
	SetQuantity(ctx context.Context, req UpdateRequest) (CartResponse, error)
	Remove(ctx context.Context, req RemoveRequest) (CartResponse, error)
	Clear(ctx context.Context, userID string) error
	Count(ctx context.Context, userID string) (int64, error)
	Quote(ctx context.Context, req QuoteRequest) (QuoteResponse, error)
}

type Deps struct {
	DB         *sql.DB
	Repo       Repository
	Products   product.Resolver
	OutboxRepo outbox.Repository
	Cache      *CountCache
	Pricer     *pricing.Calculator
	Logger     *zap.Logger
}

type service struct {
	db       *sql.DB
	repo     Repository
	products product.Resolver
	outbox   outbox.Repository
	cache    *CountCache
	pricer   *pricing.Calculator
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.DB == nil {
		panic("db cannot be nil")
	}
	if deps.Repo == nil {
		panic("cart repository cannot be nil")
	}
	if deps.Products == nil {
		panic("product resolver cannot be nil")
	}
	if deps.Pricer == nil {
		deps.Pricer = pricing.NewCalculator(pricing.DefaultConfig())
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &service{
		db:       deps.DB,
		repo:     deps.Repo,
		products: deps.Products,
		outbox:   deps.OutboxRepo,
		cache:    deps.Cache,
		pricer:   deps.Pricer,
		validate: validator.New(),
		logger:   deps.Logger,
	}
}

// ========================
// helpers
// ========================

func clampQuantity(q int32) int32 {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

func requireUserID(userID string) error {
	if userID == "" {
		return carterrors.ErrUserIDRequired
	}
	return nil
}

// resolveLines joins entries against the live catalog. A product that no
// longer resolves yields a stale line: retained in the listing, priced at
// zero, excluded from the subtotal. Resolver transport failures propagate.
func (s *service) resolveLines(ctx context.Context, entries []Entry) ([]ResolvedLine, error) {
	lines := make([]ResolvedLine, 0, len(entries))
	for _, e := range entries {
		ref, err := s.products.Resolve(ctx, e.ProductID)
		if err != nil {
			if errors.Is(err, producterrors.ErrProductNotFound) ||
				errors.Is(err, producterrors.ErrInvalidProductID) {
				lines = append(lines, ResolvedLine{
					ProductID: e.ProductID,
					Quantity:  e.Quantity,
					Price:     decimal.Zero,
					LineTotal: decimal.Zero,
					Stale:     true,
				})
				continue
			}
			return nil, err
		}

		lines = append(lines, ResolvedLine{
			ProductID: e.ProductID,
			Name:      ref.Name,
			Image:     ref.Image,
			Price:     ref.Price,
			Stock:     ref.Stock,
			Quantity:  e.Quantity,
			LineTotal: ref.Price.Mul(decimal.NewFromInt(int64(e.Quantity))),
		})
	}
	return lines, nil
}

func pricingLines(lines []ResolvedLine) []pricing.Line {
	out := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, pricing.Line{
			Price:    l.Price,
			Quantity: l.Quantity,
			Stale:    l.Stale,
		})
	}
	return out
}

func (s *service) enqueueEvent(ctx context.Context, repo outbox.Repository, eventType, userID string, count int) error {
	if repo == nil {
		return nil
	}
	payload, err := json.Marshal(CartEventPayload{UserID: userID, Count: count})
	if err != nil {
		return err
	}
	return repo.Enqueue(ctx, outbox.Event{
		AggregateType: aggregateCart,
		AggregateID:   userID,
		EventType:     eventType,
		Payload:       payload,
	})
}

func (s *service) refreshCount(ctx context.Context, userID string, count int) {
	s.cache.Set(ctx, userID, int64(count))
}

// ========================
// operations
// ========================

func (s *service) Get(ctx context.Context, userID string) (CartResponse, error) {
	if err := requireUserID(userID); err != nil {
		return CartResponse{}, err
	}

	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return CartResponse{}, err
	}

	lines, err := s.resolveLines(ctx, entries)
	if err != nil {
		return CartResponse{}, err
	}

	return CartResponse{Cart: lines, Count: len(lines)}, nil
}

// Toggle inserts the product if absent (quantity clamped to bounds) and
// removes it entirely if present. The whole read-modify-write runs inside
// one transaction under the per-user lock, so two concurrent toggles for
// the same product serialize instead of double-inserting.
func (s *service) Toggle(ctx context.Context, req ToggleRequest) (ToggleResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return ToggleResponse{}, carterrors.ErrInvalidRequest
	}
	if err := requireUserID(req.UserID); err != nil {
		return ToggleResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ToggleResponse{}, err
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	if err := repo.LockUser(ctx, req.UserID); err != nil {
		return ToggleResponse{}, err
	}

	var inCart bool
	var message string

	_, err = repo.GetEntry(ctx, req.UserID, req.ProductID)
	switch {
	case err == sql.ErrNoRows:
		// Absent: the product must still exist in the catalog to be added.
		if _, err := s.products.Resolve(ctx, req.ProductID); err != nil {
			return ToggleResponse{}, err
		}
		qty := req.Quantity
		if qty == 0 {
			qty = 1
		}
		if _, err := repo.InsertEntry(ctx, req.UserID, req.ProductID, clampQuantity(qty)); err != nil {
			return ToggleResponse{}, err
		}
		inCart = true
		message = "Product added to cart"

	case err != nil:
		return ToggleResponse{}, err

	default:
		if _, err := repo.DeleteEntry(ctx, req.UserID, req.ProductID); err != nil {
			return ToggleResponse{}, err
		}
		inCart = false
		message = "Product removed from cart"
	}

	entries, err := repo.ListEntries(ctx, req.UserID)
	if err != nil {
		return ToggleResponse{}, err
	}

	var outboxRepo outbox.Repository
	if s.outbox != nil {
		outboxRepo = s.outbox.WithTx(tx)
	}
	if err := s.enqueueEvent(ctx, outboxRepo, EventCartUpdated, req.UserID, len(entries)); err != nil {
		return ToggleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ToggleResponse{}, err
	}

	lines, err := s.resolveLines(ctx, entries)
	if err != nil {
		return ToggleResponse{}, err
	}

	s.refreshCount(ctx, req.UserID, len(lines))
	s.logger.Debug("cart toggled",
		zap.String("user_id", req.UserID),
		zap.String("product_id", req.ProductID),
		zap.Bool("in_cart", inCart))

	return ToggleResponse{
		InCart:  inCart,
		Cart:    lines,
		Count:   len(lines),
		Message: message,
	}, nil
}

// SetQuantity updates an existing entry in place. Out-of-range quantities
// are rejected; an absent entry is a no-op that returns the current cart.
func (s *service) SetQuantity(ctx context.Context, req UpdateRequest) (CartResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return CartResponse{}, carterrors.ErrInvalidRequest
	}
	if err := requireUserID(req.UserID); err != nil {
		return CartResponse{}, err
	}
	if req.Quantity < MinQuantity || req.Quantity > MaxQuantity {
		return CartResponse{}, carterrors.ErrInvalidQuantity
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CartResponse{}, err
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	if err := repo.LockUser(ctx, req.UserID); err != nil {
		return CartResponse{}, err
	}

	mutated := true
	_, err = repo.UpdateQuantity(ctx, req.UserID, req.ProductID, req.Quantity)
	if err == sql.ErrNoRows {
		mutated = false
	} else if err != nil {
		return CartResponse{}, err
	}

	entries, err := repo.ListEntries(ctx, req.UserID)
	if err != nil {
		return CartResponse{}, err
	}

	if mutated {
		var outboxRepo outbox.Repository
		if s.outbox != nil {
			outboxRepo = s.outbox.WithTx(tx)
		}
		if err := s.enqueueEvent(ctx, outboxRepo, EventCartUpdated, req.UserID, len(entries)); err != nil {
			return CartResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return CartResponse{}, err
	}

	lines, err := s.resolveLines(ctx, entries)
	if err != nil {
		return CartResponse{}, err
	}

	s.refreshCount(ctx, req.UserID, len(lines))
	return CartResponse{Cart: lines, Count: len(lines)}, nil
}

// Remove deletes the entry if present; removing an absent product is not
// an error, the caller just gets the unchanged cart back.
func (s *service) Remove(ctx context.Context, req RemoveRequest) (CartResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return CartResponse{}, carterrors.ErrInvalidRequest
	}
	if err := requireUserID(req.UserID); err != nil {
		return CartResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CartResponse{}, err
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	if err := repo.LockUser(ctx, req.UserID); err != nil {
		return CartResponse{}, err
	}

	deleted, err := repo.DeleteEntry(ctx, req.UserID, req.ProductID)
	if err != nil {
		return CartResponse{}, err
	}

	entries, err := repo.ListEntries(ctx, req.UserID)
	if err != nil {
		return CartResponse{}, err
	}

	if deleted {
		var outboxRepo outbox.Repository
		if s.outbox != nil {
			outboxRepo = s.outbox.WithTx(tx)
		}
		if err := s.enqueueEvent(ctx, outboxRepo, EventCartUpdated, req.UserID, len(entries)); err != nil {
			return CartResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return CartResponse{}, err
	}

	lines, err := s.resolveLines(ctx, entries)
	if err != nil {
		return CartResponse{}, err
	}

	s.refreshCount(ctx, req.UserID, len(lines))
	return CartResponse{Cart: lines, Count: len(lines)}, nil
}

func (s *service) Clear(ctx context.Context, userID string) error {
	if err := requireUserID(userID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)
	if err := repo.LockUser(ctx, userID); err != nil {
		return err
	}

	if err := repo.Clear(ctx, userID); err != nil {
		return err
	}

	var outboxRepo outbox.Repository
	if s.outbox != nil {
		outboxRepo = s.outbox.WithTx(tx)
	}
	if err := s.enqueueEvent(ctx, outboxRepo, EventCartCleared, userID, 0); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, userID)
	return nil
}

func (s *service) Count(ctx context.Context, userID string) (int64, error) {
	if err := requireUserID(userID); err != nil {
		return 0, err
	}

	if count, ok := s.cache.Get(ctx, userID); ok {
		return count, nil
	}

	count, err := s.repo.Count(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.cache.Set(ctx, userID, count)
	return count, nil
}

// Quote prices the current cart under the caller's discount flag. The
// flag itself stays client-local; the server only re-validates it. With
// Toggle set the caller is flipping the flag, and enabling it below the
// threshold fails with DiscountNotEligible instead of silently pricing.
func (s *service) Quote(ctx context.Context, req QuoteRequest) (QuoteResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return QuoteResponse{}, carterrors.ErrInvalidRequest
	}

	current, err := s.Get(ctx, req.UserID)
	if err != nil {
		return QuoteResponse{}, err
	}

	plines := pricingLines(current.Cart)
	applied := req.DiscountApplied
	var message string

	if req.Toggle {
		next, err := s.pricer.Toggle(plines, applied)
		if err != nil {
			return QuoteResponse{}, err
		}
		applied = next
		if applied {
			message = "Discount applied"
		} else {
			message = "Discount removed"
		}
	}

	applied, autoRemoved := s.pricer.Reconcile(plines, applied)
	if autoRemoved {
		message = "Discount removed automatically: cart subtotal fell below the minimum"
	}

	return QuoteResponse{
		Cart:            current.Cart,
		Pricing:         s.pricer.Quote(plines, applied),
		DiscountApplied: applied,
		AutoRemoved:     autoRemoved,
		Message:         message,
	}, nil
}
