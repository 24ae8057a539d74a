package cart

import (
	"context"
	"database/sql"

	"shophub-api/internal/shared/database"
)

//go:generate mockgen -source=cart_repo.go -destination=../mock/cart/cart_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx database.DBTX) Repository

	// LockUser takes a per-user advisory lock for the current transaction.
	// Every mutating operation runs under it; operations on different
	// users never contend.
	LockUser(ctx context.Context, userID string) error

	ListEntries(ctx context.Context, userID string) ([]Entry, error)
	GetEntry(ctx context.Context, userID, productID string) (Entry, error)
	InsertEntry(ctx context.Context, userID, productID string, quantity int32) (Entry, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int32) (Entry, error)
	DeleteEntry(ctx context.Context, userID, productID string) (bool, error)
	Clear(ctx context.Context, userID string) error
	Count(ctx context.Context, userID string) (int64, error)
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

func (r *repository) LockUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, userID)
	return err
}

const entryColumns = `user_id, product_id, quantity, position, added_at`

func scanEntry(row interface{ Scan(dest ...any) error }) (Entry, error) {
	var e Entry
	err := row.Scan(&e.UserID, &e.ProductID, &e.Quantity, &e.Position, &e.AddedAt)
	return e, err
}

func (r *repository) ListEntries(ctx context.Context, userID string) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM cart_items WHERE user_id = $1 ORDER BY position`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *repository) GetEntry(ctx context.Context, userID, productID string) (Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
	return scanEntry(row)
}

func (r *repository) InsertEntry(ctx context.Context, userID, productID string, quantity int32) (Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity, position)
		 VALUES ($1, $2, $3,
		         (SELECT COALESCE(MAX(position), 0) + 1 FROM cart_items WHERE user_id = $1))
		 RETURNING `+entryColumns,
		userID, productID, quantity)
	return scanEntry(row)
}

func (r *repository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int32) (Entry, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE cart_items SET quantity = $3
		 WHERE user_id = $1 AND product_id = $2
		 RETURNING `+entryColumns,
		userID, productID, quantity)
	return scanEntry(row)
}

func (r *repository) DeleteEntry(ctx context.Context, userID, productID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) Clear(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}

func (r *repository) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM cart_items WHERE user_id = $1`, userID).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return count, err
}
