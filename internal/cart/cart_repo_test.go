package cart_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"shophub-api/internal/cart"
)

func newMockRepo(t *testing.T) (cart.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return cart.NewRepository(db), mock
}

func entryRows(entries ...cart.Entry) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"user_id", "product_id", "quantity", "position", "added_at"})
	for _, e := range entries {
		rows.AddRow(e.UserID, e.ProductID, e.Quantity, e.Position, e.AddedAt)
	}
	return rows
}

func TestCartRepository_LockUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`)).
		WithArgs("user_42").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.LockUser(context.Background(), "user_42")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_ListEntries(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT user_id, product_id, quantity, position, added_at FROM cart_items WHERE user_id = \$1 ORDER BY position`).
		WithArgs("user_42").
		WillReturnRows(entryRows(
			cart.Entry{UserID: "user_42", ProductID: "p1", Quantity: 1, Position: 1, AddedAt: now},
			cart.Entry{UserID: "user_42", ProductID: "p2", Quantity: 3, Position: 2, AddedAt: now},
		))

	entries, err := repo.ListEntries(context.Background(), "user_42")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "p1", entries[0].ProductID)
	assert.Equal(t, int32(2), entries[1].Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_GetEntry_NoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM cart_items WHERE user_id = \$1 AND product_id = \$2`).
		WithArgs("user_42", "p1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetEntry(context.Background(), "user_42", "p1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_InsertEntry(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO cart_items`).
		WithArgs("user_42", "p1", int32(2)).
		WillReturnRows(entryRows(
			cart.Entry{UserID: "user_42", ProductID: "p1", Quantity: 2, Position: 1, AddedAt: now},
		))

	entry, err := repo.InsertEntry(context.Background(), "user_42", "p1", 2)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), entry.Quantity)
	assert.Equal(t, int32(1), entry.Position)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_UpdateQuantity_NoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`UPDATE cart_items SET quantity = \$3`).
		WithArgs("user_42", "p1", int32(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateQuantity(context.Background(), "user_42", "p1", 5)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_DeleteEntry(t *testing.T) {
	t.Run("reports_deletion", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(`DELETE FROM cart_items WHERE user_id = \$1 AND product_id = \$2`).
			WithArgs("user_42", "p1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		deleted, err := repo.DeleteEntry(context.Background(), "user_42", "p1")
		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports_absence", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(`DELETE FROM cart_items WHERE user_id = \$1 AND product_id = \$2`).
			WithArgs("user_42", "p1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		deleted, err := repo.DeleteEntry(context.Background(), "user_42", "p1")
		assert.NoError(t, err)
		assert.False(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCartRepository_Count(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cart_items WHERE user_id = \$1`).
		WithArgs("user_42").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	count, err := repo.Count(context.Background(), "user_42")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
