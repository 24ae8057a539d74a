package product_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"shophub-api/internal/product"
	producterrors "shophub-api/internal/product/errors"
)

func newTestService(t *testing.T) (product.Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return product.NewService(product.NewRepository(db)), mock
}

func productRow(id, name string, price int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "category", "image", "price", "stock", "created_at",
	}).AddRow(id, name, "", "electronics", "", price, int32(5), time.Now())
}

func TestProductService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns_current_price", func(t *testing.T) {
		svc, mock := newTestService(t)
		id := uuid.NewString()

		mock.ExpectQuery(`SELECT .+ FROM products WHERE id = \$1`).
			WithArgs(uuid.MustParse(id)).
			WillReturnRows(productRow(id, "Wireless Headphones", 1200))

		ref, err := svc.Resolve(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, id, ref.ID)
		assert.Equal(t, "Wireless Headphones", ref.Name)
		assert.Equal(t, "1200", ref.Price.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown_id_maps_to_not_found", func(t *testing.T) {
		svc, mock := newTestService(t)
		id := uuid.NewString()

		mock.ExpectQuery(`SELECT .+ FROM products WHERE id = \$1`).
			WithArgs(uuid.MustParse(id)).
			WillReturnError(sql.ErrNoRows)

		_, err := svc.Resolve(ctx, id)
		assert.ErrorIs(t, err, producterrors.ErrProductNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed_id_rejected_before_query", func(t *testing.T) {
		svc, mock := newTestService(t)

		_, err := svc.Resolve(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, producterrors.ErrInvalidProductID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductService_List(t *testing.T) {
	svc, mock := newTestService(t)

	rows := productRow(uuid.NewString(), "Phone Case", 400)
	rows.AddRow(uuid.NewString(), "USB Cable", "", "electronics", "", int64(250), int32(5), time.Now())

	mock.ExpectQuery(`SELECT .+ FROM products ORDER BY created_at DESC`).
		WillReturnRows(rows)

	products, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("non_positive_price_rejected", func(t *testing.T) {
		svc, mock := newTestService(t)

		_, err := svc.Create(ctx, product.CreateRequest{Name: "Freebie", Price: 0})
		assert.ErrorIs(t, err, producterrors.ErrInvalidPrice)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("persists_and_returns_product", func(t *testing.T) {
		svc, mock := newTestService(t)

		mock.ExpectQuery(`INSERT INTO products`).
			WillReturnRows(productRow(uuid.NewString(), "Bluetooth Speaker", 700))

		p, err := svc.Create(ctx, product.CreateRequest{Name: "Bluetooth Speaker", Price: 700})
		assert.NoError(t, err)
		assert.Equal(t, "Bluetooth Speaker", p.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc, mock := newTestService(t)
	id := uuid.NewString()

	mock.ExpectQuery(`UPDATE products`).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Update(context.Background(), id, product.UpdateRequest{Name: "Phone Case", Price: 450})
	assert.ErrorIs(t, err, producterrors.ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductService_Delete_InvalidID(t *testing.T) {
	svc, mock := newTestService(t)

	err := svc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, producterrors.ErrInvalidProductID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
