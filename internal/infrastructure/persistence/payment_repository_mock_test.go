package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bistro/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPaymentRepository_CreateRollsBackOnReferenceFailure(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	payment, err := trade.NewPayment("u@bistro.example", decimal.NewFromInt(5), "",
		[]uuid.UUID{uuid.New()}, []uuid.UUID{uuid.New()})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "payments"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "payment_menu_items"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewGormPaymentRepository(db.DB).Create(context.Background(), payment)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert payment menu items")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCartRepository_DeleteByIDsFailure(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectExec(`DELETE FROM "cart_items" WHERE id IN \(\$1,\$2\)`).
		WillReturnError(errors.New("connection reset"))

	_, err := NewGormCartRepository(db.DB).DeleteByIDs(context.Background(), []uuid.UUID{uuid.New(), uuid.New()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete cart items")
	assert.NoError(t, mock.ExpectationsWereMet())
}
