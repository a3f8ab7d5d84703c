package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ayustore/backend/internal/domain/payment"
	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockPaymentRepository creates a GormPaymentRepository with a mocked SQL connection
func newMockPaymentRepository(t *testing.T) (*GormPaymentRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return NewGormPaymentRepository(gormDB), mock, mockDB
}

func paymentColumns() []string {
	return []string{
		"id", "order_id", "razorpay_order_id", "razorpay_payment_id",
		"razorpay_signature", "amount", "status", "created_at", "completed_at",
	}
}

func TestGormPaymentRepository_FindByRazorpayOrderID(t *testing.T) {
	t.Run("finds payment by gateway order id", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		paymentID := uuid.New()
		orderID := uuid.New()

		rows := sqlmock.NewRows(paymentColumns()).
			AddRow(paymentID, orderID, "order_Nxy123", "", "",
				decimal.NewFromFloat(129.99), "PENDING", time.Now(), nil)

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE razorpay_order_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("order_Nxy123", 1).
			WillReturnRows(rows)

		p, err := repo.FindByRazorpayOrderID(context.Background(), "order_Nxy123")

		assert.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, paymentID, p.ID)
		assert.Equal(t, payment.StatusPending, p.Status)
		assert.Nil(t, p.CompletedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not-found for unknown gateway order", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE razorpay_order_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("order_unknown", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		p, err := repo.FindByRazorpayOrderID(context.Background(), "order_unknown")

		assert.Nil(t, p)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_FindByOrderID(t *testing.T) {
	repo, mock, mockDB := newMockPaymentRepository(t)
	defer mockDB.Close()

	orderID := uuid.New()
	completedAt := time.Now()

	rows := sqlmock.NewRows(paymentColumns()).
		AddRow(uuid.New(), orderID, "order_Nxy123", "pay_Nxy456", "deadbeef",
			decimal.NewFromFloat(129.99), "COMPLETED", time.Now(), completedAt)

	mock.ExpectQuery(`SELECT \* FROM "payments" WHERE order_id = \$1 ORDER BY .* LIMIT .*`).
		WithArgs(orderID, 1).
		WillReturnRows(rows)

	p, err := repo.FindByOrderID(context.Background(), orderID)

	assert.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, payment.StatusCompleted, p.Status)
	require.NotNil(t, p.CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPaymentRepository_Save(t *testing.T) {
	repo, mock, mockDB := newMockPaymentRepository(t)
	defer mockDB.Close()

	p, err := payment.NewPayment(uuid.New(), "order_Nxy123", decimal.NewFromFloat(129.99))
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO "payments"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Save(context.Background(), p)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormPaymentRepository_Update(t *testing.T) {
	t.Run("updates settlement columns", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		p, err := payment.NewPayment(uuid.New(), "order_Nxy123", decimal.NewFromFloat(129.99))
		require.NoError(t, err)
		require.NoError(t, p.Complete("pay_Nxy456", "deadbeef"))

		mock.ExpectExec(`UPDATE "payments" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Update(context.Background(), p)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not-found when no row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		p, err := payment.NewPayment(uuid.New(), "order_Nxy123", decimal.NewFromFloat(129.99))
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "payments" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Update(context.Background(), p)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
