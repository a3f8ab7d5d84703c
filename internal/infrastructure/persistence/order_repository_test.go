package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ayustore/backend/internal/domain/order"
	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockOrderRepository creates a GormOrderRepository with a mocked SQL connection
func newMockOrderRepository(t *testing.T) (*GormOrderRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormOrderRepository(gormDB), mock, mockDB
}

func orderColumns() []string {
	return []string{
		"id", "user_id", "status", "total",
		"first_name", "last_name", "address", "city", "zip_code", "country",
		"created_at", "updated_at",
	}
}

func orderItemColumns() []string {
	return []string{
		"id", "order_id", "product_id", "product_name", "product_image",
		"price_at_purchase", "quantity",
	}
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("finds order with its items", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()
		userID := uuid.New()
		now := time.Now()

		orderRows := sqlmock.NewRows(orderColumns()).
			AddRow(orderID, userID, "PENDING", decimal.NewFromFloat(179.98),
				"Asha", "Rao", "12 MG Road", "Bengaluru", "560001", "India", now, now)

		itemRows := sqlmock.NewRows(orderItemColumns()).
			AddRow(uuid.New(), orderID, uuid.New(), "Desk Lamp", "", decimal.NewFromFloat(49.99), 2).
			AddRow(uuid.New(), orderID, uuid.New(), "Laptop Bag", "", decimal.NewFromFloat(89.99), 1)

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnRows(orderRows)
		mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"\."order_id" = \$1`).
			WithArgs(orderID).
			WillReturnRows(itemRows)

		o, err := repo.FindByID(context.Background(), orderID)

		assert.NoError(t, err)
		require.NotNil(t, o)
		assert.Equal(t, order.StatusPending, o.Status)
		assert.Len(t, o.Items, 2)
		assert.Equal(t, "India", o.ShippingAddress.Country)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not-found for missing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		orderID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(orderID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		o, err := repo.FindByID(context.Background(), orderID)

		assert.Nil(t, o)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_FindByUser(t *testing.T) {
	repo, mock, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	userID := uuid.New()
	orderID := uuid.New()
	now := time.Now()

	orderRows := sqlmock.NewRows(orderColumns()).
		AddRow(orderID, userID, "DELIVERED", decimal.NewFromFloat(49.99),
			"Asha", "Rao", "12 MG Road", "Bengaluru", "560001", "India", now, now)

	itemRows := sqlmock.NewRows(orderItemColumns()).
		AddRow(uuid.New(), orderID, uuid.New(), "Desk Lamp", "", decimal.NewFromFloat(49.99), 1)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(userID).
		WillReturnRows(orderRows)
	mock.ExpectQuery(`SELECT \* FROM "order_items" WHERE "order_items"\."order_id" = \$1`).
		WithArgs(orderID).
		WillReturnRows(itemRows)

	orders, err := repo.FindByUser(context.Background(), userID)

	assert.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, userID, orders[0].UserID)
	assert.Len(t, orders[0].Items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_Save(t *testing.T) {
	repo, mock, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	o, err := order.NewOrder(uuid.New(), decimal.NewFromFloat(99.98), order.ShippingAddress{
		FirstName: "Asha",
		LastName:  "Rao",
		Address:   "12 MG Road",
		City:      "Bengaluru",
		ZipCode:   "560001",
	})
	require.NoError(t, err)
	require.NoError(t, o.AddItem(uuid.New(), "Desk Lamp", "", decimal.NewFromFloat(49.99), 2))

	mock.ExpectExec(`INSERT INTO "orders"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO "order_items"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Save(context.Background(), o)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_UpdateStatus(t *testing.T) {
	t.Run("updates status of existing order", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), uuid.New(), order.StatusShipped)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not-found when no row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "orders" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), uuid.New(), order.StatusShipped)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormOrderRepository_Count(t *testing.T) {
	repo, mock, mockDB := newMockOrderRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.Count(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(12), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormOrderRepository_SumDeliveredTotals(t *testing.T) {
	t.Run("sums delivered order totals", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT SUM\(total\) FROM "orders" WHERE status = \$1`).
			WithArgs("DELIVERED").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("1549.87"))

		sum, err := repo.SumDeliveredTotals(context.Background())

		assert.NoError(t, err)
		assert.True(t, sum.Equal(decimal.NewFromFloat(1549.87)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero when nothing has been delivered", func(t *testing.T) {
		repo, mock, mockDB := newMockOrderRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT SUM\(total\) FROM "orders" WHERE status = \$1`).
			WithArgs("DELIVERED").
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(nil))

		sum, err := repo.SumDeliveredTotals(context.Background())

		assert.NoError(t, err)
		assert.True(t, sum.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
