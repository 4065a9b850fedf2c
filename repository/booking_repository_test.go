package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Team-3XHandymen/fix-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

func bookingRows(id, clientID, providerID, serviceID uuid.UUID, status models.BookingStatus, fee *float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "reference", "client_id", "provider_id", "service_id", "status", "fee",
		"description", "address", "scheduled_time", "created_at", "updated_at",
	}).AddRow(
		id, "FIX-TEST0001", clientID, providerID, serviceID, status, fee,
		"Fix the kitchen sink", "12 Elm Street", time.Now().Add(24*time.Hour), time.Now(), time.Now(),
	)
}

func expectBookingReload(mock sqlmock.Sqlmock, id, clientID, providerID, serviceID uuid.UUID, status models.BookingStatus, fee *float64) {
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1`).
		WillReturnRows(bookingRows(id, clientID, providerID, serviceID, status, fee))
	// Preloads: Client, Provider, Service, in that order.
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email"}).AddRow(clientID, "Alice", "alice@example.com"))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email"}).AddRow(providerID, "Bob", "bob@example.com"))
	mock.ExpectQuery(`SELECT \* FROM "services"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(serviceID, "Plumbing"))
}

func TestUpdateStatus_SwapWinsAndReloads(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewGormBookingRepository(gormDB)

	id := uuid.New()
	clientID := uuid.New()
	providerID := uuid.New()
	serviceID := uuid.New()
	fee := 150.0

	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectBookingReload(mock, id, clientID, providerID, serviceID, models.StatusAccepted, &fee)

	booking, err := repo.UpdateStatus(context.Background(), id, models.StatusPending, models.StatusAccepted, map[string]any{"fee": fee})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, booking.Status)
	require.NotNil(t, booking.Fee)
	assert.Equal(t, fee, *booking.Fee)
	assert.Equal(t, "Alice", booking.Client.FullName)
	assert.Equal(t, "Bob", booking.Provider.FullName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_LostSwapOnExistingRow(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewGormBookingRepository(gormDB)

	id := uuid.New()

	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "bookings" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := repo.UpdateStatus(context.Background(), id, models.StatusPending, models.StatusRejected, nil)
	assert.ErrorIs(t, err, ErrStatusChanged)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_MissingRow(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewGormBookingRepository(gormDB)

	id := uuid.New()

	mock.ExpectExec(`UPDATE "bookings" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "bookings" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := repo.UpdateStatus(context.Background(), id, models.StatusPending, models.StatusAccepted, map[string]any{"fee": 100.0})
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewGormBookingRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
