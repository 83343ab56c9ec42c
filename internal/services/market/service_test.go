package market

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/OmarModa/souq_khadamat_be/internal/models"
	"github.com/OmarModa/souq_khadamat_be/internal/notify"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewService(gdb, notify.NewDispatcher(gdb, nil, nil)), mock
}

func TestAcceptBidRejectsSiblings(t *testing.T) {
	customer := uuid.New()
	provider := uuid.New()

	svc, mock := newMockService(t)

	mock.ExpectBegin()

	mock.ExpectQuery(`SELECT \* FROM "bids"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_id", "provider_id", "kind", "price", "message", "status"}).
			AddRow(7, 1, provider.String(), "priced", 30.0, "", "pending"))

	mock.ExpectQuery(`SELECT \* FROM "service_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "title", "status"}).
			AddRow(1, customer.String(), "Fix AC", "open"))

	mock.ExpectExec(`UPDATE "service_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(`UPDATE "bids" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// every sibling bid on the request flips to rejected
	mock.ExpectExec(`UPDATE "bids" SET "status"=`).
		WithArgs("rejected", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	mock.ExpectCommit()

	req, bid, err := svc.AcceptBid(customer, 7)
	require.NoError(t, err)

	assert.Equal(t, models.RequestStatusAssigned, req.Status)
	require.NotNil(t, req.AssignedProviderID)
	assert.Equal(t, provider, *req.AssignedProviderID)
	require.NotNil(t, req.AcceptedBidID)
	assert.Equal(t, bid.ID, *req.AcceptedBidID)
	assert.Equal(t, models.BidStatusAccepted, bid.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcceptBidAlreadyAssignedRollsBack(t *testing.T) {
	customer := uuid.New()
	provider := uuid.New()

	svc, mock := newMockService(t)

	mock.ExpectBegin()

	mock.ExpectQuery(`SELECT \* FROM "bids"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_id", "provider_id", "kind", "price", "status"}).
			AddRow(7, 1, provider.String(), "priced", 30.0, "pending"))

	mock.ExpectQuery(`SELECT \* FROM "service_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "title", "status"}).
			AddRow(1, customer.String(), "Fix AC", "assigned"))

	mock.ExpectRollback()

	_, _, err := svc.AcceptBid(customer, 7)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)

	// no update and no notification row reached the database
	assert.NoError(t, mock.ExpectationsWereMet())
}
