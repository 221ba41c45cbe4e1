//go:build unit

package readstore

import (
	"context"
	"testing"
	"time"

	sqlc "hotel-checkout/internal/infra/sqlc/generated"
	"hotel-checkout/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingReadQueries struct {
	mock.Mock
}

func (m *MockBookingReadQueries) GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Bookings), args.Error(1)
}

func (m *MockBookingReadQueries) ListBookingsByOwner(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByOwnerParams) ([]sqlc.Bookings, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.Bookings), args.Error(1)
}

func bookingRow(owner uuid.UUID) sqlc.Bookings {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	return sqlc.Bookings{
		ID:             uuid.New(),
		AttemptID:      uuid.New(),
		OwnerID:        pgconv.UUIDToPgtype(owner),
		Status:         "confirmed",
		Payload:        []byte(`{"hotelCode":"H","hotelName":"Grand","checkIn":"2026-07-01","checkOut":"2026-07-05","rooms":[]}`),
		Confirmation:   []byte(`{"code":"CNF-1"}`),
		Policies:       []byte(`[]`),
		SupportHistory: []byte(`[{"at":"2026-06-02T10:00:00Z","actorId":"` + owner.String() + `","action":"edit"}]`),
		Version:        2,
		CreatedAt:      pgconv.TimeToPgtype(now),
		UpdatedAt:      pgconv.TimeToPgtype(now),
	}
}

func TestBookingReadStore_FindByID(t *testing.T) {
	owner := uuid.New()
	row := bookingRow(owner)

	mockQueries := new(MockBookingReadQueries)
	mockQueries.On("GetBookingByID", mock.Anything, mock.Anything, row.ID).Return(row, nil)

	view, err := NewBookingReadStore(mockQueries, nil).FindByID(context.Background(), row.ID)

	require.NoError(t, err)
	assert.Equal(t, "CNF-1", view.Confirmation.Code)
	assert.Equal(t, "H", view.Payload.HotelCode)
	assert.Equal(t, owner, *view.OwnerID)
	require.Len(t, view.SupportHistory, 1)
	assert.Equal(t, "edit", view.SupportHistory[0].Action)
	assert.Empty(t, view.Policies)
}

func TestBookingReadStore_ListByOwner(t *testing.T) {
	owner := uuid.New()

	mockQueries := new(MockBookingReadQueries)
	mockQueries.On("ListBookingsByOwner", mock.Anything, mock.Anything, sqlc.ListBookingsByOwnerParams{
		OwnerID:    pgconv.UUIDToPgtype(owner),
		LimitCount: 20,
	}).Return([]sqlc.Bookings{bookingRow(owner), bookingRow(owner)}, nil)

	items, err := NewBookingReadStore(mockQueries, nil).ListByOwner(context.Background(), owner, 20)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Grand", items[0].HotelName)
	assert.Equal(t, "2026-07-01", items[0].CheckIn)
	assert.Equal(t, "CNF-1", items[0].ConfirmationCode)
	mockQueries.AssertExpectations(t)
}
