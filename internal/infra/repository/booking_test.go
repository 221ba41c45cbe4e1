//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"hotel-checkout/internal/domain/bookingrecord"
	sqlc "hotel-checkout/internal/infra/sqlc/generated"
	"hotel-checkout/internal/pkg/pgconv"
	"hotel-checkout/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingQueries struct {
	mock.Mock
}

func (m *MockBookingQueries) CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *MockBookingQueries) GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.Bookings), args.Error(1)
}

func (m *MockBookingQueries) GetBookingByAttemptID(ctx context.Context, db sqlc.DBTX, attemptID uuid.UUID) (sqlc.Bookings, error) {
	args := m.Called(ctx, db, attemptID)
	return args.Get(0).(sqlc.Bookings), args.Error(1)
}

func (m *MockBookingQueries) UpdateBookingAddons(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingAddonsParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingQueries) SetBookingPolicies(ctx context.Context, db sqlc.DBTX, arg sqlc.SetBookingPoliciesParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func (m *MockBookingQueries) AcquireBookingSupportLock(ctx context.Context, db sqlc.DBTX, arg sqlc.AcquireBookingSupportLockParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingQueries) ReleaseBookingSupportLock(ctx context.Context, db sqlc.DBTX, arg sqlc.ReleaseBookingSupportLockParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingQueries) UpdateBookingBySupport(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingBySupportParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingQueries) InsertUserBookingHistory(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertUserBookingHistoryParams) error {
	return m.Called(ctx, db, arg).Error(0)
}

func TestBookingRepository_CreateAndReload(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	owner := uuid.New()
	payload := builder.NewPayloadBuilder().BuildDomain()

	rec := bookingrecord.NewRecord(uuid.New(), &owner, *payload, bookingrecord.Confirmation{Code: "CNF-1", Status: "CONFIRMED"}, now)
	rec.AddPolicies([]bookingrecord.Policy{{Number: "P-1", Premium: decimal.NewFromInt(3000), Currency: "AMD", IssuedAt: now}})

	mockQueries := new(MockBookingQueries)
	var captured sqlc.CreateBookingParams
	mockQueries.On("CreateBooking", mock.Anything, mock.Anything, mock.AnythingOfType("sqlc.CreateBookingParams")).
		Run(func(args mock.Arguments) { captured = args.Get(2).(sqlc.CreateBookingParams) }).
		Return(nil)

	repo := NewBookingRepository(mockQueries, &MockDBTX{})
	require.NoError(t, repo.Create(context.Background(), rec))

	assert.Equal(t, int32(1), captured.Version)
	assert.JSONEq(t, `[]`, string(captured.SupportHistory))

	row := sqlc.Bookings{
		ID:             captured.ID,
		AttemptID:      captured.AttemptID,
		OwnerID:        captured.OwnerID,
		Status:         captured.Status,
		Payload:        captured.Payload,
		Confirmation:   captured.Confirmation,
		Policies:       captured.Policies,
		SupportHistory: captured.SupportHistory,
		Version:        captured.Version,
		CreatedAt:      captured.CreatedAt,
		UpdatedAt:      captured.UpdatedAt,
	}
	got, err := ToRecord(row)
	require.NoError(t, err)

	assert.Equal(t, rec.ID(), got.ID())
	assert.Equal(t, "CNF-1", got.Confirmation().Code)
	assert.Equal(t, bookingrecord.StatusConfirmed, got.Status())
	require.Len(t, got.Policies(), 1)
	assert.True(t, decimal.NewFromInt(3000).Equal(got.Policies()[0].Premium))
	reloaded := got.Payload()
	assert.Equal(t, payload.RateKeys(), reloaded.RateKeys())
	assert.Nil(t, got.Lock())
}

func TestToRecord_SupportLock(t *testing.T) {
	token, holder := uuid.New(), uuid.New()
	expires := time.Date(2026, 6, 1, 12, 2, 0, 0, time.UTC)

	got, err := ToRecord(sqlc.Bookings{
		ID:                   uuid.New(),
		Status:               "confirmed",
		SupportLockToken:     pgconv.UUIDToPgtype(token),
		SupportLockHolder:    pgconv.UUIDToPgtype(holder),
		SupportLockExpiresAt: pgconv.TimeToPgtype(expires),
	})

	require.NoError(t, err)
	require.NotNil(t, got.Lock())
	assert.Equal(t, token, got.Lock().Token)
	assert.Equal(t, holder, got.Lock().HolderID)
	assert.Equal(t, expires, got.Lock().ExpiresAt)
}

func TestBookingRepository_AppendOwnerHistory(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := builder.NewPayloadBuilder().BuildDomain()

	t.Run("guest booking writes nothing", func(t *testing.T) {
		mockQueries := new(MockBookingQueries)
		repo := NewBookingRepository(mockQueries, &MockDBTX{})

		rec := bookingrecord.NewRecord(uuid.New(), nil, *payload, bookingrecord.Confirmation{Code: "CNF-1"}, now)
		require.NoError(t, repo.AppendOwnerHistory(context.Background(), rec))
		mockQueries.AssertNotCalled(t, "InsertUserBookingHistory", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner history carries the stay dates", func(t *testing.T) {
		owner := uuid.New()
		rec := bookingrecord.NewRecord(uuid.New(), &owner, *payload, bookingrecord.Confirmation{Code: "CNF-1"}, now)

		mockQueries := new(MockBookingQueries)
		mockQueries.On("InsertUserBookingHistory", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.InsertUserBookingHistoryParams) bool {
			return p.UserID == owner && p.BookingID == rec.ID() && p.HotelCode == "H" &&
				p.CheckIn.Valid && p.CheckIn.Time.Format(time.DateOnly) == payload.CheckIn
		})).Return(nil)

		repo := NewBookingRepository(mockQueries, &MockDBTX{})
		require.NoError(t, repo.AppendOwnerHistory(context.Background(), rec))
		mockQueries.AssertExpectations(t)
	})
}

func TestBookingRepository_UpdateAddons_VersionGuard(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := builder.NewPayloadBuilder().BuildDomain()
	rec := bookingrecord.NewRecord(uuid.New(), nil, *payload, bookingrecord.Confirmation{Code: "CNF-1"}, now)

	mockQueries := new(MockBookingQueries)
	mockQueries.On("UpdateBookingAddons", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.UpdateBookingAddonsParams) bool {
		return p.ID == rec.ID() && p.Version == 1
	})).Return(int64(0), nil)

	repo := NewBookingRepository(mockQueries, &MockDBTX{})
	ok, err := repo.UpdateAddons(context.Background(), rec)

	require.NoError(t, err)
	assert.False(t, ok)
}
