//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"hotel-checkout/internal/domain/booking"
	"hotel-checkout/internal/domain/bookingrecord"
	"hotel-checkout/internal/domain/coupon"
	"hotel-checkout/internal/domain/payment"
	"hotel-checkout/internal/gateway"
	"hotel-checkout/internal/pkg/clock"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/usecase/commands"
	"hotel-checkout/tests/common/builder"
	"hotel-checkout/tests/common/memstore"
	commandsmock "hotel-checkout/tests/mock/commands"
	gatewaymock "hotel-checkout/tests/mock/gateway"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type FinalizeCommandsTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	store     *memstore.Store
	clock     *clock.MockClock
	adapter   *gatewaymock.MockAdapter
	supplier  *commandsmock.MockSupplier
	insurance *commandsmock.MockInsuranceIssuer
	mailer    *commandsmock.MockMailer
	cmds      commands.FinalizeCommands
}

func (s *FinalizeCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = memstore.New()
	s.clock = clock.NewMockClock(builder.DefaultNow.Add(2 * time.Minute))
	s.adapter = gatewaymock.NewMockAdapter(s.ctrl)
	s.supplier = commandsmock.NewMockSupplier(s.ctrl)
	s.insurance = commandsmock.NewMockInsuranceIssuer(s.ctrl)
	s.mailer = commandsmock.NewMockMailer(s.ctrl)

	s.adapter.EXPECT().Name().Return("vpos").AnyTimes()
	s.adapter.EXPECT().CallbackOrderID(gomock.Any()).
		DoAndReturn(func(v url.Values) (string, error) {
			if id := v.Get("orderId"); id != "" {
				return id, nil
			}
			return "", gateway.ErrMissingOrderID
		}).AnyTimes()

	s.cmds = commands.NewFinalizeCommands(
		s.store,
		gateway.NewRegistry(s.adapter),
		s.supplier,
		s.insurance,
		s.mailer,
		config.NewTestConfig(),
		s.clock,
	)
}

func (s *FinalizeCommandsTestSuite) SetupSubTest() {
	s.SetupTest()
}

func TestFinalizeCommandsSuite(t *testing.T) {
	suite.Run(t, new(FinalizeCommandsTestSuite))
}

var callback = url.Values{"orderId": {"ord-1"}}

func paid(amount int64, currency string) *gateway.Status {
	return &gateway.Status{
		Amount:   decimal.NewFromInt(amount),
		Currency: currency,
		Success:  true,
		Raw:      json.RawMessage(`{"orderStatus":2}`),
	}
}

func (s *FinalizeCommandsTestSuite) seed(mutate func(b *builder.AttemptBuilder)) *payment.Attempt {
	b := builder.NewAttemptBuilder()
	if mutate != nil {
		b.With(mutate)
	}
	a := b.BuildDomain()
	s.store.PutAttempt(a)
	return a
}

func (s *FinalizeCommandsTestSuite) expectPaid() {
	s.adapter.EXPECT().QueryStatus(gomock.Any(), "ord-1").Return(paid(10000, "AMD"), nil)
}

func (s *FinalizeCommandsTestSuite) expectBooked() *gomock.Call {
	return s.supplier.EXPECT().Book(gomock.Any(), gomock.Any()).
		Return(&commands.SupplierBookingResult{Confirmation: bookingrecord.Confirmation{Code: "CONF-9", Status: "confirmed"}}, nil)
}

func (s *FinalizeCommandsTestSuite) expectMail() {
	s.mailer.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(nil)
}

func (s *FinalizeCommandsTestSuite) TestFinalize() {
	s.Run("正常系: 支払い確認後に予約を確定する", func() {
		a := s.seed(nil)
		s.expectPaid()
		s.expectBooked()
		s.mailer.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m commands.BookingConfirmation) error {
				s.Equal("guest@example.com", m.Email)
				s.Equal("CONF-9", m.ConfirmationCode)
				s.Equal("Ani Guest", m.GuestName)
				return nil
			})

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.True(res.Succeeded())
		s.False(res.Pending)
		s.Require().NotNil(res.BookingID)

		stored := s.store.Attempt(a.ID())
		s.Equal(payment.StatusBookingComplete, stored.Status())
		s.Equal(*res.BookingID, *stored.BookingID())
		s.NotNil(stored.PaidAt())

		rec := s.store.Booking(*res.BookingID)
		s.Require().NotNil(rec)
		s.Equal(a.ID(), rec.AttemptID())
		s.Equal("CONF-9", rec.Confirmation().Code)
	})

	s.Run("正常系: 重複コールバックは同じ結果を返す", func() {
		s.seed(nil)
		s.expectPaid()
		s.expectBooked().Times(1)
		s.expectMail()

		first, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		second, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)

		s.Equal(*first.BookingID, *second.BookingID)
		s.Equal(payment.StatusBookingComplete, second.Status)
		s.Equal(1, s.store.BookingCount())
	})

	s.Run("異常系: 決済拒否", func() {
		a := s.seed(nil)
		s.adapter.EXPECT().QueryStatus(gomock.Any(), "ord-1").
			Return(&gateway.Status{Success: false, FailureReason: "insufficient funds", Raw: json.RawMessage(`{}`)}, nil)

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.False(res.Succeeded())
		s.Equal(payment.StatusPaymentFailed, res.Status)
		s.Equal("insufficient funds", res.Reason)
		s.Equal(payment.StatusPaymentFailed, s.store.Attempt(a.ID()).Status())
		s.Zero(s.store.BookingCount())
	})

	s.Run("異常系: 金額不一致は予約しない", func() {
		a := s.seed(nil)
		s.adapter.EXPECT().QueryStatus(gomock.Any(), "ord-1").Return(paid(9999, "AMD"), nil)

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.Equal(payment.StatusPaymentMismatch, res.Status)
		s.Equal(payment.StatusPaymentMismatch, s.store.Attempt(a.ID()).Status())
		s.Zero(s.store.BookingCount())
	})

	s.Run("異常系: 通貨不一致", func() {
		s.seed(nil)
		s.adapter.EXPECT().QueryStatus(gomock.Any(), "ord-1").Return(paid(10000, "USD"), nil)

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.Equal(payment.StatusPaymentMismatch, res.Status)
	})

	s.Run("正常系: 数値の通貨コードを正規化する", func() {
		s.seed(nil)
		s.adapter.EXPECT().QueryStatus(gomock.Any(), "ord-1").Return(paid(10000, "051"), nil)
		s.expectBooked()
		s.expectMail()

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.Equal(payment.StatusBookingComplete, res.Status)
	})

	s.Run("異常系: ゲートウェイ障害では試行を再試行可能なまま残す", func() {
		a := s.seed(nil)
		s.adapter.EXPECT().QueryStatus(gomock.Any(), "ord-1").Return(nil, gateway.ErrReconciliation)

		_, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Equal("gateway_unreachable", errs.CodeOf(err))
		s.Equal(payment.StatusCreated, s.store.Attempt(a.ID()).Status())

		s.expectPaid()
		s.expectBooked()
		s.expectMail()
		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.True(res.Succeeded())
	})

	s.Run("異常系: サプライヤー障害で予約失敗にする", func() {
		a := s.seed(nil)
		s.expectPaid()
		s.supplier.EXPECT().Book(gomock.Any(), gomock.Any()).Return(nil, errors.New("room sold out"))

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.False(res.Succeeded())
		s.Equal(payment.StatusBookingFailed, res.Status)
		s.Contains(res.Reason, "room sold out")

		stored := s.store.Attempt(a.ID())
		s.Equal(payment.StatusBookingFailed, stored.Status())
		s.Require().NotNil(stored.BookingError())
	})

	s.Run("異常系: 未知の注文", func() {
		_, err := s.cmds.Finalize(context.Background(), "vpos", url.Values{"orderId": {"nope"}})
		s.Equal("payment_attempt_not_found", errs.CodeOf(err))
	})

	s.Run("異常系: 注文IDのないコールバック", func() {
		_, err := s.cmds.Finalize(context.Background(), "vpos", url.Values{})
		s.ErrorIs(err, gateway.ErrMissingOrderID)
	})

	s.Run("異常系: 未知の決済ゲートウェイ", func() {
		_, err := s.cmds.Finalize(context.Background(), "paypal", callback)
		s.Equal("unknown_gateway", errs.CodeOf(err))
	})
}

func (s *FinalizeCommandsTestSuite) TestFinalizeConcurrency() {
	s.Run("正常系: 同時コールバックでも予約は一度だけ", func() {
		a := s.seed(func(b *builder.AttemptBuilder) {
			now := s.clock.Now()
			b.Status = payment.StatusPaymentSuccess
			b.UpdatedAt = now
		})

		entered := make(chan struct{})
		release := make(chan struct{})
		s.supplier.EXPECT().Book(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, booking.Payload) (*commands.SupplierBookingResult, error) {
				close(entered)
				<-release
				return &commands.SupplierBookingResult{Confirmation: bookingrecord.Confirmation{Code: "CONF-9"}}, nil
			}).Times(1)
		s.expectMail()

		var (
			wg     sync.WaitGroup
			winner *commands.FinalizeResult
			winErr error
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			winner, winErr = s.cmds.Finalize(context.Background(), "vpos", callback)
		}()
		<-entered

		loser, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.True(loser.Pending)
		s.True(loser.Succeeded())
		s.Equal(payment.StatusBookingInProgress, loser.Status)

		close(release)
		wg.Wait()
		s.Require().NoError(winErr)
		s.Equal(payment.StatusBookingComplete, winner.Status)
		s.Equal(payment.StatusBookingComplete, s.store.Attempt(a.ID()).Status())
		s.Equal(1, s.store.BookingCount())
	})

	s.Run("正常系: 古いロックは引き継ぐ", func() {
		a := s.seed(func(b *builder.AttemptBuilder) {
			b.Status = payment.StatusBookingInProgress
			b.UpdatedAt = s.clock.Now().Add(-6 * time.Minute)
		})
		s.expectBooked()
		s.expectMail()

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.Equal(payment.StatusBookingComplete, res.Status)
		s.Equal(payment.StatusBookingComplete, s.store.Attempt(a.ID()).Status())
	})

	s.Run("正常系: 新しいロックは奪わずに待つ", func() {
		s.seed(func(b *builder.AttemptBuilder) {
			b.Status = payment.StatusBookingInProgress
			b.UpdatedAt = s.clock.Now().Add(-time.Minute)
		})

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.True(res.Pending)
		s.Zero(s.store.BookingCount())
	})

	s.Run("正常系: 保存済みのサプライヤー確認があれば再予約しない", func() {
		s.seed(func(b *builder.AttemptBuilder) {
			b.Status = payment.StatusBookingInProgress
			b.UpdatedAt = s.clock.Now().Add(-6 * time.Minute)
			b.SupplierConfirmation = &bookingrecord.Confirmation{Code: "CONF-KEPT", Status: "confirmed"}
		})
		s.expectMail()

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.Equal(payment.StatusBookingComplete, res.Status)
		s.Require().NotNil(res.BookingID)
		s.Equal("CONF-KEPT", s.store.Booking(*res.BookingID).Confirmation().Code)
	})

	s.Run("異常系: 予約記録の失敗後に引き継いでもサプライヤーには一度だけ予約する", func() {
		a := s.seed(func(b *builder.AttemptBuilder) {
			b.Status = payment.StatusPaymentSuccess
			b.UpdatedAt = s.clock.Now()
		})
		s.expectBooked().Times(1)
		s.store.Fail["bookings.create"] = errors.New("db down")

		_, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().Error(err)

		stranded := s.store.Attempt(a.ID())
		s.Equal(payment.StatusBookingInProgress, stranded.Status())
		s.Require().NotNil(stranded.SupplierConfirmation())
		s.Equal("CONF-9", stranded.SupplierConfirmation().Code)
		s.Zero(s.store.BookingCount())

		delete(s.store.Fail, "bookings.create")
		s.clock.Add(6 * time.Minute)
		s.expectMail()

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.Equal(payment.StatusBookingComplete, res.Status)
		s.Equal(1, s.store.BookingCount())
		s.Equal("CONF-9", s.store.Booking(*res.BookingID).Confirmation().Code)
	})
}

func (s *FinalizeCommandsTestSuite) TestSideEffects() {
	s.Run("異常系: メール送信失敗は記録され予約は維持される", func() {
		a := s.seed(nil)
		s.expectPaid()
		s.expectBooked()
		s.mailer.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.True(res.Succeeded())

		se := s.store.Attempt(a.ID()).SideEffects()
		s.Require().NotNil(se.Email)
		s.Contains(*se.Email, "broker down")
		s.Nil(se.Insurance)
	})

	s.Run("正常系: 保険証券を予約に保存する", func() {
		s.seed(func(b *builder.AttemptBuilder) {
			b.Payload.Addons.Insurance = &booking.Service{Key: "ins-1", Price: decimal.NewFromInt(0)}
		})
		s.expectPaid()
		s.expectBooked()
		s.expectMail()
		s.insurance.EXPECT().IssuePolicies(gomock.Any(), gomock.Any()).
			Return([]bookingrecord.Policy{{Number: "P-1", Provider: "acme", Premium: decimal.NewFromInt(1500), Currency: "AMD"}}, nil)

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)

		rec := s.store.Booking(*res.BookingID)
		s.Require().Len(rec.Policies(), 1)
		s.Equal("P-1", rec.Policies()[0].Number)
	})

	s.Run("異常系: 保険発行の失敗を記録する", func() {
		a := s.seed(func(b *builder.AttemptBuilder) {
			b.Payload.Addons.Insurance = &booking.Service{Key: "ins-1"}
		})
		s.expectPaid()
		s.expectBooked()
		s.expectMail()
		s.insurance.EXPECT().IssuePolicies(gomock.Any(), gomock.Any()).Return(nil, errors.New("insurer timeout"))

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.True(res.Succeeded())
		s.Require().NotNil(s.store.Attempt(a.ID()).SideEffects().Insurance)
	})

	s.Run("正常系: クーポン利用回数は一度だけ加算される", func() {
		a := s.seed(func(b *builder.AttemptBuilder) {
			b.Amount = decimal.NewFromInt(9000)
			b.Coupon = &payment.Coupon{Code: "SUMMER10", Percent: decimal.NewFromInt(10), Discount: decimal.NewFromInt(1000)}
		})
		s.store.PutCoupon(coupon.ReconstructParams{
			ID: uuid.New(), Code: "SUMMER10", PercentOff: decimal.NewFromInt(10), Active: true,
			CreatedAt: builder.DefaultNow, UpdatedAt: builder.DefaultNow,
		})
		s.adapter.EXPECT().QueryStatus(gomock.Any(), "ord-1").Return(paid(9000, "AMD"), nil)
		s.expectBooked()
		s.expectMail()

		_, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		_, err = s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)

		s.Equal(int32(1), s.store.CouponOrders("SUMMER10"))
		s.True(s.store.CouponCounted(a.ID()))
	})

	s.Run("異常系: 途中で上限に達したクーポンは記録のみ", func() {
		a := s.seed(func(b *builder.AttemptBuilder) {
			b.Coupon = &payment.Coupon{Code: "ONCE", Percent: decimal.NewFromInt(5), Discount: decimal.NewFromInt(500)}
		})
		limit := int32(1)
		s.store.PutCoupon(coupon.ReconstructParams{
			ID: uuid.New(), Code: "ONCE", PercentOff: decimal.NewFromInt(5), Active: true,
			MaxOrders: &limit, SuccessfulOrders: 1,
			CreatedAt: builder.DefaultNow, UpdatedAt: builder.DefaultNow,
		})
		s.expectPaid()
		s.expectBooked()
		s.expectMail()

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.True(res.Succeeded())
		s.Require().NotNil(s.store.Attempt(a.ID()).SideEffects().Coupon)
	})
}

func (s *FinalizeCommandsTestSuite) TestFinalizeAddons() {
	excursion := booking.Addons{Excursions: []booking.Service{{Key: "x1", Name: "Garni", Price: decimal.NewFromInt(3000), Currency: "AMD"}}}

	seedBooking := func(addons booking.Addons) *bookingrecord.Record {
		rec := builder.NewBookingRecordBuilder().With(func(b *builder.BookingRecordBuilder) {
			b.Payload.Addons = addons
		}).BuildDomain()
		s.store.PutBooking(rec)
		return rec
	}

	s.Run("正常系: 追加サービスを予約にマージする", func() {
		rec := seedBooking(booking.Addons{})
		a := s.seed(func(b *builder.AttemptBuilder) {
			b.ForAddons(rec.ID(), excursion)
			b.Amount = decimal.NewFromInt(3000)
		})
		s.adapter.EXPECT().QueryStatus(gomock.Any(), "ord-1").Return(paid(3000, "AMD"), nil)
		s.mailer.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m commands.BookingConfirmation) error {
				s.Equal("addon", m.Purpose)
				s.Equal([]string{"excursion:x1"}, m.ServiceKeys)
				return nil
			})

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.Equal(payment.StatusBookingComplete, res.Status)
		s.Equal(rec.ID(), *res.BookingID)

		merged := s.store.Booking(rec.ID())
		s.Equal([]string{"excursion:x1"}, merged.Payload().Addons.ServiceKeys())
		s.Equal(int32(2), merged.Version())
		s.Equal(payment.StatusBookingComplete, s.store.Attempt(a.ID()).Status())
	})

	s.Run("異常系: 既に追加済みのサービスは予約失敗になる", func() {
		rec := seedBooking(excursion)
		a := s.seed(func(b *builder.AttemptBuilder) {
			b.ForAddons(rec.ID(), excursion)
			b.Amount = decimal.NewFromInt(3000)
		})
		s.adapter.EXPECT().QueryStatus(gomock.Any(), "ord-1").Return(paid(3000, "AMD"), nil)

		res, err := s.cmds.Finalize(context.Background(), "vpos", callback)
		s.Require().NoError(err)
		s.Equal(payment.StatusBookingFailed, res.Status)
		s.Equal("addon_service_exists", res.Reason)
		s.Equal(int32(1), s.store.Booking(rec.ID()).Version())
		s.Equal(payment.StatusBookingFailed, s.store.Attempt(a.ID()).Status())
	})
}
