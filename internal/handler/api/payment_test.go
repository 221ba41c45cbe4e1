//go:build unit

package api_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"hotel-checkout/internal/domain/payment"
	"hotel-checkout/internal/gateway"
	"hotel-checkout/internal/handler/api"
	resdto "hotel-checkout/internal/handler/dto/response"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/usecase/commands"
	"hotel-checkout/internal/usecase/queries"
	"hotel-checkout/tests/common/httptest"
	commandsmock "hotel-checkout/tests/mock/commands"
	queriesmock "hotel-checkout/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockFinalize *commandsmock.MockFinalizeCommands
	mockQueries  *queriesmock.MockAttemptQueries
	cfg          config.Config
}

func (s *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockFinalize = commandsmock.NewMockFinalizeCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAttemptQueries(s.mockCtrl)
	s.cfg = config.NewTestConfig()
	handler := api.NewPaymentHandler(s.mockFinalize, s.mockQueries, s.cfg)

	s.router.GET("/payments/:gateway/callback", handler.Callback)
	s.router.POST("/payments/:gateway/callback", handler.Callback)
	s.router.GET("/payments/attempts/:id", handler.GetAttempt)
}

func (s *PaymentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentHandlerSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}

func (s *PaymentHandlerTestSuite) location(rec *nethttptest.ResponseRecorder) *url.URL {
	s.Require().Equal(http.StatusFound, rec.Code, rec.Body.String())
	u, err := url.Parse(rec.Header().Get("Location"))
	s.Require().NoError(err)
	return u
}

func (s *PaymentHandlerTestSuite) TestCallback() {
	attemptID := uuid.New()
	bookingID := uuid.New()

	s.Run("success: redirects to the success page with the booking", func() {
		s.mockFinalize.EXPECT().Finalize(gomock.Any(), "vpos", url.Values{"orderId": {"ord-1"}}).
			Return(&commands.FinalizeResult{
				AttemptID: attemptID,
				Purpose:   payment.PurposeBooking,
				Status:    payment.StatusBookingComplete,
				BookingID: &bookingID,
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/vpos/callback?orderId=ord-1", nil, "")

		loc := s.location(rec)
		s.True(strings.HasPrefix(loc.String(), s.cfg.Checkout.SuccessURL))
		s.Equal(attemptID.String(), loc.Query().Get("attempt"))
		s.Equal(bookingID.String(), loc.Query().Get("booking"))
	})

	s.Run("pending finalization still lands on the success page", func() {
		s.mockFinalize.EXPECT().Finalize(gomock.Any(), "ameria", gomock.Any()).
			Return(&commands.FinalizeResult{
				AttemptID: attemptID,
				Status:    payment.StatusBookingInProgress,
				Pending:   true,
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/ameria/callback?orderID=1", nil, "")

		loc := s.location(rec)
		s.True(strings.HasPrefix(loc.String(), s.cfg.Checkout.SuccessURL))
		s.Equal("true", loc.Query().Get("pending"))
	})

	s.Run("declined payment goes to the failure page with a reason", func() {
		s.mockFinalize.EXPECT().Finalize(gomock.Any(), "vpos", gomock.Any()).
			Return(&commands.FinalizeResult{
				AttemptID: attemptID,
				Status:    payment.StatusPaymentFailed,
				Reason:    "payment_declined",
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/vpos/callback?orderId=ord-1", nil, "")

		loc := s.location(rec)
		s.True(strings.HasPrefix(loc.String(), s.cfg.Checkout.FailureURL))
		s.Equal("payment_declined", loc.Query().Get("reason"))
	})

	s.Run("coded errors become the failure reason", func() {
		s.mockFinalize.EXPECT().Finalize(gomock.Any(), "telcell", gomock.Any()).
			Return(nil, gateway.ErrUnknownGateway)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/telcell/callback", nil, "")

		loc := s.location(rec)
		s.True(strings.HasPrefix(loc.String(), s.cfg.Checkout.FailureURL))
		s.Equal("unknown_gateway", loc.Query().Get("reason"))
	})

	s.Run("internal errors never leak", func() {
		s.mockFinalize.EXPECT().Finalize(gomock.Any(), "vpos", gomock.Any()).
			Return(nil, errs.New("connection reset"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/vpos/callback?orderId=x", nil, "")

		loc := s.location(rec)
		s.Equal("internal_error", loc.Query().Get("reason"))
		s.NotContains(rec.Header().Get("Location"), "connection")
	})

	s.Run("form posted callbacks are read", func() {
		s.mockFinalize.EXPECT().Finalize(gomock.Any(), "telcell", gomock.Any()).
			DoAndReturn(func(_ any, _ string, params url.Values) (*commands.FinalizeResult, error) {
				s.Equal("inv-9", params.Get("invoice"))
				return &commands.FinalizeResult{AttemptID: attemptID, Status: payment.StatusBookingComplete}, nil
			})

		req := nethttptest.NewRequest(http.MethodPost, "/payments/telcell/callback", strings.NewReader("invoice=inv-9"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := nethttptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		loc := s.location(rec)
		s.True(strings.HasPrefix(loc.String(), s.cfg.Checkout.SuccessURL))
	})
}

func (s *PaymentHandlerTestSuite) TestGetAttempt() {
	id := uuid.New()

	s.Run("success: amount is rendered with two decimals", func() {
		s.mockQueries.EXPECT().GetAttempt(gomock.Any(), gomock.Nil(), id).
			Return(&queries.AttemptView{
				ID:        id,
				Gateway:   "vpos",
				OrderID:   "ord-1",
				Purpose:   "booking",
				Status:    "payment_success",
				Amount:    decimal.NewFromInt(10000),
				Currency:  "AMD",
				CreatedAt: time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC),
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/attempts/"+id.String(), nil, "")

		var res resdto.AttemptResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &res)
		s.Equal("10000.00", res.Amount)
		s.Equal("payment_success", res.Status)
	})

	s.Run("error: not found", func() {
		s.mockQueries.EXPECT().GetAttempt(gomock.Any(), gomock.Any(), id).Return(nil, queries.ErrAttemptNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/attempts/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Payment attempt not found")
	})

	s.Run("error: malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/payments/attempts/123", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid attempt ID format")
	})
}
