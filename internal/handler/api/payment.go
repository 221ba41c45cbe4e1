package api

import (
	"log/slog"
	"net/http"
	"net/url"

	resdto "hotel-checkout/internal/handler/dto/response"
	"hotel-checkout/internal/handler/httperr"
	"hotel-checkout/internal/handler/middleware"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/errs"
	"hotel-checkout/internal/usecase/commands"
	"hotel-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const reasonInternal = "internal_error"

type PaymentHandler struct {
	finalize   commands.FinalizeCommands
	q          queries.AttemptQueries
	successURL string
	failureURL string
}

func NewPaymentHandler(finalize commands.FinalizeCommands, q queries.AttemptQueries, cfg config.Config) *PaymentHandler {
	return &PaymentHandler{
		finalize:   finalize,
		q:          q,
		successURL: cfg.Checkout.SuccessURL,
		failureURL: cfg.Checkout.FailureURL,
	}
}

// @Summary Payment gateway return
// @Description Browser return from the payment page. Always redirects to the storefront result page.
// @Tags payments
// @Param gateway path string true "Gateway name" Enums(vpos, ameria, telcell)
// @Success 302 "Redirect to success or failure page"
// @Router /payments/{gateway}/callback [get]
func (h *PaymentHandler) Callback(c *gin.Context) {
	gatewayName := c.Param("gateway")
	params := c.Request.URL.Query()
	if c.Request.Method == http.MethodPost {
		if err := c.Request.ParseForm(); err == nil {
			params = c.Request.Form
		}
	}

	result, err := h.finalize.Finalize(c.Request.Context(), gatewayName, params)
	if err != nil {
		reason := errs.CodeOf(err)
		if reason == "" {
			reason = reasonInternal
			slog.Error("payment callback failed", "gateway", gatewayName, "error", err.Error())
		}
		c.Redirect(http.StatusFound, withQuery(h.failureURL, url.Values{"reason": {reason}}))
		return
	}

	q := url.Values{"attempt": {result.AttemptID.String()}}
	if result.BookingID != nil {
		q.Set("booking", result.BookingID.String())
	}
	if result.Pending {
		q.Set("pending", "true")
	}
	if !result.Succeeded() {
		if result.Reason != "" {
			q.Set("reason", result.Reason)
		}
		c.Redirect(http.StatusFound, withQuery(h.failureURL, q))
		return
	}
	c.Redirect(http.StatusFound, withQuery(h.successURL, q))
}

// @Summary Get payment attempt
// @Description Status of a payment attempt, for clients polling after a conflict
// @Tags payments
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} resdto.AttemptResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /payments/attempts/{id} [get]
func (h *PaymentHandler) GetAttempt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid attempt ID format", nil)
		return
	}

	view, err := h.q.GetAttempt(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		httperr.AbortWithCoded(c, err)
		return
	}

	res, err := resdto.FromAttemptView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

func withQuery(base string, q url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	merged := u.Query()
	for k, vs := range q {
		merged[k] = vs
	}
	u.RawQuery = merged.Encode()
	return u.String()
}
