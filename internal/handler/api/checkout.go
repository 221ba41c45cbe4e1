package api

import (
	"net/http"

	reqdto "hotel-checkout/internal/handler/dto/request"
	resdto "hotel-checkout/internal/handler/dto/response"
	"hotel-checkout/internal/handler/httperr"
	"hotel-checkout/internal/handler/middleware"
	"hotel-checkout/internal/pkg/config"
	"hotel-checkout/internal/pkg/cookie"
	"hotel-checkout/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CheckoutHandler struct {
	prebook  commands.PrebookCommands
	checkout commands.CheckoutCommands
	cfg      config.Config
}

func NewCheckoutHandler(prebook commands.PrebookCommands, checkout commands.CheckoutCommands, cfg config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		prebook:  prebook,
		checkout: checkout,
		cfg:      cfg,
	}
}

// @Summary Quote selected rates
// @Description Confirms the selected rates with the hotel provider and returns a rate token per room
// @Tags checkout
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Search session id"
// @Param request body reqdto.PrebookRequest true "Prebook request"
// @Success 200 {object} resdto.PrebookResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /prebook [post]
func (h *CheckoutHandler) Prebook(c *gin.Context) {
	var req reqdto.PrebookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.prebook.Prebook(c.Request.Context(), middleware.GetActor(c), req, middleware.SessionID(c))
	if err != nil {
		httperr.AbortWithCoded(c, err)
		return
	}

	// Outlives the quote so checkout can still report it as expired.
	cookie.SetSessionCookie(c, h.cfg.Cookie, result.SessionID, 2*h.cfg.Checkout.QuoteWindow)
	c.JSON(http.StatusOK, resdto.FromPrebookResult(result))
}

// @Summary Start checkout
// @Description Validates the booking, records a payment attempt and returns the payment form
// @Tags checkout
// @Accept json
// @Produce json
// @Param X-Session-ID header string false "Search session id"
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.checkout.Checkout(c.Request.Context(), middleware.GetActor(c), req, middleware.SessionID(c))
	if err != nil {
		httperr.AbortWithCoded(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}

// @Summary Buy add-ons for a booking
// @Description Starts a payment for transfer or insurance added to an existing booking
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AddonCheckoutRequest true "Add-on checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings/{id}/addons/checkout [post]
func (h *CheckoutHandler) AddonCheckout(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.AddonCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.checkout.AddonCheckout(c.Request.Context(), middleware.GetActor(c), bookingID, req)
	if err != nil {
		httperr.AbortWithCoded(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}
