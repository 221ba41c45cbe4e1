package api

import (
	"net/http"
	"strconv"

	reqdto "hotel-checkout/internal/handler/dto/request"
	resdto "hotel-checkout/internal/handler/dto/response"
	"hotel-checkout/internal/handler/httperr"
	"hotel-checkout/internal/handler/middleware"
	"hotel-checkout/internal/usecase/commands"
	"hotel-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	q       queries.BookingQueries
	support commands.SupportCommands
}

func NewBookingHandler(q queries.BookingQueries, support commands.SupportCommands) *BookingHandler {
	return &BookingHandler{
		q:       q,
		support: support,
	}
}

// @Summary List my bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (1-100)"
// @Success 200 {array} resdto.BookingListItemResponse
// @Failure 401 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.q.ListBookings(c.Request.Context(), middleware.GetActor(c), limit)
	if err != nil {
		httperr.AbortWithCoded(c, err)
		return
	}

	res, err := resdto.FromBookingList(items)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.q.GetBooking(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		httperr.AbortWithCoded(c, err)
		return
	}

	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Support edit of a booking
// @Description Rename guests, update the note or cancel. Runs under the booking's support lock.
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.SupportEditRequest true "Edit"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/bookings/{id} [patch]
func (h *BookingHandler) EditBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.SupportEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	actor := middleware.GetActor(c)
	if actor == nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingUserContext, "Internal server error", nil)
		return
	}

	if err := h.support.EditBooking(c.Request.Context(), *actor, id, req); err != nil {
		httperr.AbortWithCoded(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
