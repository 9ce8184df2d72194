package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/domain/slot"
	reqdto "table-booking/internal/handler/dto/request"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/handler/middleware"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Book a table for a party. Guests must pick an offered slot inside the booking window; staff may pick any time within opening hours and pin tables.
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	mode := bookingMode(c)
	in, err := req.ToInput(mode, nil)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	// Staff book on behalf of guests, so only a guest's own account is linked.
	if mode == slot.ModePublic {
		if userID, ok := middleware.GetUserID(c); ok {
			in.UserID = &userID
		}
	}

	result, err := h.cmds.CreateBooking(c.Request.Context(), in)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	resp, err := resdto.FromBookingResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/admin/bookings/%s", result.GroupID))
	c.JSON(http.StatusCreated, resp)
}

// @Summary My bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingGroupResponse
// @Failure 401 {object} httperr.Response
// @Router /api/bookings/me [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}
	views, err := h.q.ListForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingGroupViews(views))
}

// @Summary List bookings
// @Description Staff dashboard list, one entry per booking group
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param date query string false "Stored booking date (YYYY-MM-DD)"
// @Param limit query int false "Maximum number of groups (default 100, max 500)"
// @Success 200 {array} resdto.BookingGroupResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/admin/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var q reqdto.BookingListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	filter := queries.BookingFilter{Limit: q.Limit}
	if q.Date != "" {
		date, err := schedule.ParseDate(q.Date)
		if err != nil {
			httperr.AbortWithUsecaseError(c, err)
			return
		}
		filter.Date = &date
	}

	views, err := h.q.ListGroups(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingGroupViews(views))
}

// @Summary Get booking
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param groupId path string true "Booking group ID"
// @Success 200 {object} resdto.BookingGroupResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/bookings/{groupId} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	view, err := h.q.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingGroupView(view))
}

// @Summary Edit booking
// @Description Moves or resizes a booking. The old table assignment is kept if the new one cannot be made.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param groupId path string true "Booking group ID"
// @Param request body reqdto.UpdateBookingRequest true "Changed fields"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/admin/bookings/{groupId} [put]
func (h *BookingHandler) Update(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}

	result, err := h.cmds.UpdateBooking(c.Request.Context(), groupID, in)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	resp, err := resdto.FromBookingResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel booking
// @Tags admin
// @Security BearerAuth
// @Param groupId path string true "Booking group ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/bookings/{groupId} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	groupID, ok := groupIDParam(c)
	if !ok {
		return
	}
	if err := h.cmds.CancelBooking(c.Request.Context(), groupID); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
