package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"table-booking/internal/domain/schedule"
	reqdto "table-booking/internal/handler/dto/request"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/usecase/queries"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary List start times
// @Description Bookable start times of a day, split into lunch and dinner buckets. Staff see every duration.
// @Tags availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param duration query int false "Duration in minutes"
// @Success 200 {object} resdto.SlotsResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/availability/slots [get]
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	var q reqdto.SlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	date, err := schedule.ParseDate(q.Date)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}

	view, err := h.q.Slots(c.Request.Context(), date, q.Duration, bookingMode(c))
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	resp, err := resdto.FromSlotsView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary List free tables
// @Description Tables free for the whole requested window, optionally ignoring one booking being edited
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param date query string true "Selected date (YYYY-MM-DD)"
// @Param time query string true "Start time (HH:MM)"
// @Param duration query int false "Duration in minutes"
// @Param excludeGroupId query string false "Booking to ignore"
// @Success 200 {object} map[string][]resdto.TableResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/availability/tables [get]
func (h *AvailabilityHandler) Tables(c *gin.Context) {
	var q reqdto.TablesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	req, err := q.ToDomain()
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}

	tables, err := h.q.AvailableTables(c.Request.Context(), req)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tables": resdto.FromTableViews(tables)})
}
