package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "table-booking/internal/handler/dto/request"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"
)

type SettingsHandler struct {
	cmds commands.SettingsCommands
	q    queries.AvailabilityQueries
}

func NewSettingsHandler(cmds commands.SettingsCommands, q queries.AvailabilityQueries) *SettingsHandler {
	return &SettingsHandler{cmds: cmds, q: q}
}

// @Summary Get weekly schedule
// @Tags settings
// @Produce json
// @Success 200 {object} reqdto.UpdateScheduleRequest
// @Router /api/settings/schedule [get]
func (h *SettingsHandler) GetSchedule(c *gin.Context) {
	week, err := h.q.WeeklySchedule(c.Request.Context())
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_schedule": week})
}

// @Summary Replace weekly schedule
// @Tags settings
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.UpdateScheduleRequest true "Weekly schedule"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/settings/schedule [put]
func (h *SettingsHandler) UpdateSchedule(c *gin.Context) {
	var req reqdto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpdateSchedule(c.Request.Context(), req.BookingSchedule); err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
