package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"table-booking/internal/domain/slot"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/handler/middleware"
	"table-booking/internal/pkg/errs"
)

var errUnauthenticated = errs.New("request is not authenticated")

// bookingMode: staff get staff mode, everyone else books as a guest.
func bookingMode(c *gin.Context) slot.Mode {
	if middleware.IsStaff(c) {
		return slot.ModeStaff
	}
	return slot.ModePublic
}

func groupIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return uuid.Nil, false
	}
	return id, true
}
