package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"table-booking/internal/pkg/errs"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Classify maps a usecase error to its HTTP status and client message.
// The bool reports whether the error text is safe to return as detail.
func Classify(err error) (status int, msg string, exposeDetail bool) {
	switch {
	case errs.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request", true
	case errs.Is(err, errs.ErrSlotNotOffered):
		return http.StatusUnprocessableEntity, "Requested time is not available", true
	case errs.Is(err, errs.ErrOutsideBookingWindow):
		return http.StatusUnprocessableEntity, "Date is outside the booking window", true
	case errs.Is(err, errs.ErrNoTableFit):
		return http.StatusConflict, "No tables available for this party size", false
	case errs.Is(err, errs.ErrSlotUnavailable):
		return http.StatusConflict, "Slot no longer available, please retry", false
	case errs.Is(err, errs.ErrBookingNotFound):
		return http.StatusNotFound, "Booking not found", false
	case errs.Is(err, errs.ErrCustomerNotFound):
		return http.StatusNotFound, "Customer not found", false
	default:
		return http.StatusInternalServerError, "Internal error", false
	}
}

// AbortWithUsecaseError aborts with the status Classify assigns to err.
func AbortWithUsecaseError(c *gin.Context, err error) {
	status, msg, expose := Classify(err)
	var detail any
	if expose {
		detail = err.Error()
	}
	AbortWithError(c, status, err, msg, detail)
}
