//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"table-booking/internal/domain/schedule"
	"table-booking/internal/handler/api"
	"table-booking/internal/pkg/errs"
	"table-booking/tests/common/builder"
	"table-booking/tests/common/httptest"
	commandsmock "table-booking/tests/mock/commands"
	queriesmock "table-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SettingsHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSettingsCommands
	mockQueries  *queriesmock.MockAvailabilityQueries
	handler      *api.SettingsHandler
}

func (s *SettingsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSettingsCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.handler = api.NewSettingsHandler(s.mockCommands, s.mockQueries)

	auth := fakeAuth(uuid.New())
	s.router.GET("/settings/schedule", auth, s.handler.GetSchedule)
	s.router.PUT("/admin/settings/schedule", auth, s.handler.UpdateSchedule)
}

func (s *SettingsHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSettingsHandlerSuite(t *testing.T) {
	suite.Run(t, new(SettingsHandlerTestSuite))
}

// ================================================================================
// TestGetSchedule
// ================================================================================

func (s *SettingsHandlerTestSuite) TestGetSchedule() {
	s.Run("success: returns the weekly schedule", func() {
		week := builder.NewWeekBuilder().Closed(time.Sunday).Build()
		s.mockQueries.EXPECT().WeeklySchedule(gomock.Any()).Return(week, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/settings/schedule", nil, "")

		var body struct {
			BookingSchedule schedule.Week `json:"booking_schedule"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(week, body.BookingSchedule)
	})

	s.Run("error: 500 Internal Server Error on store failure", func() {
		s.mockQueries.EXPECT().WeeklySchedule(gomock.Any()).Return(nil, errors.New("timeout")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/settings/schedule", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal error")
	})
}

// ================================================================================
// TestUpdateSchedule
// ================================================================================

func (s *SettingsHandlerTestSuite) TestUpdateSchedule() {
	url := "/admin/settings/schedule"
	week := builder.NewWeekBuilder().Hours(time.Friday, "11:30", "23:30").Build()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().UpdateSchedule(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got schedule.Week) error {
				s.Equal(week, got)
				return nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"booking_schedule": week}, staffToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request when booking_schedule is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"schedule": week}, staffToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 Bad Request when the schedule is rejected", func() {
		s.mockCommands.EXPECT().UpdateSchedule(gomock.Any(), gomock.Any()).
			Return(errs.Invalid("weekday Monday configured twice")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"booking_schedule": week}, staffToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
