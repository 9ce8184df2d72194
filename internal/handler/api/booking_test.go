//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"table-booking/internal/domain/slot"
	"table-booking/internal/handler/api"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"
	"table-booking/tests/common/builder"
	"table-booking/tests/common/httptest"
	"table-booking/tests/common/testutil"
	commandsmock "table-booking/tests/mock/commands"
	queriesmock "table-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	guestID      uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.guestID = uuid.New()

	auth := fakeAuth(s.guestID)
	s.router.POST("/bookings", auth, s.handler.Create)
	s.router.GET("/bookings/me", auth, s.handler.ListMine)
	s.router.GET("/admin/bookings", auth, s.handler.List)
	s.router.GET("/admin/bookings/:groupId", auth, s.handler.Get)
	s.router.PUT("/admin/bookings/:groupId", auth, s.handler.Update)
	s.router.DELETE("/admin/bookings/:groupId", auth, s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"
	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	result := b.BuildResult()

	bound := []testCaseBooking{
		{name: "party size boundary OK (1)", mutate: testutil.Field("party_size", 1), expectCode: http.StatusCreated},
		{name: "party size boundary invalid (0)", mutate: testutil.Field("party_size", 0), expectCode: http.StatusBadRequest},
		{name: "first name length invalid (101 chars)", mutate: testutil.Field("first_name", strings.Repeat("a", 101)), expectCode: http.StatusBadRequest},
		{name: "dial code length invalid (7 chars)", mutate: testutil.Field("dial_code", "+123456"), expectCode: http.StatusBadRequest},
		{name: "more than five tables", mutate: testutil.Field("table_ids", []string{
			uuid.NewString(), uuid.NewString(), uuid.NewString(), uuid.NewString(), uuid.NewString(), uuid.NewString(),
		}), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseBooking{
		{name: "missing field: date (required)", mutate: testutil.Field("date", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: time (required)", mutate: testutil.Field("time", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: first_name (required)", mutate: testutil.Field("first_name", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: phone (required)", mutate: testutil.Field("phone", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: email (optional)", mutate: testutil.Field("email", nil), expectCode: http.StatusCreated},
	}

	malformed := []testCaseBooking{
		{name: "malformed email", mutate: testutil.Field("email", "not-an-email"), expectCode: http.StatusBadRequest},
		{name: "malformed date", mutate: testutil.Field("date", "02/03/2026"), expectCode: http.StatusBadRequest},
	}

	allValidationTestCases := [][]testCaseBooking{bound, missing, malformed}

	s.Run("success: returns 201 Created for a guest booking", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CreateBookingInput) (*commands.BookingResult, error) {
				s.Equal(slot.ModePublic, in.Mode)
				s.Nil(in.UserID)
				s.Equal(builder.ServiceDay, in.Date)
				s.Equal("18:00", in.Time)
				return result, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(result.GroupID.String(), body.GroupID)
		s.Equal("2026-03-02", body.BookingDate)
		s.Equal("2026-03-02", body.ServiceDate)
		s.Equal(queries.StatusConfirmed, body.Status)
		s.Require().Len(body.Tables, 1)
		s.Equal(result.Tables[0].ID.String(), body.Tables[0].ID)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/admin/bookings/" + result.GroupID.String()})
	})

	s.Run("success: signed-in guest is linked to the booking", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CreateBookingInput) (*commands.BookingResult, error) {
				s.Equal(slot.ModePublic, in.Mode)
				s.Require().NotNil(in.UserID)
				s.Equal(s.guestID, *in.UserID)
				return result, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, guestToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("success: staff book in staff mode without linking themselves", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CreateBookingInput) (*commands.BookingResult, error) {
				s.Equal(slot.ModeStaff, in.Mode)
				s.Nil(in.UserID)
				return result, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, staffToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
							Return(result, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
					}
				})
			}
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "invalid input", commandsError: errs.Invalid("phone number is too short"), expectedStatus: http.StatusBadRequest, expectedMsg: "Invalid request"},
			{name: "slot not offered", commandsError: errs.Wrapf(errs.ErrSlotNotOffered, "15:00"), expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "Requested time is not available"},
			{name: "outside booking window", commandsError: errs.ErrOutsideBookingWindow, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "outside the booking window"},
			{name: "no table fit", commandsError: errs.ErrNoTableFit, expectedStatus: http.StatusConflict, expectedMsg: "No tables available"},
			{name: "slot taken concurrently", commandsError: errs.Mark(errors.New("exclusion violation"), errs.ErrSlotUnavailable), expectedStatus: http.StatusConflict, expectedMsg: "please retry"},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestListMine
// ================================================================================

func (s *BookingHandlerTestSuite) TestListMine() {
	url := "/bookings/me"

	s.Run("success: returns the caller's bookings", func() {
		view := builder.NewBookingBuilder().WithUserID(s.guestID).BuildGroupView()
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), s.guestID).
			Return([]*queries.BookingGroupView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, guestToken)

		var body []resdto.BookingGroupResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(view.GroupID.String(), body[0].GroupID)
		s.Require().NotNil(body[0].CustomerUserID)
		s.Equal(s.guestID.String(), *body[0].CustomerUserID)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	s.Run("success: date and limit are passed as a filter", func() {
		s.mockQueries.EXPECT().ListGroups(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f queries.BookingFilter) ([]*queries.BookingGroupView, error) {
				s.Require().NotNil(f.Date)
				s.Equal(builder.ServiceDay, *f.Date)
				s.Equal(20, f.Limit)
				return []*queries.BookingGroupView{builder.NewBookingBuilder().BuildGroupView()}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/bookings?date=2026-03-02&limit=20", nil, staffToken)

		var body []resdto.BookingGroupResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 1)
		s.Equal("confirmed", body[0].Status)
	})

	s.Run("success: no filter", func() {
		s.mockQueries.EXPECT().ListGroups(gomock.Any(), queries.BookingFilter{}).
			Return([]*queries.BookingGroupView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/bookings", nil, staffToken)

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("error: 400 Bad Request for limit above the maximum", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/bookings?limit=501", nil, staffToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 Bad Request for malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/bookings?date=march", nil, staffToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	view := builder.NewBookingBuilder().BuildGroupView()
	url := "/admin/bookings/" + view.GroupID.String()

	s.Run("success: returns 200 OK with BookingGroupResponse", func() {
		s.mockQueries.EXPECT().GetGroup(gomock.Any(), view.GroupID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, staffToken)

		var body resdto.BookingGroupResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.GroupID.String(), body.GroupID)
		s.Equal(view.TableNumbers, body.TableNumbers)
		s.Equal(view.CreatedAt.Unix(), body.CreatedAt)
		s.Nil(body.CustomerUserID)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/bookings/invalid-uuid", nil, staffToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockQueries.EXPECT().GetGroup(gomock.Any(), view.GroupID).
			Return(nil, errs.Wrapf(errs.ErrBookingNotFound, "group %s", view.GroupID)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, staffToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdate() {
	b := builder.NewBookingBuilder().WithTime("20:00")
	url := "/admin/bookings/" + b.GroupID.String()
	result := b.BuildResult()

	s.Run("success: only sent fields are changed", func() {
		s.mockCommands.EXPECT().UpdateBooking(gomock.Any(), b.GroupID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, in commands.UpdateBookingInput) (*commands.BookingResult, error) {
				s.Require().NotNil(in.Time)
				s.Equal("20:00", *in.Time)
				s.Nil(in.Date)
				s.Nil(in.PartySize)
				s.Nil(in.Duration)
				return result, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"time": "20:00"}, staffToken)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("20:00", body.Time)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name string
			body map[string]any
		}{
			{name: "party size below one", body: map[string]any{"party_size": 0}},
			{name: "duration below one", body: map[string]any{"duration": 0}},
			{name: "malformed date", body: map[string]any{"date": "tomorrow"}},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, tc.body, staffToken)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 409 Conflict when the new time has no tables", func() {
		s.mockCommands.EXPECT().UpdateBooking(gomock.Any(), b.GroupID, gomock.Any()).
			Return(nil, errs.ErrNoTableFit).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"party_size": 12}, staffToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "No tables available")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	groupID := uuid.New()
	url := "/admin/bookings/" + groupID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), groupID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, staffToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), groupID).Return(errs.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, staffToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/bookings/invalid-uuid", nil, staffToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking id")
	})
}
