//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"table-booking/internal/domain/user"
	"table-booking/internal/handler/dto/response"
	"table-booking/tests/common/authtest"
	"table-booking/tests/common/builder"
	"table-booking/tests/common/dbtest"
	"table-booking/tests/common/httptest"
	"table-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL     = "/api/bookings"
	myBookingsURL   = "/api/bookings/me"
	adminBookingURL = "/api/admin/bookings/%s"
	adminListURL    = "/api/admin/bookings"
	slotsURL        = "/api/availability/slots?date=%s&duration=%d"
	tablesURL       = "/api/availability/tables?date=%s&time=%s"
	scheduleURL     = "/api/settings/schedule"
)

type BookingSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *BookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) create(t *testing.T, token string, b *builder.BookingBuilder) response.BookingResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, b.BuildCreateRequestDTO(), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	return created
}

// =============================================================================
// TestCreateBooking - guest and staff booking flow
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: guest gets the smallest table that fits", func() {
		t := s.T()

		created := s.create(t, "", builder.NewBookingBuilder())
		require.Len(t, created.Tables, 1)
		require.Equal(t, 1, created.Tables[0].TableNumber)

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(adminBookingURL, created.GroupID), nil, s.jwt.StaffToken(t))
		require.Equal(t, http.StatusOK, dw.Code)

		var actual response.BookingGroupResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &actual))

		expected := &response.BookingGroupResponse{
			GroupID:      created.GroupID,
			CustomerName: "Lan Nguyen",
			Phone:        "+84901234567",
			Email:        "lan@example.com",
			BookingDate:  "2026-03-02",
			ServiceDate:  "2026-03-02",
			BookingTime:  "18:00",
			Duration:     90,
			PartySize:    2,
			TableNumbers: "1",
			Status:       "confirmed",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingGroupResponse{}, "CustomerID", "CustomerUserID", "TableIDs", "CreatedAt"),
		}
		if diff := cmp.Diff(expected, &actual, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: large party is seated at combined tables", func() {
		t := s.T()

		created := s.create(t, "", builder.NewBookingBuilder().WithPartySize(12))
		seats := 0
		for _, tbl := range created.Tables {
			seats += tbl.Seats
		}
		require.GreaterOrEqual(t, seats, 12)
		require.Equal(t, len(created.Tables), dbtest.CountBookingRows(t, s.DB))
	})

	s.Run("Normal case: signed-in guest sees the booking in their list", func() {
		t := s.T()

		guestID := uuid.New()
		token := s.jwt.GenerateToken(t, guestID, user.RoleUser)
		created := s.create(t, token, builder.NewBookingBuilder())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, myBookingsURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var mine []response.BookingGroupResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &mine))
		require.Len(t, mine, 1)
		require.Equal(t, created.GroupID, mine[0].GroupID)
		require.NotNil(t, mine[0].CustomerUserID)
		require.Equal(t, guestID.String(), *mine[0].CustomerUserID)
	})

	s.Run("Normal case: staff may book off the slot grid", func() {
		t := s.T()

		created := s.create(t, s.jwt.StaffToken(t), builder.NewBookingBuilder().WithTime("18:10"))
		require.Equal(t, "18:10", created.Time)
	})

	s.Run("Error case: guest cannot book during the break", func() {
		t := s.T()

		reqBody := builder.NewBookingBuilder().WithTime("15:00").BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Requested time is not available")
		require.Zero(t, dbtest.CountBookingRows(t, s.DB))
	})

	s.Run("Error case: guest cannot book past the window", func() {
		t := s.T()

		far := builder.ServiceDay.AddDays(28)
		reqBody := builder.NewBookingBuilder().WithDate(far).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "booking window")
	})

	s.Run("Error case: party larger than the floor", func() {
		t := s.T()

		reqBody := builder.NewBookingBuilder().WithPartySize(40).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "No tables available")
	})
}

// =============================================================================
// TestConcurrentBooking - the last table goes to exactly one request
// =============================================================================

func (s *BookingSuite) TestConcurrentBooking() {
	s.Run("Normal case: one winner for the last free table", func() {
		t := s.T()

		_, err := s.DB.Exec(context.Background(),
			"UPDATE restaurant_tables SET is_available = false WHERE table_number <> 1")
		require.NoError(t, err)

		const requests = 8
		codes := make([]int, requests)
		var wg sync.WaitGroup
		for i := range requests {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				reqBody := builder.NewBookingBuilder().WithPhone(fmt.Sprintf("09012345%02d", i)).BuildCreateRequestDTO()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
				codes[i] = w.Code
			}(i)
		}
		wg.Wait()

		created, conflicts := 0, 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicts++
			}
		}
		require.Equal(t, 1, created, "codes: %v", codes)
		require.Equal(t, requests-1, conflicts, "codes: %v", codes)
		require.Equal(t, 1, dbtest.CountBookingRows(t, s.DB))
	})
}

// =============================================================================
// TestAvailability - slots and free tables reflect stored bookings
// =============================================================================

func (s *BookingSuite) TestAvailability() {
	s.Run("Normal case: Monday slots under the default schedule", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(slotsURL, "2026-03-02", 90), nil, "")

		var slots response.SlotsResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &slots)
		require.Equal(t, []string{"11:30", "12:00", "12:30"}, slots.FirstHalf)
		require.Equal(t, []string{"17:30", "18:00", "18:30", "19:00", "19:30", "20:00", "20:30"}, slots.SecondHalf)
	})

	s.Run("Normal case: a booked table is no longer free", func() {
		t := s.T()

		created := s.create(t, "", builder.NewBookingBuilder())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(tablesURL, "2026-03-02", "18:30"), nil, s.jwt.StaffToken(t))

		var body struct {
			Tables []response.TableResponse `json:"tables"`
		}
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
		require.Len(t, body.Tables, 5)
		for _, tbl := range body.Tables {
			require.NotEqual(t, created.Tables[0].ID, tbl.ID)
		}
	})

	s.Run("Error case: free tables are staff only", func() {
		t := s.T()

		token := s.jwt.GenerateToken(t, uuid.New(), user.RoleUser)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(tablesURL, "2026-03-02", "18:00"), nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})
}

// =============================================================================
// TestManageBooking - staff edit and cancel
// =============================================================================

func (s *BookingSuite) TestManageBooking() {
	s.Run("Normal case: move the booking to a later time", func() {
		t := s.T()

		created := s.create(t, "", builder.NewBookingBuilder())
		url := fmt.Sprintf(adminBookingURL, created.GroupID)

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, url, map[string]any{"time": "20:00"}, s.jwt.StaffToken(t))
		var updated response.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &updated)
		require.Equal(t, created.GroupID, updated.GroupID)
		require.Equal(t, "20:00", updated.Time)
		require.Equal(t, 1, dbtest.CountBookingRows(t, s.DB))
	})

	s.Run("Normal case: cancelling removes the rows and the walk-in customer", func() {
		t := s.T()

		created := s.create(t, "", builder.NewBookingBuilder())
		url := fmt.Sprintf(adminBookingURL, created.GroupID)
		staff := s.jwt.StaffToken(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, url, nil, staff)
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Zero(t, dbtest.CountBookingRows(t, s.DB))
		require.Zero(t, dbtest.CountCustomers(t, s.DB))

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, staff)
		httptest.AssertErrorResponse(t, gw, http.StatusNotFound, "Booking not found")
	})

	s.Run("Normal case: dashboard list filtered by date", func() {
		t := s.T()

		s.create(t, "", builder.NewBookingBuilder())
		s.create(t, "", builder.NewBookingBuilder().WithDate(builder.ServiceDay.AddDays(1)).WithPhone("0907654321"))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, adminListURL+"?date=2026-03-03", nil, s.jwt.StaffToken(t))
		var list []response.BookingGroupResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list, 1)
		require.Equal(t, "2026-03-03", list[0].BookingDate)
	})

	s.Run("Error case: admin routes reject guests", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, adminListURL, nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Access token required")

		token := s.jwt.CreateExpiredToken(t, uuid.New(), user.RoleManager)
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, adminListURL, nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})
}

// =============================================================================
// TestSchedule - saved schedule drives the slot grid
// =============================================================================

func (s *BookingSuite) TestSchedule() {
	s.Run("Normal case: closing Monday empties its slots", func() {
		t := s.T()

		week := builder.NewWeekBuilder().Closed(time.Monday).Build()
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, scheduleURL, map[string]any{"booking_schedule": week}, s.jwt.StaffToken(t))
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		sw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(slotsURL, "2026-03-02", 90), nil, "")
		var slots response.SlotsResponse
		httptest.AssertSuccessResponse(t, sw, http.StatusOK, &slots)
		require.Empty(t, slots.FirstHalf)
		require.Empty(t, slots.SecondHalf)

		gw := httptest.PerformRequest(t, s.Router, http.MethodGet, scheduleURL, nil, "")
		var body struct {
			BookingSchedule []map[string]any `json:"booking_schedule"`
		}
		httptest.AssertSuccessResponse(t, gw, http.StatusOK, &body)
		require.Len(t, body.BookingSchedule, 7)
		require.Equal(t, false, body.BookingSchedule[1]["isOpen"])
	})

	s.Run("Error case: guests cannot change the schedule", func() {
		t := s.T()

		token := s.jwt.GenerateToken(t, uuid.New(), user.RoleUser)
		week := builder.NewWeekBuilder().Build()
		w := httptest.PerformRequest(t, s.Router, http.MethodPut, scheduleURL, map[string]any{"booking_schedule": week}, token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})
}
