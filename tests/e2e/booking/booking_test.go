//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"rentshare/internal/handler/dto/request"
	"rentshare/internal/handler/dto/response"
	"rentshare/tests/common/dbtest"
	"rentshare/tests/common/httptest"
	"rentshare/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/bookings"
	ownerBookingsURL = "/bookings/owner"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func createBookingRequest(itemID uuid.UUID, start, end time.Time) request.CreateBookingRequest {
	return request.CreateBookingRequest{
		ItemID: itemID,
		Start:  &start,
		End:    &end,
	}
}

// =============================================================================
// TestBookingLifecycle - create, approve and read back a booking
// =============================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: booker creates, owner approves, both parties can read", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Boris Booker", "boris@example.com")
		strangerID := dbtest.CreateTestUser(t, s.DB, "Sven Stranger", "sven@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)

		now := time.Now().UTC().Truncate(time.Second)
		reqBody := createBookingRequest(itemID, now.Add(24*time.Hour), now.Add(48*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, bookerID.String())
		require.Equal(t, http.StatusCreated, w.Code, "Should create booking: %s", w.Body.String())

		var created response.BookingResponse
		err := httptest.DecodeResponseBody(t, w.Body, &created)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, created.ID)

		expected := &response.BookingResponse{
			Status: "WAITING",
			Booker: response.BookerResponse{ID: bookerID, Name: "Boris Booker"},
			Item:   response.BookedItemResponse{ID: itemID, Name: "Cordless Drill"},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "ID", "Start", "End"),
		}
		if diff := cmp.Diff(expected, &created, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}
		require.True(t, created.Start.Equal(now.Add(24*time.Hour)))
		require.True(t, created.End.Equal(now.Add(48*time.Hour)))

		// Owner approves.
		approveURL := fmt.Sprintf("%s/%s?approved=true", bookingsURL, created.ID)
		aw := httptest.PerformRequest(t, s.Router, http.MethodPatch, approveURL, nil, ownerID.String())
		require.Equal(t, http.StatusOK, aw.Code, aw.Body.String())

		var approved response.BookingResponse
		err = httptest.DecodeResponseBody(t, aw.Body, &approved)
		require.NoError(t, err)
		require.Equal(t, "APPROVED", approved.Status)

		// Booker and owner can both read the booking, a third user cannot.
		detailURL := bookingsURL + "/" + created.ID.String()
		for _, viewer := range []uuid.UUID{bookerID, ownerID} {
			dw := httptest.PerformRequest(t, s.Router, http.MethodGet, detailURL, nil, viewer.String())
			require.Equal(t, http.StatusOK, dw.Code)
		}
		sw := httptest.PerformRequest(t, s.Router, http.MethodGet, detailURL, nil, strangerID.String())
		require.Equal(t, http.StatusNotFound, sw.Code, "Strangers should not learn the booking exists")

		// A decided booking stays decided.
		rw := httptest.PerformRequest(t, s.Router, http.MethodPatch, approveURL, nil, ownerID.String())
		require.Equal(t, http.StatusBadRequest, rw.Code)
	})

	s.Run("Error case: booking your own item looks like a missing item", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Ladder", true)

		now := time.Now().UTC()
		reqBody := createBookingRequest(itemID, now.Add(time.Hour), now.Add(2*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, ownerID.String())
		require.Equal(t, http.StatusNotFound, w.Code)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Item not found")
	})

	s.Run("Error case: unavailable item cannot be booked", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Boris Booker", "boris@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Broken Saw", false)

		now := time.Now().UTC()
		reqBody := createBookingRequest(itemID, now.Add(time.Hour), now.Add(2*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, bookerID.String())
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Error case: inverted period is rejected", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Boris Booker", "boris@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Tent", true)

		now := time.Now().UTC()
		reqBody := createBookingRequest(itemID, now.Add(2*time.Hour), now.Add(time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, bookerID.String())
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Error case: only the item owner may decide", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Boris Booker", "boris@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Projector", true)

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")

		url := fmt.Sprintf("%s/%s?approved=true", bookingsURL, bookingID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, url, nil, bookerID.String())
		require.Equal(t, http.StatusNotFound, w.Code, "Non-owners should see the booking as missing")
	})
}

// =============================================================================
// TestListBookings - state partitions and pagination over both list endpoints
// =============================================================================

func (s *BookingSuite) TestListBookings() {
	seed := func(t *testing.T) (ownerID, bookerID uuid.UUID) {
		ownerID = dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		bookerID = dbtest.CreateTestUser(t, s.DB, "Boris Booker", "boris@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Kayak", true)

		now := time.Now().UTC()
		dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-48*time.Hour), now.Add(-24*time.Hour), "APPROVED")
		dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-time.Hour), now.Add(time.Hour), "APPROVED")
		dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")
		return ownerID, bookerID
	}

	listBookings := func(t *testing.T, url, userID string) []*response.BookingResponse {
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, userID)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var views []*response.BookingResponse
		err := httptest.DecodeResponseBody(t, w.Body, &views)
		require.NoError(t, err)
		return views
	}

	s.Run("Normal case: state partitions split past, current, future and waiting", func() {
		t := s.T()
		ownerID, bookerID := seed(t)

		cases := []struct {
			state string
			count int
		}{
			{"ALL", 3},
			{"PAST", 1},
			{"CURRENT", 1},
			{"FUTURE", 1},
			{"WAITING", 1},
			{"REJECTED", 0},
		}
		for _, tc := range cases {
			forBooker := listBookings(t, bookingsURL+"?state="+tc.state, bookerID.String())
			require.Len(t, forBooker, tc.count, "booker state %s", tc.state)

			forOwner := listBookings(t, ownerBookingsURL+"?state="+tc.state, ownerID.String())
			require.Len(t, forOwner, tc.count, "owner state %s", tc.state)
		}
	})

	s.Run("Normal case: lists come newest start first", func() {
		t := s.T()
		_, bookerID := seed(t)

		views := listBookings(t, bookingsURL+"?state=ALL", bookerID.String())
		require.Len(t, views, 3)
		for i := 1; i < len(views); i++ {
			require.False(t, views[i-1].Start.Before(views[i].Start),
				"bookings should be ordered by start descending")
		}
	})

	s.Run("Normal case: pagination returns whole pages", func() {
		t := s.T()
		_, bookerID := seed(t)

		page := listBookings(t, bookingsURL+"?state=ALL&from=0&size=2", bookerID.String())
		require.Len(t, page, 2)

		lastPage := listBookings(t, bookingsURL+"?state=ALL&from=2&size=2", bookerID.String())
		require.Len(t, lastPage, 1)
	})

	s.Run("Error case: unknown state", func() {
		t := s.T()
		_, bookerID := seed(t)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?state=SOMETHING", nil, bookerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Unknown state: UNSUPPORTED_STATUS")
	})

	s.Run("Error case: owner without items", func() {
		t := s.T()

		lonelyID := dbtest.CreateTestUser(t, s.DB, "Nina Noitems", "nina@example.com")
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ownerBookingsURL, nil, lonelyID.String())
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Error case: request without identity header", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
