//go:build e2e

package item_test

import (
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

const itemsURL = "/items"

type ItemSuite struct {
	e2e.SharedSuite
}

func (s *ItemSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestItemSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ItemSuite))
}

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

// =============================================================================
// TestCreateAndUpdateItem - item registration and partial edits
// =============================================================================

func (s *ItemSuite) TestCreateAndUpdateItem() {
	s.Run("Normal case: owner registers and edits an item", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")

		reqBody := request.CreateItemRequest{
			Name:        "Pressure Washer",
			Description: "2000 PSI electric washer",
			Available:   boolPtr(true),
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, itemsURL, reqBody, ownerID.String())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.ItemResponse
		err := httptest.DecodeResponseBody(t, w.Body, &created)
		require.NoError(t, err)

		expected := &response.ItemResponse{
			Name:        "Pressure Washer",
			Description: "2000 PSI electric washer",
			Available:   true,
			Comments:    []response.CommentResponse{},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.ItemResponse{}, "ID"),
		}
		if diff := cmp.Diff(expected, &created, opts...); diff != "" {
			t.Errorf("Item response mismatch (-want +got):\n%s", diff)
		}

		// Partial update leaves the untouched fields alone.
		updateReq := request.UpdateItemRequest{Available: boolPtr(false)}
		uw := httptest.PerformRequest(t, s.Router, http.MethodPatch, itemsURL+"/"+created.ID.String(), updateReq, ownerID.String())
		require.Equal(t, http.StatusOK, uw.Code, uw.Body.String())

		var updated response.ItemResponse
		err = httptest.DecodeResponseBody(t, uw.Body, &updated)
		require.NoError(t, err)
		require.False(t, updated.Available)
		require.Equal(t, "Pressure Washer", updated.Name)
	})

	s.Run("Error case: incomplete item is refused", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")

		reqBody := request.CreateItemRequest{Name: "", Description: "", Available: nil}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, itemsURL, reqBody, ownerID.String())
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Error case: editing someone else's item looks like a missing item", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		intruderID := dbtest.CreateTestUser(t, s.DB, "Ivan Intruder", "ivan@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Chainsaw", true)

		updateReq := request.UpdateItemRequest{Name: strPtr("Mine Now")}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, itemsURL+"/"+itemID.String(), updateReq, intruderID.String())
		require.Equal(t, http.StatusNotFound, w.Code)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Item not found")
	})
}

// =============================================================================
// TestItemViews - booking annotations are an owner privilege
// =============================================================================

func (s *ItemSuite) TestItemViews() {
	s.Run("Normal case: owner sees next and last bookings, others do not", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Boris Booker", "boris@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Kayak", true)

		now := time.Now().UTC()
		lastID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-48*time.Hour), now.Add(-24*time.Hour), "APPROVED")
		nextID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "APPROVED")
		// A rejected booking never shows up as an annotation.
		dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(time.Hour), now.Add(2*time.Hour), "REJECTED")

		url := itemsURL + "/" + itemID.String()

		ow := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, ownerID.String())
		require.Equal(t, http.StatusOK, ow.Code)
		var forOwner response.ItemResponse
		err := httptest.DecodeResponseBody(t, ow.Body, &forOwner)
		require.NoError(t, err)
		require.NotNil(t, forOwner.NextBooking)
		require.NotNil(t, forOwner.LastBooking)
		require.Equal(t, nextID, forOwner.NextBooking.ID)
		require.Equal(t, lastID, forOwner.LastBooking.ID)
		require.Equal(t, bookerID, forOwner.NextBooking.BookerID)

		bw := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, bookerID.String())
		require.Equal(t, http.StatusOK, bw.Code)
		var forBooker response.ItemResponse
		err = httptest.DecodeResponseBody(t, bw.Body, &forBooker)
		require.NoError(t, err)
		require.Nil(t, forBooker.NextBooking)
		require.Nil(t, forBooker.LastBooking)
	})

	s.Run("Normal case: owner listing annotates every item in one go", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Boris Booker", "boris@example.com")
		bookedItemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Kayak", true)
		idleItemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Paddle", true)

		now := time.Now().UTC()
		nextID := dbtest.CreateTestBooking(t, s.DB, bookedItemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, itemsURL, nil, ownerID.String())
		require.Equal(t, http.StatusOK, w.Code)
		var views []*response.ItemResponse
		err := httptest.DecodeResponseBody(t, w.Body, &views)
		require.NoError(t, err)
		require.Len(t, views, 2)

		byID := map[uuid.UUID]*response.ItemResponse{}
		for _, v := range views {
			byID[v.ID] = v
		}
		require.NotNil(t, byID[bookedItemID].NextBooking)
		require.Equal(t, nextID, byID[bookedItemID].NextBooking.ID)
		require.Nil(t, byID[idleItemID].NextBooking)
		require.Nil(t, byID[idleItemID].LastBooking)
	})
}

// =============================================================================
// TestSearchItems - case-insensitive text search over available items
// =============================================================================

func (s *ItemSuite) TestSearchItems() {
	s.Run("Normal case: matches name and description, skips unavailable items", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		renterID := dbtest.CreateTestUser(t, s.DB, "Rita Renter", "rita@example.com")
		matchByName := dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)
		matchByDescription := dbtest.CreateTestItemWithDescription(t, s.DB, ownerID, "Workbench", "comes with a drill press", true)
		dbtest.CreateTestItem(t, s.DB, ownerID, "Broken Drill", false)
		dbtest.CreateTestItem(t, s.DB, ownerID, "Kayak", true)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, itemsURL+"/search?text=dRiLl", nil, renterID.String())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var views []*response.ItemResponse
		err := httptest.DecodeResponseBody(t, w.Body, &views)
		require.NoError(t, err)
		require.Len(t, views, 2)

		found := map[uuid.UUID]bool{}
		for _, v := range views {
			found[v.ID] = true
			require.True(t, v.Available)
		}
		require.True(t, found[matchByName])
		require.True(t, found[matchByDescription])
	})

	s.Run("Normal case: blank text is an empty array, not an error", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, itemsURL+"/search?text=", nil, ownerID.String())
		require.Equal(t, http.StatusOK, w.Code)

		var views []*response.ItemResponse
		err := httptest.DecodeResponseBody(t, w.Body, &views)
		require.NoError(t, err)
		require.Empty(t, views)
	})

	s.Run("Error case: searching without an identity header", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, itemsURL+"/search?text=drill", nil, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// TestAddComment - commenting requires a booking that has started
// =============================================================================

func (s *ItemSuite) TestAddComment() {
	s.Run("Normal case: past booker can leave a comment", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Boris Booker", "boris@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Kayak", true)

		now := time.Now().UTC()
		dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-48*time.Hour), now.Add(-24*time.Hour), "APPROVED")

		reqBody := request.CreateCommentRequest{Text: "Tracks straight, no leaks"}
		url := itemsURL + "/" + itemID.String() + "/comment"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, reqBody, bookerID.String())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var comment response.CommentResponse
		err := httptest.DecodeResponseBody(t, w.Body, &comment)
		require.NoError(t, err)
		require.Equal(t, "Boris Booker", comment.AuthorName)
		require.Equal(t, "Tracks straight, no leaks", comment.Text)

		// The comment shows up on the item view.
		iw := httptest.PerformRequest(t, s.Router, http.MethodGet, itemsURL+"/"+itemID.String(), nil, bookerID.String())
		require.Equal(t, http.StatusOK, iw.Code)
		var view response.ItemResponse
		err = httptest.DecodeResponseBody(t, iw.Body, &view)
		require.NoError(t, err)
		require.Len(t, view.Comments, 1)
		require.Equal(t, "Tracks straight, no leaks", view.Comments[0].Text)
	})

	s.Run("Error case: commenting without any started booking", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		strangerID := dbtest.CreateTestUser(t, s.DB, "Sven Stranger", "sven@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Kayak", true)

		reqBody := request.CreateCommentRequest{Text: "Looks nice"}
		url := itemsURL + "/" + itemID.String() + "/comment"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, reqBody, strangerID.String())
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	s.Run("Error case: a booking that has not started yet is not enough", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Olga Owner", "olga@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Boris Booker", "boris@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Kayak", true)

		now := time.Now().UTC()
		dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "APPROVED")

		reqBody := request.CreateCommentRequest{Text: "Cannot wait"}
		url := itemsURL + "/" + itemID.String() + "/comment"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, reqBody, bookerID.String())
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
