//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"rentshare/internal/domain/booking"
	"rentshare/internal/pkg/clock"
	"rentshare/internal/usecase/queries"
	"rentshare/tests/common/builder"
	queriesmock "rentshare/tests/mock/queries"
	sharedmock "rentshare/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ItemQueriesTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockStore    *queriesmock.MockItemReadStore
	mockComments *queriesmock.MockCommentReadStore
	mockBookings *queriesmock.MockBookingReadStore
	mockUsers    *sharedmock.MockUserReader
	clock        *clock.MockClock
	queries      queries.ItemQueries
}

func (s *ItemQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = queriesmock.NewMockItemReadStore(s.mockCtrl)
	s.mockComments = queriesmock.NewMockCommentReadStore(s.mockCtrl)
	s.mockBookings = queriesmock.NewMockBookingReadStore(s.mockCtrl)
	s.mockUsers = sharedmock.NewMockUserReader(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	s.queries = queries.NewItemQueries(s.mockStore, s.mockComments, s.mockBookings, s.mockUsers, s.clock)
}

func (s *ItemQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestItemQueriesSuite(t *testing.T) {
	suite.Run(t, new(ItemQueriesTestSuite))
}

func (s *ItemQueriesTestSuite) viewForItem(itemID, ownerID uuid.UUID, start, end time.Time) *queries.BookingView {
	b := builder.NewBookingBuilder()
	b.ItemID = itemID
	b.OwnerID = ownerID
	b.Start = start
	b.End = end
	return b.BuildView()
}

func (s *ItemQueriesTestSuite) TestGetByID() {
	s.Run("owner sees next and last bookings", func() {
		itm := builder.NewItemBuilder()
		now := s.clock.Now()
		next := &queries.BookingRef{ID: uuid.New(), BookerID: uuid.New(), Start: now.Add(24 * time.Hour), End: now.Add(48 * time.Hour)}
		last := &queries.BookingRef{ID: uuid.New(), BookerID: uuid.New(), Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour)}

		s.mockStore.EXPECT().FindByID(gomock.Any(), itm.ID).Return(itm.BuildView(), nil)
		s.mockComments.EXPECT().ListForItems(gomock.Any(), []uuid.UUID{itm.ID}).Return(nil, nil)
		s.mockBookings.EXPECT().NextForItem(gomock.Any(), itm.ID, now).Return(next, nil)
		s.mockBookings.EXPECT().LastForItem(gomock.Any(), itm.ID, now).Return(last, nil)

		view, err := s.queries.GetByID(context.Background(), itm.OwnerID, itm.ID)
		s.Require().NoError(err)
		s.Equal(next, view.NextBooking)
		s.Equal(last, view.LastBooking)
		s.NotNil(view.Comments)
	})

	s.Run("renter sees no booking annotations", func() {
		itm := builder.NewItemBuilder()
		renter := uuid.New()

		s.mockStore.EXPECT().FindByID(gomock.Any(), itm.ID).Return(itm.BuildView(), nil)
		s.mockComments.EXPECT().ListForItems(gomock.Any(), []uuid.UUID{itm.ID}).Return(nil, nil)

		view, err := s.queries.GetByID(context.Background(), renter, itm.ID)
		s.Require().NoError(err)
		s.Nil(view.NextBooking)
		s.Nil(view.LastBooking)
	})

	s.Run("owner with no adjacent bookings", func() {
		itm := builder.NewItemBuilder()
		now := s.clock.Now()

		s.mockStore.EXPECT().FindByID(gomock.Any(), itm.ID).Return(itm.BuildView(), nil)
		s.mockComments.EXPECT().ListForItems(gomock.Any(), []uuid.UUID{itm.ID}).Return(nil, nil)
		s.mockBookings.EXPECT().NextForItem(gomock.Any(), itm.ID, now).Return(nil, notFoundErr())
		s.mockBookings.EXPECT().LastForItem(gomock.Any(), itm.ID, now).Return(nil, notFoundErr())

		view, err := s.queries.GetByID(context.Background(), itm.OwnerID, itm.ID)
		s.Require().NoError(err)
		s.Nil(view.NextBooking)
		s.Nil(view.LastBooking)
	})

	s.Run("missing item", func() {
		itemID := uuid.New()
		s.mockStore.EXPECT().FindByID(gomock.Any(), itemID).Return(nil, notFoundErr())

		_, err := s.queries.GetByID(context.Background(), uuid.New(), itemID)
		s.ErrorIs(err, queries.ErrItemNotFound)
	})
}

func (s *ItemQueriesTestSuite) TestListByOwner() {
	s.Run("summarizes next and last from one bulk fetch", func() {
		ownerID := uuid.New()
		itm := builder.NewItemBuilder()
		itm.OwnerID = ownerID
		u := builder.NewUserBuilder()
		u.ID = ownerID
		now := s.clock.Now()

		// Three candidates: a far future one, a near future one and a past
		// one. Next must be the nearest future start, last the latest past
		// start.
		farFuture := s.viewForItem(itm.ID, ownerID, now.Add(72*time.Hour), now.Add(96*time.Hour))
		nearFuture := s.viewForItem(itm.ID, ownerID, now.Add(24*time.Hour), now.Add(48*time.Hour))
		past := s.viewForItem(itm.ID, ownerID, now.Add(-48*time.Hour), now.Add(-24*time.Hour))
		olderPast := s.viewForItem(itm.ID, ownerID, now.Add(-96*time.Hour), now.Add(-72*time.Hour))

		s.mockUsers.EXPECT().FindByID(gomock.Any(), ownerID).Return(u.BuildSnapshot(), nil)
		s.mockStore.EXPECT().ListByOwner(gomock.Any(), ownerID).Return([]*queries.ItemView{itm.BuildView()}, nil)
		s.mockComments.EXPECT().ListForItems(gomock.Any(), []uuid.UUID{itm.ID}).Return(nil, nil)
		s.mockBookings.EXPECT().
			ListByItems(gomock.Any(), []uuid.UUID{itm.ID}, booking.StateAll, now, nil).
			Return([]*queries.BookingView{farFuture, nearFuture, past, olderPast}, nil)

		views, err := s.queries.ListByOwner(context.Background(), ownerID)
		s.Require().NoError(err)
		s.Require().Len(views, 1)
		s.Require().NotNil(views[0].NextBooking)
		s.Require().NotNil(views[0].LastBooking)
		s.Equal(nearFuture.ID, views[0].NextBooking.ID)
		s.Equal(past.ID, views[0].LastBooking.ID)
	})

	s.Run("comments are grouped per item", func() {
		ownerID := uuid.New()
		itm1 := builder.NewItemBuilder()
		itm1.OwnerID = ownerID
		itm2 := builder.NewItemBuilder()
		itm2.OwnerID = ownerID
		u := builder.NewUserBuilder()
		u.ID = ownerID

		c1 := queries.CommentView{ID: uuid.New(), ItemID: itm1.ID, AuthorName: "A", Text: "great"}
		c2 := queries.CommentView{ID: uuid.New(), ItemID: itm1.ID, AuthorName: "B", Text: "works"}

		s.mockUsers.EXPECT().FindByID(gomock.Any(), ownerID).Return(u.BuildSnapshot(), nil)
		s.mockStore.EXPECT().ListByOwner(gomock.Any(), ownerID).
			Return([]*queries.ItemView{itm1.BuildView(), itm2.BuildView()}, nil)
		s.mockComments.EXPECT().ListForItems(gomock.Any(), []uuid.UUID{itm1.ID, itm2.ID}).
			Return([]queries.CommentView{c1, c2}, nil)
		s.mockBookings.EXPECT().
			ListByItems(gomock.Any(), gomock.Any(), booking.StateAll, gomock.Any(), nil).
			Return(nil, nil)

		views, err := s.queries.ListByOwner(context.Background(), ownerID)
		s.Require().NoError(err)
		s.Require().Len(views, 2)
		s.Len(views[0].Comments, 2)
		s.Empty(views[1].Comments)
	})

	s.Run("empty item list short-circuits", func() {
		ownerID := uuid.New()
		u := builder.NewUserBuilder()
		u.ID = ownerID

		s.mockUsers.EXPECT().FindByID(gomock.Any(), ownerID).Return(u.BuildSnapshot(), nil)
		s.mockStore.EXPECT().ListByOwner(gomock.Any(), ownerID).Return(nil, nil)

		views, err := s.queries.ListByOwner(context.Background(), ownerID)
		s.Require().NoError(err)
		s.Empty(views)
	})
}

func (s *ItemQueriesTestSuite) TestSearch() {
	s.Run("blank text is an empty result without a store call", func() {
		views, err := s.queries.Search(context.Background(), "   ")
		s.Require().NoError(err)
		s.NotNil(views)
		s.Empty(views)
	})

	s.Run("matches come back with empty comment slices", func() {
		itm := builder.NewItemBuilder()
		s.mockStore.EXPECT().SearchByText(gomock.Any(), "drill").
			Return([]*queries.ItemView{itm.BuildView()}, nil)

		views, err := s.queries.Search(context.Background(), "drill")
		s.Require().NoError(err)
		s.Require().Len(views, 1)
		s.Equal(itm.ID, views[0].ID)
		s.NotNil(views[0].Comments)
		s.Empty(views[0].Comments)
	})

	s.Run("store failure surfaces as a database error", func() {
		s.mockStore.EXPECT().SearchByText(gomock.Any(), "drill").Return(nil, dbFailureErr())

		_, err := s.queries.Search(context.Background(), "drill")
		s.ErrorIs(err, queries.ErrDatabaseOperationFailed)
	})
}
