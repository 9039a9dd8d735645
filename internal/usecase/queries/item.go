package queries

import (
	"context"
	"strings"

	"rentshare/internal/domain/booking"
	"rentshare/internal/infra"
	"rentshare/internal/pkg/clock"
	"rentshare/internal/pkg/errs"
	"rentshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrItemNotFound = errs.New("item not found")

type ItemReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemView, error)
	// SearchByText matches name or description case-insensitively and only
	// returns available items.
	SearchByText(ctx context.Context, text string) ([]*ItemView, error)
}

type CommentReadStore interface {
	ListForItems(ctx context.Context, itemIDs []uuid.UUID) ([]CommentView, error)
}

type ItemQueries interface {
	// GetByID enriches the item with next/last bookings only when the actor
	// owns it; renters see the bare item plus comments.
	GetByID(ctx context.Context, actorID, itemID uuid.UUID) (*ItemView, error)
	// ListByOwner returns the owner's items with next/last bookings and
	// comments attached in bulk.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemView, error)
	// Search returns available items matching the text. A blank query is
	// answered with an empty list without touching the store.
	Search(ctx context.Context, text string) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	store    ItemReadStore
	comments CommentReadStore
	bookings BookingReadStore
	users    shared.UserReader
	clock    clock.Clock
}

func NewItemQueries(
	store ItemReadStore,
	comments CommentReadStore,
	bookings BookingReadStore,
	users shared.UserReader,
	clock clock.Clock,
) ItemQueries {
	return &itemQueriesImpl{
		store:    store,
		comments: comments,
		bookings: bookings,
		users:    users,
		clock:    clock,
	}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, actorID, itemID uuid.UUID) (*ItemView, error) {
	view, err := q.store.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := q.attachComments(ctx, []*ItemView{view}); err != nil {
		return nil, err
	}

	if view.OwnerID == actorID {
		now := q.clock.Now()
		next, err := q.bookings.NextForItem(ctx, itemID, now)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return nil, err
		}
		last, err := q.bookings.LastForItem(ctx, itemID, now)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return nil, err
		}
		view.NextBooking = next
		view.LastBooking = last
	}
	return view, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemView, error) {
	if _, err := q.users.FindByID(ctx, ownerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	views, err := q.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return views, nil
	}

	if err := q.attachComments(ctx, views); err != nil {
		return nil, err
	}
	return views, q.attachBookings(ctx, views)
}

func (q *itemQueriesImpl) Search(ctx context.Context, text string) ([]*ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []*ItemView{}, nil
	}

	views, err := q.store.SearchByText(ctx, text)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	for _, v := range views {
		v.Comments = []CommentView{}
	}
	return views, nil
}

func (q *itemQueriesImpl) attachComments(ctx context.Context, views []*ItemView) error {
	ids := make([]uuid.UUID, 0, len(views))
	for _, v := range views {
		v.Comments = []CommentView{}
		ids = append(ids, v.ID)
	}

	comments, err := q.comments.ListForItems(ctx, ids)
	if err != nil {
		return err
	}

	byItem := make(map[uuid.UUID][]CommentView, len(views))
	for _, c := range comments {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}
	for _, v := range views {
		if cs, ok := byItem[v.ID]; ok {
			v.Comments = cs
		}
	}
	return nil
}

// attachBookings summarizes one bulk fetch into per-item next/last refs: next
// is the earliest booking starting after now, last the latest one started
// before it. All statuses participate here.
func (q *itemQueriesImpl) attachBookings(ctx context.Context, views []*ItemView) error {
	ids := make([]uuid.UUID, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}

	now := q.clock.Now()
	all, err := q.bookings.ListByItems(ctx, ids, booking.StateAll, now, nil)
	if err != nil {
		return err
	}

	next := make(map[uuid.UUID]*BookingRef, len(views))
	last := make(map[uuid.UUID]*BookingRef, len(views))
	for _, b := range all {
		ref := &BookingRef{ID: b.ID, BookerID: b.Booker.ID, Start: b.Start, End: b.End}
		itemID := b.Item.ID
		switch {
		case b.Start.After(now):
			if cur, ok := next[itemID]; !ok || ref.Start.Before(cur.Start) {
				next[itemID] = ref
			}
		case b.Start.Before(now):
			if cur, ok := last[itemID]; !ok || ref.Start.After(cur.Start) {
				last[itemID] = ref
			}
		}
	}

	for _, v := range views {
		v.NextBooking = next[v.ID]
		v.LastBooking = last[v.ID]
	}
	return nil
}
