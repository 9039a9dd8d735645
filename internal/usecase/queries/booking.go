package queries

import (
	"context"
	"time"

	"rentshare/internal/domain/booking"
	"rentshare/internal/infra"
	"rentshare/internal/pkg/clock"
	"rentshare/internal/pkg/errs"
	"rentshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound    = errs.New("user not found")
	ErrBookingNotFound = errs.New("booking not found")
	ErrOwnerHasNoItems = errs.New("owner has no items")
	ErrInvalidPaging   = errs.New("invalid paging parameters")

	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// BookingReadStore answers the state-partitioned booking queries. The
// partition predicates live in one place on the infra side and are shared by
// the booker-scoped and item-scoped variants; "now" is always caller-supplied
// so the partitions stay deterministic under test.
type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByBooker(ctx context.Context, bookerID uuid.UUID, state booking.State, now time.Time, page *shared.Page) ([]*BookingView, error)
	ListByItems(ctx context.Context, itemIDs []uuid.UUID, state booking.State, now time.Time, page *shared.Page) ([]*BookingView, error)
	NextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*BookingRef, error)
	LastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*BookingRef, error)
}

type BookingQueries interface {
	// GetByID is gated to the booking's booker or the item's owner; anyone
	// else gets the not-found error, deliberately indistinguishable from a
	// missing booking.
	GetByID(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingView, error)
	// GetByIDSystem skips the actor gate; used for read-after-write.
	GetByIDSystem(ctx context.Context, bookingID uuid.UUID) (*BookingView, error)
	ListForBooker(ctx context.Context, bookerID uuid.UUID, state string, from, size *int) ([]*BookingView, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, state string, from, size *int) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	users shared.UserReader
	items shared.ItemReader
	clock clock.Clock
}

func NewBookingQueries(
	store BookingReadStore,
	users shared.UserReader,
	items shared.ItemReader,
	clock clock.Clock,
) BookingQueries {
	return &bookingQueriesImpl{
		store: store,
		users: users,
		items: items,
		clock: clock,
	}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingView, error) {
	if err := q.resolveUser(ctx, actorID); err != nil {
		return nil, err
	}

	view, err := q.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if view.Item.OwnerID != actorID && view.Booker.ID != actorID {
		return nil, ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, bookingID uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForBooker(ctx context.Context, bookerID uuid.UUID, state string, from, size *int) ([]*BookingView, error) {
	if err := q.resolveUser(ctx, bookerID); err != nil {
		return nil, err
	}

	st, err := booking.ParseState(state)
	if err != nil {
		return nil, err
	}

	page, err := resolvePage(from, size)
	if err != nil {
		return nil, err
	}

	return q.store.ListByBooker(ctx, bookerID, st, q.clock.Now(), page)
}

func (q *bookingQueriesImpl) ListForOwner(ctx context.Context, ownerID uuid.UUID, state string, from, size *int) ([]*BookingView, error) {
	if err := q.resolveUser(ctx, ownerID); err != nil {
		return nil, err
	}

	itemIDs, err := q.items.FindIDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(itemIDs) == 0 {
		// A hard failure, not an empty list: an owner without items has no
		// owner perspective at all.
		return nil, ErrOwnerHasNoItems
	}

	st, err := booking.ParseState(state)
	if err != nil {
		return nil, err
	}

	page, err := resolvePage(from, size)
	if err != nil {
		return nil, err
	}

	return q.store.ListByItems(ctx, itemIDs, st, q.clock.Now(), page)
}

func (q *bookingQueriesImpl) resolveUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := q.users.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

// resolvePage validates the from/size pair. Pagination is only in effect when
// both are supplied; the repository page index is the floor of from/size.
func resolvePage(from, size *int) (*shared.Page, error) {
	if from == nil || size == nil {
		return nil, nil
	}
	if *from < 0 || *size <= 0 {
		return nil, ErrInvalidPaging
	}
	page := shared.PageOf(*from, *size)
	return &page, nil
}
