package commands

import (
	"context"
	"time"

	"rentshare/internal/domain/booking"
	"rentshare/internal/infra"
	"rentshare/internal/pkg/clock"
	"rentshare/internal/pkg/errs"
	"rentshare/internal/usecase/queries"
	"rentshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound          = errs.New("user not found")
	ErrItemNotFound          = errs.New("item not found")
	ErrBookingNotFound       = errs.New("booking not found")
	ErrItemUnavailable       = errs.New("item is not available")
	ErrOwnBooking            = errs.New("cannot book own item")
	ErrNotItemOwner          = errs.New("actor does not own the item")
	ErrInvalidBookingRequest = errs.New("invalid booking request")
	ErrAlreadyDecided        = errs.New("booking already decided")

	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// BookingRepository is the write-side port for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// ExistsStartedBooking reports whether the booker has a booking of the
	// item whose rental period has already begun.
	ExistsStartedBooking(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error)
}

type CreateBookingInput struct {
	ItemID uuid.UUID
	Start  *time.Time
	End    *time.Time
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, bookerID uuid.UUID, input CreateBookingInput) (*queries.BookingView, error)
	SetApproval(ctx context.Context, actorID, bookingID uuid.UUID, approved bool) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	repo  BookingRepository
	users shared.UserReader
	items shared.ItemReader
	views queries.BookingQueries
	clock clock.Clock
}

func NewBookingCommands(
	repo BookingRepository,
	users shared.UserReader,
	items shared.ItemReader,
	views queries.BookingQueries,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		repo:  repo,
		users: users,
		items: items,
		views: views,
		clock: clock,
	}
}

// CreateBooking admits a WAITING booking. The checks run in a fixed order:
// draft completeness, booker existence, item existence, availability,
// self-booking, then temporal validity. Self-booking is reported as a
// not-found error so a booker cannot probe their own items' ids.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, bookerID uuid.UUID, input CreateBookingInput) (*queries.BookingView, error) {
	if err := booking.ValidateDraft(input.ItemID, input.Start, input.End); err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingRequest)
	}

	if err := c.resolveUser(ctx, bookerID); err != nil {
		return nil, err
	}

	itm, err := c.resolveItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if !itm.Available {
		return nil, ErrItemUnavailable
	}
	if itm.OwnerID == bookerID {
		return nil, ErrOwnBooking
	}

	period := booking.NewPeriod(*input.Start, *input.End)
	b, err := booking.NewBooking(c.clock.Now(), input.ItemID, bookerID, period, booking.StatusWaiting)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingRequest)
	}

	if err := c.repo.Create(ctx, b); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.views.GetByIDSystem(ctx, b.ID())
}

// SetApproval records the owner's verdict on a WAITING (or REJECTED) booking.
// A non-owner is told the booking does not exist.
func (c *bookingCommandsImpl) SetApproval(ctx context.Context, actorID, bookingID uuid.UUID, approved bool) (*queries.BookingView, error) {
	if err := c.resolveUser(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := c.repo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	itm, err := c.resolveItem(ctx, b.ItemID())
	if err != nil {
		return nil, err
	}
	if itm.OwnerID != actorID {
		return nil, ErrNotItemOwner
	}

	if err := b.Decide(approved); err != nil {
		return nil, errs.Mark(err, ErrAlreadyDecided)
	}

	if err := c.repo.Update(ctx, b); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.views.GetByIDSystem(ctx, b.ID())
}

func (c *bookingCommandsImpl) resolveUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := c.users.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *bookingCommandsImpl) resolveItem(ctx context.Context, itemID uuid.UUID) (*shared.ItemSnapshot, error) {
	itm, err := c.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return itm, nil
}
