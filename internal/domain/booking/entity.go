package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrIncompleteRequest = errors.New("booking request incomplete")
	ErrEndNotAfterStart  = errors.New("booking end must be after start")
	ErrStartInPast       = errors.New("booking start is in the past")
	ErrEndInPast         = errors.New("booking end is in the past")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrAlreadyApproved   = errors.New("booking is already approved")
)

// ValidateDraft checks a raw booking request for completeness before any
// lookup has resolved the item or user. All violations are accumulated into a
// single error so the caller sees every missing field at once.
func ValidateDraft(itemID uuid.UUID, start, end *time.Time) error {
	var problems []string
	if itemID == uuid.Nil {
		problems = append(problems, "item id is missing")
	}
	if start == nil || start.IsZero() {
		problems = append(problems, "start date is missing")
	}
	if end == nil || end.IsZero() {
		problems = append(problems, "end date is missing")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrIncompleteRequest, strings.Join(problems, "; "))
	}
	return nil
}

type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	period    Period
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking validates the period against "now" and admits the booking in
// WAITING status unless the request carried an explicit one.
func NewBooking(now time.Time, itemID, bookerID uuid.UUID, period Period, status Status) (*Booking, error) {
	if err := period.Validate(now); err != nil {
		return nil, err
	}
	if status == "" {
		status = StatusWaiting
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		period:    period,
		status:    status,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id, itemID, bookerID uuid.UUID,
	period Period,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		period:    period,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Decide applies the owner's approval verdict. Re-deciding an APPROVED booking
// is refused; a REJECTED booking is not guarded and may be decided again,
// matching the observable contract of the public API.
func (b *Booking) Decide(approved bool) error {
	if b.status == StatusApproved {
		return ErrAlreadyApproved
	}
	if approved {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) ItemID() uuid.UUID    { return b.itemID }
func (b *Booking) BookerID() uuid.UUID  { return b.bookerID }
func (b *Booking) Period() Period       { return b.period }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
