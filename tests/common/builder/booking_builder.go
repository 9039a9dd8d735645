//go:build unit || e2e

package builder

import (
	"time"

	dombooking "rentshare/internal/domain/booking"
	reqdto "rentshare/internal/handler/dto/request"
	"rentshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	ItemName   string
	OwnerID    uuid.UUID
	BookerID   uuid.UUID
	BookerName string
	Now        time.Time
	Start      time.Time
	End        time.Time
	Status     dombooking.Status
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:         uuid.New(),
		ItemID:     uuid.New(),
		ItemName:   "Cordless Drill",
		OwnerID:    uuid.New(),
		BookerID:   uuid.New(),
		BookerName: "Test Booker",
		Now:        now,
		Start:      now.Add(24 * time.Hour),
		End:        now.Add(48 * time.Hour),
		Status:     dombooking.StatusWaiting,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	period := dombooking.NewPeriod(b.Start, b.End)
	return dombooking.NewBooking(b.Now, b.ItemID, b.BookerID, period, b.Status)
}

func (b *BookingBuilder) BuildReconstructed() *dombooking.Booking {
	period := dombooking.NewPeriod(b.Start, b.End)
	return dombooking.Reconstruct(b.ID, b.ItemID, b.BookerID, period, b.Status, b.Now, b.Now)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status.String(),
		Booker: queries.BookingUserView{ID: b.BookerID, Name: b.BookerName},
		Item:   queries.BookingItemView{ID: b.ItemID, OwnerID: b.OwnerID, Name: b.ItemName},
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	start := b.Start
	end := b.End
	return reqdto.CreateBookingRequest{
		ItemID: b.ItemID,
		Start:  &start,
		End:    &end,
	}
}
