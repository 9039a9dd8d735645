package request

import (
	"time"

	"rentshare/internal/usecase/commands"

	"github.com/google/uuid"
)

// CreateBookingRequest carries the raw booking draft. Fields are pointers so
// completeness is validated in one place, with every missing field reported.
type CreateBookingRequest struct {
	ItemID uuid.UUID  `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ItemID: r.ItemID,
		Start:  r.Start,
		End:    r.End,
	}
}
