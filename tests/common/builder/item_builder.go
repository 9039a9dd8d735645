//go:build unit || e2e

package builder

import (
	"time"

	domitem "rentshare/internal/domain/item"
	reqdto "rentshare/internal/handler/dto/request"
	"rentshare/internal/usecase/queries"
	"rentshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type ItemBuilder struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
	Now         time.Time
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Name:        "Pressure Washer",
		Description: "2000 PSI electric pressure washer",
		Available:   true,
		Now:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(b)
	return b
}

func (b *ItemBuilder) BuildDomain() (*domitem.Item, error) {
	available := b.Available
	return domitem.NewItem(b.Now, b.OwnerID, b.Name, b.Description, &available)
}

func (b *ItemBuilder) BuildReconstructed() *domitem.Item {
	return domitem.Reconstruct(b.ID, b.OwnerID, b.Name, b.Description, b.Available, b.Now, b.Now)
}

func (b *ItemBuilder) BuildSnapshot() *shared.ItemSnapshot {
	return &shared.ItemSnapshot{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Name:      b.Name,
		Available: b.Available,
	}
}

func (b *ItemBuilder) BuildView() *queries.ItemView {
	return &queries.ItemView{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Name:        b.Name,
		Description: b.Description,
		Available:   b.Available,
		Comments:    []queries.CommentView{},
	}
}

func (b *ItemBuilder) BuildCreateRequestDTO() reqdto.CreateItemRequest {
	available := b.Available
	return reqdto.CreateItemRequest{
		Name:        b.Name,
		Description: b.Description,
		Available:   &available,
	}
}
