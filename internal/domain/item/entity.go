package item

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrIncompleteItem = errors.New("item is incomplete")

type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewItem accumulates every missing field into one error, so a listing form
// can surface all problems at once.
func NewItem(now time.Time, ownerID uuid.UUID, name, description string, available *bool) (*Item, error) {
	var problems []string
	if strings.TrimSpace(name) == "" {
		problems = append(problems, "name is missing")
	}
	if strings.TrimSpace(description) == "" {
		problems = append(problems, "description is missing")
	}
	if available == nil {
		problems = append(problems, "availability is missing")
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteItem, strings.Join(problems, "; "))
	}
	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   *available,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func Reconstruct(
	id, ownerID uuid.UUID,
	name, description string,
	available bool,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Apply overwrites only the fields present in a partial update.
func (i *Item) Apply(name, description *string, available *bool) {
	if name != nil {
		i.name = *name
	}
	if description != nil {
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
}

func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

func (i *Item) ID() uuid.UUID        { return i.id }
func (i *Item) OwnerID() uuid.UUID   { return i.ownerID }
func (i *Item) Name() string         { return i.name }
func (i *Item) Description() string  { return i.description }
func (i *Item) Available() bool      { return i.available }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }
