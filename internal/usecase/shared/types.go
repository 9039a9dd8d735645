package shared

import (
	"context"

	"github.com/google/uuid"
)

// Minimal snapshots for cross-aggregate reads inside a single operation.
type UserSnapshot struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type ItemSnapshot struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Available bool
}

type UserReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
}

type ItemReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemSnapshot, error)
	FindIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)
}

// Page is a resolved repository page. The public API paginates with an
// element offset ("from") and a size; the repository works in whole pages, so
// the page number is the floor of from/size.
type Page struct {
	Number int
	Size   int
}

func PageOf(from, size int) Page {
	return Page{Number: from / size, Size: size}
}

func (p Page) Limit() int32 {
	return int32(p.Size)
}

func (p Page) Offset() int32 {
	return int32(p.Number * p.Size)
}
