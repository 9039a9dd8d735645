package commands

import (
	"context"

	"rentshare/internal/domain/item"
	"rentshare/internal/infra"
	"rentshare/internal/pkg/clock"
	"rentshare/internal/pkg/errs"
	"rentshare/internal/usecase/queries"
	"rentshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidItem = errs.New("invalid item")

type ItemRepository interface {
	Create(ctx context.Context, i *item.Item) error
	Update(ctx context.Context, i *item.Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error)
}

type CreateItemInput struct {
	Name        string
	Description string
	Available   *bool
}

type UpdateItemInput struct {
	Name        *string
	Description *string
	Available   *bool
}

type ItemCommands interface {
	CreateItem(ctx context.Context, ownerID uuid.UUID, input CreateItemInput) (*queries.ItemView, error)
	UpdateItem(ctx context.Context, actorID, itemID uuid.UUID, input UpdateItemInput) (*queries.ItemView, error)
}

type itemCommandsImpl struct {
	repo  ItemRepository
	users shared.UserReader
	views queries.ItemQueries
	clock clock.Clock
}

func NewItemCommands(
	repo ItemRepository,
	users shared.UserReader,
	views queries.ItemQueries,
	clock clock.Clock,
) ItemCommands {
	return &itemCommandsImpl{
		repo:  repo,
		users: users,
		views: views,
		clock: clock,
	}
}

func (c *itemCommandsImpl) CreateItem(ctx context.Context, ownerID uuid.UUID, input CreateItemInput) (*queries.ItemView, error) {
	if err := c.resolveUser(ctx, ownerID); err != nil {
		return nil, err
	}

	itm, err := item.NewItem(c.clock.Now(), ownerID, input.Name, input.Description, input.Available)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidItem)
	}

	if err := c.repo.Create(ctx, itm); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.views.GetByID(ctx, ownerID, itm.ID())
}

// UpdateItem applies a partial update. Only the owner may edit; anyone else is
// told the item does not exist.
func (c *itemCommandsImpl) UpdateItem(ctx context.Context, actorID, itemID uuid.UUID, input UpdateItemInput) (*queries.ItemView, error) {
	if err := c.resolveUser(ctx, actorID); err != nil {
		return nil, err
	}

	itm, err := c.repo.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !itm.IsOwnedBy(actorID) {
		return nil, ErrNotItemOwner
	}

	itm.Apply(input.Name, input.Description, input.Available)

	if err := c.repo.Update(ctx, itm); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.views.GetByID(ctx, actorID, itemID)
}

func (c *itemCommandsImpl) resolveUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := c.users.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
