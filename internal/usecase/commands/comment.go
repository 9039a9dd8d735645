package commands

import (
	"context"

	"rentshare/internal/domain/comment"
	"rentshare/internal/infra"
	"rentshare/internal/pkg/clock"
	"rentshare/internal/pkg/errs"
	"rentshare/internal/usecase/queries"
	"rentshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidComment    = errs.New("invalid comment")
	ErrCommentNotAllowed = errs.New("commenting requires a started booking")
)

type CommentRepository interface {
	Create(ctx context.Context, c *comment.Comment) error
}

type CommentCommands interface {
	// AddComment lets a renter comment on an item, gated on having a booking
	// of that item whose rental period has already begun.
	AddComment(ctx context.Context, authorID, itemID uuid.UUID, text string) (*queries.CommentView, error)
}

type commentCommandsImpl struct {
	repo     CommentRepository
	bookings BookingRepository
	users    shared.UserReader
	items    shared.ItemReader
	clock    clock.Clock
}

func NewCommentCommands(
	repo CommentRepository,
	bookings BookingRepository,
	users shared.UserReader,
	items shared.ItemReader,
	clock clock.Clock,
) CommentCommands {
	return &commentCommandsImpl{
		repo:     repo,
		bookings: bookings,
		users:    users,
		items:    items,
		clock:    clock,
	}
}

func (c *commentCommandsImpl) AddComment(ctx context.Context, authorID, itemID uuid.UUID, text string) (*queries.CommentView, error) {
	author, err := c.users.FindByID(ctx, authorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if _, err := c.items.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	now := c.clock.Now()
	started, err := c.bookings.ExistsStartedBooking(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !started {
		return nil, ErrCommentNotAllowed
	}

	cm, err := comment.NewComment(now, itemID, authorID, author.Name, text)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidComment)
	}

	if err := c.repo.Create(ctx, cm); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &queries.CommentView{
		ID:         cm.ID(),
		ItemID:     cm.ItemID(),
		AuthorName: cm.AuthorName(),
		Text:       cm.Text(),
		Created:    cm.CreatedAt(),
	}, nil
}
