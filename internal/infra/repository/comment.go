package repository

import (
	"context"
	"log/slog"

	"rentshare/internal/domain/comment"
	"rentshare/internal/pkg/pgconv"
	"rentshare/internal/usecase/commands"
	"rentshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type commentRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCommentRepository(pool *pgxpool.Pool, logger *slog.Logger) commands.CommentRepository {
	return &commentRepository{pool: pool, logger: logger}
}

func (r *commentRepository) Create(ctx context.Context, c *comment.Comment) error {
	const query = `
		INSERT INTO comments (id, item_id, author_id, author_name, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(c.ID()),
		pgconv.UUIDToPgtype(c.ItemID()),
		pgconv.UUIDToPgtype(c.AuthorID()),
		c.AuthorName(),
		c.Text(),
		c.CreatedAt(),
	)
	if err != nil {
		return classify(r.logger, "failed to create comment", err)
	}
	return nil
}

type commentReadStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCommentReadStore(pool *pgxpool.Pool, logger *slog.Logger) queries.CommentReadStore {
	return &commentReadStore{pool: pool, logger: logger}
}

func (r *commentReadStore) ListForItems(ctx context.Context, itemIDs []uuid.UUID) ([]queries.CommentView, error) {
	const query = `
		SELECT id, item_id, author_name, text, created_at
		FROM comments
		WHERE item_id = ANY($1::uuid[])
		ORDER BY created_at`

	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, classify(r.logger, "failed to list comments", err)
	}
	defer rows.Close()

	var views []queries.CommentView
	for rows.Next() {
		var (
			id     pgtype.UUID
			itemID pgtype.UUID
			view   queries.CommentView
		)
		if err := rows.Scan(&id, &itemID, &view.AuthorName, &view.Text, &view.Created); err != nil {
			return nil, classify(r.logger, "failed to scan comment", err)
		}
		view.ID = uuid.UUID(id.Bytes)
		view.ItemID = uuid.UUID(itemID.Bytes)
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(r.logger, "failed to iterate comments", err)
	}
	return views, nil
}
