package repository

import (
	"context"
	"log/slog"

	"rentshare/internal/pkg/pgconv"
	"rentshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type itemReadStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewItemReadStore(pool *pgxpool.Pool, logger *slog.Logger) queries.ItemReadStore {
	return &itemReadStore{pool: pool, logger: logger}
}

func (r *itemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	const query = `
		SELECT id, owner_id, name, description, available
		FROM items
		WHERE id = $1`

	view, err := scanItemView(r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)))
	if err != nil {
		return nil, classify(r.logger, "failed to find item view", err)
	}
	return view, nil
}

func (r *itemReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.ItemView, error) {
	const query = `
		SELECT id, owner_id, name, description, available
		FROM items
		WHERE owner_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, pgconv.UUIDToPgtype(ownerID))
	if err != nil {
		return nil, classify(r.logger, "failed to list items", err)
	}
	defer rows.Close()

	var views []*queries.ItemView
	for rows.Next() {
		view, err := scanItemView(rows)
		if err != nil {
			return nil, classify(r.logger, "failed to scan item view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(r.logger, "failed to iterate items", err)
	}
	return views, nil
}

func (r *itemReadStore) SearchByText(ctx context.Context, text string) ([]*queries.ItemView, error) {
	const query = `
		SELECT id, owner_id, name, description, available
		FROM items
		WHERE available
		  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, text)
	if err != nil {
		return nil, classify(r.logger, "failed to search items", err)
	}
	defer rows.Close()

	var views []*queries.ItemView
	for rows.Next() {
		view, err := scanItemView(rows)
		if err != nil {
			return nil, classify(r.logger, "failed to scan item view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(r.logger, "failed to iterate items", err)
	}
	return views, nil
}

func scanItemView(row rowScanner) (*queries.ItemView, error) {
	var (
		id      pgtype.UUID
		ownerID pgtype.UUID
		view    queries.ItemView
	)
	err := row.Scan(&id, &ownerID, &view.Name, &view.Description, &view.Available)
	if err != nil {
		return nil, err
	}
	view.ID = uuid.UUID(id.Bytes)
	view.OwnerID = uuid.UUID(ownerID.Bytes)
	return &view, nil
}
