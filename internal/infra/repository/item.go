package repository

import (
	"context"
	"log/slog"
	"time"

	"rentshare/internal/domain/item"
	"rentshare/internal/pkg/pgconv"
	"rentshare/internal/usecase/commands"
	"rentshare/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type itemRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewItemRepository(pool *pgxpool.Pool, logger *slog.Logger) commands.ItemRepository {
	return &itemRepository{pool: pool, logger: logger}
}

func (r *itemRepository) Create(ctx context.Context, i *item.Item) error {
	const query = `
		INSERT INTO items (id, owner_id, name, description, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(i.ID()),
		pgconv.UUIDToPgtype(i.OwnerID()),
		i.Name(),
		i.Description(),
		i.Available(),
		i.CreatedAt(),
		i.UpdatedAt(),
	)
	if err != nil {
		return classify(r.logger, "failed to create item", err)
	}
	return nil
}

func (r *itemRepository) Update(ctx context.Context, i *item.Item) error {
	const query = `
		UPDATE items
		SET name = $2, description = $3, available = $4, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(i.ID()),
		i.Name(),
		i.Description(),
		i.Available(),
	)
	if err != nil {
		return classify(r.logger, "failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return classify(r.logger, "item not found for update", errNoRowsAffected)
	}
	return nil
}

func (r *itemRepository) FindByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	const query = `
		SELECT id, owner_id, name, description, available, created_at, updated_at
		FROM items
		WHERE id = $1`

	var row itemRow
	err := r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(
		&row.ID, &row.OwnerID, &row.Name, &row.Description, &row.Available,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, classify(r.logger, "failed to find item", err)
	}
	return row.toDomain(), nil
}

type itemLookup struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewItemLookup(pool *pgxpool.Pool, logger *slog.Logger) shared.ItemReader {
	return &itemLookup{pool: pool, logger: logger}
}

func (r *itemLookup) FindByID(ctx context.Context, id uuid.UUID) (*shared.ItemSnapshot, error) {
	const query = `
		SELECT id, owner_id, name, available
		FROM items
		WHERE id = $1`

	var (
		itemID  pgtype.UUID
		ownerID pgtype.UUID
		snap    shared.ItemSnapshot
	)
	err := r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(
		&itemID, &ownerID, &snap.Name, &snap.Available,
	)
	if err != nil {
		return nil, classify(r.logger, "failed to find item", err)
	}
	snap.ID = uuid.UUID(itemID.Bytes)
	snap.OwnerID = uuid.UUID(ownerID.Bytes)
	return &snap, nil
}

func (r *itemLookup) FindIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	const query = `
		SELECT id
		FROM items
		WHERE owner_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, pgconv.UUIDToPgtype(ownerID))
	if err != nil {
		return nil, classify(r.logger, "failed to list item ids", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, classify(r.logger, "failed to scan item id", err)
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, classify(r.logger, "failed to iterate item ids", err)
	}
	return ids, nil
}

type itemRow struct {
	ID          pgtype.UUID
	OwnerID     pgtype.UUID
	Name        string
	Description string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (row itemRow) toDomain() *item.Item {
	return item.Reconstruct(
		uuid.UUID(row.ID.Bytes),
		uuid.UUID(row.OwnerID.Bytes),
		row.Name,
		row.Description,
		row.Available,
		row.CreatedAt,
		row.UpdatedAt,
	)
}
