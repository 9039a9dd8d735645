package repository

import (
	"context"
	"log/slog"

	"rentshare/internal/pkg/pgconv"
	"rentshare/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewUserRepository(pool *pgxpool.Pool, logger *slog.Logger) shared.UserReader {
	return &userRepository{pool: pool, logger: logger}
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	const query = `
		SELECT id, name, email
		FROM users
		WHERE id = $1`

	var (
		userID pgtype.UUID
		snap   shared.UserSnapshot
	)
	err := r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(&userID, &snap.Name, &snap.Email)
	if err != nil {
		return nil, classify(r.logger, "failed to find user", err)
	}
	snap.ID = uuid.UUID(userID.Bytes)
	return &snap, nil
}
