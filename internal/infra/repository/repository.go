package repository

import (
	"errors"
	"log/slog"

	"rentshare/internal/infra"
	"rentshare/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// errNoRowsAffected marks updates that matched no row; classified as not found.
var errNoRowsAffected = pgx.ErrNoRows

// classify maps a pgx error to a RepositoryError kind.
func classify(logger *slog.Logger, msg string, err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr(logger, infra.KindNotFound, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return infra.WrapRepoErr(logger, infra.KindDuplicateKey, msg, err)
		case pgForeignKeyViolation:
			return infra.WrapRepoErr(logger, infra.KindForeignKeyViolated, msg, err)
		}
	}

	return infra.WrapRepoErr(logger, infra.KindDBFailure, msg, err)
}
