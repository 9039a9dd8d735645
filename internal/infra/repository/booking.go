package repository

import (
	"context"
	"log/slog"
	"time"

	"rentshare/internal/domain/booking"
	"rentshare/internal/pkg/pgconv"
	"rentshare/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type bookingRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewBookingRepository(pool *pgxpool.Pool, logger *slog.Logger) commands.BookingRepository {
	return &bookingRepository{pool: pool, logger: logger}
}

func (r *bookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (id, item_id, booker_id, start_at, end_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(b.ID()),
		pgconv.UUIDToPgtype(b.ItemID()),
		pgconv.UUIDToPgtype(b.BookerID()),
		b.Period().Start(),
		b.Period().End(),
		b.Status().String(),
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	if err != nil {
		return classify(r.logger, "failed to create booking", err)
	}
	return nil
}

func (r *bookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	const query = `
		UPDATE bookings
		SET status = $2, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		pgconv.UUIDToPgtype(b.ID()),
		b.Status().String(),
	)
	if err != nil {
		return classify(r.logger, "failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return classify(r.logger, "booking not found for update", errNoRowsAffected)
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT id, item_id, booker_id, start_at, end_at, status, created_at, updated_at
		FROM bookings
		WHERE id = $1`

	var row bookingRow
	err := r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(
		&row.ID, &row.ItemID, &row.BookerID, &row.StartAt, &row.EndAt,
		&row.Status, &row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return nil, classify(r.logger, "failed to find booking", err)
	}
	return row.toDomain(), nil
}

func (r *bookingRepository) ExistsStartedBooking(ctx context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE booker_id = $1 AND item_id = $2 AND start_at < $3
		)`

	var exists bool
	err := r.pool.QueryRow(ctx, query,
		pgconv.UUIDToPgtype(bookerID),
		pgconv.UUIDToPgtype(itemID),
		now,
	).Scan(&exists)
	if err != nil {
		return false, classify(r.logger, "failed to check started booking", err)
	}
	return exists, nil
}

type bookingRow struct {
	ID        pgtype.UUID
	ItemID    pgtype.UUID
	BookerID  pgtype.UUID
	StartAt   time.Time
	EndAt     time.Time
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (row bookingRow) toDomain() *booking.Booking {
	return booking.Reconstruct(
		uuid.UUID(row.ID.Bytes),
		uuid.UUID(row.ItemID.Bytes),
		uuid.UUID(row.BookerID.Bytes),
		booking.NewPeriod(row.StartAt, row.EndAt),
		booking.Status(row.Status),
		row.CreatedAt,
		row.UpdatedAt,
	)
}
