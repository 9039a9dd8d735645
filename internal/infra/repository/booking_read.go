package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"rentshare/internal/domain/booking"
	"rentshare/internal/pkg/pgconv"
	"rentshare/internal/usecase/queries"
	"rentshare/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingViewSelect = `
	SELECT b.id, b.start_at, b.end_at, b.status,
	       u.id, u.name,
	       i.id, i.owner_id, i.name
	FROM bookings b
	JOIN users u ON u.id = b.booker_id
	JOIN items i ON i.id = b.item_id`

// partition is one entry of the state dispatch table. cond is a SQL predicate
// template; %[1]s is replaced with the placeholder bound to "now". Temporal
// partitions order by start, decided/waiting partitions by end.
type partition struct {
	cond     string
	needsNow bool
	order    string
}

var partitions = map[booking.State]partition{
	booking.StateAll:      {order: "b.start_at DESC"},
	booking.StateCurrent:  {cond: "b.start_at < %[1]s AND b.end_at > %[1]s", needsNow: true, order: "b.start_at DESC"},
	booking.StatePast:     {cond: "b.end_at < %[1]s", needsNow: true, order: "b.end_at DESC"},
	booking.StateFuture:   {cond: "b.start_at > %[1]s", needsNow: true, order: "b.start_at DESC"},
	booking.StateWaiting:  {cond: "b.status = 'WAITING'", order: "b.end_at DESC"},
	booking.StateRejected: {cond: "b.status = 'REJECTED'", order: "b.end_at DESC"},
}

type bookingReadStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewBookingReadStore(pool *pgxpool.Pool, logger *slog.Logger) queries.BookingReadStore {
	return &bookingReadStore{pool: pool, logger: logger}
}

func (r *bookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := bookingViewSelect + " WHERE b.id = $1"

	view, err := scanBookingView(r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)))
	if err != nil {
		return nil, classify(r.logger, "failed to find booking view", err)
	}
	return view, nil
}

func (r *bookingReadStore) ListByBooker(ctx context.Context, bookerID uuid.UUID, state booking.State, now time.Time, page *shared.Page) ([]*queries.BookingView, error) {
	return r.list(ctx, "b.booker_id = $1", []any{pgconv.UUIDToPgtype(bookerID)}, state, now, page)
}

func (r *bookingReadStore) ListByItems(ctx context.Context, itemIDs []uuid.UUID, state booking.State, now time.Time, page *shared.Page) ([]*queries.BookingView, error) {
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = id.String()
	}
	return r.list(ctx, "b.item_id = ANY($1::uuid[])", []any{ids}, state, now, page)
}

// list builds the scoped, partitioned query. Arguments are appended only when
// the partition actually binds them; Postgres refuses statements with unused
// placeholders.
func (r *bookingReadStore) list(ctx context.Context, scopeCond string, args []any, state booking.State, now time.Time, page *shared.Page) ([]*queries.BookingView, error) {
	p, ok := partitions[state]
	if !ok {
		p = partitions[booking.StateAll]
	}

	conds := []string{scopeCond}
	if p.cond != "" {
		cond := p.cond
		if p.needsNow {
			args = append(args, now)
			cond = fmt.Sprintf(cond, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, cond)
	}

	query := bookingViewSelect + " WHERE " + strings.Join(conds, " AND ") + " ORDER BY " + p.order
	if page != nil {
		args = append(args, page.Limit())
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, page.Offset())
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, classify(r.logger, "failed to list bookings", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, classify(r.logger, "failed to scan booking view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(r.logger, "failed to iterate bookings", err)
	}
	return views, nil
}

func (r *bookingReadStore) NextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*queries.BookingRef, error) {
	const query = `
		SELECT id, booker_id, start_at, end_at
		FROM bookings
		WHERE item_id = $1 AND status <> 'REJECTED' AND start_at > $2
		ORDER BY start_at ASC
		LIMIT 1`

	return r.findRef(ctx, query, itemID, now, "failed to find next booking")
}

func (r *bookingReadStore) LastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*queries.BookingRef, error) {
	const query = `
		SELECT id, booker_id, start_at, end_at
		FROM bookings
		WHERE item_id = $1 AND status <> 'REJECTED' AND start_at < $2
		ORDER BY start_at DESC
		LIMIT 1`

	return r.findRef(ctx, query, itemID, now, "failed to find last booking")
}

func (r *bookingReadStore) findRef(ctx context.Context, query string, itemID uuid.UUID, now time.Time, msg string) (*queries.BookingRef, error) {
	var (
		id       pgtype.UUID
		bookerID pgtype.UUID
		ref      queries.BookingRef
	)
	err := r.pool.QueryRow(ctx, query, pgconv.UUIDToPgtype(itemID), now).Scan(
		&id, &bookerID, &ref.Start, &ref.End,
	)
	if err != nil {
		return nil, classify(r.logger, msg, err)
	}
	ref.ID = uuid.UUID(id.Bytes)
	ref.BookerID = uuid.UUID(bookerID.Bytes)
	return &ref, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		id       pgtype.UUID
		bookerID pgtype.UUID
		itemID   pgtype.UUID
		ownerID  pgtype.UUID
		view     queries.BookingView
	)
	err := row.Scan(
		&id, &view.Start, &view.End, &view.Status,
		&bookerID, &view.Booker.Name,
		&itemID, &ownerID, &view.Item.Name,
	)
	if err != nil {
		return nil, err
	}
	view.ID = uuid.UUID(id.Bytes)
	view.Booker.ID = uuid.UUID(bookerID.Bytes)
	view.Item.ID = uuid.UUID(itemID.Bytes)
	view.Item.OwnerID = uuid.UUID(ownerID.Bytes)
	return &view, nil
}
