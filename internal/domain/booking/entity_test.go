//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rentshare/internal/domain/booking"
	"rentshare/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type periodCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, b.ItemID, actual.ItemID())
		assert.Equal(t, b.BookerID, actual.BookerID())
		assert.Equal(t, booking.StatusWaiting, actual.Status())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("empty status defaults to WAITING", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().WithStatus("").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, booking.StatusWaiting, actual.Status())
	})

	t.Run("period validation", func(t *testing.T) {
		runPeriodCases(t, []periodCase{
			{
				name: "end before start",
				mutate: func(b *builder.BookingBuilder) {
					b.WithPeriod(b.Now.Add(48*time.Hour), b.Now.Add(24*time.Hour))
				},
				errIs: booking.ErrEndNotAfterStart,
			},
			{
				name: "end equals start",
				mutate: func(b *builder.BookingBuilder) {
					b.WithPeriod(b.Now.Add(24*time.Hour), b.Now.Add(24*time.Hour))
				},
				errIs: booking.ErrEndNotAfterStart,
			},
			{
				name: "start in the past",
				mutate: func(b *builder.BookingBuilder) {
					b.WithPeriod(b.Now.Add(-time.Hour), b.Now.Add(24*time.Hour))
				},
				errIs: booking.ErrStartInPast,
			},
			{
				name: "start exactly at now is admitted",
				mutate: func(b *builder.BookingBuilder) {
					b.WithPeriod(b.Now, b.Now.Add(24*time.Hour))
				},
			},
			{
				name: "future period",
				mutate: func(b *builder.BookingBuilder) {
					b.WithPeriod(b.Now.Add(time.Hour), b.Now.Add(2*time.Hour))
				},
			},
		})
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := builder.NewBookingBuilder().WithStatus("CANCELLED").BuildDomain()
		assert.ErrorIs(t, err, booking.ErrInvalidStatus)
	})
}

func runPeriodCases(t *testing.T, cases []periodCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingBuilder().With(tc.mutate)
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestValidateDraft(t *testing.T) {
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	t.Run("complete draft passes", func(t *testing.T) {
		assert.NoError(t, booking.ValidateDraft(uuid.New(), &start, &end))
	})

	t.Run("missing item id", func(t *testing.T) {
		err := booking.ValidateDraft(uuid.Nil, &start, &end)
		assert.ErrorIs(t, err, booking.ErrIncompleteRequest)
		assert.Contains(t, err.Error(), "item id is missing")
	})

	t.Run("all problems reported at once", func(t *testing.T) {
		err := booking.ValidateDraft(uuid.Nil, nil, nil)
		require.ErrorIs(t, err, booking.ErrIncompleteRequest)
		assert.Contains(t, err.Error(), "item id is missing")
		assert.Contains(t, err.Error(), "start date is missing")
		assert.Contains(t, err.Error(), "end date is missing")
	})

	t.Run("zero times count as missing", func(t *testing.T) {
		var zero time.Time
		err := booking.ValidateDraft(uuid.New(), &zero, &end)
		assert.ErrorIs(t, err, booking.ErrIncompleteRequest)
	})
}

func TestBookingDecide(t *testing.T) {
	t.Run("approve a waiting booking", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()
		require.NoError(t, b.Decide(true))
		assert.Equal(t, booking.StatusApproved, b.Status())
	})

	t.Run("reject a waiting booking", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()
		require.NoError(t, b.Decide(false))
		assert.Equal(t, booking.StatusRejected, b.Status())
	})

	t.Run("approved booking cannot be decided again", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusApproved).BuildReconstructed()
		err := b.Decide(false)
		assert.ErrorIs(t, err, booking.ErrAlreadyApproved)
		assert.Equal(t, booking.StatusApproved, b.Status())
	})

	t.Run("rejected can be decided again", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusRejected).BuildReconstructed()
		require.NoError(t, b.Decide(true))
		assert.Equal(t, booking.StatusApproved, b.Status())
	})
}

func TestParseState(t *testing.T) {
	cases := []struct {
		raw      string
		expected booking.State
		errIs    error
	}{
		{raw: "", expected: booking.StateAll},
		{raw: "ALL", expected: booking.StateAll},
		{raw: "current", expected: booking.StateCurrent},
		{raw: "Past", expected: booking.StatePast},
		{raw: "FUTURE", expected: booking.StateFuture},
		{raw: "waiting", expected: booking.StateWaiting},
		{raw: "REJECTED", expected: booking.StateRejected},
		{raw: "UNSUPPORTED_STATUS", errIs: booking.ErrUnsupportedState},
		{raw: "garbage", errIs: booking.ErrUnsupportedState},
	}

	for _, tc := range cases {
		t.Run("state "+tc.raw, func(t *testing.T) {
			st, err := booking.ParseState(tc.raw)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, st)
		})
	}
}
