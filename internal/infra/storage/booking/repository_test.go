package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TherapyBooking/internal/domain"
)

func TestOccupyingQuery(t *testing.T) {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	interval := domain.Interval{Start: start, End: start.Add(time.Hour)}

	t.Run("without exclusion", func(t *testing.T) {
		query, args, err := occupyingQuery(7, interval, nil, false).ToSql()
		require.NoError(t, err)

		assert.Equal(t,
			"SELECT "+strings.Join(columns, ", ")+" FROM bookings WHERE provider_id = $1 AND status <> $2 AND start_at < $3 AND end_at > $4 ORDER BY start_at ASC",
			query)
		assert.Equal(t, []interface{}{int64(7), domain.StatusRejected, interval.End, interval.Start}, args)
	})

	t.Run("reschedule excludes itself and locks rows", func(t *testing.T) {
		id := int64(42)
		query, args, err := occupyingQuery(7, interval, &id, true).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "AND id <> $5")
		assert.True(t, strings.HasSuffix(query, "FOR UPDATE"))
		assert.Equal(t, int64(42), args[4])
	})
}

func TestPartyQuery(t *testing.T) {
	t.Run("requester", func(t *testing.T) {
		query, args, err := partyQuery(domain.BookingsFilter{PartyID: 5, Role: domain.RoleRequester}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "WHERE requester_id = $1")
		assert.Contains(t, query, "ORDER BY start_at DESC, id DESC")
		assert.Equal(t, []interface{}{int64(5)}, args)
	})

	t.Run("provider with status", func(t *testing.T) {
		status := domain.StatusApproved
		query, args, err := partyQuery(domain.BookingsFilter{PartyID: 9, Role: domain.RoleProvider, Status: &status}).ToSql()
		require.NoError(t, err)

		assert.Contains(t, query, "WHERE provider_id = $1 AND status = $2")
		assert.Equal(t, []interface{}{int64(9), domain.StatusApproved}, args)
	})
}
