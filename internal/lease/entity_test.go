// AngelaMos | 2026
// entity_test.go

package lease

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/dwellingly-api/internal/timeutil"
)

func mkLease(id string, start, end, created time.Time) Lease {
	return Lease{
		ID:            id,
		TenantID:      "tenant-1",
		DateTimeStart: start,
		DateTimeEnd:   end,
		CreatedAt:     created,
	}
}

func TestContainsInstant_StartInclusiveEndExclusive(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	l := mkLease("l1", start, end, start)

	assert.True(t, l.ContainsInstant(start), "start boundary is covered")
	assert.True(t, l.ContainsInstant(start.Add(time.Hour)))
	assert.False(t, l.ContainsInstant(end), "end boundary is not covered")
	assert.False(t, l.ContainsInstant(start.Add(-time.Second)))
}

func TestOverlaps(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	l := mkLease("l1", start, end, start)

	assert.True(t, l.Overlaps(
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	))

	// Intervals touching only at the boundary do not overlap.
	assert.False(t, l.Overlaps(
		end,
		end.AddDate(0, 6, 0),
	))
	assert.False(t, l.Overlaps(
		start.AddDate(-1, 0, 0),
		start,
	))
}

func TestActiveAt_NoLeases(t *testing.T) {
	assert.Nil(t, ActiveAt(nil, time.Now()))
	assert.Nil(t, ActiveAt([]Lease{}, time.Now()))
}

func TestActiveAt_SingleCoveringLease(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	leases := []Lease{mkLease("l1", start, end, start)}

	active := ActiveAt(leases, time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC))

	require.NotNil(t, active)
	assert.Equal(t, "l1", active.ID)
}

func TestActiveAt_ExpiredLeaseIsSkipped(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	leases := []Lease{mkLease("l1", start, end, start)}

	assert.Nil(t, ActiveAt(leases, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
}

// A tenant whose old agreement lapsed yesterday and whose renewal runs
// for another year is active on the renewal only.
func TestActiveAt_RenewalWindow(t *testing.T) {
	lapsed := mkLease("lapsed",
		timeutil.Yesterday().AddDate(-1, 0, 0),
		timeutil.Yesterday(),
		timeutil.Yesterday().AddDate(-1, 0, 0),
	)
	renewal := mkLease("renewal",
		timeutil.Yesterday(),
		timeutil.OneYearFromNow(),
		timeutil.Yesterday(),
	)

	active := ActiveAt([]Lease{lapsed, renewal}, time.Now().UTC())
	require.NotNil(t, active)
	assert.Equal(t, "renewal", active.ID)
}

// When two intervals both cover the moment, the lease created last wins:
// a renegotiated agreement supersedes the one it replaced.
func TestActiveAt_MostRecentlyCreatedWins(t *testing.T) {
	asOf := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	older := mkLease("older",
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
	)
	newer := mkLease("newer",
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
	)

	active := ActiveAt([]Lease{older, newer}, asOf)
	require.NotNil(t, active)
	assert.Equal(t, "newer", active.ID)

	// Order in the slice must not matter.
	active = ActiveAt([]Lease{newer, older}, asOf)
	require.NotNil(t, active)
	assert.Equal(t, "newer", active.ID)
}
