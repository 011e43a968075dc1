package database

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var activeSeatIndexRe = regexp.MustCompile(`(?is)CREATE UNIQUE INDEX IF NOT EXISTS bookings_active_seat_uidx\s+ON bookings \(([^)]*)\)\s+WHERE status IN \(([^)]*)\)`)

func TestMigrations_ActiveSeatIndexMatchesActiveStatuses(t *testing.T) {
	raw, err := fs.ReadFile(migrationsFS, "migrations/000001_init_schema.up.sql")
	require.NoError(t, err)

	match := activeSeatIndexRe.FindStringSubmatch(string(raw))
	require.Len(t, match, 3, "bookings_active_seat_uidx must be a partial unique index")

	columns := splitList(match[1])
	assert.Equal(t, []string{"salon_id", "booking_date", "time_slot", "seat_number"}, columns)

	statuses := splitList(match[2])
	want := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		want = append(want, string(s))
	}
	assert.ElementsMatch(t, want, statuses)
}

func TestMigrations_EveryUpHasDown(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}
	for name := range names {
		if strings.HasSuffix(name, ".up.sql") {
			assert.True(t, names[strings.TrimSuffix(name, ".up.sql")+".down.sql"], name)
		}
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.Trim(strings.TrimSpace(p), "'"))
	}
	return out
}
