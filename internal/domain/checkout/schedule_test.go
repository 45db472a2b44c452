// internal/domain/checkout/schedule_test.go
package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/coralstore-backend/internal/domain/catalog"
)

func TestValidateShipDate(t *testing.T) {
	// Monday, March 2nd 2026
	now := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	settings := &catalog.CheckoutSettings{
		AllowedShippingDays:  []string{"1", "2", "3"}, // Mon, Tue, Wed
		BlackoutDates:        []string{"2026-03-10"},
		MaxBookingWindowDays: 14,
	}

	tests := []struct {
		name      string
		requested time.Time
		settings  *catalog.CheckoutSettings
		wantError string
	}{
		{
			name:      "allowed weekday inside window",
			requested: date(2026, 3, 9), // next Monday
			settings:  settings,
		},
		{
			name:      "same day is allowed",
			requested: date(2026, 3, 2),
			settings:  settings,
		},
		{
			name:      "past date rejected",
			requested: date(2026, 2, 27),
			settings:  settings,
			wantError: "in the past",
		},
		{
			name:      "beyond booking window rejected",
			requested: date(2026, 3, 17), // 15 days out, window is 14
			settings:  settings,
			wantError: "14 days ahead",
		},
		{
			name:      "disallowed weekday rejected",
			requested: date(2026, 3, 7), // Saturday
			settings:  settings,
			wantError: "do not ship on Saturdays",
		},
		{
			name:      "blackout date rejected",
			requested: date(2026, 3, 10), // Tuesday, normally allowed
			settings:  settings,
			wantError: "unavailable on 2026-03-10",
		},
		{
			name:      "nil settings only checks past and fallback window",
			requested: date(2026, 3, 7), // Saturday, no weekday rules apply
			settings:  nil,
		},
		{
			name:      "fallback window applies without settings",
			requested: date(2026, 5, 1),
			settings:  nil,
			wantError: "30 days ahead",
		},
		{
			name:      "empty allowed days permits any weekday",
			requested: date(2026, 3, 8), // Sunday
			settings:  &catalog.CheckoutSettings{MaxBookingWindowDays: 14},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShipDate(tt.requested, tt.settings, 30, now)
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			var dateErr *ShipDateError
			require.ErrorAs(t, err, &dateErr)
			assert.Contains(t, dateErr.Reason, tt.wantError)
		})
	}
}

func TestWeekdayAllowed(t *testing.T) {
	assert.True(t, weekdayAllowed(time.Sunday, []string{"0", "6"}))
	assert.True(t, weekdayAllowed(time.Saturday, []string{"0", "6"}))
	assert.False(t, weekdayAllowed(time.Wednesday, []string{"0", "6"}))
	assert.False(t, weekdayAllowed(time.Monday, []string{"not-a-number"}))
}
