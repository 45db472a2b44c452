// internal/domain/checkout/schedule.go
package checkout

import (
	"fmt"
	"strconv"
	"time"

	"github.com/your-org/coralstore-backend/internal/domain/catalog"
)

// ValidateShipDate checks a requested delivery date against the
// merchant's shipping calendar: allowed weekdays, blackout dates, and
// the maximum booking window. Pickup orders carry no date and skip
// these rules entirely.
func ValidateShipDate(requested time.Time, settings *catalog.CheckoutSettings, maxWindowFallback int, now time.Time) error {
	day := requested.Truncate(24 * time.Hour)
	today := now.Truncate(24 * time.Hour)

	if day.Before(today) {
		return &ShipDateError{Reason: "The requested shipping date is in the past."}
	}

	window := maxWindowFallback
	if settings != nil && settings.MaxBookingWindowDays > 0 {
		window = settings.MaxBookingWindowDays
	}
	if window > 0 && day.After(today.AddDate(0, 0, window)) {
		return &ShipDateError{
			Reason: fmt.Sprintf("Shipping dates can be booked at most %d days ahead.", window),
		}
	}

	if settings != nil && len(settings.AllowedShippingDays) > 0 && !weekdayAllowed(day.Weekday(), settings.AllowedShippingDays) {
		return &ShipDateError{
			Reason: fmt.Sprintf("We do not ship on %ss.", day.Weekday()),
		}
	}

	if settings != nil {
		dateStr := day.Format("2006-01-02")
		for _, blackout := range settings.BlackoutDates {
			if blackout == dateStr {
				return &ShipDateError{
					Reason: fmt.Sprintf("Shipping is unavailable on %s.", dateStr),
				}
			}
		}
	}

	return nil
}

// weekdayAllowed matches against the settings' weekday numbers,
// "0" = Sunday through "6" = Saturday.
func weekdayAllowed(weekday time.Weekday, allowed []string) bool {
	for _, a := range allowed {
		if n, err := strconv.Atoi(a); err == nil && time.Weekday(n) == weekday {
			return true
		}
	}
	return false
}
