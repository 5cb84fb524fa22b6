// Package timeline classifies hackathon registration windows and start
// proximity against a caller-supplied clock, and renders the human-readable
// timeline labels the UI shows.
package timeline

import (
	"fmt"
	"math"
	"time"

	"github.com/Jethin10/Hack-FInder/models"
)

const dayDuration = 24 * time.Hour

// ParseTimestamp parses the ISO-8601 strings the ingestion writes. Date-only
// values are accepted as midnight UTC.
func ParseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable timestamp %q: %w", value, err)
	}
	return ts, nil
}

// WithinRegistrationWindow reports whether a registration that must close
// within withinDays days is currently open. withinDays < 1 disables the
// filter entirely. Unparseable timestamps fail closed.
//
// Only currently open registrations can match: events whose window has
// already closed, or not yet opened, are excluded no matter how near the
// deadline is.
func WithinRegistrationWindow(startISO, finalISO string, withinDays int, now time.Time) bool {
	if withinDays < 1 {
		return true
	}

	start, err := ParseTimestamp(startISO)
	if err != nil {
		return false
	}
	final, err := ParseTimestamp(finalISO)
	if err != nil {
		return false
	}

	if final.Before(now) {
		return false
	}
	if start.After(now) {
		return false
	}

	maxClose := now.Add(time.Duration(withinDays) * dayDuration)
	return !final.After(maxClose)
}

// StartProximity returns the signed hours until the event starts (negative
// once started) and whether now falls inside [start, final] inclusive.
// Unparseable timestamps yield the zero classification.
func StartProximity(startISO, finalISO string, now time.Time) (startsInHours int, isHappeningNow bool) {
	start, err := ParseTimestamp(startISO)
	if err != nil {
		return 0, false
	}
	final, err := ParseTimestamp(finalISO)
	if err != nil {
		return 0, false
	}

	startsInHours = int(math.Round(start.Sub(now).Hours()))
	isHappeningNow = !now.Before(start) && !now.After(final)
	return startsInHours, isHappeningNow
}

// MatchesStartProximity applies a start-proximity bucket to a classification.
// An event that already started can only match happeningNow or any, since
// its startsInHours is zero or negative.
func MatchesStartProximity(filter models.StartProximityFilter, startsInHours int, isHappeningNow bool) bool {
	switch filter {
	case models.StartProximityHappeningNow:
		return isHappeningNow
	case models.StartProximityLt48Hours:
		return startsInHours > 0 && startsInHours <= 48
	case models.StartProximityNextWeek:
		return startsInHours > 48 && startsInHours <= 7*24
	default:
		return true
	}
}

// MatchesTimeToFinal applies a time-to-final bucket to the precomputed
// event-window length. The oneWeek and oneMonthPlus buckets leave the
// (7, 30] day range unmatched on purpose; "any" is the only bucket that
// covers it.
func MatchesTimeToFinal(filter models.TimeToFinalFilter, daysToFinal int) bool {
	switch filter {
	case models.TimeToFinalLt3Days:
		return daysToFinal < 3
	case models.TimeToFinalOneWeek:
		return daysToFinal >= 3 && daysToFinal <= 7
	case models.TimeToFinalOneMonthPlus:
		return daysToFinal > 30
	default:
		return true
	}
}

// Description is the presentational summary of an event timeline.
type Description struct {
	RegistrationStatus string `json:"registrationStatus"`
	StartsLabel        string `json:"startsLabel"`
	DeadlineLabel      string `json:"deadlineLabel"`
	WindowLabel        string `json:"windowLabel"`
}

func utcDay(ts time.Time) time.Time {
	year, month, day := ts.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daySpan(from, to time.Time) int {
	return int(math.Round(utcDay(to).Sub(utcDay(from)).Hours() / 24))
}

func formatDay(ts time.Time) string {
	return ts.UTC().Format("Jan 2, 2006")
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

func registrationStatus(start, final, now time.Time) string {
	if now.Before(start) {
		days := daySpan(now, start)
		if days < 1 {
			days = 1
		}
		return fmt.Sprintf("Registration opens in %s", pluralize(days, "day", "days"))
	}
	if !now.After(final) {
		return "Registration open"
	}
	return "Registration closed"
}

// Describe renders the registration status and calendar labels for an event
// window. Unparseable timestamps degrade to the zero time, never an error.
func Describe(startISO, finalISO string, now time.Time) Description {
	start, _ := ParseTimestamp(startISO)
	final, _ := ParseTimestamp(finalISO)

	window := daySpan(start, final)
	if window < 1 {
		window = 1
	}

	return Description{
		RegistrationStatus: registrationStatus(start, final, now),
		StartsLabel:        fmt.Sprintf("Registration opens %s", formatDay(start)),
		DeadlineLabel:      fmt.Sprintf("Registration closes %s", formatDay(final)),
		WindowLabel:        fmt.Sprintf("%d-day window", window),
	}
}
