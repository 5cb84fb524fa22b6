package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jethin10/Hack-FInder/models"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestWithinRegistrationWindow_DisabledThreshold(t *testing.T) {
	now := mustTime(t, "2026-03-01T00:00:00Z")

	assert.True(t, WithinRegistrationWindow("2026-02-20T00:00:00Z", "2026-03-03T00:00:00Z", 0, now))
	assert.True(t, WithinRegistrationWindow("garbage", "also garbage", 0, now))
	assert.True(t, WithinRegistrationWindow("2099-01-01T00:00:00Z", "2000-01-01T00:00:00Z", -5, now))
}

func TestWithinRegistrationWindow_OpenAndClosingSoon(t *testing.T) {
	now := mustTime(t, "2026-03-01T00:00:00Z")

	assert.True(t, WithinRegistrationWindow("2026-02-20T00:00:00Z", "2026-03-03T00:00:00Z", 5, now))
}

func TestWithinRegistrationWindow_ClosesTooFarOut(t *testing.T) {
	now := mustTime(t, "2026-03-01T00:00:00Z")

	assert.False(t, WithinRegistrationWindow("2026-02-20T00:00:00Z", "2026-03-20T00:00:00Z", 5, now))
}

func TestWithinRegistrationWindow_AlreadyClosed(t *testing.T) {
	now := mustTime(t, "2026-03-01T00:00:00Z")

	for _, withinDays := range []int{1, 5, 60} {
		assert.False(t, WithinRegistrationWindow("2026-01-01T00:00:00Z", "2026-02-01T00:00:00Z", withinDays, now))
	}
}

func TestWithinRegistrationWindow_NotYetOpen(t *testing.T) {
	now := mustTime(t, "2026-03-01T00:00:00Z")

	for _, withinDays := range []int{1, 5, 60} {
		assert.False(t, WithinRegistrationWindow("2026-03-02T00:00:00Z", "2026-03-03T00:00:00Z", withinDays, now))
	}
}

func TestWithinRegistrationWindow_FailsClosedOnBadTimestamps(t *testing.T) {
	now := mustTime(t, "2026-03-01T00:00:00Z")

	assert.False(t, WithinRegistrationWindow("not a date", "2026-03-03T00:00:00Z", 5, now))
	assert.False(t, WithinRegistrationWindow("2026-02-20T00:00:00Z", "not a date", 5, now))
}

func TestWithinRegistrationWindow_InclusiveCloseBound(t *testing.T) {
	now := mustTime(t, "2026-03-01T00:00:00Z")

	// Closes exactly withinDays days from now.
	assert.True(t, WithinRegistrationWindow("2026-02-20T00:00:00Z", "2026-03-06T00:00:00Z", 5, now))
	// One second past the bound.
	assert.False(t, WithinRegistrationWindow("2026-02-20T00:00:00Z", "2026-03-06T00:00:01Z", 5, now))
}

func TestStartProximity_Classification(t *testing.T) {
	now := mustTime(t, "2026-03-01T00:00:00Z")

	hours, happening := StartProximity("2026-03-02T00:00:00Z", "2026-03-05T00:00:00Z", now)
	assert.Equal(t, 24, hours)
	assert.False(t, happening)

	hours, happening = StartProximity("2026-02-28T00:00:00Z", "2026-03-05T00:00:00Z", now)
	assert.Equal(t, -24, hours)
	assert.True(t, happening)

	// Inclusive on both window ends.
	_, happening = StartProximity("2026-03-01T00:00:00Z", "2026-03-05T00:00:00Z", now)
	assert.True(t, happening)
	_, happening = StartProximity("2026-02-20T00:00:00Z", "2026-03-01T00:00:00Z", now)
	assert.True(t, happening)

	hours, happening = StartProximity("bad", "2026-03-05T00:00:00Z", now)
	assert.Equal(t, 0, hours)
	assert.False(t, happening)
}

func TestMatchesStartProximity(t *testing.T) {
	cases := []struct {
		name          string
		filter        models.StartProximityFilter
		startsInHours int
		happeningNow  bool
		want          bool
	}{
		{"any always matches", models.StartProximityAny, -500, false, true},
		{"happening now", models.StartProximityHappeningNow, -3, true, true},
		{"not happening now", models.StartProximityHappeningNow, 10, false, false},
		{"lt48 lower bound open", models.StartProximityLt48Hours, 0, false, false},
		{"lt48 in range", models.StartProximityLt48Hours, 48, false, true},
		{"lt48 out of range", models.StartProximityLt48Hours, 49, false, false},
		{"next week in range", models.StartProximityNextWeek, 168, false, true},
		{"next week below", models.StartProximityNextWeek, 48, false, false},
		{"next week above", models.StartProximityNextWeek, 169, false, false},
		{"already started cannot match lt48", models.StartProximityLt48Hours, -1, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchesStartProximity(tc.filter, tc.startsInHours, tc.happeningNow))
		})
	}
}

func TestMatchesTimeToFinal(t *testing.T) {
	assert.True(t, MatchesTimeToFinal(models.TimeToFinalLt3Days, 2))
	assert.False(t, MatchesTimeToFinal(models.TimeToFinalLt3Days, 3))

	assert.True(t, MatchesTimeToFinal(models.TimeToFinalOneWeek, 3))
	assert.True(t, MatchesTimeToFinal(models.TimeToFinalOneWeek, 7))
	assert.False(t, MatchesTimeToFinal(models.TimeToFinalOneWeek, 8))

	assert.True(t, MatchesTimeToFinal(models.TimeToFinalOneMonthPlus, 31))
	assert.False(t, MatchesTimeToFinal(models.TimeToFinalOneMonthPlus, 30))

	// 8..30 day events fall in the gap between the named buckets.
	for _, days := range []int{8, 15, 30} {
		assert.False(t, MatchesTimeToFinal(models.TimeToFinalOneWeek, days))
		assert.False(t, MatchesTimeToFinal(models.TimeToFinalOneMonthPlus, days))
		assert.True(t, MatchesTimeToFinal(models.TimeToFinalAny, days))
	}
}

func TestDescribe_BeforeOpen(t *testing.T) {
	now := mustTime(t, "2026-02-26T12:00:00Z")

	desc := Describe("2026-03-01T00:00:00Z", "2026-03-03T00:00:00Z", now)
	assert.Equal(t, "Registration opens in 3 days", desc.RegistrationStatus)
	assert.Equal(t, "Registration opens Mar 1, 2026", desc.StartsLabel)
	assert.Equal(t, "Registration closes Mar 3, 2026", desc.DeadlineLabel)
	assert.Equal(t, "2-day window", desc.WindowLabel)
}

func TestDescribe_OpensTomorrowUsesSingular(t *testing.T) {
	now := mustTime(t, "2026-02-28T06:00:00Z")

	desc := Describe("2026-03-01T00:00:00Z", "2026-03-03T00:00:00Z", now)
	assert.Equal(t, "Registration opens in 1 day", desc.RegistrationStatus)
}

func TestDescribe_OpenAndClosed(t *testing.T) {
	start, final := "2026-03-01T00:00:00Z", "2026-03-03T00:00:00Z"

	desc := Describe(start, final, mustTime(t, "2026-03-02T00:00:00Z"))
	assert.Equal(t, "Registration open", desc.RegistrationStatus)

	desc = Describe(start, final, mustTime(t, "2026-03-04T00:00:00Z"))
	assert.Equal(t, "Registration closed", desc.RegistrationStatus)
}

func TestDescribe_WindowFloorsAtOneDay(t *testing.T) {
	desc := Describe("2026-03-01T00:00:00Z", "2026-03-01T20:00:00Z", mustTime(t, "2026-03-01T01:00:00Z"))
	assert.Equal(t, "1-day window", desc.WindowLabel)
}

func TestParseTimestamp_DateOnlyFallback(t *testing.T) {
	ts, err := ParseTimestamp("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, mustTime(t, "2026-03-01T00:00:00Z"), ts)

	_, err = ParseTimestamp("next tuesday")
	assert.Error(t, err)
}
