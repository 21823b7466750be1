package listing

import (
	"fmt"
	"time"
)

// Direction selects forward (upcoming) or backward (past) cohorts.
type Direction string

const (
	Upcoming Direction = "upcoming"
	Past     Direction = "past"
)

// Cohort names one time bucket.
type Cohort string

const (
	Today      Cohort = "today"
	NextDay    Cohort = "next_day"
	NextWeek   Cohort = "next_week"
	BeyondWeek Cohort = "beyond_week"
	Yesterday  Cohort = "yesterday"
	TwoDaysAgo Cohort = "two_days_ago"
	LastWeek   Cohort = "last_week"
	Earlier    Cohort = "earlier"
)

var cohortKeys = map[Cohort]string{
	Today:      "today_events",
	NextDay:    "a_day_after_events",
	NextWeek:   "next_week_events",
	BeyondWeek: "upcoming_events",
	Yesterday:  "yesterday_events",
	TwoDaysAgo: "a_day_before_events",
	LastWeek:   "last_week_events",
	Earlier:    "previous_events",
}

// Key is the response key the cohort is returned under.
func (c Cohort) Key() string {
	if k, ok := cohortKeys[c]; ok {
		return k
	}
	return string(c) + "_events"
}

// Range is a half-open time interval [From, To). A zero bound is unbounded.
type Range struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls in the range.
func (r Range) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

// Window is a named cohort range.
type Window struct {
	Cohort Cohort
	Range
}

// StartOfDay returns local midnight of now in loc.
func StartOfDay(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Windows returns the four cohorts of a direction ordered by distance from day,
// which must be a local midnight. Adjacent windows share their boundary so the
// set is disjoint and covers the whole direction.
func Windows(day time.Time, dir Direction) []Window {
	at := func(n int) time.Time { return day.AddDate(0, 0, n) }
	if dir == Past {
		return []Window{
			{Yesterday, Range{From: at(-1), To: day}},
			{TwoDaysAgo, Range{From: at(-2), To: at(-1)}},
			{LastWeek, Range{From: at(-7), To: at(-2)}},
			{Earlier, Range{To: at(-7)}},
		}
	}
	return []Window{
		{Today, Range{From: day, To: at(1)}},
		{NextDay, Range{From: at(1), To: at(2)}},
		{NextWeek, Range{From: at(2), To: at(8)}},
		{BeyondWeek, Range{From: at(8)}},
	}
}

// Classify returns the cohort of t among windows.
func Classify(t time.Time, windows []Window) (Cohort, bool) {
	for _, w := range windows {
		if w.Contains(t) {
			return w.Cohort, true
		}
	}
	return "", false
}

// singleCohorts maps the horizontal list_type names to their cohort position.
var singleCohorts = map[string]int{
	"day":         0,
	"next_day":    1,
	"np_day":      1,
	"week":        2,
	"beyond_week": 3,
	"all":         3,
}

// ResolveWindow picks one cohort by list type name and direction.
func ResolveWindow(day time.Time, name string, dir Direction) (Window, error) {
	if dir != Upcoming && dir != Past {
		return Window{}, fmt.Errorf("unknown direction %q", dir)
	}
	idx, ok := singleCohorts[name]
	if !ok {
		return Window{}, fmt.Errorf("unknown list type %q", name)
	}
	return Windows(day, dir)[idx], nil
}
