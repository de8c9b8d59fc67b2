package utils

import (
	"fmt"
	"strings"
	"time"
)

// InvalidDate is what the formatting helpers return for input they cannot parse.
const InvalidDate = "Invalid Date"

const dateOnlyLayout = "2006-01-02"

// layouts carrying their own zone offset
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// layouts without an offset, read in the formatter's location
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// DateFormatter renders ISO-8601 strings for display in a fixed location.
// Day comparisons always happen in UTC regardless of the display location.
type DateFormatter struct {
	loc *time.Location
}

func NewDateFormatter(loc *time.Location) *DateFormatter {
	if loc == nil {
		loc = time.UTC
	}
	return &DateFormatter{loc: loc}
}

var utcFormatter = NewDateFormatter(time.UTC)

func (f *DateFormatter) Location() *time.Location { return f.loc }

// Parse reads an ISO-8601 timestamp or a bare YYYY-MM-DD date. Bare dates are
// UTC midnight; timestamps without an offset are taken in f's location.
func (f *DateFormatter) Parse(iso string) (time.Time, bool) {
	s := strings.TrimSpace(iso)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, f.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OrdinalSuffix returns the English ordinal suffix for a day of month.
func OrdinalSuffix(day int) string {
	if n := day % 100; n >= 11 && n <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// FormatShort renders the day of month with its suffix, e.g. "21st".
func (f *DateFormatter) FormatShort(iso string) string {
	t, ok := f.Parse(iso)
	if !ok {
		return InvalidDate
	}
	t = t.In(f.loc)
	return fmt.Sprintf("%d%s", t.Day(), OrdinalSuffix(t.Day()))
}

// FormatDate is FormatShort prefixed with the abbreviated month, e.g. "Sep 21st".
func (f *DateFormatter) FormatDate(iso string) string {
	t, ok := f.Parse(iso)
	if !ok {
		return InvalidDate
	}
	t = t.In(f.loc)
	return fmt.Sprintf("%s %d%s", t.Format("Jan"), t.Day(), OrdinalSuffix(t.Day()))
}

// FormatLong renders e.g. "Sunday September 21st, 2025".
func (f *DateFormatter) FormatLong(iso string) string {
	t, ok := f.Parse(iso)
	if !ok {
		return InvalidDate
	}
	t = t.In(f.loc)
	return fmt.Sprintf("%s %s %d%s, %d",
		t.Weekday(), t.Month(), t.Day(), OrdinalSuffix(t.Day()), t.Year())
}

func (f *DateFormatter) MonthName(iso string) string {
	t, ok := f.Parse(iso)
	if !ok {
		return InvalidDate
	}
	return t.In(f.loc).Month().String()
}

func (f *DateFormatter) DayOfWeek(iso string) string {
	t, ok := f.Parse(iso)
	if !ok {
		return InvalidDate
	}
	return t.In(f.loc).Weekday().String()
}

// IsSameDay reports whether both inputs fall on the same UTC calendar day.
// Unparsable input is never the same day as anything.
func (f *DateFormatter) IsSameDay(a, b string) bool {
	ta, ok := f.Parse(a)
	if !ok {
		return false
	}
	tb, ok := f.Parse(b)
	if !ok {
		return false
	}
	return IsSameDayTime(ta, tb)
}

// IsSameMonth compares a 1-based month against the UTC month of iso.
func (f *DateFormatter) IsSameMonth(month int, iso string) bool {
	t, ok := f.Parse(iso)
	if !ok {
		return false
	}
	return time.Month(month) == t.UTC().Month()
}

func IsSameDayTime(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDayUTC truncates t to midnight of its UTC calendar day.
func StartOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsInvalid reports whether s is the InvalidDate sentinel.
func IsInvalid(s string) bool { return s == InvalidDate }

// Package-level helpers format in UTC.

func ParseISO(iso string) (time.Time, bool) { return utcFormatter.Parse(iso) }
func FormatShort(iso string) string { return utcFormatter.FormatShort(iso) }
func FormatDate(iso string) string { return utcFormatter.FormatDate(iso) }
func FormatLong(iso string) string { return utcFormatter.FormatLong(iso) }
func MonthName(iso string) string { return utcFormatter.MonthName(iso) }
func DayOfWeek(iso string) string { return utcFormatter.DayOfWeek(iso) }
func IsSameDay(a, b string) bool { return utcFormatter.IsSameDay(a, b) }
func IsSameMonth(month int, iso string) bool { return utcFormatter.IsSameMonth(month, iso) }
