package agg

import (
	"fmt"
	"time"

	"github.com/huangsam/quickstats/schema"
)

// Calendar maps a timestamp to bucket keys.
type Calendar interface {
	Month(t time.Time) string   // Jan..Dec
	Weekday(t time.Time) string // Mon..Sun
	Hour(t time.Time) string    // 00..23
	Day(t time.Time) string     // YYYY-MM-DD
}

// EnglishCalendar uses fixed English abbreviations regardless of process locale.
// Timestamps are read in their own offset, the way git renders author dates.
type EnglishCalendar struct{}

var _ Calendar = EnglishCalendar{} // Compile-time check

// Month implements the Calendar interface.
func (EnglishCalendar) Month(t time.Time) string {
	return schema.MonthKeys[t.Month()-1]
}

// Weekday implements the Calendar interface.
func (EnglishCalendar) Weekday(t time.Time) string {
	// time.Weekday starts on Sunday
	return schema.WeekdayKeys[(int(t.Weekday())+6)%7]
}

// Hour implements the Calendar interface.
func (EnglishCalendar) Hour(t time.Time) string {
	return fmt.Sprintf("%02d", t.Hour())
}

// Day implements the Calendar interface.
func (EnglishCalendar) Day(t time.Time) string {
	return t.Format(time.DateOnly)
}
