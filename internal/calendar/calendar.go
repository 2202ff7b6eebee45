// Package calendar provides pure date arithmetic for month/week grids
// and the label formats used across the application.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DaysInMonth returns the number of days of the given month (1-12) in year.
// Months outside 1-12 roll over to the adjacent year, so month 0 refers to
// the previous December and month 13 to the next January.
func DaysInMonth(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// WeekDates returns the seven days, Sunday through Saturday, of the week
// containing t. Month and year boundaries are crossed as needed.
func WeekDates(t time.Time) []time.Time {
	sunday := truncate(t).AddDate(0, 0, -int(t.Weekday()))
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = sunday.AddDate(0, 0, i)
	}
	return days
}

// WeeksInMonth returns the Sunday-first week rows of t's month. Each row has
// seven slots holding the day of month, or 0 for slots that belong to an
// adjacent month.
func WeeksInMonth(t time.Time) [][7]int {
	daysInMonth := DaysInMonth(t.Year(), int(t.Month()))
	firstWeekday := int(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).Weekday())

	var weeks [][7]int
	var week [7]int
	slot := firstWeekday
	for day := 1; day <= daysInMonth; day++ {
		week[slot] = day
		slot++
		if slot == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			slot = 0
		}
	}
	if slot > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// FormatWeek renders t as "<year>년 <month>월 <n>주". A week belongs to the
// month containing its Thursday, and n counts the Sunday-aligned weeks of
// that month by their Thursdays. A week spanning a year boundary is labelled
// with the Thursday's year, e.g. 2024-12-30 falls in "2025년 1월 1주".
func FormatWeek(t time.Time) string {
	thursday := truncate(t).AddDate(0, 0, 4-int(t.Weekday()))

	first := time.Date(thursday.Year(), thursday.Month(), 1, 0, 0, 0, 0, t.Location())
	firstThursday := first.AddDate(0, 0, (4-int(first.Weekday())+7)%7)
	week := (thursday.Day()-firstThursday.Day())/7 + 1

	return fmt.Sprintf("%d년 %d월 %d주", thursday.Year(), int(thursday.Month()), week)
}

// FormatMonth renders t as "<year>년 <month>월".
func FormatMonth(t time.Time) string {
	return fmt.Sprintf("%d년 %d월", t.Year(), int(t.Month()))
}

// IsDateInRange reports whether d falls within [start, end], both inclusive.
// An inverted range (start after end) contains nothing.
func IsDateInRange(d, start, end time.Time) bool {
	d, start, end = truncate(d), truncate(start), truncate(end)
	if start.After(end) {
		return false
	}
	return !d.Before(start) && !d.After(end)
}

// FormatDate renders t as YYYY-MM-DD with zero padding. An optional day
// argument overrides the day-of-month component, which lets callers stamp a
// grid cell onto t's month without building a new date.
func FormatDate(t time.Time, day ...int) string {
	d := t.Day()
	if len(day) > 0 {
		d = day[0]
	}
	return fmt.Sprintf("%04d-%s-%s", t.Year(), PadZero(float64(t.Month()), 2), PadZero(float64(d), 2))
}

// PadZero left-pads the decimal representation of value with '0' up to size
// characters in total. Values already wider than size are returned as-is and
// a fractional part counts toward the width, so PadZero(3.14, 5) == "03.14".
func PadZero(value float64, size int) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	if len(s) >= size {
		return s
	}
	return strings.Repeat("0", size-len(s)) + s
}

// ParseDate parses a YYYY-MM-DD string in local time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}

// ParseDateTime combines a YYYY-MM-DD date and an HH:MM clock time into a
// single local time.Time.
func ParseDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
