package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		want  int
	}{
		{"january", 2024, 1, 31},
		{"april", 2024, 4, 30},
		{"leap february", 2024, 2, 29},
		{"non-leap february", 2023, 2, 28},
		{"century non-leap", 1900, 2, 28},
		{"quadricentennial leap", 2000, 2, 29},
		{"month 0 rolls to previous december", 2024, 0, 31},
		{"month 13 rolls to next january", 2024, 13, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInMonth(tt.year, tt.month); got != tt.want {
				t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

func TestWeekDates(t *testing.T) {
	tests := []struct {
		name  string
		in    time.Time
		first time.Time
		last  time.Time
	}{
		{"midweek wednesday", date(2024, 10, 30), date(2024, 10, 27), date(2024, 11, 2)},
		{"monday", date(2024, 11, 4), date(2024, 11, 3), date(2024, 11, 9)},
		{"saturday", date(2024, 11, 2), date(2024, 10, 27), date(2024, 11, 2)},
		{"year end", date(2024, 12, 31), date(2024, 12, 29), date(2025, 1, 4)},
		{"year start", date(2025, 1, 1), date(2024, 12, 29), date(2025, 1, 4)},
		{"leap day", date(2024, 2, 29), date(2024, 2, 25), date(2024, 3, 2)},
		{"month end on sunday", date(2024, 3, 31), date(2024, 3, 31), date(2024, 4, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekDates(tt.in)
			if len(got) != 7 {
				t.Fatalf("len = %d, want 7", len(got))
			}
			if !got[0].Equal(tt.first) {
				t.Errorf("first = %v, want %v", got[0], tt.first)
			}
			if !got[6].Equal(tt.last) {
				t.Errorf("last = %v, want %v", got[6], tt.last)
			}
			for i := 1; i < 7; i++ {
				if !got[i].Equal(got[i-1].AddDate(0, 0, 1)) {
					t.Errorf("dates not consecutive at index %d: %v, %v", i, got[i-1], got[i])
				}
			}
			if got[0].Weekday() != time.Sunday {
				t.Errorf("week starts on %v, want Sunday", got[0].Weekday())
			}
		})
	}
}

func TestWeeksInMonth(t *testing.T) {
	want := [][7]int{
		{0, 1, 2, 3, 4, 5, 6},
		{7, 8, 9, 10, 11, 12, 13},
		{14, 15, 16, 17, 18, 19, 20},
		{21, 22, 23, 24, 25, 26, 27},
		{28, 29, 30, 31, 0, 0, 0},
	}
	got := WeeksInMonth(date(2024, 7, 1))
	if len(got) != len(want) {
		t.Fatalf("weeks = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("week %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFormatWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"middle of month", date(2024, 11, 10), "2024년 11월 2주"},
		{"first week", date(2024, 11, 5), "2024년 11월 1주"},
		{"last week", date(2024, 11, 30), "2024년 11월 4주"},
		{"year boundary owned by january", date(2024, 12, 30), "2025년 1월 1주"},
		{"leap february last week", date(2024, 2, 29), "2024년 2월 5주"},
		{"non-leap february owned by march", date(2023, 2, 28), "2023년 3월 1주"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWeek(tt.in); got != tt.want {
				t.Errorf("FormatWeek(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatMonth(t *testing.T) {
	if got := FormatMonth(date(2024, 7, 10)); got != "2024년 7월" {
		t.Errorf("FormatMonth = %q, want %q", got, "2024년 7월")
	}
}

func TestIsDateInRange(t *testing.T) {
	start := date(2024, 7, 1)
	end := date(2024, 7, 31)

	tests := []struct {
		name       string
		d          time.Time
		start, end time.Time
		want       bool
	}{
		{"inside", date(2024, 7, 10), start, end, true},
		{"on start", date(2024, 7, 1), start, end, true},
		{"on end", date(2024, 7, 31), start, end, true},
		{"before", date(2024, 6, 30), start, end, false},
		{"after", date(2024, 8, 1), start, end, false},
		{"inverted range contains nothing", date(2024, 7, 10), end, start, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDateInRange(tt.d, tt.start, tt.end); got != tt.want {
				t.Errorf("IsDateInRange = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(date(2024, 7, 5)); got != "2024-07-05" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate(date(2024, 7, 5), 10); got != "2024-07-10" {
		t.Errorf("FormatDate with day override = %q", got)
	}
}

func TestPadZero(t *testing.T) {
	tests := []struct {
		value float64
		size  int
		want  string
	}{
		{5, 2, "05"},
		{10, 2, "10"},
		{3, 3, "003"},
		{100, 2, "100"},
		{0, 2, "00"},
		{3.14, 5, "03.14"},
	}
	for _, tt := range tests {
		if got := PadZero(tt.value, tt.size); got != tt.want {
			t.Errorf("PadZero(%v, %d) = %q, want %q", tt.value, tt.size, got, tt.want)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2024-07-01", "10:00")
	if err != nil {
		t.Fatalf("ParseDateTime: %v", err)
	}
	want := time.Date(2024, 7, 1, 10, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := ParseDateTime("2024-07-01", "25:99"); err == nil {
		t.Error("expected error for invalid clock time")
	}
}
