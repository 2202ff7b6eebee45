package event

import (
	"testing"
	"time"
)

func window(t *testing.T, from, to string) (time.Time, time.Time) {
	t.Helper()
	f, err := time.ParseInLocation("2006-01-02", from, time.Local)
	if err != nil {
		t.Fatal(err)
	}
	u, err := time.ParseInLocation("2006-01-02", to, time.Local)
	if err != nil {
		t.Fatal(err)
	}
	return f, u
}

func dates(occ []Occurrence) []string {
	out := make([]string, len(occ))
	for i, o := range occ {
		out[i] = o.Date
	}
	return out
}

func TestOccurrencesSingle(t *testing.T) {
	events := []Event{{ID: "1", Date: "2024-07-05", Repeat: Repeat{Type: RepeatNone}}}

	from, to := window(t, "2024-07-01", "2024-07-31")
	occ, err := Occurrences(events, from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(occ) != 1 || occ[0].Date != "2024-07-05" {
		t.Errorf("got %v, want single 2024-07-05", dates(occ))
	}

	from, to = window(t, "2024-08-01", "2024-08-31")
	occ, err = Occurrences(events, from, to)
	if err != nil {
		t.Fatal(err)
	}
	if len(occ) != 0 {
		t.Errorf("got %v, want none outside window", dates(occ))
	}
}

func TestOccurrencesDailyEndBounded(t *testing.T) {
	events := []Event{{
		ID: "1", Date: "2024-07-01",
		Repeat: Repeat{Type: RepeatDaily, Interval: 2, EndDate: "2024-07-07"},
	}}
	from, to := window(t, "2024-07-01", "2024-07-31")
	occ, err := Occurrences(events, from, to)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-07-01", "2024-07-03", "2024-07-05", "2024-07-07"}
	got := dates(occ)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("occurrence %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestOccurrencesCappedAtWindowEnd(t *testing.T) {
	// No end date: expansion must stop at the window boundary.
	events := []Event{{
		ID: "1", Date: "2024-07-01",
		Repeat: Repeat{Type: RepeatWeekly, Interval: 1},
	}}
	from, to := window(t, "2024-07-01", "2024-07-31")
	occ, err := Occurrences(events, from, to)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2024-07-01", "2024-07-08", "2024-07-15", "2024-07-22", "2024-07-29"}
	got := dates(occ)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestOccurrencesInvalidWindow(t *testing.T) {
	from, to := window(t, "2024-07-31", "2024-07-01")
	if _, err := Occurrences(nil, from, to); err == nil {
		t.Error("expected error for inverted window")
	}
}
