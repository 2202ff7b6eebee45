package event

import "time"

// interval is the [start, end) time span of an event on its stored date.
type interval struct {
	start time.Time
	end   time.Time
}

func toInterval(ev Event) (interval, error) {
	start, err := parseDateTime(ev.Date, ev.StartTime)
	if err != nil {
		return interval{}, err
	}
	end, err := parseDateTime(ev.Date, ev.EndTime)
	if err != nil {
		return interval{}, err
	}
	return interval{start: start, end: end}, nil
}

// overlaps reports whether two half-open intervals intersect. Touching
// endpoints do not count.
func (a interval) overlaps(b interval) bool {
	return a.start.Before(b.end) && b.start.Before(a.end)
}

// FindOverlapping returns every event whose time interval intersects the
// candidate's on the same stored date. When the candidate already has an ID
// the stored copy of itself is excluded. Recurrence is not expanded here;
// only the literal date is compared.
func FindOverlapping(candidate Event, events []Event) []Event {
	ci, err := toInterval(candidate)
	if err != nil {
		return []Event{}
	}

	out := []Event{}
	for _, ev := range events {
		if candidate.ID != "" && ev.ID == candidate.ID {
			continue
		}
		iv, err := toInterval(ev)
		if err != nil {
			continue
		}
		if ci.overlaps(iv) {
			out = append(out, ev)
		}
	}
	return out
}
