// Package holiday resolves public holidays for a calendar month. The
// built-in table covers 2024; additional years can be supplied from a YAML
// file and hot-reloaded while the service runs.
package holiday

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// builtin is the default holiday record, keyed by YYYY-MM-DD.
var builtin = map[string]string{
	"2024-01-01": "신정",
	"2024-02-09": "설날",
	"2024-02-10": "설날",
	"2024-02-11": "설날",
	"2024-03-01": "삼일절",
	"2024-05-05": "어린이날",
	"2024-06-06": "현충일",
	"2024-08-15": "광복절",
	"2024-09-16": "추석",
	"2024-09-17": "추석",
	"2024-09-18": "추석",
	"2024-10-03": "개천절",
	"2024-10-09": "한글날",
	"2024-12-25": "크리스마스",
}

// Source holds the active holiday record. The zero value is not usable;
// construct with NewSource. Reads and reloads may run concurrently.
type Source struct {
	mu     sync.RWMutex
	record map[string]string
}

// NewSource returns a Source seeded with the built-in record.
func NewSource() *Source {
	record := make(map[string]string, len(builtin))
	for k, v := range builtin {
		record[k] = v
	}
	return &Source{record: record}
}

// ForMonth returns the holidays falling in t's month as a date→name map.
// Months without any entry yield an empty map, never nil.
func (s *Source) ForMonth(t time.Time) map[string]string {
	prefix := fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := map[string]string{}
	for date, name := range s.record {
		if strings.HasPrefix(date, prefix) {
			out[date] = name
		}
	}
	return out
}

// LoadFile merges holiday entries from a YAML file (date: name pairs) over
// the built-in record. Entries for dates already present are replaced.
func (s *Source) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("holiday: read %s: %w", path, err)
	}

	extra := map[string]string{}
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return fmt.Errorf("holiday: parse %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for date, name := range extra {
		s.record[date] = name
	}
	return nil
}
