// Package timezones resolves the IANA zone used to read calendar dates
// in ledger queries. Sinaloa runs on America/Mazatlan.
package timezones

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata" // containers without /usr/share/zoneinfo
)

// Default is the zone of the Sinaloa school system.
const Default = "America/Mazatlan"

// DateLayout is the calendar-date format accepted in query strings.
const DateLayout = "2006-01-02"

var (
	mu    sync.Mutex
	cache = map[string]*time.Location{}
)

// Location loads and caches the zone named id. A blank id means Default.
func Location(id string) (*time.Location, error) {
	if id == "" {
		id = Default
	}

	mu.Lock()
	defer mu.Unlock()
	if loc, ok := cache[id]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return nil, fmt.Errorf("timezones: %w", err)
	}
	cache[id] = loc
	return loc, nil
}

// Valid reports whether id names a loadable zone.
func Valid(id string) bool {
	_, err := Location(id)
	return err == nil
}

// DayRange turns calendar dates into an inclusive UTC window: start at
// local midnight, end at the last second of its local day. Blank or
// unparseable dates leave that side open.
func DayRange(startDate, endDate string, loc *time.Location) (start, end *time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	if startDate != "" {
		if t, err := time.ParseInLocation(DateLayout, startDate, loc); err == nil {
			u := t.UTC()
			start = &u
		}
	}
	if endDate != "" {
		if t, err := time.ParseInLocation(DateLayout, endDate, loc); err == nil {
			u := t.AddDate(0, 0, 1).Add(-time.Second).UTC()
			end = &u
		}
	}
	return start, end
}
