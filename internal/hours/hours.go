// Package hours decides whether live phone routing is available.
package hours

import (
	"fmt"
	"sort"
	"strings"
	"time"
	_ "time/tzdata"
)

const dateLayout = "2006-01-02"

// Config is process-wide and read-only once built; IsOpen is safe to call
// concurrently.
type Config struct {
	StartHour int
	EndHour   int
	Location  *time.Location
	holidays  map[string]struct{}
}

// New validates the window, loads the timezone and parses holiday dates
// (YYYY-MM-DD, interpreted in that timezone).
func New(startHour, endHour int, timezone string, holidays []string) (Config, error) {
	if startHour < 0 || startHour > 23 || endHour < 1 || endHour > 24 || startHour >= endHour {
		return Config{}, fmt.Errorf("invalid business hours window %d-%d", startHour, endHour)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Config{}, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	cfg := Config{StartHour: startHour, EndHour: endHour, Location: loc, holidays: map[string]struct{}{}}
	for _, h := range holidays {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		d, err := time.ParseInLocation(dateLayout, h, loc)
		if err != nil {
			return Config{}, fmt.Errorf("parse holiday %q: %w", h, err)
		}
		cfg.holidays[d.Format(dateLayout)] = struct{}{}
	}
	return cfg, nil
}

// IsOpen is false on holidays, otherwise true iff StartHour <= hour < EndHour
// in local wall-clock time. Minutes are ignored.
func (c Config) IsOpen(now time.Time) bool {
	local := now
	if c.Location != nil {
		local = now.In(c.Location)
	}
	if c.IsHoliday(local) {
		return false
	}
	h := local.Hour()
	return h >= c.StartHour && h < c.EndHour
}

func (c Config) IsHoliday(now time.Time) bool {
	if c.Location != nil {
		now = now.In(c.Location)
	}
	_, ok := c.holidays[now.Format(dateLayout)]
	return ok
}

// Holidays returns the configured dates in ascending order.
func (c Config) Holidays() []string {
	out := make([]string, 0, len(c.holidays))
	for d := range c.holidays {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
