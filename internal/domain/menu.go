package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is an offset from local midnight. It carries no date.
type TimeOfDay time.Duration

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" as served by the menu API.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	limits := []int{23, 59, 59}
	units := []time.Duration{time.Hour, time.Minute, time.Second}

	var total time.Duration
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > limits[i] {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		total += time.Duration(n) * units[i]
	}

	return TimeOfDay(total), nil
}

// TimeOfDayOf returns the wall-clock time of day of t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second)
}

func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d)
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	return fmt.Sprintf("%s%02d:%02d", sign, int(d/time.Hour), int(d%time.Hour/time.Minute))
}

type MenuResponse struct {
	Days  []MenuDay
	Items map[string]Item
}

type MenuDay struct {
	Date  string
	Cafes map[string]Cafe
}

type Cafe struct {
	ID       string
	Name     string
	DayParts [][]MealSlot
}

type MealSlot struct {
	Label    string
	Start    TimeOfDay
	End      TimeOfDay
	Stations []Station
}

type Station struct {
	Label    string
	ItemKeys []string
}

type Item struct {
	Label       string
	Description string
	// Tier is nil when the payload carries no tier.
	Tier  *int
	Icons IconSet
}

// Cafe returns the cafe for id from the first day of the menu.
func (m *MenuResponse) Cafe(id string) (*Cafe, error) {
	if m == nil || len(m.Days) == 0 {
		return nil, fmt.Errorf("%w: no days in menu", ErrCafeNotFound)
	}

	cafe, ok := m.Days[0].Cafes[id]
	if !ok {
		return nil, fmt.Errorf("%w: cafe %s", ErrCafeNotFound, id)
	}

	return &cafe, nil
}

// MealSlots returns the first daypart group. Later groups are ignored.
func (c *Cafe) MealSlots() ([]MealSlot, error) {
	if len(c.DayParts) == 0 {
		return nil, fmt.Errorf("%w: cafe %s", ErrNoDayParts, c.ID)
	}
	return c.DayParts[0], nil
}
