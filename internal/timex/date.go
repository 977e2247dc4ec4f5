package timex

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/rollcall/internal/common"
)

// DateOf returns the calendar date of t in loc, formatted as YYYY-MM-DD.
func DateOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(common.DateLayout)
}

// ParseDate validates a YYYY-MM-DD calendar date and returns it normalised.
func ParseDate(s string) (string, error) {
	d, err := time.Parse(common.DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, common.ErrValidation)
	}
	return d.Format(common.DateLayout), nil
}

// LoadLocation resolves a time zone name. An empty name means time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
