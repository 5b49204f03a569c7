package visitor

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Clock is a time of day with minute precision. The zero value means unset.
type Clock struct {
	minutes int // minutes since midnight, plus one; 0 = unset
}

// ClockOf returns the time of day of t, truncated to the minute.
func ClockOf(t time.Time) Clock {
	return Clock{minutes: t.Hour()*60 + t.Minute() + 1}
}

var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM"}

// ParseClock accepts 24-hour "HH:MM" (seconds optional) or 12-hour
// "H:MM AM/PM". An empty string yields the zero Clock.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Clock{}, nil
	}
	upper := strings.ToUpper(s)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, upper); err == nil {
			return ClockOf(t), nil
		}
	}
	return Clock{}, fmt.Errorf("invalid time %q (use HH:MM)", s)
}

// IsZero reports whether the clock is unset.
func (c Clock) IsZero() bool { return c.minutes == 0 }

// Hour returns the hour (0-23).
func (c Clock) Hour() int { return (c.minutes - 1) / 60 }

// Minute returns the minute (0-59).
func (c Clock) Minute() int { return (c.minutes - 1) % 60 }

// String formats the clock as 24-hour HH:MM, or "" when unset.
func (c Clock) String() string {
	if c.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Display formats the clock as 12-hour "H:MM AM/PM", "-" when unset.
func (c Clock) Display() string {
	if c.IsZero() {
		return "-"
	}
	h := c.Hour()
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, c.Minute(), suffix)
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*c = Clock{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value stores the clock as HH:MM text, NULL when unset.
func (c Clock) Value() (driver.Value, error) {
	if c.IsZero() {
		return nil, nil
	}
	return c.String(), nil
}

// Scan reads a clock column stored as text.
func (c *Clock) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = Clock{}
		return nil
	case string:
		parsed, err := ParseClock(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case []byte:
		return c.Scan(string(v))
	}
	return fmt.Errorf("cannot scan %T into Clock", src)
}
