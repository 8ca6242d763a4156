package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is an ordered list of strings stored as a JSONB column.
type StringList []string

// Value implements driver.Valuer for JSONB storage
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB storage
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// DateOnly is a calendar date without a time component. It marshals to
// "2006-01-02" in JSON and maps to a DATE column.
type DateOnly struct {
	time.Time
}

// ParseDateOnly parses a date in strict YYYY-MM-DD format
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DateOnly{Time: t}, nil
}

func (d DateOnly) String() string {
	return d.Format(time.DateOnly)
}

// MarshalJSON formats the date as "2006-01-02"
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(time.DateOnly))
}

// UnmarshalJSON parses a "2006-01-02" date string
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDateOnly(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer for DATE storage
func (d DateOnly) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner for DATE storage
func (d *DateOnly) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		parsed, err := ParseDateOnly(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", src)
	}
}

// ParseClockTime validates a wall-clock time in strict HH:MM format and
// returns its canonical form.
func ParseClockTime(s string) (string, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t.Format("15:04"), nil
}
