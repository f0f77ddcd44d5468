package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component. It travels over the
// wire and into the database as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// AfterToday reports whether the date is strictly in the future.
func (d Date) AfterToday() bool {
	return d.Time.After(Today().Time)
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts a quoted YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("invalid date %s: expected a quoted YYYY-MM-DD string", raw)
	}
	parsed, err := time.Parse(dateLayout, raw[1:len(raw)-1])
	if err != nil {
		return fmt.Errorf("invalid date %s: expected YYYY-MM-DD", raw)
	}
	d.Time = parsed
	return nil
}

// Value stores the date as its YYYY-MM-DD text form.
func (d Date) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

// Scan reads a date back from the database, accepting the driver's
// time.Time conversion as well as raw text.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		parsed, err := time.Parse(dateLayout, v)
		if err != nil {
			return fmt.Errorf("scan date: %w", err)
		}
		d.Time = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
}
