package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Base contains common columns for all tables.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Date is a calendar date without a time component. It marshals to and from
// the "2006-01-02" form used on the wire and stores as a DATE column.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate creates a Date for the given year, month, and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON renders the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON parses a "YYYY-MM-DD" date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Value implements driver.Valuer so GORM stores the date portion only.
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		if len(v) > len(dateLayout) {
			v = v[:len(dateLayout)]
		}
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return fmt.Errorf("scanning date %q: %w", v, err)
		}
		d.Time = t
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}
