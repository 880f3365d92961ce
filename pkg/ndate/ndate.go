package ndate

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Date represents a calendar date without a time component.
// It can be used as a scan destination for DATE columns and can be marshalled to JSON.
type Date struct {
	date    time.Time
	isValid bool // false when the date is null or was never set
}

func Parse(value string) (Date, error) {
	parsed, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, err
	}
	return Date{parsed, true}, nil
}

func Today() Date {
	var now = time.Now().UTC()
	return Date{time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true}
}

func (d Date) IsZero() bool {
	return !d.isValid
}

func (d Date) String() string {
	return d.date.Format(layout)
}

func (d Date) Year() int {
	return d.date.Year()
}

func (d Date) Month() time.Month {
	return d.date.Month()
}

func (d Date) After(compared Date) bool {
	return d.date.After(compared.date)
}

// UnmarshalJSON parses a quoted `yyyy-mm-dd` string into a Date.
func (d *Date) UnmarshalJSON(b []byte) error {
	parsed, err := time.Parse(`"`+layout+`"`, string(b))
	if err != nil {
		return err
	}
	*d = Date{parsed, true}
	return nil
}

// MarshalJSON operates on values rather than pointers, as dates are routinely embedded in response DTOs.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.isValid {
		return []byte(fmt.Sprintf("%q", d.date.Format(layout))), nil
	}
	return []byte("null"), nil
}

// Scan implements the Scanner interface; SQLite DATE columns surface as strings or times depending on the driver's parsing.
func (d *Date) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date{time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC), true}
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into a date", value)
}

// Value implements the driver Valuer interface; dates are persisted as `yyyy-mm-dd` strings.
func (d Date) Value() (driver.Value, error) {
	if d.isValid {
		return driver.Value(d.date.Format(layout)), nil
	}
	return nil, nil
}
