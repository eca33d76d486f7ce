package models

import (
	"bytes"
	"fmt"
	"math"
	"time"
)

// DateLayout — формат календарной даты в API.
const DateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

func parseFlexible(b []byte) (time.Time, error) {
	if bytes.Equal(b, []byte("null")) {
		return time.Time{}, nil
	}
	s := string(bytes.Trim(b, `"`))
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time value %q", s)
}

// Date — календарная дата, передаётся как "2006-01-02".
type Date struct {
	time.Time
}

// ParseDate разбирает дату из формы бронирования.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON реализует json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON принимает как дату, так и полную метку времени.
func (d *Date) UnmarshalJSON(b []byte) error {
	t, err := parseFlexible(b)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Timestamp — момент времени из API, допускает значения без часового пояса.
type Timestamp struct {
	time.Time
}

// MarshalJSON реализует json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON реализует json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	v, err := parseFlexible(b)
	if err != nil {
		return err
	}
	t.Time = v
	return nil
}

// RentalDays считает число оплачиваемых суток: округление вверх, минимум одни сутки.
func RentalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
