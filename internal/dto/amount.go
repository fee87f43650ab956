package dto

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Amount is a money value decoded leniently: JSON numbers and numeric strings
// parse, anything else (missing, null, bool, garbage) is zero.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(b []byte) error {
	a.Decimal = decimal.Zero
	s := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if d, err := decimal.NewFromString(s); err == nil {
		a.Decimal = d
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Decimal)
}

// Coordinate is a latitude or longitude that accepts numbers or numeric
// strings. Valid is false when the value was missing or not numeric.
type Coordinate struct {
	Value float64
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coordinate) UnmarshalJSON(b []byte) error {
	*c = Coordinate{}
	s := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	c.Value, c.Valid = v, true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

const dateOnly = "2006-01-02"

// Date accepts either a calendar date or an RFC3339 timestamp.
type Date struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	raw, err := strconv.Unquote(s)
	if err != nil {
		return &time.ParseError{Layout: time.RFC3339, Value: s, Message: ": date must be a string"}
	}
	t, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ParseDate parses a calendar date or an RFC3339 timestamp into UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateOnly, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseOptionalDate parses a query parameter; an empty value yields nil.
func ParseOptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// EndOfDay moves a date-only bound to the last instant of that day so "to"
// filters are inclusive. Timestamps with a time component are kept.
func EndOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		e := t.Add(24*time.Hour - time.Nanosecond)
		return &e
	}
	return t
}
