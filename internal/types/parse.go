// README: Loose parsing of form-style dates, clock times and amounts.
package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Clock is a wall-clock time of day, 24-hour.
type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock parses "h:mm" or "hh:mm".
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("parse clock %q: want hh:mm", s)
	}
	hh, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Clock{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	mm, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Clock{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return Clock{}, fmt.Errorf("parse clock %q: out of range", s)
	}
	return Clock{Hour: hh, Minute: mm}, nil
}

// ParseDayMonthYear parses "dd/mm/yy" or "dd/mm/yyyy". Two-digit years are
// mapped to 2000+yy. The result is midnight UTC.
func ParseDayMonthYear(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("parse date %q: want dd/mm/yy", s)
	}
	d, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	if y < 100 {
		y += 2000
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("parse date %q: out of range", s)
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || t.Month() != time.Month(m) {
		return time.Time{}, fmt.Errorf("parse date %q: no such day", s)
	}
	return t, nil
}

// At combines a date with a clock time.
func At(date time.Time, c Clock) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, date.Location())
}

// ParseLooseAmount accepts locale-formatted numeric text: grouping dots,
// comma decimals, unit suffixes ("1.234,56 €", "388 km", "150.50").
// Empty input parses to zero.
func ParseLooseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(cleaned, ",") {
		// comma is the decimal separator, dots are grouping
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}

// LooseAmount is a decimal that unmarshals from either a JSON number or a
// locale-formatted string. Marshals as a plain number.
type LooseAmount struct {
	decimal.Decimal
}

func (a *LooseAmount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d, perr := ParseLooseAmount(s)
		if perr != nil {
			return perr
		}
		a.Decimal = d
		return nil
	}
	return a.Decimal.UnmarshalJSON(data)
}

func (a LooseAmount) MarshalJSON() ([]byte, error) {
	return a.Decimal.MarshalJSON()
}
