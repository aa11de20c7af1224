package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Days is a leave duration in days, in half-day steps.
// The backend stores it as a decimal and serializes it as a string.
type Days float64

// MinLeaveDays is the smallest request the time-off form accepts.
const MinLeaveDays Days = 0.5

// ParseDays parses a decimal day count such as "1.5"
func ParseDays(s string) (Days, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid day count %q", s)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid day count %q", s)
	}
	return Days(f), nil
}

// ValidateRequest checks the value is usable as a leave request:
// at least half a day and a whole number of half days.
func (d Days) ValidateRequest() error {
	if d < MinLeaveDays {
		return fmt.Errorf("days requested must be at least %s", MinLeaveDays)
	}
	if math.Mod(float64(d)*2, 1) != 0 {
		return fmt.Errorf("days requested must be in steps of 0.5")
	}
	return nil
}

// String formats with one decimal place, matching the backend
func (d Days) String() string {
	return strconv.FormatFloat(float64(d), 'f', 1, 64)
}

// MarshalJSON emits a JSON number
func (d Days) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(d), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a JSON number, a decimal string or null
func (d *Days) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*d = 0
			return nil
		}
		parsed, err := ParseDays(s)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("days must be a number or decimal string: %w", err)
	}
	*d = Days(f)
	return nil
}
