package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Money is a decimal amount as the API emits it. The backend serializes
// BigDecimal values either as JSON numbers or as quoted strings depending on
// the endpoint, so both are accepted.
type Money float64

// UnmarshalJSON accepts 12.5, "12.5" and null.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("money: %w", err)
		}
		if s == "" {
			*m = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("money: parse %q: %w", s, err)
		}
		*m = Money(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("money: %w", err)
	}
	*m = Money(f)
	return nil
}

// Float returns the amount as a float64.
func (m Money) Float() float64 {
	return float64(m)
}
