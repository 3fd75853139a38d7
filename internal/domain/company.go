package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CompanyID is a tenant scope that the ETL may have stored either as a
// string or as an integer. It keeps both forms so store queries can match
// either representation.
type CompanyID struct {
	raw     string
	number  int64
	numeric bool
}

// NewCompanyID builds a CompanyID from its string form
func NewCompanyID(s string) (CompanyID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CompanyID{}, ErrInvalidCompanyID
	}

	c := CompanyID{raw: s}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		c.number = n
		c.numeric = true
	}
	return c, nil
}

// CompanyIDFromInt builds a CompanyID from its integer form
func CompanyIDFromInt(n int64) CompanyID {
	return CompanyID{raw: strconv.FormatInt(n, 10), number: n, numeric: true}
}

// IsZero reports whether the id was never set
func (c CompanyID) IsZero() bool {
	return c.raw == ""
}

// Int returns the integer form when the id is numeric
func (c CompanyID) Int() (int64, bool) {
	return c.number, c.numeric
}

func (c CompanyID) String() string {
	return c.raw
}

// Candidates returns every representation to try when scoping a query,
// the raw form first, then the canonical integer form when it differs.
func (c CompanyID) Candidates() []string {
	if c.IsZero() {
		return nil
	}
	candidates := []string{c.raw}
	if c.numeric {
		canonical := strconv.FormatInt(c.number, 10)
		if canonical != c.raw {
			candidates = append(candidates, canonical)
		}
	}
	return candidates
}

// MarshalJSON writes numeric ids as JSON numbers and the rest as strings
func (c CompanyID) MarshalJSON() ([]byte, error) {
	if c.numeric && strconv.FormatInt(c.number, 10) == c.raw {
		return []byte(c.raw), nil
	}
	return json.Marshal(c.raw)
}

// UnmarshalJSON accepts either a JSON string or a JSON integer
func (c *CompanyID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = CompanyID{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode company id: %w", err)
		}
		id, err := NewCompanyID(s)
		if err != nil {
			return err
		}
		*c = id
		return nil
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCompanyID, string(data))
	}
	*c = CompanyIDFromInt(n)
	return nil
}
