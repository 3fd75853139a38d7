package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// flexLayouts are tried, in order, on timestamps whose trailing Z was removed
var flexLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// FlexTime is a timestamp that may be stored natively or as an ISO-8601
// string. Values that cannot be parsed keep Valid=false and their raw text.
type FlexTime struct {
	Time  time.Time
	Valid bool
	Raw   string
}

// NewFlexTime wraps a native timestamp
func NewFlexTime(t time.Time) FlexTime {
	return FlexTime{Time: t.UTC(), Valid: true, Raw: t.UTC().Format(time.RFC3339)}
}

// ParseFlexTime parses an ISO-8601-like string with an optional trailing Z
func ParseFlexTime(s string) FlexTime {
	ft := FlexTime{Raw: s}
	value := strings.TrimSpace(s)
	if value == "" {
		return ft
	}

	naive := strings.TrimSuffix(value, "Z")
	for _, layout := range flexLayouts {
		if t, err := time.Parse(layout, naive); err == nil {
			ft.Time = t
			ft.Valid = true
			return ft
		}
	}

	// Explicit offsets keep their wall clock
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		ft.Time = t
		ft.Valid = true
	}
	return ft
}

// Scan implements sql.Scanner
func (f *FlexTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*f = FlexTime{}
	case time.Time:
		*f = NewFlexTime(v)
	case string:
		*f = ParseFlexTime(v)
	case []byte:
		*f = ParseFlexTime(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", value)
	}
	return nil
}

// Value implements driver.Valuer
func (f FlexTime) Value() (driver.Value, error) {
	if f.Valid {
		return f.Time.Format(time.RFC3339Nano), nil
	}
	if f.Raw == "" {
		return nil, nil
	}
	return f.Raw, nil
}

// MarshalJSON renders the original text so unparseable values survive round trips
func (f FlexTime) MarshalJSON() ([]byte, error) {
	if f.Raw == "" && !f.Valid {
		return []byte("null"), nil
	}
	if f.Raw != "" {
		return json.Marshal(f.Raw)
	}
	return json.Marshal(f.Time.Format(time.RFC3339))
}
