package dto

import (
	"bytes"
	"fmt"
	"time"

	"shareit/internal/models"
)

// Time is a timestamp in the wire layout. Values are written in local time
// without a zone; RFC 3339 input is also accepted.
type Time struct {
	time.Time
}

func NewTime(t time.Time) *Time {
	if t.IsZero() {
		return nil
	}
	return &Time{Time: t}
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.In(time.Local).Format(models.WireTimeLayout) + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("time must be a string, got %s", data)
	}

	parsed, err := ParseTime(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// ParseTime reads raw in the wire layout or as RFC 3339.
func ParseTime(raw string) (time.Time, error) {
	if parsed, err := time.ParseInLocation(models.WireTimeLayout, raw, time.Local); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, expected %s", raw, models.WireTimeLayout)
	}
	return parsed, nil
}
