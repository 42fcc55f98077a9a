package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a time.Time whose JSON form also accepts plain YYYY-MM-DD values,
// the shape date pickers submit. An empty string decodes to the zero value.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	return Date{Time: t}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		d.Time = t.UTC()
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q, want YYYY-MM-DD or RFC3339", raw)
	}
	d.Time = t.UTC()
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time)
}

// TimeOrNil returns the underlying time, or nil for an absent or blank date.
func (d *Date) TimeOrNil() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
