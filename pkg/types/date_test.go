package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateUnmarshalJSON(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"date only", `"2024-06-01"`, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339", `"2024-06-01T10:30:00Z"`, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), false},
		{"empty string is zero", `""`, time.Time{}, false},
		{"garbage", `"not-a-date"`, time.Time{}, true},
		{"non-string", `42`, time.Time{}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tc.input), &d)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %s: %v", tc.input, err)
			}
			if !d.Equal(tc.want) {
				t.Fatalf("got %v, want %v", d.Time, tc.want)
			}
		})
	}
}

func TestDateTimeOrNil(t *testing.T) {
	var absent *Date
	if absent.TimeOrNil() != nil {
		t.Fatal("nil date should yield nil time")
	}

	var blank Date
	if blank.TimeOrNil() != nil {
		t.Fatal("zero date should yield nil time")
	}

	d := NewDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	got := d.TimeOrNil()
	if got == nil || !got.Equal(d.Time) {
		t.Fatalf("got %v, want %v", got, d.Time)
	}
}
