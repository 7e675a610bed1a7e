package papertrade

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2026-03-05", NewDate(2026, time.March, 5), false},
		{"2026-3-5", NewDate(2026, time.March, 5), false}, // permissive reading
		{"05/03/2026", Date{}, true},
		{"", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	at := func(d, h int) time.Time { return time.Date(2026, time.March, d, h, 0, 0, 0, time.UTC) }
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same instant", at(1, 10), at(1, 10), 0},
		{"same day", at(1, 9), at(1, 18), 0},
		{"whole day", at(1, 10), at(2, 10), 1},
		{"almost a day", at(1, 10), at(2, 9), 0},
		{"nine days", at(1, 10), at(10, 10), 9},
		{"reversed clamps to zero", at(10, 10), at(1, 10), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := daysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("daysBetween = %d, want %d", got, tt.want)
			}
		})
	}
}
