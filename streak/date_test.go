package streak

import (
	"testing"
	"time"
)

func TestDateOf_TimezoneProjection(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	tests := []struct {
		name    string
		instant time.Time
		loc     *time.Location
		want    string
	}{
		{
			// 04:30 UTC is 23:30 the previous evening in New York, even on
			// the night the US springs forward.
			name:    "utc instant is previous day in new york",
			instant: time.Date(2024, 3, 10, 4, 30, 0, 0, time.UTC),
			loc:     ny,
			want:    "2024-03-09",
		},
		{
			name:    "utc instant is next day in tokyo",
			instant: time.Date(2024, 3, 9, 23, 30, 0, 0, time.UTC),
			loc:     tokyo,
			want:    "2024-03-10",
		},
		{
			name:    "utc stays put",
			instant: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
			loc:     time.UTC,
			want:    "2024-06-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DateOf(tt.instant, tt.loc).String(); got != tt.want {
				t.Errorf("DateOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDate_StringZeroPadded(t *testing.T) {
	d := Date{Year: 987, Month: time.January, Day: 5}
	if got := d.String(); got != "0987-01-05" {
		t.Errorf("String() = %s, want 0987-01-05", got)
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	for _, s := range []string{"2024-01-01", "2024-02-29", "1999-12-31", "2024-06-15"} {
		d, err := ParseDate(s)
		if err != nil {
			t.Fatalf("ParseDate(%q) = %v", s, err)
		}
		if d.String() != s {
			t.Errorf("round trip %q -> %q", s, d.String())
		}
	}
}

func TestParseDate_Malformed(t *testing.T) {
	for _, s := range []string{"", "2024-1-02", "2024/01/02", "2024-13-01", "2024-02-30", "20240102", "2024-01-02T00:00:00Z"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) = nil error, want failure", s)
		}
	}
}

func TestDate_NextPrevBoundaries(t *testing.T) {
	tests := []struct {
		from string
		next string
	}{
		{"2024-01-01", "2024-01-02"},
		{"2024-01-31", "2024-02-01"},
		{"2024-02-28", "2024-02-29"}, // leap year
		{"2023-02-28", "2023-03-01"},
		{"2024-12-31", "2025-01-01"},
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.from)
		if err != nil {
			t.Fatalf("ParseDate(%q) = %v", tt.from, err)
		}
		if got := d.Next().String(); got != tt.next {
			t.Errorf("%s.Next() = %s, want %s", tt.from, got, tt.next)
		}
		n, _ := ParseDate(tt.next)
		if got := n.Prev().String(); got != tt.from {
			t.Errorf("%s.Prev() = %s, want %s", tt.next, got, tt.from)
		}
	}
}
