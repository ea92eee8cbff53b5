package streak

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
}

func TestCount(t *testing.T) {
	today := Date{Year: 2024, Month: time.January, Day: 3}

	tests := []struct {
		name   string
		logins []time.Time
		want   int
	}{
		{
			name:   "empty record",
			logins: nil,
			want:   0,
		},
		{
			name:   "single login today",
			logins: []time.Time{day(2024, 1, 3)},
			want:   1,
		},
		{
			name:   "three consecutive days ending today",
			logins: []time.Time{day(2024, 1, 1), day(2024, 1, 2), day(2024, 1, 3)},
			want:   3,
		},
		{
			name:   "gap of two days breaks the chain",
			logins: []time.Time{day(2024, 1, 1), day(2024, 1, 3)},
			want:   1,
		},
		{
			name:   "chain ending yesterday still counts",
			logins: []time.Time{day(2024, 1, 1), day(2024, 1, 2)},
			want:   2,
		},
		{
			name:   "stale record resets to one",
			logins: []time.Time{day(2023, 12, 25), day(2023, 12, 26)},
			want:   1,
		},
		{
			name: "older segment beyond a gap is not counted",
			logins: []time.Time{
				day(2023, 12, 28), day(2023, 12, 29), day(2023, 12, 30),
				day(2024, 1, 2), day(2024, 1, 3),
			},
			want: 2,
		},
		{
			name:   "unordered input",
			logins: []time.Time{day(2024, 1, 3), day(2024, 1, 1), day(2024, 1, 2)},
			want:   3,
		},
		{
			name: "same-day duplicates collapse",
			logins: []time.Time{
				day(2024, 1, 2),
				time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC),
				day(2024, 1, 3),
				time.Date(2024, 1, 3, 0, 1, 0, 0, time.UTC),
			},
			want: 2,
		},
		{
			name: "all logins on one calendar day",
			logins: []time.Time{
				time.Date(2024, 1, 3, 1, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 3, 23, 0, 0, 0, time.UTC),
			},
			want: 1,
		},
		{
			name: "chain across a month boundary",
			logins: []time.Time{
				day(2023, 12, 30), day(2023, 12, 31),
				day(2024, 1, 1), day(2024, 1, 2), day(2024, 1, 3),
			},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.logins, time.UTC, today); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCount_TimezoneMatters(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	// 2024-03-10T04:30:00Z is 23:30 on 03-09 in New York. With a login on
	// 03-08 and "today" = 03-09 local, the two form a two-day chain; read in
	// UTC the same instants would straddle a gap.
	logins := []time.Time{
		time.Date(2024, 3, 8, 20, 0, 0, 0, ny),
		time.Date(2024, 3, 10, 4, 30, 0, 0, time.UTC),
	}
	if got := Count(logins, ny, Date{Year: 2024, Month: time.March, Day: 9}); got != 2 {
		t.Errorf("Count() in New York = %d, want 2", got)
	}
}

func TestCount_DuplicateAppendRace(t *testing.T) {
	// Two sessions racing on the same day append two instants; the count
	// must be identical to a single append.
	today := Date{Year: 2024, Month: time.June, Day: 15}
	one := []time.Time{day(2024, 6, 14), day(2024, 6, 15)}
	two := append(append([]time.Time{}, one...), time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
	if a, b := Count(one, time.UTC, today), Count(two, time.UTC, today); a != b {
		t.Errorf("duplicate append changed streak: %d vs %d", a, b)
	}
}

func TestAdvance(t *testing.T) {
	now := time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)

	t.Run("already credited today", func(t *testing.T) {
		last := time.Date(2024, 1, 3, 0, 5, 0, 0, time.UTC)
		credited, _ := Advance([]time.Time{last}, &last, time.UTC, now)
		if !credited {
			t.Fatal("Advance() credited = false, want true")
		}
	})

	t.Run("extends a running chain through today", func(t *testing.T) {
		last := day(2024, 1, 2)
		logins := []time.Time{day(2024, 1, 1), last}
		credited, next := Advance(logins, &last, time.UTC, now)
		if credited {
			t.Fatal("Advance() credited = true, want false")
		}
		if next != 3 {
			t.Errorf("Advance() next = %d, want 3", next)
		}
	})

	t.Run("first ever check-in", func(t *testing.T) {
		credited, next := Advance(nil, nil, time.UTC, now)
		if credited || next != 1 {
			t.Errorf("Advance() = (%v, %d), want (false, 1)", credited, next)
		}
	})

	t.Run("broken chain restarts at one including today", func(t *testing.T) {
		last := day(2024, 1, 1)
		credited, next := Advance([]time.Time{last}, &last, time.UTC, now)
		if credited || next != 1 {
			t.Errorf("Advance() = (%v, %d), want (false, 1)", credited, next)
		}
	})

	t.Run("does not mutate the caller's slice", func(t *testing.T) {
		logins := []time.Time{day(2024, 1, 2)}
		snapshot := logins[0]
		last := logins[0]
		_, _ = Advance(logins, &last, time.UTC, now)
		if len(logins) != 1 || !logins[0].Equal(snapshot) {
			t.Error("Advance() mutated its input")
		}
	})
}
