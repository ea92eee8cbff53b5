package levelgen

import (
	"reflect"
	"testing"
)

func TestTierOf(t *testing.T) {
	tests := []struct {
		difficulty int
		want       Tier
	}{
		{-1, TierEasy},
		{1, TierEasy},
		{3, TierEasy},
		{4, TierMedium},
		{7, TierMedium},
		{8, TierHard},
		{10, TierHard},
		{99, TierHard},
	}
	for _, tt := range tests {
		if got := TierOf(tt.difficulty); got != tt.want {
			t.Errorf("TierOf(%d) = %v, want %v", tt.difficulty, got, tt.want)
		}
	}
}

func TestMixFor_SumsToSize(t *testing.T) {
	for level := 1; level <= 12; level++ {
		for _, size := range []int{1, 5, 8, 10} {
			e, m, h := MixFor(level, size)
			if e < 0 || m < 0 || h < 0 {
				t.Fatalf("MixFor(%d, %d) = (%d, %d, %d), negative count", level, size, e, m, h)
			}
			if e+m+h != size {
				t.Errorf("MixFor(%d, %d) sums to %d, want %d", level, size, e+m+h, size)
			}
		}
	}
}

func TestMixFor_Progression(t *testing.T) {
	e1, _, h1 := MixFor(1, 10)
	if e1 < 5 {
		t.Errorf("level 1 easy count = %d, want majority easy", e1)
	}
	if h1 != 0 {
		t.Errorf("level 1 hard count = %d, want 0", h1)
	}
	e9, _, h9 := MixFor(9, 10)
	if e9 != 0 {
		t.Errorf("level 9 easy count = %d, want 0", e9)
	}
	if h9 < 5 {
		t.Errorf("level 9 hard count = %d, want majority hard", h9)
	}
}

func pool() []Item {
	items := make([]Item, 0, 30)
	for i := 1; i <= 30; i++ {
		items = append(items, Item{ID: uint(i), Difficulty: (i % 10) + 1})
	}
	return items
}

func TestBuild_Deterministic(t *testing.T) {
	a, err := Build(pool(), 5, 8, 42)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build(pool(), 5, 8, 42)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different sets: %v vs %v", a, b)
	}

	c, err := Build(pool(), 5, 8, 43)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if reflect.DeepEqual(a, c) {
		t.Log("different seeds produced the same set; unlikely but not fatal")
	}
}

func TestBuild_SizeAndUniqueness(t *testing.T) {
	ids, err := Build(pool(), 3, 10, 7)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(ids) != 10 {
		t.Fatalf("len = %d, want 10", len(ids))
	}
	seen := map[uint]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate question %d in level", id)
		}
		seen[id] = true
	}
}

func TestBuild_BackfillsShortTiers(t *testing.T) {
	// All-easy pool at a high level: the hard/medium quotas must backfill
	// from the easy bucket instead of failing.
	easyOnly := make([]Item, 0, 12)
	for i := 1; i <= 12; i++ {
		easyOnly = append(easyOnly, Item{ID: uint(i), Difficulty: 2})
	}
	ids, err := Build(easyOnly, 8, 10, 1)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(ids) != 10 {
		t.Errorf("len = %d, want 10", len(ids))
	}
}

func TestBuild_PoolTooSmall(t *testing.T) {
	if _, err := Build(pool()[:3], 1, 5, 1); err != ErrPoolTooSmall {
		t.Errorf("Build with small pool = %v, want ErrPoolTooSmall", err)
	}
}

func TestBuild_InvalidSize(t *testing.T) {
	if _, err := Build(pool(), 1, 0, 1); err == nil {
		t.Error("Build with size 0 succeeded, want error")
	}
}
