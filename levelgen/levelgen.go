// Package levelgen assembles training levels from a pool of trivia
// questions. It buckets the pool into difficulty tiers and picks a mix that
// hardens as the level number grows. The generator is pure and deterministic
// given a seed, so a level can be re-served identically within a session.
package levelgen

import (
	"errors"
	"math/rand"
	"sort"
)

// Tier is a difficulty bucket.
type Tier int

const (
	TierEasy Tier = iota
	TierMedium
	TierHard
)

// Item is the slice of a question the generator cares about.
type Item struct {
	ID         uint
	Difficulty int
}

// ErrPoolTooSmall is returned when the pool cannot fill the requested size.
var ErrPoolTooSmall = errors.New("question pool smaller than requested level size")

// TierOf maps a 1..10 difficulty onto a tier. Out-of-range values clamp.
func TierOf(difficulty int) Tier {
	switch {
	case difficulty <= 3:
		return TierEasy
	case difficulty <= 7:
		return TierMedium
	default:
		return TierHard
	}
}

// MixFor splits size into per-tier counts for a level. Early levels are
// mostly easy; from level 4 the mix shifts toward medium, and from level 7
// hard questions dominate. Counts always sum to size.
func MixFor(level, size int) (easy, medium, hard int) {
	if size <= 0 {
		return 0, 0, 0
	}
	switch {
	case level <= 3:
		easy = (size*6 + 9) / 10
		medium = size - easy
	case level <= 6:
		easy = (size*3 + 9) / 10
		medium = (size*5 + 9) / 10
		if easy+medium > size {
			medium = size - easy
		}
		hard = size - easy - medium
	default:
		medium = (size*4 + 9) / 10
		hard = size - medium
	}
	return easy, medium, hard
}

// Build selects question IDs for a level. Selection within each tier is
// shuffled by seed; when a tier runs short the shortfall is backfilled from
// the nearest easier tier first, then harder ones.
func Build(pool []Item, level, size int, seed int64) ([]uint, error) {
	if size <= 0 {
		return nil, errors.New("level size must be positive")
	}
	if len(pool) < size {
		return nil, ErrPoolTooSmall
	}

	buckets := map[Tier][]Item{}
	for _, it := range pool {
		t := TierOf(it.Difficulty)
		buckets[t] = append(buckets[t], it)
	}

	// Fixed tier order and a pre-shuffle sort keep the seed fully in charge
	// of the outcome; map iteration order must not leak in.
	rng := rand.New(rand.NewSource(seed))
	for _, t := range []Tier{TierEasy, TierMedium, TierHard} {
		b := buckets[t]
		sort.Slice(b, func(i, j int) bool { return b[i].ID < b[j].ID })
		rng.Shuffle(len(b), func(i, j int) { b[i], b[j] = b[j], b[i] })
		buckets[t] = b
	}

	wantEasy, wantMedium, wantHard := MixFor(level, size)
	picked := make([]uint, 0, size)
	picked = take(buckets, TierEasy, wantEasy, picked)
	picked = take(buckets, TierMedium, wantMedium, picked)
	picked = take(buckets, TierHard, wantHard, picked)

	// Backfill from whatever remains, easiest first.
	for _, t := range []Tier{TierEasy, TierMedium, TierHard} {
		if len(picked) >= size {
			break
		}
		picked = take(buckets, t, size-len(picked), picked)
	}
	if len(picked) < size {
		return nil, ErrPoolTooSmall
	}
	return picked, nil
}

func take(buckets map[Tier][]Item, t Tier, n int, into []uint) []uint {
	b := buckets[t]
	for n > 0 && len(b) > 0 {
		into = append(into, b[0].ID)
		b = b[1:]
		n--
	}
	buckets[t] = b
	return into
}
