package raft

import (
	"math/rand"
	"time"
)

// randSource is the subset of *rand.Rand the engine needs. Each Engine
// owns its own instance (seeded independently) rather than sharing the
// package-global source, so concurrently-running replicas in a test don't
// serialize on the global RNG's lock.
type randSource interface {
	Int63n(n int64) int64
}

func newRandSource() randSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// randDuration draws a uniform value from [min, max]. Panics if the range
// is inverted — callers must validate config first.
func randDuration(rng randSource, min, max time.Duration) time.Duration {
	assertf(min <= max, "randDuration: inverted range [%s, %s]", min, max)
	if min == max {
		return min
	}
	span := int64(max - min + 1)
	return min + time.Duration(rng.Int63n(span))
}

// epsilon is the small margin subtracted from a freshly computed deadline
// so the driver loop never re-sleeps past its own deadline due to timer
// rounding.
const epsilon = 2 * time.Microsecond
