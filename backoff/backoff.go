// Package backoff computes an exponentially growing, jittered retry delay
// sequence. It holds no shared state and is safe for use by exactly one
// caller at a time.
package backoff

import (
	"math/rand"
	"time"
)

// Config parameterizes a Backoff sequence.
type Config struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       float64
}

// DefaultConfig mirrors the source crate's defaults.
func DefaultConfig() Config {
	return Config{
		InitialDelay: time.Second,
		MaxDelay:     120 * time.Second,
		Multiplier:   1.6,
		Jitter:       0.2,
	}
}

// Backoff produces a lazy, restartable sequence of positive durations.
//
// The raw ("without jitter") sequence is monotonically non-decreasing and
// bounded above by config.MaxDelay. Each jittered value returned lies in
// [raw*(1-jitter), raw*(1+jitter)].
type Backoff struct {
	config        Config
	rng           *rand.Rand
	withoutJitter time.Duration
	withJitter    time.Duration
}

// New constructs a Backoff with current = config.InitialDelay.
//
// Panics if config.Multiplier < 1, config.Jitter is outside [0, 1), or
// config.InitialDelay > config.MaxDelay — these are programmer errors, not
// recoverable conditions.
func New(config Config) *Backoff {
	if config.Multiplier < 1 {
		panic("backoff: multiplier must be >= 1")
	}
	if config.Jitter < 0 || config.Jitter >= 1 {
		panic("backoff: jitter must be in [0, 1)")
	}
	if config.InitialDelay > config.MaxDelay {
		panic("backoff: initial delay must be <= max delay")
	}

	return &Backoff{
		config:        config,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		withoutJitter: config.InitialDelay,
		withJitter:    config.InitialDelay,
	}
}

// CurrentBackoff returns the last jittered value computed (or the initial
// delay if NextBackoff has never been called).
func (b *Backoff) CurrentBackoff() time.Duration {
	return b.withJitter
}

// NextBackoff advances the sequence and returns the new jittered value.
func (b *Backoff) NextBackoff() time.Duration {
	raw := time.Duration(float64(b.withoutJitter) * b.config.Multiplier)
	if raw > b.config.MaxDelay {
		raw = b.config.MaxDelay
	}
	b.withoutJitter = raw

	factor := 1 - b.config.Jitter + b.rng.Float64()*2*b.config.Jitter
	b.withJitter = time.Duration(float64(raw) * factor)

	return b.withJitter
}

// Reset returns both the raw and jittered sequences to config.InitialDelay.
//
// The source crate spells this "rest" — a typo. This implementation uses
// the correct name.
func (b *Backoff) Reset() {
	b.withoutJitter = b.config.InitialDelay
	b.withJitter = b.config.InitialDelay
}
