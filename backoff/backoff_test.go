package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextBackoffNoJitter(t *testing.T) {
	b := New(Config{
		InitialDelay: time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2,
		Jitter:       0,
	})

	assert.Equal(t, time.Second, b.CurrentBackoff())

	want := []time.Duration{
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		10 * time.Second,
		10 * time.Second,
	}
	for i, w := range want {
		got := b.NextBackoff()
		assert.Equalf(t, w, got, "step %d", i)
	}
}

func TestNextBackoffJitterBounds(t *testing.T) {
	cfg := Config{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     5 * time.Second,
		Multiplier:   1.6,
		Jitter:       0.3,
	}
	b := New(cfg)

	raw := cfg.InitialDelay
	for i := 0; i < 50; i++ {
		rawNext := time.Duration(float64(raw) * cfg.Multiplier)
		if rawNext > cfg.MaxDelay {
			rawNext = cfg.MaxDelay
		}
		raw = rawNext

		got := b.NextBackoff()
		lower := time.Duration(float64(raw) * (1 - cfg.Jitter))
		upper := time.Duration(float64(raw) * (1 + cfg.Jitter))

		assert.GreaterOrEqualf(t, got, lower, "step %d below lower bound", i)
		assert.LessOrEqualf(t, got, upper, "step %d above upper bound", i)
	}
}

func TestReset(t *testing.T) {
	b := New(Config{
		InitialDelay: time.Second,
		MaxDelay:     time.Minute,
		Multiplier:   2,
		Jitter:       0,
	})

	b.NextBackoff()
	b.NextBackoff()
	require.NotEqual(t, time.Second, b.CurrentBackoff())

	b.Reset()
	assert.Equal(t, time.Second, b.CurrentBackoff())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	assert.Panics(t, func() {
		New(Config{InitialDelay: time.Second, MaxDelay: time.Minute, Multiplier: 0.5, Jitter: 0})
	})
	assert.Panics(t, func() {
		New(Config{InitialDelay: time.Second, MaxDelay: time.Minute, Multiplier: 1, Jitter: 1})
	})
	assert.Panics(t, func() {
		New(Config{InitialDelay: time.Minute, MaxDelay: time.Second, Multiplier: 1, Jitter: 0})
	})
}
