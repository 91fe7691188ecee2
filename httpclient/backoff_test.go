package httpclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConstantBackOffWithJitter(t *testing.T) {
	b := &ConstantBackOffWithJitter{Interval: time.Second, JitterFactor: 0.25}

	for range 100 {
		d := b.NextBackOff()
		assert.GreaterOrEqual(t, d, 750*time.Millisecond)
		assert.LessOrEqual(t, d, 1250*time.Millisecond)
	}
}

func TestApplyJitter(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		lo, hi time.Duration
	}{
		{name: "given no jitter, then exact interval", factor: 0, lo: time.Second, hi: time.Second},
		{name: "given 0.5, then within half", factor: 0.5, lo: 500 * time.Millisecond, hi: 1500 * time.Millisecond},
		{name: "given factor above 1, then clamped", factor: 3, lo: 0, hi: 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := applyJitter(time.Second, tt.factor)
			assert.GreaterOrEqual(t, d, tt.lo)
			assert.LessOrEqual(t, d, tt.hi)
		})
	}
}

func TestExponentialBackOffFromConfig(t *testing.T) {
	b := ExponentialBackOffFromConfig(RetryConfig{
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     time.Second,
		JitterFactor:    0,
	})

	assert.Equal(t, 100*time.Millisecond, b.InitialInterval)
	assert.InEpsilon(t, DefaultJitterFactor, b.RandomizationFactor, 0.001)
	assert.InEpsilon(t, DefaultMultiplier, b.Multiplier, 0.001)

	first := b.NextBackOff()
	assert.GreaterOrEqual(t, first, 50*time.Millisecond)
	assert.LessOrEqual(t, first, 150*time.Millisecond)
}
