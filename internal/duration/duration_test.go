package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		In   string
		Want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"15m", 15 * time.Minute},
		{"1h30m", 90 * time.Minute},
		{"1d", 24 * time.Hour},
		{"2w", 14 * 24 * time.Hour},
		{"1M", 30 * 24 * time.Hour},
		{"1y", 365 * 24 * time.Hour},
		{"0.5d", 12 * time.Hour},
	}
	for _, tc := range cases {
		got, err := ParseDuration(tc.In)
		assert.NoError(t, err, tc.In)
		assert.Equal(t, tc.Want, got, tc.In)
	}
}

func TestParseDurationInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "d", "1q"} {
		_, err := ParseDuration(in)
		assert.Error(t, err, in)
	}
}
