// Package duration parses human friendly durations like "30d" or "2w" in
// addition to the stdlib forms, and exposes a pflag value for them.
package duration

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

type Duration time.Duration

var suffixes = []struct {
	Suffix     string
	Multiplier time.Duration
}{
	{Suffix: "d", Multiplier: time.Hour * 24},
	{Suffix: "w", Multiplier: time.Hour * 24 * 7},
	{Suffix: "M", Multiplier: time.Hour * 24 * 30},
	{Suffix: "y", Multiplier: time.Hour * 24 * 365},
}

func ParseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err == nil {
		return d, nil
	}
	for _, sfx := range suffixes {
		if strings.HasSuffix(s, sfx.Suffix) {
			n, perr := strconv.ParseFloat(strings.TrimSuffix(s, sfx.Suffix), 64)
			if perr != nil {
				return 0, perr
			}
			return time.Duration(n * float64(sfx.Multiplier)), nil
		}
	}
	return 0, err
}

func (d *Duration) String() string {
	return time.Duration(*d).String()
}

func (d *Duration) Set(s string) error {
	v, err := ParseDuration(s)
	*d = Duration(v)
	return err
}

func (d *Duration) Type() string {
	return "Duration"
}

func (d *Duration) UnmarshalText(text []byte) error {
	return d.Set(string(text))
}

func newDurationValue(val time.Duration, p *time.Duration) *Duration {
	*p = val
	return (*Duration)(p)
}

// DurationVar registers a duration flag that accepts the extended suffixes.
func DurationVar(f *pflag.FlagSet, p *time.Duration, name string, value time.Duration, usage string) {
	f.VarP(newDurationValue(value, p), name, "", usage)
}
