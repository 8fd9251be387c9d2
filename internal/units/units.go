// Package units scales timings and byte sizes for console output and parses
// buffer-size arguments.
package units

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var denominators = []int64{int64(time.Hour), int64(time.Minute), int64(time.Second), int64(time.Millisecond), int64(time.Microsecond), int64(time.Nanosecond)}
var names = []string{"h", "m", "s", "ms", "µs", "ns"}

// Metrics returns the denominator and unit name that best fit the given
// nanosecond timing. Zero and negative timings scale as nanoseconds.
func Metrics(timing int64) (float64, string) {
	for i, denominator := range denominators {
		if timing/denominator > 0 {
			return float64(denominator), names[i]
		}
	}
	return float64(time.Nanosecond), "ns"
}

// Duration formats d with two decimals in its best-fitting unit.
func Duration(d time.Duration) string {
	denominator, unit := Metrics(int64(d))
	return fmt.Sprintf("%.2f %s", float64(d)/denominator, unit)
}

// IEC (binary) units
const (
	KiB = 1024
	MiB = 1024 * KiB
	GiB = 1024 * MiB
)

func ToSizeIEC(b int64) string {
	switch {
	case b >= GiB && b%GiB == 0:
		return fmt.Sprintf("%dGiB", b/GiB)
	case b >= MiB && b%MiB == 0:
		return fmt.Sprintf("%dMiB", b/MiB)
	case b >= KiB && b%KiB == 0:
		return fmt.Sprintf("%dKiB", b/KiB)
	default:
		return fmt.Sprintf("%dB", b)
	}
}

// ParseSize accepts raw byte counts ("4096") or IEC suffixes ("4KiB", "1M").
// Single-letter suffixes are treated as binary.
func ParseSize(size string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(size))
	if s == "" {
		return 0, errors.Errorf("ParseSize: empty size")
	}
	mult := int64(1)
	for _, sfx := range []struct {
		name string
		mult int64
	}{
		{"KIB", KiB}, {"MIB", MiB}, {"GIB", GiB},
		{"K", KiB}, {"M", MiB}, {"G", GiB},
		{"B", 1},
	} {
		if strings.HasSuffix(s, sfx.name) {
			s, mult = strings.TrimSuffix(s, sfx.name), sfx.mult
			break
		}
	}
	val, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "ParseSize %q", size)
	}
	if val <= 0 {
		return 0, errors.Errorf("ParseSize %q: size must be positive", size)
	}
	return val * mult, nil
}

// ParseSizes parses a comma-separated list, keeping order and duplicates.
func ParseSizes(list string) ([]int64, error) {
	var sizes []int64
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		n, err := ParseSize(part)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, errors.Errorf("ParseSizes %q: no sizes", list)
	}
	return sizes, nil
}
