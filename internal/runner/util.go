package runner

import (
	"time"

	"github.com/fatih/color"
)

func greenf(format string, args ...any) string { return color.GreenString(format, args...) }

// per names a counting window: "second" for the usual 1s, else its length.
func per(window time.Duration) string {
	if window == time.Second {
		return "second"
	}
	return window.String()
}
