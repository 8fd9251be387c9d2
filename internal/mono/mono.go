// Package mono wraps the monotonic clock used by every trial runner.
package mono

import "time"

// Time is a captured monotonic timestamp. The wall-clock part of the
// underlying time.Time is never consulted.
type Time struct {
	t time.Time
}

// Start captures the current monotonic timestamp.
func Start() Time { return Time{t: time.Now()} }

// Since returns the time elapsed since start.
func Since(start Time) time.Duration {
	d := time.Since(start.t)
	if d < 0 {
		return 0
	}
	return d
}

// ElapsedMS returns whole milliseconds elapsed since start.
func ElapsedMS(start Time) int64 { return Since(start).Milliseconds() }

// Deadline is an explicit measurement budget handed to counting loops.
type Deadline struct {
	start  Time
	window time.Duration
}

func NewDeadline(window time.Duration) Deadline {
	return Deadline{start: Start(), window: window}
}

// Passed reports whether more than the window has elapsed.
func (d Deadline) Passed() bool { return Since(d.start) > d.window }

func (d Deadline) Elapsed() time.Duration { return Since(d.start) }

func (d Deadline) Window() time.Duration { return d.window }
