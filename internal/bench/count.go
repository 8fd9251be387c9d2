package bench

import "github.com/violenttestpen/syscost/internal/mono"

// CountUntil repeats cycle until the deadline has passed and returns the
// number of cycles that succeeded. The deadline is checked after every
// attempt, successful or not, so the first cycle always runs, a started
// cycle always completes, and persistent soft failures cannot spin past the
// deadline. A fatal error from cycle stops the loop.
func CountUntil(deadline mono.Deadline, cycle func() error) (int64, error) {
	var count int64
	for {
		err := cycle()
		switch {
		case err == nil:
			count++
		case IsFatal(err):
			return count, err
		}
		if deadline.Passed() {
			return count, nil
		}
	}
}
