package bench

// Trial runs one measured operation. A non-nil error that is not fatal
// counts as a soft failure; a fatal error aborts the set.
type Trial func() (Result, error)

// Observer is notified after every trial; used for progress lines.
type Observer func(done, total int, set TrialSet)

// Repeat runs trial n times. Soft failures are recorded as Failed and the
// set continues. On a fatal error Repeat returns immediately with the
// results gathered so far and that error.
func Repeat(n int, trial Trial, observe Observer) (TrialSet, error) {
	set := make(TrialSet, 0, n)
	for i := 0; i < n; i++ {
		r, err := trial()
		switch {
		case IsFatal(err):
			return set, err
		case err != nil:
			r = Failed
		}
		set = append(set, r)
		if observe != nil {
			observe(i+1, n, set)
		}
	}
	return set, nil
}
