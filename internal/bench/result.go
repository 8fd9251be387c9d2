// Package bench is the shared repeated-trial harness: trial results, trial
// sets and their averages, and the fatal-vs-soft failure split.
package bench

import "math"

// Failed marks a trial that produced no valid measurement.
const Failed Result = -1

// Result is a single trial's elapsed milliseconds or count. Negative means
// the trial failed and must not be averaged.
type Result int64

func (r Result) OK() bool { return r >= 0 }

// TrialSet is the ordered results for one configuration.
type TrialSet []Result

// Succeeded returns the valid results, in order.
func (ts TrialSet) Succeeded() []int64 {
	out := make([]int64, 0, len(ts))
	for _, r := range ts {
		if r.OK() {
			out = append(out, int64(r))
		}
	}
	return out
}

// Mean averages over successful trials only. ok is false when none succeeded.
func (ts TrialSet) Mean() (mean float64, ok bool) {
	values := ts.Succeeded()
	if len(values) == 0 {
		return 0, false
	}
	var total int64
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values)), true
}

func (ts TrialSet) Min() (int64, bool) {
	values := ts.Succeeded()
	if len(values) == 0 {
		return 0, false
	}
	lo := int64(math.MaxInt64)
	for _, v := range values {
		lo = min(lo, v)
	}
	return lo, true
}

func (ts TrialSet) Max() (int64, bool) {
	values := ts.Succeeded()
	if len(values) == 0 {
		return 0, false
	}
	hi := int64(math.MinInt64)
	for _, v := range values {
		hi = max(hi, v)
	}
	return hi, true
}

// Stdev is the sample standard deviation of successful trials; zero with
// fewer than two.
func (ts TrialSet) Stdev() float64 {
	values := ts.Succeeded()
	if len(values) < 2 {
		return 0
	}
	mean, _ := ts.Mean()
	var numerator float64
	for _, value := range values {
		delta := float64(value) - mean
		numerator += delta * delta
	}
	return math.Sqrt(numerator / float64(len(values)-1))
}
