package fileread

import "github.com/violenttestpen/syscost/internal/units"

// DefaultSweep is the ascending list of candidate buffer sizes. 4096 appears
// twice; the repeat shows run-to-run stability at the page size.
var DefaultSweep = []int64{
	1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096,
	4096, 8192, 16 * units.KiB, 32 * units.KiB, 64 * units.KiB,
	256 * units.KiB, 512 * units.KiB, units.MiB,
}

const DefaultTrials = 10
