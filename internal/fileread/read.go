// Package fileread measures whole-file read time: sequential read(2) at a
// given buffer size, and concurrent pread(2) over contiguous partitions.
package fileread

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/violenttestpen/syscost/internal/bench"
	"github.com/violenttestpen/syscost/internal/dropcache"
	"github.com/violenttestpen/syscost/internal/mono"
)

// ErrEmptyFile is a soft failure: there is nothing to partition.
var ErrEmptyFile = errors.New("file is empty")

// Config is one benchmark configuration. Workers < 1 means DefaultWorkers.
type Config struct {
	Path    string
	BufSize int
	Workers int
	Dropper dropcache.Dropper
}

// Outcome of a single timed read.
type Outcome struct {
	Elapsed   int64 // milliseconds
	BytesRead int64
	FileSize  int64
}

func (o Outcome) Result() bench.Result { return bench.Result(o.Elapsed) }

// DefaultWorkers is the host's hardware concurrency.
func DefaultWorkers() int { return runtime.NumCPU() }

func (cfg Config) workers() int {
	if cfg.Workers < 1 {
		return DefaultWorkers()
	}
	return cfg.Workers
}

// ReadOnce opens path, checks it is a regular file, and times sequential
// reads of exactly bufSize bytes until the stat'ed size is consumed or a
// read returns 0. Open, fstat and close are outside the timed window. Every
// error is fatal.
func ReadOnce(path string, bufSize int) (Outcome, error) {
	if bufSize < 1 {
		return Outcome{}, bench.Fatalf("invalid buffer size %d", bufSize)
	}
	fh, err := os.Open(path)
	if err != nil {
		return Outcome{}, bench.Fatal(err)
	}
	defer fh.Close()
	fd := int(fh.Fd())

	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return Outcome{}, bench.Fatal(errors.Wrapf(err, "fstat %s", path))
	}
	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		return Outcome{}, bench.Fatalf("%s: not a regular file", path)
	}

	buf := make([]byte, bufSize)
	start := mono.Start()
	n, err := readAll(fd, buf, st.Size)
	elapsed := mono.ElapsedMS(start)
	if err != nil {
		return Outcome{}, bench.Fatal(errors.Wrapf(err, "read %s", path))
	}
	return Outcome{Elapsed: elapsed, BytesRead: n, FileSize: st.Size}, nil
}

// readAll issues read(2) into buf until size bytes were read or EOF.
func readAll(fd int, buf []byte, size int64) (int64, error) {
	var total int64
	for total < size {
		n, err := unix.Read(fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return total, err
		}
		if n == 0 {
			break
		}
		total += int64(n)
	}
	return total, nil
}

// ReadSequential is the single-worker baseline: ReadOnce followed by the
// configured cache drop.
func ReadSequential(cfg Config) (Outcome, error) {
	o, err := ReadOnce(cfg.Path, cfg.BufSize)
	if err != nil {
		return o, err
	}
	dropcache.After(cfg.Dropper, cfg.Path)
	return o, nil
}

// SweepTrial adapts ReadOnce to the harness.
func SweepTrial(path string, bufSize int) bench.Trial {
	return func() (bench.Result, error) {
		o, err := ReadOnce(path, bufSize)
		if err != nil {
			return bench.Failed, err
		}
		return o.Result(), nil
	}
}

func (cfg Config) SequentialTrial() bench.Trial {
	return func() (bench.Result, error) {
		o, err := ReadSequential(cfg)
		if err != nil {
			return bench.Failed, err
		}
		return o.Result(), nil
	}
}

func (cfg Config) ConcurrentTrial() bench.Trial {
	return func() (bench.Result, error) {
		o, err := ReadConcurrent(cfg)
		if err != nil {
			return bench.Failed, err
		}
		return o.Result(), nil
	}
}
