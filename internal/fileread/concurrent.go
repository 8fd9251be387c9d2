package fileread

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/violenttestpen/syscost/internal/bench"
	"github.com/violenttestpen/syscost/internal/dropcache"
	"github.com/violenttestpen/syscost/internal/mono"
)

// preadTask is one worker's share: its span and a private buffer. Workers
// share the descriptor but never its file offset.
type preadTask struct {
	fd   int
	span Span
	buf  []byte
	read int64
}

func (t *preadTask) run() error {
	for t.read < t.span.Len {
		chunk := t.buf[:min(int64(len(t.buf)), t.span.Len-t.read)]
		n, err := unix.Pread(t.fd, chunk, t.span.Off+t.read)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "pread at %d", t.span.Off+t.read)
		}
		if n == 0 {
			break
		}
		t.read += int64(n)
	}
	return nil
}

// ReadConcurrent reads the whole file with one pread worker per partition.
// The size is taken once, before timing; the timed window covers open,
// all workers, and close. An empty file is a soft failure.
func ReadConcurrent(cfg Config) (Outcome, error) {
	if cfg.BufSize < 1 {
		return Outcome{}, bench.Fatalf("invalid buffer size %d", cfg.BufSize)
	}
	fi, err := os.Stat(cfg.Path)
	if err != nil {
		return Outcome{}, bench.Fatal(err)
	}
	size := fi.Size()
	if size == 0 {
		return Outcome{}, ErrEmptyFile
	}

	start := mono.Start()
	fh, err := os.Open(cfg.Path)
	if err != nil {
		return Outcome{}, bench.Fatal(err)
	}
	fd := int(fh.Fd())

	spans := Partition(size, cfg.workers())
	tasks := make([]*preadTask, len(spans))
	var g errgroup.Group
	for i, span := range spans {
		tasks[i] = &preadTask{fd: fd, span: span, buf: make([]byte, cfg.BufSize)}
		g.Go(tasks[i].run)
	}
	werr := g.Wait()
	fh.Close()
	elapsed := mono.ElapsedMS(start)

	if werr != nil {
		return Outcome{}, bench.Fatal(errors.Wrap(werr, cfg.Path))
	}
	o := Outcome{Elapsed: elapsed, FileSize: size}
	for _, t := range tasks {
		o.BytesRead += t.read
	}
	dropcache.After(cfg.Dropper, cfg.Path)
	return o, nil
}
