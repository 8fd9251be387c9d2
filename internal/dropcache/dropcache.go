// Package dropcache invalidates cached file data between trials so reads
// hit the device. Every implementation is best effort: callers go through
// After, which logs failures and never returns them.
package dropcache

import (
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

const DropCachesPath = "/proc/sys/vm/drop_caches"

// Dropper evicts cached data for the benchmarked file (or the whole system).
type Dropper interface {
	Drop(path string) error
	String() string
}

// After runs d outside any timed window. Errors are logged only.
func After(d Dropper, path string) {
	if d == nil {
		return
	}
	if err := d.Drop(path); err != nil {
		glog.Warningf("%s: failed to drop cached data for %q: %v", d, path, err)
	}
}

// New maps a CLI mode name to a Dropper.
func New(mode string) (Dropper, error) {
	switch mode {
	case "", "none":
		return Nop{}, nil
	case "proc":
		return NewProc(), nil
	case "fadvise":
		return Fadvise{}, nil
	default:
		return nil, errors.Errorf("unknown cache drop mode %q (expecting none, proc, or fadvise)", mode)
	}
}

// Nop is the default: caches are left alone.
type Nop struct{}

func (Nop) Drop(string) error { return nil }
func (Nop) String() string    { return "none" }

// Proc writes "3" to /proc/sys/vm/drop_caches after a sync. Requires root.
type Proc struct {
	Path string
	FS   *procfs.FS
}

func NewProc() *Proc {
	p := &Proc{Path: DropCachesPath}
	if fs, err := procfs.NewDefaultFS(); err == nil {
		p.FS = &fs
	}
	return p
}

func (*Proc) String() string { return "proc" }

func (p *Proc) Drop(string) error {
	before := p.cached()
	unix.Sync()
	fh, err := os.OpenFile(p.Path, os.O_WRONLY, 0)
	if err != nil {
		return errors.Wrapf(err, "open %s", p.Path)
	}
	if _, err := fh.Write([]byte("3")); err != nil {
		fh.Close()
		return errors.Wrapf(err, "write %s", p.Path)
	}
	if err := fh.Close(); err != nil {
		return errors.Wrapf(err, "close %s", p.Path)
	}
	if glog.V(1) && before >= 0 {
		glog.Infof("page cache: %d KiB -> %d KiB", before, p.cached())
	}
	return nil
}

// cached returns the kernel's page cache size in KiB, -1 if unknown.
func (p *Proc) cached() int64 {
	if p.FS == nil {
		return -1
	}
	mi, err := p.FS.Meminfo()
	if err != nil || mi.Cached == nil {
		return -1
	}
	return int64(*mi.Cached)
}

// Fadvise asks the kernel to drop clean pages of the benchmarked file only.
// Unprivileged; dirty pages stay resident.
type Fadvise struct{}

func (Fadvise) String() string { return "fadvise" }

func (Fadvise) Drop(path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "fadvise")
	}
	defer fh.Close()
	if err := unix.Fadvise(int(fh.Fd()), 0, 0, unix.FADV_DONTNEED); err != nil {
		return errors.Wrapf(err, "fadvise %s", path)
	}
	return nil
}
