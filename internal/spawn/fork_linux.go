//go:build linux

package spawn

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// RawForker clones the calling thread with plain fork semantics. The child
// runs no Go code beyond exit_group(0).
type RawForker struct{}

func NewRawForker() (Forker, error) { return RawForker{}, nil }

func (RawForker) String() string { return ModeRaw }

func (RawForker) Fork() (int, error) {
	pid, errno := rawFork()
	if errno != 0 {
		return 0, errors.Wrap(errno, "clone")
	}
	return pid, nil
}

func (RawForker) Reap(pid int) error { return wait(pid) }

// The child shares nothing with the runtime: no allocation, no stack growth,
// no scheduler. It must leave through a raw syscall.
//
//go:norace
//go:nosplit
func rawFork() (int, unix.Errno) {
	pid, _, errno := unix.RawSyscall6(unix.SYS_CLONE, uintptr(unix.SIGCHLD), 0, 0, 0, 0, 0)
	if errno != 0 {
		return 0, errno
	}
	if pid == 0 {
		unix.RawSyscall(unix.SYS_EXIT_GROUP, 0, 0, 0)
	}
	return int(pid), 0
}
