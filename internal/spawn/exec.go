//go:build unix

package spawn

import (
	"os/exec"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ExecForker forks and execs a short-lived command. Portable across unix
// systems, but also pays for exec.
type ExecForker struct {
	path string
	argv []string
}

func NewExecForker(cmdline string) (Forker, error) {
	if strings.TrimSpace(cmdline) == "" {
		cmdline = DefaultCommand
	}
	argv := splitCommandLine(cmdline)
	if len(argv) == 0 || argv[0] == "" {
		return nil, errors.New("empty command string")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, errors.Wrapf(err, "spawn command %q", argv[0])
	}
	return &ExecForker{path: path, argv: argv}, nil
}

func (f *ExecForker) String() string { return ModeExec + ":" + strings.Join(f.argv, " ") }

func (f *ExecForker) Fork() (int, error) {
	pid, err := syscall.ForkExec(f.path, f.argv, &syscall.ProcAttr{})
	if err != nil {
		return 0, errors.Wrapf(err, "fork/exec %s", f.path)
	}
	return pid, nil
}

func (*ExecForker) Reap(pid int) error { return wait(pid) }

// wait blocks until the given child has exited.
func wait(pid int) error {
	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &ws, 0, nil)
		if err == unix.EINTR {
			continue
		}
		return err
	}
}

// splitCommandLine splits cmd on unquoted spaces and tabs. Single or double
// quotes group an argument and may be nested inside the other kind; a quote
// preceded by a backslash neither opens nor closes a group.
func splitCommandLine(cmd string) []string {
	var parts []string
	var inQuote rune

	var b strings.Builder
	for i, ch := range cmd {
		if (ch == '"' || ch == '\'') && (i == 0 || cmd[i-1] != '\\') {
			switch inQuote {
			case rune(0):
				inQuote = ch
			case ch:
				inQuote = rune(0)
			default:
				b.WriteRune(ch)
			}
		} else if (ch == ' ' || ch == '\t') && inQuote == 0 {
			if b.Len() > 0 {
				parts = append(parts, b.String())
				b.Reset()
			}
		} else {
			b.WriteRune(ch)
		}
	}
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}
	return parts
}
