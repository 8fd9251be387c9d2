//go:build unix && !linux

package spawn

import (
	"runtime"

	"github.com/pkg/errors"
)

func NewRawForker() (Forker, error) {
	return nil, errors.Errorf("%s spawn mode is not supported on %s; use %s", ModeRaw, runtime.GOOS, ModeExec)
}
