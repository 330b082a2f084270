package builtins

import (
	"github.com/gofat32/shell/internal/shellstate"

	driverrors "github.com/gofat32/shell/errors"
)

// Close releases file descriptor fd back to the free pool.
func Close(core *shellstate.ShellCore, fd int) error {
	if core.GetOpenFile(fd) == nil {
		return driverrors.ErrInvalidFileDescriptor.WithMessage("close: file not open")
	}
	core.CloseDescriptor(fd)
	return nil
}
