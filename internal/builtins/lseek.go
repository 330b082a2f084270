package builtins

import (
	"github.com/gofat32/shell/internal/shellstate"

	driverrors "github.com/gofat32/shell/errors"
)

// Lseek moves fd's cursor to offset, clamped to the file's current size.
func Lseek(core *shellstate.ShellCore, fd int, offset uint32) error {
	of := core.GetOpenFile(fd)
	if of == nil {
		return driverrors.ErrInvalidFileDescriptor.WithMessage("lseek: file not open")
	}

	if offset > of.Size {
		of.Offset = of.Size
	} else {
		of.Offset = offset
	}
	return nil
}
