package builtins

import (
	"github.com/gofat32/shell/internal/directory"
	"github.com/gofat32/shell/internal/shellstate"

	driverrors "github.com/gofat32/shell/errors"
)

// Rm removes a file (not a directory) named filename from the current
// working directory, deallocating its cluster chain if it has one.
func Rm(core *shellstate.ShellCore, filename string) error {
	if filename == "" {
		return driverrors.ErrInvalidArgument.WithMessage("rm: missing file name")
	}

	parent := core.CWDCluster
	loc, err := directory.FindEntryInDirectory(core.Vol, parent, filename)
	if err != nil {
		return driverrors.ErrNotFound.WithMessage("rm: file not found: " + filename)
	}

	if loc.Entry.IsDirectory() {
		return driverrors.ErrIsADirectory.WithMessage("rm: " + filename + " is a directory")
	}

	if core.IsOpenInDir(parent, filename) {
		return driverrors.ErrBusy.WithMessage("rm: cannot remove open file: " + filename)
	}

	if loc.Entry.Cluster != 0 {
		core.Vol.DeallocChain(loc.Entry.Cluster)
	}

	if err := directory.MarkEntryDeleted(core.Vol, loc); err != nil {
		return err
	}

	return core.Vol.FlushFAT()
}
