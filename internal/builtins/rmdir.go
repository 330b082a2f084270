package builtins

import (
	"github.com/gofat32/shell/internal/directory"
	"github.com/gofat32/shell/internal/shellstate"

	driverrors "github.com/gofat32/shell/errors"
)

// Rmdir removes an empty subdirectory named dirname from the current
// working directory. "." and ".." can never be removed.
func Rmdir(core *shellstate.ShellCore, dirname string) error {
	if dirname == "" {
		return driverrors.ErrInvalidArgument.WithMessage("rmdir: missing directory name")
	}
	if dirname == "." || dirname == ".." {
		return driverrors.ErrInvalidArgument.WithMessage("rmdir: cannot remove '.' or '..'")
	}

	parent := core.CWDCluster
	loc, err := directory.FindEntryInDirectory(core.Vol, parent, dirname)
	if err != nil {
		return driverrors.ErrNotFound.WithMessage("rmdir: directory not found: " + dirname)
	}

	if !loc.Entry.IsDirectory() {
		return driverrors.ErrNotADirectory.WithMessage("rmdir: " + dirname + " is not a directory")
	}

	start := loc.Entry.Cluster
	if start == 0 {
		return driverrors.ErrInvalidFileSystem.WithMessage("rmdir: invalid directory cluster")
	}

	empty, err := directory.IsEmpty(core.Vol, start)
	if err != nil {
		return err
	}
	if !empty {
		return driverrors.ErrDirectoryNotEmpty.WithMessage("rmdir: directory not empty: " + dirname)
	}

	core.Vol.DeallocChain(start)

	if err := directory.MarkEntryDeleted(core.Vol, loc); err != nil {
		return err
	}

	return core.Vol.FlushFAT()
}
