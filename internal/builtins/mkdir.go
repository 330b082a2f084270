package builtins

import (
	"github.com/gofat32/shell/internal/direntry"
	"github.com/gofat32/shell/internal/directory"
	"github.com/gofat32/shell/internal/shellstate"

	driverrors "github.com/gofat32/shell/errors"
)

// Mkdir creates a new subdirectory named dirname in the current working
// directory, allocating its first cluster and populating it with "." and
// ".." entries.
func Mkdir(core *shellstate.ShellCore, dirname string) error {
	if dirname == "" {
		return driverrors.ErrInvalidArgument.WithMessage("mkdir: missing directory name")
	}

	parent := core.CWDCluster
	if _, err := directory.FindEntryInDirectory(core.Vol, parent, dirname); err == nil {
		return driverrors.ErrExists.WithMessage("mkdir: directory already exists: " + dirname)
	}

	entryCluster, entryOffset, err := directory.FindFreeDirectoryEntry(core.Vol, parent)
	if err != nil {
		return driverrors.ErrIOFailed.WithMessage("mkdir: no free directory entry available").WrapError(err)
	}

	newDirCluster, ok := core.Vol.AllocCluster()
	if !ok {
		return driverrors.ErrNoSpaceOnDevice.WithMessage("mkdir: no free clusters available for new directory")
	}

	entry := direntry.NewEntry(dirname, direntry.AttrSubdir, newDirCluster)
	if err := directory.WriteRawEntry(core.Vol, entryCluster, entryOffset, entry); err != nil {
		return err
	}

	if err := directory.InitializeDirectoryCluster(core.Vol, newDirCluster, parent); err != nil {
		return err
	}

	return core.Vol.FlushFAT()
}
