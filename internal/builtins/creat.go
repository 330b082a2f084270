package builtins

import (
	"github.com/gofat32/shell/internal/direntry"
	"github.com/gofat32/shell/internal/directory"
	"github.com/gofat32/shell/internal/shellstate"

	driverrors "github.com/gofat32/shell/errors"
)

// Creat creates a new, empty file named filename in the current working
// directory. The file gets no cluster of its own until the first write.
func Creat(core *shellstate.ShellCore, filename string) error {
	if filename == "" {
		return driverrors.ErrInvalidArgument.WithMessage("creat: missing filename")
	}

	parent := core.CWDCluster
	if _, err := directory.FindEntryInDirectory(core.Vol, parent, filename); err == nil {
		return driverrors.ErrExists.WithMessage("creat: file already exists: " + filename)
	}

	entryCluster, entryOffset, err := directory.FindFreeDirectoryEntry(core.Vol, parent)
	if err != nil {
		return driverrors.ErrIOFailed.WithMessage("creat: no free directory entry available").WrapError(err)
	}

	entry := direntry.NewEntry(filename, direntry.AttrArchive, 0)
	if err := directory.WriteRawEntry(core.Vol, entryCluster, entryOffset, entry); err != nil {
		return err
	}

	return core.Vol.FlushFAT()
}
