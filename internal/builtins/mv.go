package builtins

import (
	"strings"

	"github.com/gofat32/shell/internal/direntry"
	"github.com/gofat32/shell/internal/directory"
	"github.com/gofat32/shell/internal/shellstate"

	driverrors "github.com/gofat32/shell/errors"
)

// Mv either renames src to dest in place (when no entry named dest exists)
// or moves src into dest (when dest names an existing directory, keeping
// src's original short name). It fails when dest names an existing file.
// Returns a human-readable confirmation message on success.
func Mv(core *shellstate.ShellCore, src, dest string) (string, error) {
	if src == "" || dest == "" {
		return "", driverrors.ErrInvalidArgument.WithMessage("mv: missing operand")
	}
	if strings.EqualFold(src, dest) {
		return "", driverrors.ErrInvalidArgument.WithMessage("mv: source and destination are the same")
	}
	if core.IsOpen(src) {
		return "", driverrors.ErrBusy.WithMessage("mv: cannot move open file '" + src + "'")
	}

	cwd := core.CWDCluster
	srcLoc, err := directory.FindEntryInDirectory(core.Vol, cwd, src)
	if err != nil {
		return "", driverrors.ErrNotFound.WithMessage("mv: cannot stat '" + src + "': No such file or directory")
	}

	destLoc, err := directory.FindEntryInDirectory(core.Vol, cwd, dest)
	if err != nil {
		return moveRename(core, srcLoc, dest)
	}
	return moveIntoDirectory(core, srcLoc, destLoc, src, dest)
}

func moveRename(core *shellstate.ShellCore, srcLoc *directory.Location, dest string) (string, error) {
	updated := srcLoc.Entry
	if err := direntry.SetEntryName(&updated, dest); err != nil {
		return "", err
	}

	if err := directory.UpdateDirEntry(core.Vol, srcLoc, updated); err != nil {
		return "", driverrors.ErrIOFailed.WithMessage("mv: failed to update directory entry").WrapError(err)
	}
	if err := core.Vol.FlushFAT(); err != nil {
		return "", err
	}
	return "renamed '" + srcLoc.Entry.DisplayName() + "' -> '" + dest + "'", nil
}

func moveIntoDirectory(core *shellstate.ShellCore, srcLoc, destLoc *directory.Location, src, dest string) (string, error) {
	if !destLoc.Entry.IsDirectory() {
		return "", driverrors.ErrNotADirectory.WithMessage("mv: cannot overwrite '" + dest + "': not a directory")
	}

	destDirCluster := destLoc.Entry.Cluster
	if destDirCluster == 0 {
		destDirCluster = core.Vol.Boot.RootCluster
	}

	if srcLoc.Entry.IsDirectory() && destDirCluster == srcLoc.Entry.Cluster {
		return "", driverrors.ErrInvalidArgument.WithMessage("mv: cannot move directory into itself")
	}

	freeCluster, freeOffset, err := directory.FindFreeDirectoryEntry(core.Vol, destDirCluster)
	if err != nil {
		return "", driverrors.ErrIOFailed.WithMessage("mv: destination directory is full").WrapError(err)
	}

	if err := directory.WriteRawEntry(core.Vol, freeCluster, freeOffset, srcLoc.Entry); err != nil {
		return "", driverrors.ErrIOFailed.WithMessage("mv: failed to write destination entry").WrapError(err)
	}

	if err := directory.MarkEntryDeleted(core.Vol, srcLoc); err != nil {
		return "", driverrors.ErrIOFailed.WithMessage("mv: failed to delete old entry").WrapError(err)
	}

	core.Vol.FlushFAT()
	return "moved '" + src + "' into directory '" + dest + "'", nil
}
