package builtins

import (
	"strings"

	"github.com/gofat32/shell/internal/directory"
	"github.com/gofat32/shell/internal/shellstate"

	driverrors "github.com/gofat32/shell/errors"
)

func parseMode(mode string) (shellstate.FileMode, bool) {
	switch strings.TrimPrefix(mode, "-") {
	case "r":
		return shellstate.ModeRead, true
	case "w":
		return shellstate.ModeWrite, true
	case "rw", "wr":
		return shellstate.ModeReadWrite, true
	default:
		return 0, false
	}
}

// Open adds filename to the open-file table under the requested mode ("r",
// "w", "rw", "wr", each optionally prefixed with '-'), returning the new
// file descriptor.
func Open(core *shellstate.ShellCore, filename, mode string) (int, error) {
	if filename == "" {
		return 0, driverrors.ErrInvalidArgument.WithMessage("open: missing filename")
	}

	fileMode, ok := parseMode(mode)
	if !ok {
		return 0, driverrors.ErrInvalidArgument.WithMessage(
			"open: invalid mode specified; use -r, -w, -rw, or -wr")
	}

	if core.IsOpen(filename) {
		return 0, driverrors.ErrExists.WithMessage("open: file already open: " + filename)
	}

	loc, err := directory.FindEntryInDirectory(core.Vol, core.CWDCluster, filename)
	if err != nil {
		return 0, driverrors.ErrNotFound.WithMessage("open: no such file: " + filename)
	}
	if loc.Entry.IsDirectory() {
		return 0, driverrors.ErrIsADirectory.WithMessage("open: not a file: " + filename)
	}
	if fileMode.CanWrite() && loc.Entry.IsReadOnly() {
		return 0, driverrors.ErrPermissionDenied.WithMessage("open: file is read-only: " + filename)
	}

	fd, err := core.AllocDescriptor()
	if err != nil {
		return 0, driverrors.ErrTooManyOpenFiles.WithMessage("open: maximum number of open files reached")
	}

	core.SetOpenFile(fd, &shellstate.OpenFile{
		Name:         loc.Entry.DisplayName(),
		Mode:         fileMode,
		DirCluster:   core.CWDCluster,
		DirPath:      core.CWDPath,
		StartCluster: loc.Entry.Cluster,
		Size:         loc.Entry.FileSize,
		Offset:       0,
	})
	return fd, nil
}
