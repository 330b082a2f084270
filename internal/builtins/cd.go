package builtins

import (
	"strings"

	"github.com/gofat32/shell/internal/directory"
	"github.com/gofat32/shell/internal/shellstate"

	driverrors "github.com/gofat32/shell/errors"
)

// Cd changes the current working directory to targetDir, which must be a
// single path component relative to the current directory: ".", "..", or a
// subdirectory name. Multi-component and absolute paths are not supported.
func Cd(core *shellstate.ShellCore, targetDir string) error {
	if targetDir == "" {
		return driverrors.ErrInvalidArgument.WithMessage("cd: missing operand")
	}
	if targetDir == "." {
		return nil
	}

	if targetDir == ".." {
		return cdUp(core)
	}

	loc, err := directory.FindEntryInDirectory(core.Vol, core.CWDCluster, targetDir)
	if err != nil {
		return driverrors.ErrNotFound.WithMessage("cd: no such directory: " + targetDir)
	}
	if !loc.Entry.IsDirectory() {
		return driverrors.ErrNotADirectory.WithMessage("cd: not a directory: " + targetDir)
	}

	core.CWDCluster = loc.Entry.Cluster
	if targetDir == "/" {
		core.CWDPath = "/"
	} else if core.CWDPath == "/" {
		core.CWDPath = "/" + loc.Entry.DisplayName()
	} else {
		core.CWDPath = core.CWDPath + "/" + loc.Entry.DisplayName()
	}
	return nil
}

func cdUp(core *shellstate.ShellCore) error {
	root := core.Vol.Boot.RootCluster
	if core.CWDCluster == root {
		return nil
	}

	loc, err := directory.FindEntryInDirectory(core.Vol, core.CWDCluster, "..")
	if err != nil {
		return err
	}

	parent := loc.Entry.Cluster
	if parent == 0 {
		parent = root
	}
	core.CWDCluster = parent

	if core.CWDPath != "/" {
		if pos := strings.LastIndexByte(core.CWDPath, '/'); pos >= 0 {
			if pos == 0 {
				core.CWDPath = "/"
			} else {
				core.CWDPath = core.CWDPath[:pos]
			}
		}
	}
	return nil
}
