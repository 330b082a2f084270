package builtins

import (
	"fmt"
	"io"

	"github.com/gofat32/shell/internal/shellstate"
)

func modeString(m shellstate.FileMode) string {
	switch m {
	case shellstate.ModeRead:
		return "r"
	case shellstate.ModeWrite:
		return "w"
	default:
		return "rw"
	}
}

// Lsof lists every currently open file descriptor to w.
func Lsof(w io.Writer, core *shellstate.ShellCore) {
	fds := core.OpenDescriptors()
	if len(fds) == 0 {
		fmt.Fprintln(w, "No open files.")
		return
	}

	fmt.Fprintln(w, "Open Files:")
	for _, fd := range fds {
		of := core.GetOpenFile(fd)
		fullPath := "/" + of.Name
		if of.DirPath != "/" {
			fullPath = of.DirPath + "/" + of.Name
		}
		fmt.Fprintf(w, "Name: %s, Mode: %s, Offset: %d, Path: %s, FD: %d, Size: %d\n",
			of.Name, modeString(of.Mode), of.Offset, fullPath, fd, of.Size)
	}
}
