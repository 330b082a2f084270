package builtins

import (
	"fmt"
	"io"

	"github.com/gofat32/shell/internal/directory"
	"github.com/gofat32/shell/internal/shellstate"
)

// Ls lists the entries of the current working directory to w, one per
// line, tagged [DIR] or [FILE].
func Ls(w io.Writer, core *shellstate.ShellCore) error {
	entries, err := directory.ListEntries(core.Vol, core.CWDCluster)
	if err != nil {
		return err
	}

	for _, e := range entries {
		if e.IsDirectory() {
			fmt.Fprintf(w, "[DIR]  %s\n", e.DisplayName())
		} else {
			fmt.Fprintf(w, "[FILE] %s\n", e.DisplayName())
		}
	}
	return nil
}
