// Package builtins implements the shell's built-in commands. Most functions
// here operate directly on a shellstate.ShellCore; those that can fail
// return an error rather than printing one, so the REPL decides how and
// where to report failures.
package builtins

import "os"

// Exit terminates the process immediately, matching a real shell's `exit`.
func Exit() {
	os.Exit(0)
}
