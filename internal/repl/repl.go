// Package repl runs the interactive read-eval-print loop: it prompts,
// reads one line, tokenizes and expands it, and dispatches the first
// command part to a builtin.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gofat32/shell/internal/builtins"
	"github.com/gofat32/shell/internal/parser"
	"github.com/gofat32/shell/internal/shellstate"
)

// REPL drives one interactive session against a ShellCore.
type REPL struct {
	Core      *shellstate.ShellCore
	ImageName string

	In  *bufio.Scanner
	Out io.Writer
	Err io.Writer
}

// New constructs a REPL reading lines from in and writing prompts/output
// to out and errors to errw.
func New(core *shellstate.ShellCore, imageName string, in io.Reader, out, errw io.Writer) *REPL {
	return &REPL{
		Core:      core,
		ImageName: imageName,
		In:        bufio.NewScanner(in),
		Out:       out,
		Err:       errw,
	}
}

// Run prompts and executes commands until the input stream is exhausted or
// the `exit` builtin is invoked (which terminates the process directly).
func (r *REPL) Run() {
	for {
		fmt.Fprintf(r.Out, "%s%s>", r.ImageName, r.Core.CWDPath)
		if flusher, ok := r.Out.(interface{ Flush() error }); ok {
			flusher.Flush()
		}

		if !r.In.Scan() {
			return
		}
		line := strings.TrimSpace(r.In.Text())
		if line == "" {
			continue
		}

		r.Execute(line)
	}
}

// Execute tokenizes, expands, and interprets one line of input, then
// dispatches its first command part to a builtin.
func (r *REPL) Execute(line string) {
	tokens := parser.Tokenize(line)
	expanded := parser.Expand(tokens)
	parts := parser.Interpret(expanded)
	if len(parts) == 0 {
		return
	}

	part := parts[0]
	if part.ParseError != "" {
		fmt.Fprintf(r.Err, "%s\n", part.ParseError)
		return
	}

	r.dispatch(part.Program, part.Args)
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func argInt(args []string, i int) int {
	v, err := strconv.Atoi(arg(args, i))
	if err != nil {
		return 0
	}
	return v
}

func (r *REPL) dispatch(program string, args []string) {
	switch program {
	case "info":
		builtins.Info(r.Out, r.Core.Vol.Boot)
	case "exit":
		builtins.Exit()
	case "cd":
		if err := builtins.Cd(r.Core, arg(args, 0)); err != nil {
			fmt.Fprintln(r.Err, err.Error())
		}
	case "ls":
		if err := builtins.Ls(r.Out, r.Core); err != nil {
			fmt.Fprintln(r.Err, err.Error())
		}
	case "mkdir":
		if err := builtins.Mkdir(r.Core, arg(args, 0)); err != nil {
			fmt.Fprintln(r.Err, err.Error())
		}
	case "rmdir":
		if err := builtins.Rmdir(r.Core, arg(args, 0)); err != nil {
			fmt.Fprintln(r.Err, err.Error())
		}
	case "creat":
		if err := builtins.Creat(r.Core, arg(args, 0)); err != nil {
			fmt.Fprintln(r.Err, err.Error())
		}
	case "rm":
		if err := builtins.Rm(r.Core, arg(args, 0)); err != nil {
			fmt.Fprintln(r.Err, err.Error())
		}
	case "mv":
		msg, err := builtins.Mv(r.Core, arg(args, 0), arg(args, 1))
		if err != nil {
			fmt.Fprintln(r.Err, err.Error())
		} else {
			fmt.Fprintln(r.Out, msg)
		}
	case "open":
		mode := arg(args, 1)
		if mode == "" {
			mode = "r"
		}
		fd, err := builtins.Open(r.Core, arg(args, 0), mode)
		if err != nil {
			fmt.Fprintln(r.Err, err.Error())
		} else {
			fmt.Fprintf(r.Out, "opened fd %d\n", fd)
		}
	case "close":
		if err := builtins.Close(r.Core, argInt(args, 0)); err != nil {
			fmt.Fprintln(r.Err, err.Error())
		}
	case "lsof":
		builtins.Lsof(r.Out, r.Core)
	case "lseek":
		if err := builtins.Lseek(r.Core, argInt(args, 0), uint32(argInt(args, 1))); err != nil {
			fmt.Fprintln(r.Err, err.Error())
		}
	case "read":
		if err := builtins.Read(r.Out, r.Core, argInt(args, 0), argInt(args, 1)); err != nil {
			fmt.Fprintln(r.Err, err.Error())
		}
		fmt.Fprintln(r.Out)
	case "write":
		if err := builtins.Write(r.Core, argInt(args, 0), arg(args, 1)); err != nil {
			fmt.Fprintln(r.Err, err.Error())
		}
	default:
		fmt.Fprintf(r.Err, "Unknown built-in command: %s\n", program)
	}
}
