package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofat32/shell/internal/repl"
	"github.com/gofat32/shell/internal/shellstate"
	"github.com/gofat32/shell/internal/testutil"
)

func newREPL(t *testing.T, input string) (*repl.REPL, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	vol, err := testutil.NewImage(testutil.DefaultImageOptions())
	require.NoError(t, err)
	core := shellstate.New(vol)

	var out, errw bytes.Buffer
	r := repl.New(core, "disk.img", strings.NewReader(input), &out, &errw)
	return r, &out, &errw
}

func TestExecuteMkdirAndLs(t *testing.T) {
	r, out, errw := newREPL(t, "")
	r.Execute("mkdir sub")
	r.Execute("ls")

	assert.Contains(t, out.String(), "[DIR]  SUB")
	assert.Empty(t, errw.String())
}

func TestExecuteUnknownCommandReportsError(t *testing.T) {
	r, _, errw := newREPL(t, "")
	r.Execute("frobnicate")
	assert.Contains(t, errw.String(), "Unknown built-in command")
}

func TestExecuteCreatOpenWriteReadCycle(t *testing.T) {
	r, out, errw := newREPL(t, "")
	r.Execute("creat a.txt")
	r.Execute(`open a.txt rw`)
	r.Execute(`write 0 hello`)
	r.Execute("lseek 0 0")
	r.Execute("read 0 5")

	require.Empty(t, errw.String())
	assert.Contains(t, out.String(), "hello")
}

func TestRunEmitsPromptWithImageNameAndCWD(t *testing.T) {
	r, out, _ := newREPL(t, "\n")
	r.Run()
	assert.True(t, strings.HasPrefix(out.String(), "disk.img/>"))
}
