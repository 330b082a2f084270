package shellstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofat32/shell/internal/shellstate"
	"github.com/gofat32/shell/internal/testutil"
)

func newCore(t *testing.T) *shellstate.ShellCore {
	t.Helper()
	vol, err := testutil.NewImage(testutil.DefaultImageOptions())
	require.NoError(t, err)
	return shellstate.New(vol)
}

func TestNewRootsAtRootCluster(t *testing.T) {
	core := newCore(t)
	assert.Equal(t, core.Vol.Boot.RootCluster, core.CWDCluster)
	assert.Equal(t, "/", core.CWDPath)
}

func TestAllocDescriptorReturnsSmallestUnused(t *testing.T) {
	core := newCore(t)

	fd0, err := core.AllocDescriptor()
	require.NoError(t, err)
	assert.Equal(t, 0, fd0)

	fd1, err := core.AllocDescriptor()
	require.NoError(t, err)
	assert.Equal(t, 1, fd1)

	core.CloseDescriptor(fd0)

	fd2, err := core.AllocDescriptor()
	require.NoError(t, err)
	assert.Equal(t, 0, fd2)
}

func TestAllocDescriptorFailsWhenFull(t *testing.T) {
	core := newCore(t)

	for i := 0; i < shellstate.MaxOpenFiles; i++ {
		_, err := core.AllocDescriptor()
		require.NoError(t, err)
	}

	_, err := core.AllocDescriptor()
	assert.Error(t, err)
}

func TestIsOpenAndIsOpenInDir(t *testing.T) {
	core := newCore(t)
	fd, err := core.AllocDescriptor()
	require.NoError(t, err)
	core.SetOpenFile(fd, &shellstate.OpenFile{Name: "A.TXT", DirCluster: core.CWDCluster})

	assert.True(t, core.IsOpen("a.txt"))
	assert.True(t, core.IsOpenInDir(core.CWDCluster, "a.txt"))
	assert.False(t, core.IsOpenInDir(999, "a.txt"))
	assert.False(t, core.IsOpen("b.txt"))
}

func TestOpenDescriptorsAscending(t *testing.T) {
	core := newCore(t)
	fdA, _ := core.AllocDescriptor()
	fdB, _ := core.AllocDescriptor()
	core.SetOpenFile(fdA, &shellstate.OpenFile{Name: "A"})
	core.SetOpenFile(fdB, &shellstate.OpenFile{Name: "B"})

	assert.Equal(t, []int{fdA, fdB}, core.OpenDescriptors())
}
