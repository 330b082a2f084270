package volume_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofat32/shell/internal/testutil"
	"github.com/gofat32/shell/internal/volume"
)

func TestAllocClusterFindsFirstFree(t *testing.T) {
	vol, err := testutil.NewImage(testutil.DefaultImageOptions())
	require.NoError(t, err)

	c, ok := vol.AllocCluster()
	require.True(t, ok)
	// Cluster 2 is already taken by the root directory in a fresh image.
	assert.Equal(t, uint32(3), c)
	assert.True(t, volume.IsEndOfChain(vol.NextCluster(c)))
}

func TestAppendClusterExtendsChain(t *testing.T) {
	vol, err := testutil.NewImage(testutil.DefaultImageOptions())
	require.NoError(t, err)

	first, ok := vol.AllocCluster()
	require.True(t, ok)

	second, ok := vol.AppendCluster(first)
	require.True(t, ok)

	assert.Equal(t, second, vol.NextCluster(first))
	assert.True(t, volume.IsEndOfChain(vol.NextCluster(second)))
}

func TestDeallocChainZeroesEveryCluster(t *testing.T) {
	vol, err := testutil.NewImage(testutil.DefaultImageOptions())
	require.NoError(t, err)

	first, _ := vol.AllocCluster()
	second, _ := vol.AppendCluster(first)

	vol.DeallocChain(first)

	assert.Equal(t, uint32(0), vol.NextCluster(first))
	assert.Equal(t, uint32(0), vol.NextCluster(second))
}

func TestDeallocChainNoOpOnZero(t *testing.T) {
	vol, err := testutil.NewImage(testutil.DefaultImageOptions())
	require.NoError(t, err)

	require.NotPanics(t, func() { vol.DeallocChain(0) })
}

func TestReadWriteClusterRoundTrip(t *testing.T) {
	vol, err := testutil.NewImage(testutil.DefaultImageOptions())
	require.NoError(t, err)

	c, ok := vol.AllocCluster()
	require.True(t, ok)

	data := make([]byte, vol.Boot.BytesPerCluster())
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, vol.WriteCluster(c, data))

	got, err := vol.ReadCluster(c)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestChainIteratorWalksWholeChain(t *testing.T) {
	vol, err := testutil.NewImage(testutil.DefaultImageOptions())
	require.NoError(t, err)

	first, _ := vol.AllocCluster()
	second, _ := vol.AppendCluster(first)

	var visited []uint32
	it := vol.Chain(first)
	for it.Next() {
		visited = append(visited, it.Cluster())
		_, err := it.Bytes()
		require.NoError(t, err)
		it.Advance()
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []uint32{first, second}, visited)
}

func TestFlushFATPersistsToDisk(t *testing.T) {
	vol, err := testutil.NewImage(testutil.DefaultImageOptions())
	require.NoError(t, err)

	c, _ := vol.AllocCluster()
	require.NoError(t, vol.FlushFAT())

	assert.True(t, volume.IsEndOfChain(vol.NextCluster(c)))

	// Read c's FAT entry back from the device rather than the mirror.
	entriesPerSector := uint32(vol.Boot.BytesPerSector) / 4
	sector := make([]byte, vol.Boot.BytesPerSector)
	require.NoError(t, vol.ReadSector(vol.Boot.FirstFATSector+c/entriesPerSector, sector))
	assert.True(t, volume.IsEndOfChain(binary.LittleEndian.Uint32(sector[(c%entriesPerSector)*4:])))
}

func TestFirstSectorOfClusterPanicsBelowTwo(t *testing.T) {
	vol, err := testutil.NewImage(testutil.DefaultImageOptions())
	require.NoError(t, err)

	assert.Panics(t, func() { vol.FirstSectorOfCluster(1) })
}
