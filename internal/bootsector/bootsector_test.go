package bootsector_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gofat32/shell/internal/bootsector"
)

func validRaw() []byte {
	raw := make([]byte, bootsector.Size)
	binary.LittleEndian.PutUint16(raw[11:], 512)
	raw[13] = 1
	binary.LittleEndian.PutUint16(raw[14:], 1)
	raw[16] = 1
	binary.LittleEndian.PutUint32(raw[32:], 1000)
	binary.LittleEndian.PutUint32(raw[36:], 8)
	binary.LittleEndian.PutUint32(raw[44:], 2)
	return raw
}

func TestParseValidBootSector(t *testing.T) {
	boot, err := bootsector.Parse(validRaw(), 512000)
	require.NoError(t, err)
	assert.Equal(t, uint16(512), boot.BytesPerSector)
	assert.Equal(t, uint32(2), boot.RootCluster)
	assert.Equal(t, uint32(1), boot.FirstFATSector)
	assert.Equal(t, uint32(9), boot.FirstDataSector)
}

func TestParseRejectsShortBuffer(t *testing.T) {
	_, err := bootsector.Parse(make([]byte, 10), 0)
	assert.Error(t, err)
}

func TestParseCollectsAllValidationErrors(t *testing.T) {
	raw := validRaw()
	binary.LittleEndian.PutUint16(raw[11:], 100) // invalid bytes-per-sector
	raw[13] = 3                                  // invalid sectors-per-cluster
	raw[16] = 0                                  // invalid NumFATs
	binary.LittleEndian.PutUint32(raw[44:], 0)   // invalid root cluster

	_, err := bootsector.Parse(raw, 0)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "bytes-per-sector")
	assert.Contains(t, msg, "sectors-per-cluster")
	assert.Contains(t, msg, "number of FATs")
	assert.Contains(t, msg, "root cluster")
}

func TestFirstSectorOfClusterPanicsBelowTwo(t *testing.T) {
	boot, err := bootsector.Parse(validRaw(), 0)
	require.NoError(t, err)
	assert.Panics(t, func() { boot.FirstSectorOfCluster(0) })
}

func TestBytesPerClusterAndFATRange(t *testing.T) {
	boot, err := bootsector.Parse(validRaw(), 0)
	require.NoError(t, err)
	assert.Equal(t, uint(512), boot.BytesPerCluster())

	start, end := boot.FATRegionSectorRange()
	assert.Equal(t, uint32(1), start)
	assert.Equal(t, uint32(9), end)
}
