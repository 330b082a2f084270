// Package testutil builds small in-memory FAT32 images for use in tests.
package testutil

import (
	"encoding/binary"

	"github.com/xaionaro-go/bytesextra"

	"github.com/gofat32/shell/internal/direntry"
	"github.com/gofat32/shell/internal/volume"
)

// ImageOptions configures a synthetic FAT32 image built by NewImage.
type ImageOptions struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	FATSize32         uint32
	RootCluster       uint32
	// DataClusters is the number of addressable data clusters (numbered
	// from 2) the image should have room for.
	DataClusters uint32
}

// DefaultImageOptions returns a small but workable geometry: 512-byte
// sectors, 1 sector per cluster, a single FAT, and room for 64 data
// clusters, the root directory's own cluster among them.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		BytesPerSector:    512,
		SectorsPerCluster: 1,
		ReservedSectors:   1,
		NumFATs:           1,
		FATSize32:         1,
		RootCluster:       2,
		DataClusters:      64,
	}
}

// NewImage builds a fresh, empty FAT32 image in memory and returns it
// opened as a *volume.Volume, ready for builtins to operate on.
func NewImage(opts ImageOptions) (*volume.Volume, error) {
	bytesPerSector := uint(opts.BytesPerSector)
	fatSectors := uint(opts.FATSize32) * uint(opts.NumFATs)
	dataSectors := uint(opts.DataClusters) * uint(opts.SectorsPerCluster)
	totalSectors := uint(opts.ReservedSectors) + fatSectors + dataSectors

	raw := make([]byte, totalSectors*bytesPerSector)

	binary.LittleEndian.PutUint16(raw[11:], opts.BytesPerSector)
	raw[13] = opts.SectorsPerCluster
	binary.LittleEndian.PutUint16(raw[14:], opts.ReservedSectors)
	raw[16] = opts.NumFATs
	binary.LittleEndian.PutUint32(raw[32:], uint32(totalSectors))
	binary.LittleEndian.PutUint32(raw[36:], opts.FATSize32)
	binary.LittleEndian.PutUint32(raw[44:], opts.RootCluster)

	// Mark the root directory's own cluster as an end-of-chain entry in
	// the FAT so the root directory starts life as exactly one cluster.
	fatOffset := uint(opts.ReservedSectors) * bytesPerSector
	rootEntryOffset := fatOffset + uint(opts.RootCluster)*4
	binary.LittleEndian.PutUint32(raw[rootEntryOffset:], 0x0FFFFFF8)

	stream := bytesextra.NewReadWriteSeeker(raw)
	return volume.Open(stream, int64(len(raw)))
}

// RawEntryAt decodes the directory entry at the given cluster/offset
// directly from vol, bypassing the directory package, for assertions about
// exact on-disk layout.
func RawEntryAt(vol *volume.Volume, cluster uint32, offset int) (direntry.Entry, error) {
	buf, err := vol.ReadCluster(cluster)
	if err != nil {
		return direntry.Entry{}, err
	}
	return direntry.Parse(buf[offset : offset+direntry.RawEntrySize]), nil
}
