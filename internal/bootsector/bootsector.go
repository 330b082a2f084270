// Package bootsector parses the FAT32 BIOS Parameter Block from the first
// 512 bytes of a volume image.
package bootsector

import (
	"encoding/binary"
	"fmt"

	"github.com/hashicorp/go-multierror"

	driverrors "github.com/gofat32/shell/errors"
)

// Size is the length, in bytes, of the region this package reads from the
// front of the image.
const Size = 512

// Field byte offsets within the first sector. These match the standard
// FAT32 BPB layout.
const (
	offsetBytesPerSector    = 11
	offsetSectorsPerCluster = 13
	offsetReservedSectors   = 14
	offsetNumFATs           = 16
	offsetTotalSectors32    = 32
	offsetFATSize32         = 36
	offsetRootCluster       = 44
)

// BootSector holds the geometry fields this driver needs from the BPB, plus
// the derived sector numbers that everything else in the volume is built on.
type BootSector struct {
	BytesPerSector    uint16
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	FATSize32         uint32
	TotalSectors32    uint32
	RootCluster       uint32
	ImageSizeBytes    int64

	// FirstFATSector is the first sector of the first FAT copy.
	FirstFATSector uint32
	// FirstDataSector is the first sector belonging to cluster 2.
	FirstDataSector uint32
}

// Parse reads and validates a boot sector from the first Size bytes of raw.
// Every violated invariant is collected before returning, rather than
// failing on the first one, so operators see the full list of what is wrong
// with a corrupt or non-FAT32 image in one pass.
func Parse(raw []byte, imageSizeBytes int64) (*BootSector, error) {
	if len(raw) < Size {
		return nil, driverrors.ErrUnexpectedEOF.WithMessage(
			fmt.Sprintf("boot sector requires %d bytes, got %d", Size, len(raw)))
	}

	bs := &BootSector{
		BytesPerSector:    binary.LittleEndian.Uint16(raw[offsetBytesPerSector:]),
		SectorsPerCluster: raw[offsetSectorsPerCluster],
		ReservedSectors:   binary.LittleEndian.Uint16(raw[offsetReservedSectors:]),
		NumFATs:           raw[offsetNumFATs],
		TotalSectors32:    binary.LittleEndian.Uint32(raw[offsetTotalSectors32:]),
		FATSize32:         binary.LittleEndian.Uint32(raw[offsetFATSize32:]),
		RootCluster:       binary.LittleEndian.Uint32(raw[offsetRootCluster:]),
		ImageSizeBytes:    imageSizeBytes,
	}

	var result *multierror.Error
	result = multierror.Append(result, bs.validate())
	if err := result.ErrorOrNil(); err != nil {
		return nil, driverrors.ErrInvalidFileSystem.WrapError(err)
	}

	bs.FirstFATSector = uint32(bs.ReservedSectors)
	bs.FirstDataSector = bs.FirstFATSector + uint32(bs.NumFATs)*bs.FATSize32

	return bs, nil
}

func (bs *BootSector) validate() error {
	var result *multierror.Error

	switch bs.BytesPerSector {
	case 512, 1024, 2048, 4096:
	default:
		result = multierror.Append(result, fmt.Errorf(
			"bytes-per-sector must be 512, 1024, 2048, or 4096, got %d", bs.BytesPerSector))
	}

	validSectorsPerCluster := false
	for spc := uint8(1); spc != 0; spc <<= 1 {
		if bs.SectorsPerCluster == spc {
			validSectorsPerCluster = true
			break
		}
		if spc == 128 {
			break
		}
	}
	if !validSectorsPerCluster {
		result = multierror.Append(result, fmt.Errorf(
			"sectors-per-cluster must be a power of 2 in [1, 128], got %d", bs.SectorsPerCluster))
	}

	if bs.NumFATs < 1 {
		result = multierror.Append(result, fmt.Errorf("number of FATs must be at least 1, got %d", bs.NumFATs))
	}

	if bs.FATSize32 == 0 {
		result = multierror.Append(result, fmt.Errorf("FAT size (sectors) must be nonzero for FAT32"))
	}

	if bs.RootCluster < 2 {
		result = multierror.Append(result, fmt.Errorf("root cluster must be >= 2, got %d", bs.RootCluster))
	}

	return result.ErrorOrNil()
}

// FirstSectorOfCluster returns the first sector number of cluster c. It
// panics if c < 2, since clusters 0 and 1 have no data region.
func (bs *BootSector) FirstSectorOfCluster(c uint32) uint32 {
	if c < 2 {
		panic(fmt.Sprintf("invalid cluster %d: cluster numbers below 2 have no data sectors", c))
	}
	return bs.FirstDataSector + (c-2)*uint32(bs.SectorsPerCluster)
}

// BytesPerCluster returns the size, in bytes, of a single cluster.
func (bs *BootSector) BytesPerCluster() uint {
	return uint(bs.BytesPerSector) * uint(bs.SectorsPerCluster)
}

// FATRegionSectorRange returns [start, end) of the first FAT copy's sectors.
func (bs *BootSector) FATRegionSectorRange() (start, end uint32) {
	return bs.FirstFATSector, bs.FirstFATSector + bs.FATSize32
}
