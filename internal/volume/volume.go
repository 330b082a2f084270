// Package volume implements the FAT32 cluster-chain layer: the in-memory FAT
// mirror, cluster allocation/deallocation, and cluster-granular reads and
// writes against the backing device.
package volume

import (
	"encoding/binary"
	"io"

	"github.com/gofat32/shell/internal/blockio"
	"github.com/gofat32/shell/internal/bootsector"

	driverrors "github.com/gofat32/shell/errors"
)

// EndOfChain is the marker this driver writes when terminating a cluster
// chain. Any FAT entry >= EndOfChainMin is considered a terminator.
const (
	EndOfChain    = uint32(0x0FFFFFF8)
	EndOfChainMin = uint32(0x0FFFFFF8)
)

// Volume is the sole owner of the backing device and the in-memory FAT
// mirror. The mirror is authoritative during a session: reads consult it,
// writes mutate it in place, and the on-disk copy is only updated by an
// explicit FlushFAT. Nothing outside this package should read FAT bytes off
// disk between construction and the final flush.
type Volume struct {
	Boot   *bootsector.BootSector
	device *blockio.Device
	fat    []uint32
}

// Open reads the boot sector and FAT region from stream and returns a ready
// Volume. imageSizeBytes is recorded for the `info` builtin.
func Open(stream io.ReadWriteSeeker, imageSizeBytes int64) (*Volume, error) {
	first512 := make([]byte, bootsector.Size)
	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return nil, driverrors.ErrIOFailed.WrapError(err)
	}
	if _, err := io.ReadFull(stream, first512); err != nil {
		return nil, driverrors.ErrIOFailed.WrapError(err)
	}

	boot, err := bootsector.Parse(first512, imageSizeBytes)
	if err != nil {
		return nil, err
	}

	device := blockio.New(stream, uint(boot.BytesPerSector))

	fatStart, fatEnd := boot.FATRegionSectorRange()
	fatBytes := make([]byte, uint(fatEnd-fatStart)*uint(boot.BytesPerSector))
	sectorBuf := make([]byte, boot.BytesPerSector)
	for i, sector := 0, fatStart; sector < fatEnd; i, sector = i+1, sector+1 {
		if err := device.ReadSector(sector, sectorBuf); err != nil {
			return nil, driverrors.ErrIOFailed.WithMessage("failed to read FAT region").WrapError(err)
		}
		copy(fatBytes[uint(i)*uint(boot.BytesPerSector):], sectorBuf)
	}

	fat := make([]uint32, len(fatBytes)/4)
	for i := range fat {
		fat[i] = binary.LittleEndian.Uint32(fatBytes[i*4:])
	}

	return &Volume{Boot: boot, device: device, fat: fat}, nil
}

// IsEndOfChain reports whether a FAT entry value terminates a chain.
func IsEndOfChain(entry uint32) bool {
	return entry >= EndOfChainMin
}

// ReadSector reads exactly one sector.
func (v *Volume) ReadSector(n uint32, buf []byte) error {
	return v.device.ReadSector(n, buf)
}

// WriteSector writes exactly one sector.
func (v *Volume) WriteSector(n uint32, buf []byte) error {
	return v.device.WriteSector(n, buf)
}

// FirstSectorOfCluster returns the first sector of cluster c. Panics for
// c < 2, matching the invariant that clusters 0 and 1 are reserved.
func (v *Volume) FirstSectorOfCluster(c uint32) uint32 {
	return v.Boot.FirstSectorOfCluster(c)
}

// ReadCluster reads every sector of cluster c into a single contiguous
// buffer sized to exactly one cluster.
func (v *Volume) ReadCluster(c uint32) ([]byte, error) {
	bytesPerSector := uint(v.Boot.BytesPerSector)
	sectorsPerCluster := uint(v.Boot.SectorsPerCluster)
	buf := make([]byte, bytesPerSector*sectorsPerCluster)

	firstSector := v.FirstSectorOfCluster(c)
	for s := uint(0); s < sectorsPerCluster; s++ {
		chunk := buf[s*bytesPerSector : (s+1)*bytesPerSector]
		if err := v.device.ReadSector(firstSector+uint32(s), chunk); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// WriteCluster writes buf (exactly one cluster long) back to cluster c.
func (v *Volume) WriteCluster(c uint32, buf []byte) error {
	bytesPerSector := uint(v.Boot.BytesPerSector)
	sectorsPerCluster := uint(v.Boot.SectorsPerCluster)
	if uint(len(buf)) != bytesPerSector*sectorsPerCluster {
		return driverrors.ErrInvalidArgument.WithMessage("write_cluster: buffer is not exactly one cluster long")
	}

	firstSector := v.FirstSectorOfCluster(c)
	for s := uint(0); s < sectorsPerCluster; s++ {
		chunk := buf[s*bytesPerSector : (s+1)*bytesPerSector]
		if err := v.device.WriteSector(firstSector+uint32(s), chunk); err != nil {
			return err
		}
	}
	return nil
}

// NextCluster returns the FAT successor of cluster c.
func (v *Volume) NextCluster(c uint32) uint32 {
	return v.fat[c]
}

// SetCluster overwrites the FAT entry for cluster c. It only mutates the
// in-memory mirror; callers must call FlushFAT to persist.
func (v *Volume) SetCluster(c uint32, value uint32) {
	v.fat[c] = value
}

// AllocCluster performs a linear scan from cluster 2 upward for the first
// free (zero) entry, marks it as a one-cluster chain (end-of-chain), and
// returns its number. Returns (0, false) if the volume is full.
//
// Per design, this is never more sophisticated than a linear scan: there is
// no free-cluster bitmap or other bookkeeping kept for allocation.
func (v *Volume) AllocCluster() (uint32, bool) {
	for c := uint32(2); int(c) < len(v.fat); c++ {
		if v.fat[c] == 0 {
			v.fat[c] = EndOfChain
			return c, true
		}
	}
	return 0, false
}

// AppendCluster walks the chain starting at start to its terminator,
// allocates one new cluster, splices it onto the end, and returns the new
// cluster number.
func (v *Volume) AppendCluster(start uint32) (uint32, bool) {
	cur := start
	for !IsEndOfChain(v.fat[cur]) {
		cur = v.fat[cur]
	}

	newCluster, ok := v.AllocCluster()
	if !ok {
		return 0, false
	}
	v.fat[cur] = newCluster
	v.fat[newCluster] = EndOfChain
	return newCluster, true
}

// DeallocChain walks the chain starting at start, zeroing every visited
// cluster's FAT entry. It is a no-op if start == 0. The successor must be
// read before the current slot is zeroed, since zeroing in place would
// otherwise destroy the link to the rest of the chain.
func (v *Volume) DeallocChain(start uint32) {
	if start == 0 {
		return
	}

	cur := start
	for {
		next := v.fat[cur]
		v.fat[cur] = 0
		if IsEndOfChain(next) {
			return
		}
		cur = next
	}
}

// FlushFAT serializes the FAT mirror little-endian and writes it back over
// the first FAT copy only. The second FAT copy (and any further copies) are
// knowingly left untouched; this is a documented limitation, not an
// oversight.
func (v *Volume) FlushFAT() error {
	bytesPerSector := uint(v.Boot.BytesPerSector)
	raw := make([]byte, len(v.fat)*4)
	for i, entry := range v.fat {
		binary.LittleEndian.PutUint32(raw[i*4:], entry)
	}

	fatStart, fatEnd := v.Boot.FATRegionSectorRange()
	for i, sector := 0, fatStart; sector < fatEnd; i, sector = i+1, sector+1 {
		chunk := raw[uint(i)*bytesPerSector : (uint(i)+1)*bytesPerSector]
		if err := v.device.WriteSector(sector, chunk); err != nil {
			return driverrors.ErrIOFailed.WithMessage("failed to flush FAT").WrapError(err)
		}
	}
	return nil
}

// ChainIterator walks a cluster chain starting at start, yielding each
// cluster's full contents in turn. The directory scans (FindEntryInDirectory
// and ListEntries, and through them ls and cd) walk chains with it; the read
// and write builtins, FindFreeDirectoryEntry, AppendCluster and DeallocChain
// follow the chain through the FAT mirror themselves.
type ChainIterator struct {
	vol     *Volume
	current uint32
	done    bool
	err     error
}

// Chain returns an iterator starting at cluster start.
func (v *Volume) Chain(start uint32) *ChainIterator {
	return &ChainIterator{vol: v, current: start}
}

// Next advances the iterator and reports whether a cluster was produced.
// Call Cluster/Bytes to retrieve it, or Err after Next returns false.
func (it *ChainIterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	if IsEndOfChain(it.current) || it.current == 0 {
		it.done = true
		return false
	}
	return true
}

// Cluster returns the current cluster number.
func (it *ChainIterator) Cluster() uint32 {
	return it.current
}

// Bytes reads and returns the current cluster's full contents.
func (it *ChainIterator) Bytes() ([]byte, error) {
	data, err := it.vol.ReadCluster(it.current)
	if err != nil {
		it.err = err
	}
	return data, err
}

// Advance moves the iterator to the next cluster in the chain. Call this
// after processing the current cluster returned by Bytes.
func (it *ChainIterator) Advance() {
	if it.done || it.err != nil {
		return
	}
	next := it.vol.NextCluster(it.current)
	it.current = next
	if IsEndOfChain(next) {
		it.done = true
	}
}

// Err returns any error encountered while reading a cluster.
func (it *ChainIterator) Err() error {
	return it.err
}
