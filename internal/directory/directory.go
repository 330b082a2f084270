// Package directory implements directory-cluster scanning: finding an
// entry by name, finding a free slot to write a new one, and the
// mark-deleted/update/initialize primitives every builtin is built from.
package directory

import (
	"github.com/gofat32/shell/internal/direntry"
	"github.com/gofat32/shell/internal/volume"

	driverrors "github.com/gofat32/shell/errors"
)

// Location pins one directory entry to the exact cluster and byte offset
// within that cluster it was read from, so callers can write it back
// in-place later (for rename, delete, or size/cluster updates) without
// re-scanning.
type Location struct {
	Cluster uint32
	Offset  int
	Entry   direntry.Entry
}

// FindEntryInDirectory scans the cluster chain starting at dirCluster for a
// short-name entry matching humanName (case-insensitive, compared against
// the packed 8.3 form). Returns driverrors.ErrNotFound if no match is found
// before the chain ends.
func FindEntryInDirectory(vol *volume.Volume, dirCluster uint32, humanName string) (*Location, error) {
	want := direntry.PackShortName(humanName)

	it := vol.Chain(dirCluster)
	for it.Next() {
		buf, err := it.Bytes()
		if err != nil {
			return nil, err
		}

		for off := 0; off+direntry.RawEntrySize <= len(buf); off += direntry.RawEntrySize {
			raw := buf[off : off+direntry.RawEntrySize]
			if direntry.IsFree(raw) {
				return nil, driverrors.ErrNotFound.WithMessage("no entry named " + humanName)
			}
			if direntry.IsDeleted(raw) || direntry.IsLongNameFragment(raw) {
				continue
			}
			entry := direntry.Parse(raw)
			if entry.Name == want {
				return &Location{Cluster: it.Cluster(), Offset: off, Entry: entry}, nil
			}
		}

		it.Advance()
	}
	if it.Err() != nil {
		return nil, it.Err()
	}
	return nil, driverrors.ErrNotFound.WithMessage("no entry named " + humanName)
}

// ListEntries returns every live (non-free, non-deleted, non-long-name)
// entry in the cluster chain starting at dirCluster, in on-disk order.
func ListEntries(vol *volume.Volume, dirCluster uint32) ([]direntry.Entry, error) {
	var entries []direntry.Entry

	it := vol.Chain(dirCluster)
	for it.Next() {
		buf, err := it.Bytes()
		if err != nil {
			return nil, err
		}

		for off := 0; off+direntry.RawEntrySize <= len(buf); off += direntry.RawEntrySize {
			raw := buf[off : off+direntry.RawEntrySize]
			if direntry.IsFree(raw) {
				return entries, nil
			}
			if direntry.IsDeleted(raw) || direntry.IsLongNameFragment(raw) {
				continue
			}
			entries = append(entries, direntry.Parse(raw))
		}

		it.Advance()
	}
	if it.Err() != nil {
		return nil, it.Err()
	}
	return entries, nil
}

// FindFreeDirectoryEntry scans the cluster chain starting at dirCluster for
// the first free or deleted slot, appending a new cluster to the chain (and
// zero-initializing it) if every existing cluster is full. Returns the
// cluster and byte offset of the slot ready to be written.
func FindFreeDirectoryEntry(vol *volume.Volume, dirCluster uint32) (cluster uint32, offset int, err error) {
	cur := dirCluster
	for {
		buf, rerr := vol.ReadCluster(cur)
		if rerr != nil {
			return 0, 0, rerr
		}

		for off := 0; off+direntry.RawEntrySize <= len(buf); off += direntry.RawEntrySize {
			raw := buf[off : off+direntry.RawEntrySize]
			if direntry.IsFree(raw) || direntry.IsDeleted(raw) {
				return cur, off, nil
			}
		}

		next := vol.NextCluster(cur)
		if volume.IsEndOfChain(next) {
			newCluster, ok := vol.AppendCluster(cur)
			if !ok {
				return 0, 0, driverrors.ErrIOFailed.WithMessage("volume full: cannot grow directory")
			}
			// A directory cluster appended to grow an existing directory is
			// plain data continuation, not a new subdirectory: it gets no
			// "." or ".." entries of its own, only a zeroed free-slot
			// terminator.
			if err := zeroFillCluster(vol, newCluster); err != nil {
				return 0, 0, err
			}
			return newCluster, 0, nil
		}
		cur = next
	}
}

// zeroFillCluster blanks a cluster so its first entry reads as free,
// terminating a directory scan immediately.
func zeroFillCluster(vol *volume.Volume, cluster uint32) error {
	buf := make([]byte, vol.Boot.BytesPerCluster())
	return vol.WriteCluster(cluster, buf)
}

// InitializeDirectoryCluster sets up a freshly allocated cluster as the
// first cluster of a brand-new subdirectory: a "." entry pointing at
// itself, a ".." entry pointing at parent, and the remainder zeroed so the
// directory scan terminates right after them.
func InitializeDirectoryCluster(vol *volume.Volume, cluster, parent uint32) error {
	buf := make([]byte, vol.Boot.BytesPerCluster())

	dot := direntry.NewEntry(".", direntry.AttrSubdir, cluster)
	dotdot := direntry.NewEntry("..", direntry.AttrSubdir, parent)
	copy(buf[0:direntry.RawEntrySize], direntry.Encode(dot))
	copy(buf[direntry.RawEntrySize:2*direntry.RawEntrySize], direntry.Encode(dotdot))

	return vol.WriteCluster(cluster, buf)
}

// WriteRawEntry writes a 32-byte encoded entry at the given cluster and
// byte offset.
func WriteRawEntry(vol *volume.Volume, cluster uint32, offset int, e direntry.Entry) error {
	buf, err := vol.ReadCluster(cluster)
	if err != nil {
		return err
	}
	copy(buf[offset:offset+direntry.RawEntrySize], direntry.Encode(e))
	return vol.WriteCluster(cluster, buf)
}

// MarkEntryDeleted overwrites the first name byte of the entry at the given
// location with the deleted-slot marker, leaving the rest of the record
// (including its cluster chain) untouched on disk; callers are responsible
// for deallocating that chain separately.
func MarkEntryDeleted(vol *volume.Volume, loc *Location) error {
	buf, err := vol.ReadCluster(loc.Cluster)
	if err != nil {
		return err
	}
	buf[loc.Offset] = direntry.DeletedMarker
	return vol.WriteCluster(loc.Cluster, buf)
}

// UpdateDirEntry rewrites the full entry record at loc's location with the
// given updated entry (used after a size or cluster change, e.g. from
// `write`).
func UpdateDirEntry(vol *volume.Volume, loc *Location, updated direntry.Entry) error {
	return WriteRawEntry(vol, loc.Cluster, loc.Offset, updated)
}

// IsEmpty reports whether the directory cluster chain starting at
// dirCluster contains no live entries other than "." and "..".
func IsEmpty(vol *volume.Volume, dirCluster uint32) (bool, error) {
	all, err := ListEntries(vol, dirCluster)
	if err != nil {
		return false, err
	}

	var entries []direntry.Entry
	for _, e := range all {
		name := e.DisplayName()
		if name == "." || name == ".." {
			continue
		}
		entries = append(entries, e)
	}
	return len(entries) == 0, nil
}
