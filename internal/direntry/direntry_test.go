package direntry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackShortNameSplitsOnLastDot(t *testing.T) {
	// Only what follows the LAST dot becomes the extension; earlier dots
	// stay part of the base.
	raw := PackShortName("a.b.c")
	assert.Equal(t, "A.B     C  ", string(raw[:]))
}

func TestPackShortNameDotAndDotDot(t *testing.T) {
	dot := PackShortName(".")
	assert.Equal(t, ".          ", string(dot[:]))

	dotdot := PackShortName("..")
	assert.Equal(t, "..         ", string(dotdot[:]))
}

func TestPackShortNameTruncatesLongNames(t *testing.T) {
	raw := PackShortName("verylongname.extension")
	assert.Equal(t, "VERYLONGEXT", string(raw[:]))
}

func TestEncodeParseRoundTrip(t *testing.T) {
	e := Entry{
		Name:       PackShortName("README.TXT"),
		Attributes: AttrArchive,
		Cluster:    0x00ABCDEF,
		FileSize:   12345,
	}
	raw := Encode(e)
	require.Len(t, raw, RawEntrySize)

	got := Parse(raw)
	assert.Equal(t, e, got)
}

func TestDisplayNameDropsPaddingAndDotWhenNoExtension(t *testing.T) {
	e := Entry{Name: PackShortName("NOTES")}
	assert.Equal(t, "NOTES", e.DisplayName())

	e2 := Entry{Name: PackShortName("NOTES.TXT")}
	assert.Equal(t, "NOTES.TXT", e2.DisplayName())
}

func TestIsFreeAndIsDeleted(t *testing.T) {
	free := make([]byte, RawEntrySize)
	assert.True(t, IsFree(free))
	assert.False(t, IsDeleted(free))

	deleted := make([]byte, RawEntrySize)
	deleted[0] = DeletedMarker
	assert.True(t, IsDeleted(deleted))
	assert.False(t, IsFree(deleted))
}

func TestSetEntryNameDoesNotSplitOnDot(t *testing.T) {
	e := Entry{Name: PackShortName("OLD.TXT"), Attributes: AttrArchive}
	require.NoError(t, SetEntryName(&e, "readme.txt"))
	assert.Equal(t, "README.TXT ", string(e.Name[:]))
}

func TestSetEntryNameRejectsOverlongNames(t *testing.T) {
	e := Entry{}
	err := SetEntryName(&e, "this-name-is-too-long")
	assert.Error(t, err)
}

func TestIsDirectoryAndReadOnly(t *testing.T) {
	e := Entry{Attributes: AttrSubdir | AttrReadOnly}
	assert.True(t, e.IsDirectory())
	assert.True(t, e.IsReadOnly())

	f := Entry{Attributes: AttrArchive}
	assert.False(t, f.IsDirectory())
	assert.False(t, f.IsReadOnly())
}
