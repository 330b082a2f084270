// Package shellstate holds the per-session state a FAT32 shell needs beyond
// the volume itself: the current working directory and the open-file
// table.
package shellstate

import (
	"path"
	"strings"

	"github.com/boljen/go-bitmap"

	"github.com/gofat32/shell/internal/direntry"
	"github.com/gofat32/shell/internal/volume"

	driverrors "github.com/gofat32/shell/errors"
)

// MaxOpenFiles bounds how many files a session may have open at once. A
// session that tries to open a MaxOpenFiles+1'th file gets
// ErrTooManyOpenFiles.
const MaxOpenFiles = 10

// FileMode records the access mode a file was opened with, constraining
// which of read/write are later permitted on that descriptor.
type FileMode int

const (
	ModeRead FileMode = iota
	ModeWrite
	ModeReadWrite
)

// CanRead reports whether m permits read operations.
func (m FileMode) CanRead() bool { return m == ModeRead || m == ModeReadWrite }

// CanWrite reports whether m permits write operations.
func (m FileMode) CanWrite() bool { return m == ModeWrite || m == ModeReadWrite }

// OpenFile is one entry in the open-file table: a live file descriptor plus
// the cursor and directory-entry bookkeeping needed to read, write, and
// eventually flush size/cluster changes back to disk.
type OpenFile struct {
	// Name is the short display name the file was opened under.
	Name string
	Mode FileMode

	// DirCluster is the first cluster of the directory containing this
	// file's entry; DirPath is that directory's display path.
	DirCluster uint32
	DirPath    string

	// StartCluster is the file's first data cluster, or 0 for an empty
	// file that has never been written to.
	StartCluster uint32
	Size         uint32
	Offset       uint32
}

// ShellCore is the full mutable state of one interactive session: the
// volume being driven, the current directory, and the open-file table.
type ShellCore struct {
	Vol  *volume.Volume
	// CWDCluster is the first cluster of the current working directory.
	CWDCluster uint32
	// CWDPath is the current working directory's display path, always
	// absolute and always using '/' separators, e.g. "/" or "/foo".
	CWDPath string

	openFiles [MaxOpenFiles]*OpenFile
	fdBitmap  bitmap.Bitmap
}

// New constructs a ShellCore rooted at vol's root directory.
func New(vol *volume.Volume) *ShellCore {
	return &ShellCore{
		Vol:        vol,
		CWDCluster: vol.Boot.RootCluster,
		CWDPath:    "/",
		fdBitmap:   bitmap.NewSlice(MaxOpenFiles),
	}
}

// AllocDescriptor returns the smallest unused file descriptor, reserving it
// in the bitmap. Returns driverrors.ErrTooManyOpenFiles if the table is
// full.
func (s *ShellCore) AllocDescriptor() (int, error) {
	for fd := 0; fd < MaxOpenFiles; fd++ {
		if !s.fdBitmap.Get(fd) {
			s.fdBitmap.Set(fd, true)
			return fd, nil
		}
	}
	return 0, driverrors.ErrTooManyOpenFiles
}

// SetOpenFile records of, keyed by fd, previously obtained from
// AllocDescriptor.
func (s *ShellCore) SetOpenFile(fd int, of *OpenFile) {
	s.openFiles[fd] = of
}

// GetOpenFile returns the open file at fd, or nil if fd is not currently
// open.
func (s *ShellCore) GetOpenFile(fd int) *OpenFile {
	if fd < 0 || fd >= MaxOpenFiles {
		return nil
	}
	return s.openFiles[fd]
}

// CloseDescriptor releases fd back to the free pool. It is a no-op if fd
// was not open.
func (s *ShellCore) CloseDescriptor(fd int) {
	if fd < 0 || fd >= MaxOpenFiles {
		return
	}
	s.openFiles[fd] = nil
	s.fdBitmap.Set(fd, false)
}

// OpenDescriptors returns every currently open file descriptor in
// ascending order, for `lsof`.
func (s *ShellCore) OpenDescriptors() []int {
	var fds []int
	for fd := 0; fd < MaxOpenFiles; fd++ {
		if s.fdBitmap.Get(fd) {
			fds = append(fds, fd)
		}
	}
	return fds
}

// IsOpenInDir reports whether a file named name within directory dirCluster
// currently has an open descriptor, used by rm to refuse to touch an open
// file's directory entry.
func (s *ShellCore) IsOpenInDir(dirCluster uint32, name string) bool {
	for _, of := range s.openFiles {
		if of != nil && of.DirCluster == dirCluster && strings.EqualFold(of.Name, name) {
			return true
		}
	}
	return false
}

// IsOpen reports whether any currently open descriptor was opened under
// name, regardless of which directory it lives in.
func (s *ShellCore) IsOpen(name string) bool {
	for _, of := range s.openFiles {
		if of != nil && strings.EqualFold(of.Name, name) {
			return true
		}
	}
	return false
}

// ResolveChildPath joins the current working directory's display path with
// a single path component. A name that contains '/' is returned unchanged;
// it is not resolved against the directory tree.
func (s *ShellCore) ResolveChildPath(name string) string {
	if strings.ContainsRune(name, '/') {
		return name
	}
	return path.Join(s.CWDPath, name)
}

// LookupShortName splits a human-given name into its packed 8.3 form, the
// form FindEntryInDirectory compares entry names against.
func LookupShortName(name string) [11]byte {
	return direntry.PackShortName(name)
}
