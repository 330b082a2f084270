package builtins

import (
	"io"

	"github.com/noxer/bytewriter"

	"github.com/gofat32/shell/internal/shellstate"

	driverrors "github.com/gofat32/shell/errors"
)

// Read copies up to size bytes from fd's current offset to w, advancing the
// cursor by however many bytes were actually available. Reading past
// end-of-file is not an error; it simply transfers nothing.
func Read(w io.Writer, core *shellstate.ShellCore, fd int, size int) error {
	of := core.GetOpenFile(fd)
	if of == nil {
		return driverrors.ErrInvalidFileDescriptor.WithMessage("read: file not open")
	}
	if !of.Mode.CanRead() {
		return driverrors.ErrPermissionDenied.WithMessage("read: file not opened in read mode")
	}

	if of.Offset >= of.Size {
		return nil
	}

	maxReadable := of.Size - of.Offset
	toRead := uint32(size)
	if toRead > maxReadable {
		toRead = maxReadable
	}
	if toRead == 0 {
		return nil
	}

	bytesPerCluster := uint32(core.Vol.Boot.BytesPerCluster())

	cluster := of.StartCluster
	clusterIndex := of.Offset / bytesPerCluster
	innerOffset := of.Offset % bytesPerCluster

	for i := uint32(0); i < clusterIndex; i++ {
		next := core.Vol.NextCluster(cluster)
		if next >= 0x0FFFFFF8 {
			return nil
		}
		cluster = next
	}

	// Every cluster's bytes are staged into a fixed-size buffer before a
	// single flush to w, so a multi-cluster read produces one write call
	// to w instead of one per cluster.
	out := make([]byte, toRead)
	acc := bytewriter.New(out)

	remaining := toRead
	for remaining > 0 {
		buf, err := core.Vol.ReadCluster(cluster)
		if err != nil {
			return err
		}

		availableInCluster := bytesPerCluster - innerOffset
		take := remaining
		if take > availableInCluster {
			take = availableInCluster
		}

		acc.Write(buf[innerOffset : innerOffset+take])

		remaining -= take
		of.Offset += take
		innerOffset = 0

		if remaining > 0 {
			next := core.Vol.NextCluster(cluster)
			if next >= 0x0FFFFFF8 {
				break
			}
			cluster = next
		}
	}

	_, err := w.Write(out[:toRead-remaining])
	return err
}
