// Package blockio is the sector-granular I/O layer the rest of the driver is
// built on: it turns a seekable byte stream into something that can only be
// read from or written to in whole multiples of a fixed sector size.
package blockio

import (
	"fmt"
	"io"

	driverrors "github.com/gofat32/shell/errors"
)

// Device wraps a backing store (a regular file in production, an in-memory
// io.ReadWriteSeeker in tests) and exposes it as a sector-addressed device.
//
// Device is the sole owner of the backing store for the lifetime of the
// volume built on top of it; nothing else should read or write through the
// wrapped stream directly.
type Device struct {
	BytesPerSector uint
	stream         io.ReadWriteSeeker
}

// New wraps stream as a sector device with the given sector size.
func New(stream io.ReadWriteSeeker, bytesPerSector uint) *Device {
	return &Device{BytesPerSector: bytesPerSector, stream: stream}
}

// ReadSector seeks to sector n and fills buf, which must be exactly one
// sector long.
func (d *Device) ReadSector(n uint32, buf []byte) error {
	if uint(len(buf)) != d.BytesPerSector {
		return driverrors.ErrInvalidArgument.WithMessage(fmt.Sprintf(
			"read_sector: buffer is %d bytes, want exactly %d", len(buf), d.BytesPerSector))
	}

	offset := int64(n) * int64(d.BytesPerSector)
	if _, err := d.stream.Seek(offset, io.SeekStart); err != nil {
		return driverrors.ErrIOFailed.WrapError(err)
	}
	if _, err := io.ReadFull(d.stream, buf); err != nil {
		return driverrors.ErrIOFailed.WrapError(err)
	}
	return nil
}

// WriteSector seeks to sector n, writes buf (which must be exactly one
// sector long), and flushes it to the backing store.
func (d *Device) WriteSector(n uint32, buf []byte) error {
	if uint(len(buf)) != d.BytesPerSector {
		return driverrors.ErrInvalidArgument.WithMessage(fmt.Sprintf(
			"write_sector: buffer is %d bytes, want exactly %d", len(buf), d.BytesPerSector))
	}

	offset := int64(n) * int64(d.BytesPerSector)
	if _, err := d.stream.Seek(offset, io.SeekStart); err != nil {
		return driverrors.ErrIOFailed.WrapError(err)
	}
	if _, err := d.stream.Write(buf); err != nil {
		return driverrors.ErrIOFailed.WrapError(err)
	}
	if syncer, ok := d.stream.(interface{ Sync() error }); ok {
		if err := syncer.Sync(); err != nil {
			return driverrors.ErrIOFailed.WrapError(err)
		}
	}
	return nil
}
