package builtins

import (
	"github.com/gofat32/shell/internal/directory"
	"github.com/gofat32/shell/internal/shellstate"
	"github.com/gofat32/shell/internal/volume"

	driverrors "github.com/gofat32/shell/errors"
)

// Write writes data into fd starting at its current offset, overwriting any
// bytes already there and extending the cluster chain as needed, and updates the file's directory entry (size and, if
// this was the first write, start cluster) before flushing the FAT.
func Write(core *shellstate.ShellCore, fd int, data string) error {
	of := core.GetOpenFile(fd)
	if of == nil {
		return driverrors.ErrInvalidFileDescriptor.WithMessage("write: file not open")
	}
	if !of.Mode.CanWrite() {
		return driverrors.ErrPermissionDenied.WithMessage("write: file not opened in write mode")
	}

	dataBytes := []byte(data)
	remaining := uint32(len(dataBytes))
	if remaining == 0 {
		return nil
	}

	bytesPerCluster := uint32(core.Vol.Boot.BytesPerCluster())

	if of.StartCluster == 0 {
		newCluster, ok := core.Vol.AllocCluster()
		if !ok {
			return driverrors.ErrNoSpaceOnDevice.WithMessage("write: failed to allocate first cluster")
		}
		of.StartCluster = newCluster
	}

	cluster := of.StartCluster
	clusterIndex := of.Offset / bytesPerCluster
	offsetInCluster := of.Offset % bytesPerCluster

	for clusterIndex > 0 {
		next := core.Vol.NextCluster(cluster)
		if volume.IsEndOfChain(next) {
			newCluster, ok := core.Vol.AllocCluster()
			if !ok {
				return driverrors.ErrNoSpaceOnDevice.WithMessage("write: failed to extend cluster chain")
			}
			core.Vol.SetCluster(cluster, newCluster)
			cluster = newCluster
		} else {
			cluster = next
		}
		clusterIndex--
	}

	writtenTotal := uint32(0)
	for remaining > 0 {
		buf, err := core.Vol.ReadCluster(cluster)
		if err != nil {
			return err
		}

		availableInCluster := bytesPerCluster - offsetInCluster
		take := remaining
		if take > availableInCluster {
			take = availableInCluster
		}

		copy(buf[offsetInCluster:offsetInCluster+take], dataBytes[writtenTotal:writtenTotal+take])

		if err := core.Vol.WriteCluster(cluster, buf); err != nil {
			return err
		}

		writtenTotal += take
		remaining -= take
		of.Offset += take
		offsetInCluster = 0

		if remaining > 0 {
			next := core.Vol.NextCluster(cluster)
			if volume.IsEndOfChain(next) {
				newCluster, ok := core.Vol.AllocCluster()
				if !ok {
					return driverrors.ErrNoSpaceOnDevice.WithMessage("write: failed to allocate new cluster")
				}
				core.Vol.SetCluster(cluster, newCluster)
				cluster = newCluster
			} else {
				cluster = next
			}
		}
	}

	if of.Offset > of.Size {
		of.Size = of.Offset
	}

	parentLoc, err := directory.FindEntryInDirectory(core.Vol, of.DirCluster, of.Name)
	if err != nil {
		return driverrors.ErrIOFailed.WithMessage("write: failed to update directory entry").WrapError(err)
	}
	updated := parentLoc.Entry
	updated.Cluster = of.StartCluster
	updated.FileSize = of.Size
	if err := directory.UpdateDirEntry(core.Vol, parentLoc, updated); err != nil {
		return driverrors.ErrIOFailed.WithMessage("write: failed to update directory entry").WrapError(err)
	}

	return core.Vol.FlushFAT()
}
