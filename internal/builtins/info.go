package builtins

import (
	"fmt"
	"io"

	"github.com/gofat32/shell/internal/bootsector"
)

// Info writes the boot sector's geometry summary to w, in the order an
// operator cares about: layout first, size last.
func Info(w io.Writer, boot *bootsector.BootSector) {
	fmt.Fprintln(w, "Boot Sector Information:")
	fmt.Fprintf(w, "Root Cluster: %d\n", boot.RootCluster)
	fmt.Fprintf(w, "Bytes per Sector: %d\n", boot.BytesPerSector)
	fmt.Fprintf(w, "Sectors per Cluster: %d\n", boot.SectorsPerCluster)
	fmt.Fprintf(w, "Total Sectors: %d\n", boot.TotalSectors32)
	fmt.Fprintf(w, "Sectors per FAT: %d\n", boot.FATSize32)
	fmt.Fprintf(w, "File Size: %d bytes\n", boot.ImageSizeBytes)
}
