package testutil

import (
	"github.com/gocarina/gocsv"

	"github.com/gofat32/shell/internal/direntry"
)

// entryRow is the CSV projection of a direntry.Entry used for
// human-readable directory snapshots in tests.
type entryRow struct {
	Name     string `csv:"name"`
	IsDir    bool   `csv:"is_dir"`
	Cluster  uint32 `csv:"cluster"`
	FileSize uint32 `csv:"file_size"`
}

// DumpEntriesCSV renders a slice of directory entries as a CSV snapshot, one
// row per entry, for table-style assertions against an expected listing.
func DumpEntriesCSV(entries []direntry.Entry) (string, error) {
	rows := make([]*entryRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, &entryRow{
			Name:     e.DisplayName(),
			IsDir:    e.IsDirectory(),
			Cluster:  e.Cluster,
			FileSize: e.FileSize,
		})
	}
	return gocsv.MarshalString(rows)
}
