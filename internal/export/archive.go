package export

import (
	"archive/zip"
	"bytes"
	"path"
	"time"
)

// ArchiveDir is the folder inside the zip that holds every cover.
const ArchiveDir = "covers"

// Entry is one rendered file.
type Entry struct {
	Name string
	Data []byte
}

// Packager bundles entries into a single download.
type Packager func(entries []Entry) ([]byte, error)

// ZipEntries writes entries under covers/ into an in-memory zip. PNG data
// is already compressed, so entries are stored rather than deflated.
func ZipEntries(entries []Entry) ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	now := time.Now()
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     path.Join(ArchiveDir, e.Name),
			Method:   zip.Store,
			Modified: now,
		})
		if err != nil {
			zw.Close()
			return nil, err
		}
		if _, err := w.Write(e.Data); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
