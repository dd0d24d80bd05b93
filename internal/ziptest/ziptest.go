// Package ziptest writes small zip archives for tests.
package ziptest

import (
	"archive/zip"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// File is one member to write. Names ending in "/" become directory records.
type File struct {
	Name    string
	Content string
	Mode    fs.FileMode // stored as unix attributes when non-zero
}

// Names turns plain names into empty-content files.
func Names(names ...string) []File {
	files := make([]File, 0, len(names))
	for _, n := range names {
		files = append(files, File{Name: n})
	}
	return files
}

// Write creates name inside a fresh temp dir and returns its path. Members are
// written in the given order, which is the order readers enumerate them.
func Write(t *testing.T, name string, files []File) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, file := range files {
		hdr := &zip.FileHeader{Name: file.Name, Method: zip.Deflate}
		if strings.HasSuffix(file.Name, "/") {
			hdr.Method = zip.Store
		}
		if file.Mode != 0 {
			hdr.SetMode(file.Mode)
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("create entry %s: %v", file.Name, err)
		}
		if file.Content == "" {
			continue
		}
		if _, err := w.Write([]byte(file.Content)); err != nil {
			t.Fatalf("write entry %s: %v", file.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return path
}

// WriteGarbage creates a file that is not a zip archive.
func WriteGarbage(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("definitely not a zip archive"), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
