// Package archive reads the entry table of zip-compatible archives (APK, JAR,
// AAR, plain zip) into plain values. The underlying reader never escapes this
// package: it is closed before Open returns.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one archive member as recorded in the central directory.
type Entry struct {
	Path           string    // slash separated, no leading slash
	IsDir          bool      // name ends in "/"; mode bits are ignored
	Size           uint64    // uncompressed bytes
	CompressedSize uint64    // compressed bytes
	Method         uint16    // zip compression method
	Modified       time.Time // modification time, zero if absent
}

// Info describes the archive file itself.
type Info struct {
	Path    string // path as given by the caller
	AbsPath string // absolute path, falls back to Path
	Size    int64  // file size in bytes
}

// Archive holds the entries of an archive in native enumeration order.
type Archive struct {
	Info
	Entries []Entry
}

// ReadError reports that an archive could not be opened or enumerated.
type ReadError struct {
	Op   string // "stat", "open" or "read"
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// IsReadError reports whether err is, or wraps, a *ReadError.
func IsReadError(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

// Stat returns the file facts shown in the analysis header.
func Stat(path string) (Info, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, &ReadError{Op: "stat", Path: absPath, Err: err}
	}
	if fi.IsDir() {
		return Info{}, &ReadError{Op: "stat", Path: absPath, Err: fmt.Errorf("is a directory")}
	}

	return Info{
		Path:    path,
		AbsPath: absPath,
		Size:    fi.Size(),
	}, nil
}

// Open stats path and reads its entry table.
func Open(path string) (*Archive, error) {
	info, err := Stat(path)
	if err != nil {
		return nil, err
	}
	return OpenInfo(info)
}

// OpenInfo reads the entry table of the archive described by info, which
// must come from Stat. The zip reader is closed on every return path.
func OpenInfo(info Info) (ar *Archive, err error) {
	// Non-local names (leading slash, "..") are listed, not extracted, so an
	// insecure-path report still yields a usable reader.
	zr, err := zip.OpenReader(info.Path)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, &ReadError{Op: "open", Path: info.AbsPath, Err: err}
	}
	err = nil
	defer func() {
		cerr := zr.Close()
		if cerr != nil && err == nil {
			ar = nil
			err = &ReadError{Op: "read", Path: info.AbsPath, Err: cerr}
		}
	}()

	ar = &Archive{
		Info:    info,
		Entries: entriesOf(&zr.Reader),
	}
	return ar, nil
}

// entriesOf copies the central directory records in native order.
func entriesOf(zr *zip.Reader) []Entry {
	entries := make([]Entry, 0, len(zr.File))
	for _, f := range zr.File {
		entries = append(entries, Entry{
			Path:           f.Name,
			IsDir:          strings.HasSuffix(f.Name, "/"),
			Size:           f.UncompressedSize64,
			CompressedSize: f.CompressedSize64,
			Method:         f.Method,
			Modified:       f.Modified,
		})
	}
	return entries
}

// Dirs returns the number of directory-flagged entries.
func (a *Archive) Dirs() int {
	n := 0
	for _, e := range a.Entries {
		if e.IsDir {
			n++
		}
	}
	return n
}

// Files returns the number of non-directory entries.
func (a *Archive) Files() int {
	return len(a.Entries) - a.Dirs()
}
