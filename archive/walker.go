// Package archive iterates page scans stored in zip archives.
package archive

import (
	"archive/zip"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/maruel/natural"
	"golang.org/x/text/encoding"
)

// Entry describes a single regular file inside an archive. Name is the stored
// entry path, decoded with the forced code page when the archive predates
// UTF-8 names.
type Entry struct {
	Archive string
	Name    string
	File    *zip.File
}

// WalkFunc is the type of the function called by Walk for each matching
// entry. If an error is returned, the walk stops.
type WalkFunc func(e Entry) error

// Walk visits regular files under prefix in natural name order, so numbered
// scans come out in reading sequence (page_2 before page_10). When cp is not
// nil, entry names flagged as non UTF-8 are decoded with it before prefix
// matching; names that fail to decode are passed through as stored. Entries
// with path traversal components ("..") or absolute paths abort the walk to
// prevent Zip Slip attacks.
func Walk(archive, prefix string, cp encoding.Encoding, fn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	entries := make([]Entry, 0, len(r.File))
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if cp != nil && f.FileHeader.NonUTF8 {
			if decoded, err := cp.NewDecoder().String(name); err == nil {
				name = decoded
			}
		}
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		entries = append(entries, Entry{Archive: archive, Name: name, File: f})
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		if natural.Less(a.Name, b.Name) {
			return -1
		}
		if natural.Less(b.Name, a.Name) {
			return 1
		}
		return 0
	})

	for _, e := range entries {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
