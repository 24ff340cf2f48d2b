package convert

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// isArchiveFile reports whether path looks like a zip archive. Extension is
// checked first so directory walks do not open every file they pass.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, 262)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	return filetype.IsType(buf[:n], matchers.TypeZip), nil
}

// isPageFile reports whether path is a candidate PAGE-XML file. Content is
// validated later by the parser, here extension is enough.
func isPageFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}
