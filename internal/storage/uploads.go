// Package storage keeps uploaded datasets on disk.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	debuglog "github.com/regexify/regexify/internal/log"
)

// MaxFileSize bounds a single upload (10MB).
const MaxFileSize = 10 * 1024 * 1024

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrTooLarge          = errors.New("file too large")
	ErrEmptyName         = errors.New("file name is empty")
)

const (
	csvMIME  = "text/csv"
	xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxExt  = ".xlsx"
)

// Uploads stores files as <dir>/<uuid>_<name>.
type Uploads struct {
	dir string
}

func NewUploads(dir string) (*Uploads, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create upload directory %s", dir)
	}
	return &Uploads{dir: dir}, nil
}

// Save writes the content of r under a unique name derived from name and
// returns the stored path. CSV and .xlsx workbooks are accepted, recognized by
// extension or by content. A workbook always keeps the .xlsx extension so it
// is read back as one.
func (u *Uploads) Save(name string, r io.Reader) (string, error) {
	base := filepath.Base(filepath.Clean(name))
	if base == "." || base == string(filepath.Separator) || strings.TrimSpace(base) == "" {
		return "", ErrEmptyName
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return "", errors.Wrap(err, "failed to read upload")
	}
	if len(data) > MaxFileSize {
		return "", errors.Wrapf(ErrTooLarge, "%s exceeds %d bytes", base, MaxFileSize)
	}

	if err := CheckFormat(base, data); err != nil {
		return "", err
	}
	if !strings.EqualFold(filepath.Ext(base), xlsxExt) && mimetype.Detect(data).Is(xlsxMIME) {
		base += xlsxExt
	}

	path := filepath.Join(u.dir, uuid.NewString()+"_"+base)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to store %s", base)
	}
	debuglog.Debug(debuglog.Detailed, "stored upload %s (%d bytes)\n", path, len(data))
	return path, nil
}

// CheckFormat accepts a .csv or .xlsx name, or content sniffed as either.
func CheckFormat(name string, data []byte) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", xlsxExt:
		return nil
	}
	mime := mimetype.Detect(data)
	if mime.Is(csvMIME) || mime.Is(xlsxMIME) {
		return nil
	}
	return errors.Wrapf(ErrUnsupportedFormat, "%s (%s)", name, mime.String())
}

// Remove deletes a stored file; a missing file is not an error.
func (u *Uploads) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to remove %s", path)
	}
	return nil
}
