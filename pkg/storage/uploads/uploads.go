package uploads

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

// Storage persists uploaded album files under a single directory.
type Storage struct {
	Logger logrus.FieldLogger
	Path   string
}

var allowedExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".mp4": true, ".mov": true, ".avi": true,
}

var ErrUnsupportedFormat = errors.New("unsupported file format")

func New(logger logrus.FieldLogger, path string) (storage Storage, err error) {
	storage.Logger = logger
	logger.Println("initialising uploads store")

	// attempt to create an uploads directory if it doesn't exist
	if err = os.MkdirAll(path, 0750); err != nil {
		return storage, err
	}

	storage.Path = path

	return storage, nil
}

// Save streams the uploaded contents to a collision proof file, named after the upload
// instant and a truncated UUID, and returns the stored path.
func (s Storage) Save(source io.Reader, originalName string) (string, error) {

	var extension = strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[extension] {
		return "", ErrUnsupportedFormat
	}

	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}

	var name = fmt.Sprintf("%s_%.8s%s", time.Now().Format("20060102_150405"), id.String(), extension)
	var path = filepath.Join(s.Path, name)

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0640)
	if err != nil {
		return "", err
	}

	// a partial file has no referencing row, so the album can never reclaim it later
	if _, err = io.Copy(file, source); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", err
	}

	return path, file.Close()
}

// Exists reports whether the stored file still backs its database row.
func (s Storage) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes the stored file; an already missing file isn't an error.
func (s Storage) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
