package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Exists reports whether path names a non-empty regular file. A zero-byte file
// is treated as absent so an interrupted write never satisfies an idempotence
// check.
func Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return info.Size() > 0, nil
}

// TempSibling returns a hidden path next to dst that keeps dst's extension, so
// muxers that infer the container from the name still work.
func TempSibling(dst string) string {
	dir := filepath.Dir(dst)
	base := filepath.Base(dst)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, "."+stem+".partial"+ext)
}

// Promote moves a completed temp file into place. The temp file is removed if
// the rename fails.
func Promote(tmp, dst string) error {
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("promote %s: %w", filepath.Base(dst), err)
	}
	return nil
}

// WriteFileAtomic writes data to a temp sibling and renames it over path.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}
	tmp := TempSibling(path)
	if err := os.WriteFile(tmp, data, mode); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return Promote(tmp, path)
}

// SameContent reports whether path already holds exactly data.
func SameContent(path string, data []byte) bool {
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(existing, data)
}
