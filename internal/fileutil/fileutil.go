package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File is one payload for WriteFilesAtomic.
type File struct {
	Path string
	Data []byte
	Mode os.FileMode
}

// WriteFileAtomic writes data to a temp file next to path and renames it into
// place, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	return WriteFilesAtomic([]File{{Path: path, Data: data, Mode: mode}})
}

// rename is swapped in tests to simulate a failing commit.
var rename = os.Rename

// WriteFilesAtomic stages every file as a temp sibling first and renames them
// into place only after all writes succeeded. Existing targets are moved
// aside before being replaced; if any rename fails, targets already replaced
// get their previous contents back (or are removed when they did not exist)
// and the temp files are deleted.
func WriteFilesAtomic(files []File) error {
	staged := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, f := range files {
		tmp, err := writeTemp(f)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmp)
	}

	type committed struct {
		path   string
		backup string
	}
	var done []committed
	rollback := func() {
		for i := len(done) - 1; i >= 0; i-- {
			c := done[i]
			if c.backup == "" {
				_ = os.Remove(c.path)
				continue
			}
			_ = os.Rename(c.backup, c.path)
		}
		cleanup()
	}

	for i, f := range files {
		backup := ""
		if _, err := os.Lstat(f.Path); err == nil {
			backup = staged[i] + ".bak"
			if err := rename(f.Path, backup); err != nil {
				rollback()
				return fmt.Errorf("move aside %s: %w", f.Path, err)
			}
		}
		if err := rename(staged[i], f.Path); err != nil {
			if backup != "" {
				_ = os.Rename(backup, f.Path)
			}
			rollback()
			return fmt.Errorf("rename %s: %w", f.Path, err)
		}
		done = append(done, committed{path: f.Path, backup: backup})
	}

	for _, c := range done {
		if c.backup != "" {
			_ = os.Remove(c.backup)
		}
	}
	return nil
}

func writeTemp(f File) (string, error) {
	if f.Path == "" {
		return "", errors.New("write file: empty path")
	}
	mode := f.Mode
	if mode == 0 {
		mode = 0o644
	}
	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", f.Path, err)
	}
	name := tmp.Name()
	fail := func(err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", err
	}
	if _, err := tmp.Write(f.Data); err != nil {
		return fail(fmt.Errorf("write %s: %w", f.Path, err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("sync %s: %w", f.Path, err))
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(fmt.Errorf("chmod %s: %w", f.Path, err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("close %s: %w", f.Path, err)
	}
	return name, nil
}

// SHA256Hex returns the hex-encoded SHA-256 digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
