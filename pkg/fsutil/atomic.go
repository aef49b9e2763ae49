package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for report and config files aethermark creates.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content through a sibling temp file and a rename,
// so readers never observe a half-written token dump. A zero mode keeps the mode of
// an existing target, falling back to DefaultFileMode for new files.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	mode, err := targetMode(path, mode)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := fillTemp(tmp, content, mode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// WriteAtomicIfChanged is WriteAtomic that skips the write when path already holds
// content. It reports whether the file was written.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}

	same, err := sameContent(path, content)
	if err != nil {
		return false, err
	}
	if same {
		return false, nil
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}

func targetMode(path string, mode os.FileMode) (os.FileMode, error) {
	if mode != 0 {
		return mode, nil
	}
	info, err := os.Stat(path)
	switch {
	case err == nil:
		return info.Mode().Perm(), nil
	case errors.Is(err, fs.ErrNotExist):
		return DefaultFileMode, nil
	default:
		return 0, fmt.Errorf("stat target: %w", err)
	}
}

func fillTemp(tmp *os.File, content []byte, mode os.FileMode) error {
	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	return nil
}

// sameContent compares sizes first so large token dumps are only read back when
// they could match.
func sameContent(path string, content []byte) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat existing: %w", err)
	}
	if !info.Mode().IsRegular() || info.Size() != int64(len(content)) {
		return false, nil
	}

	existing, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read existing: %w", err)
	}
	return bytes.Equal(existing, content), nil
}
