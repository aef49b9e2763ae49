package fsutil_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aethermark/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "doc.md")
		content := []byte("# Title\n\ntext\n")
		require.NoError(t, os.WriteFile(path, content, 0o644))

		got, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)

		assert.Equal(t, content, got)
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(len(content)), info.Size)
		assert.Equal(t, os.FileMode(0o644), info.Mode)

		sum := sha256.Sum256(content)
		assert.Equal(t, hex.EncodeToString(sum[:]), info.Digest())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "irrelevant.md")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestDigestNil(t *testing.T) {
	t.Parallel()

	var info *fsutil.FileInfo
	assert.Empty(t, info.Digest())
}
