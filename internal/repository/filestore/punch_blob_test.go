package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/punch-analytics/internal/domain/punch"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPunchRepository(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	files, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	repo := NewPunchRepository(files)

	rows, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	input := []punch.RawPunch{{Worker: "ana", Date: "2024-03-04", Time: "08:02:11", Direction: "IN"}}
	require.NoError(t, repo.Save(ctx, input))

	raw, err := os.ReadFile(filepath.Join(dir, "registros.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"User":"ana"`)

	rows, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, input, rows)

	require.NoError(t, repo.Clear(ctx))
	rows, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPunchRepository_Corrupt(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "registros.json"), []byte("[{"), 0o644))

	files, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = NewPunchRepository(files).Load(ctx)
	assert.ErrorIs(t, err, punch.ErrBlobCorrupt)
}
