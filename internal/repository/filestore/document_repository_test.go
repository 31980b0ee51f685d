package filestore

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/osm2svg/internal/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/result", 0o755))

	repo := NewDocumentRepository(fs, "/result", zap.NewNop())

	path, err := repo.Save(context.Background(), "alps", []byte("<svg/>"))
	require.NoError(t, err)
	assert.Equal(t, "/result/alps.svg", path)
	assert.Equal(t, path, repo.Path("alps"))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))

	exists, _ := afero.Exists(fs, path+tmpSuffix)
	assert.False(t, exists)
}

func TestSave_Overwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/result/alps.svg", []byte("old"), 0o644))

	repo := NewDocumentRepository(fs, "/result", zap.NewNop())

	_, err := repo.Save(context.Background(), "alps", []byte("new"))
	require.NoError(t, err)

	data, _ := afero.ReadFile(fs, "/result/alps.svg")
	assert.Equal(t, "new", string(data))
}

func TestSave_ReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/result", 0o755))

	repo := NewDocumentRepository(afero.NewReadOnlyFs(base), "/result", zap.NewNop())

	_, err := repo.Save(context.Background(), "alps", []byte("<svg/>"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrOutputWriteFailed))

	exists, _ := afero.Exists(base, "/result/alps.svg")
	assert.False(t, exists)
}

func TestSave_MissingDirectory(t *testing.T) {
	dir := t.TempDir() + "/missing"
	repo := NewDocumentRepository(afero.NewOsFs(), dir, zap.NewNop())

	_, err := repo.Save(context.Background(), "alps", []byte("<svg/>"))

	assert.True(t, stderrors.Is(err, errors.ErrOutputWriteFailed))
}

func TestSave_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewDocumentRepository(afero.NewMemMapFs(), "/result", zap.NewNop())

	_, err := repo.Save(ctx, "alps", []byte("<svg/>"))
	assert.True(t, stderrors.Is(err, errors.ErrOutputWriteFailed))
	assert.True(t, stderrors.Is(err, context.Canceled))
}
