package filestore

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/domain/repository"
	"github.com/osm2svg/internal/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const tmpSuffix = ".tmp"

type documentRepository struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger
}

// NewDocumentRepository создаёт хранилище чертежей в каталоге dir.
// Каталог должен существовать: его отсутствие - ошибка записи.
func NewDocumentRepository(fs afero.Fs, dir string, logger *zap.Logger) repository.DocumentRepository {
	return &documentRepository{
		fs:     fs,
		dir:    dir,
		logger: logger,
	}
}

func (r *documentRepository) Path(name string) string {
	return filepath.Join(r.dir, name+domain.DrawingFileExt)
}

// Save записывает документ во временный файл и переименовывает его,
// поэтому частично записанный чертёж не остаётся на диске
func (r *documentRepository) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.ErrOutputWriteFailed.Wrap(err)
	}

	path := r.Path(name)
	tmp := path + tmpSuffix

	if err := afero.WriteFile(r.fs, tmp, data, 0o644); err != nil {
		_ = r.fs.Remove(tmp)
		r.logger.Error("Failed to write drawing", zap.String("path", tmp), zap.Error(err))
		return "", errors.ErrOutputWriteFailed.Wrap(fmt.Errorf("write %s: %w", tmp, err))
	}

	if err := r.fs.Rename(tmp, path); err != nil {
		_ = r.fs.Remove(tmp)
		r.logger.Error("Failed to move drawing into place", zap.String("path", path), zap.Error(err))
		return "", errors.ErrOutputWriteFailed.Wrap(fmt.Errorf("rename %s: %w", tmp, err))
	}

	r.logger.Info("Drawing saved",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
	)

	return path, nil
}
