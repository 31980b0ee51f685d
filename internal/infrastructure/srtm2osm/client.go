// Package srtm2osm запускает внешний Srtm2Osm, который строит изолинии по
// данным SRTM и сохраняет их в OSM XML.
package srtm2osm

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/osm2svg/internal/config"
	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/domain/repository"
	"github.com/osm2svg/internal/pkg/errors"
	"github.com/osm2svg/internal/pkg/metrics"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// runner запускает процесс и возвращает его объединённый вывод
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

type client struct {
	fs        afero.Fs
	exePath   string
	resultDir string
	timeout   time.Duration
	run       runner
	logger    *zap.Logger
}

// NewClient создаёт клиент Srtm2Osm. Результат пишется в resultDir/<name>.osm.
func NewClient(fs afero.Fs, terrain *config.TerrainConfig, output *config.OutputConfig, logger *zap.Logger) repository.TerrainRepository {
	return newClient(fs, terrain, output, execRunner, logger)
}

func newClient(fs afero.Fs, terrain *config.TerrainConfig, output *config.OutputConfig, run runner, logger *zap.Logger) *client {
	return &client{
		fs:        fs,
		exePath:   terrain.Srtm2OsmPath,
		resultDir: output.ResultDir,
		timeout:   terrain.Timeout,
		run:       run,
		logger:    logger,
	}
}

// Acquire генерирует файл с изолиниями для охвата запроса. Код возврата
// Srtm2Osm не показателен, поэтому успех определяется наличием файла.
func (c *client) Acquire(ctx context.Context, req domain.RenderRequest) (string, error) {
	exists, err := afero.Exists(c.fs, c.exePath)
	if err != nil || !exists {
		c.logger.Error("Srtm2Osm executable not found", zap.String("path", c.exePath))
		return "", errors.ErrTerrainUnavailable.Wrapf("executable %s not found", c.exePath)
	}

	output := OutputPath(c.resultDir, req.Name)
	if err := c.fs.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return "", errors.ErrTerrainUnavailable.Wrap(fmt.Errorf("create result dir: %w", err))
	}
	// старый файл не должен выдать себя за результат нового запуска
	if err := c.fs.Remove(output); err != nil && !isNotExist(c.fs, output) {
		return "", errors.ErrTerrainUnavailable.Wrap(fmt.Errorf("remove stale output: %w", err))
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := commandArgs(req, output)
	c.logger.Info("Running Srtm2Osm",
		zap.String("exe", c.exePath),
		zap.Strings("args", args),
	)

	started := time.Now()
	out, runErr := c.run(ctx, c.exePath, args...)
	metrics.AcquisitionDuration.Observe(time.Since(started).Seconds())

	c.logger.Debug("Srtm2Osm finished",
		zap.ByteString("output", out),
		zap.Duration("duration", time.Since(started)),
		zap.Error(runErr),
	)

	if ctx.Err() != nil {
		return "", errors.ErrTerrainUnavailable.Wrap(fmt.Errorf("srtm2osm interrupted: %w", ctx.Err()))
	}

	exists, err = afero.Exists(c.fs, output)
	if err != nil || !exists {
		c.logger.Error("Srtm2Osm produced no output",
			zap.String("output", output),
			zap.Error(runErr),
		)
		if runErr != nil {
			return "", errors.ErrTerrainUnavailable.Wrap(fmt.Errorf("srtm2osm failed: %w", runErr))
		}
		return "", errors.ErrTerrainUnavailable.Wrapf("srtm2osm produced no file %s", output)
	}

	return output, nil
}

// OutputPath - путь к файлу изолиний для имени чертежа
func OutputPath(resultDir, name string) string {
	return filepath.Join(resultDir, name+domain.ContourFileExt)
}

func commandArgs(req domain.RenderRequest, output string) []string {
	return []string{
		"-bounds1",
		formatFloat(req.MinLat),
		formatFloat(req.MinLon),
		formatFloat(req.MaxLat),
		formatFloat(req.MaxLon),
		"-o",
		output,
		"-step",
		formatFloat(req.Step),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func isNotExist(fs afero.Fs, path string) bool {
	exists, err := afero.Exists(fs, path)
	return err == nil && !exists
}
