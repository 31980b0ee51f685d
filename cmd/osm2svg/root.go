package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/osm2svg/internal/app"
	"github.com/osm2svg/internal/config"
	"github.com/osm2svg/internal/domain"
	"github.com/osm2svg/internal/pkg/errors"
	"github.com/osm2svg/internal/pkg/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type options struct {
	step         float64
	sortByHeight bool
	bigLinesStep int
	envFile      string
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	opts := &options{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "osm2svg NAME MIN_LAT MIN_LON MAX_LAT MAX_LON",
		Short: "Render contour lines of an area into an SVG drawing",
		Long: `Render the contour lines of a geographic area into a plotter-ready SVG drawing.

Contours come from CONTOUR_SOURCE: srtm2osm (runs Srtm2Osm first), osmfile
(reads <result_dir>/NAME.osm) or postgres (osm2pgsql-imported lines).
The drawing is written to <result_dir>/NAME.svg.

Examples:
  osm2svg alps 45.0 5.0 45.1 5.2
  osm2svg alps 45.0 5.0 45.1 5.2 -s 20 --sort_by_height --big_lines_step 100
  osm2svg cape -34.0 18.4 -33.9 18.5 --source osmfile`,
		Args:          cobra.ExactArgs(5),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fs, v, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.Float64VarP(&opts.step, "step", "s", domain.DefaultStep, "Contour interval in meters")
	flags.BoolVar(&opts.sortByHeight, "sort_by_height", false, "Group lines into one layer per altitude")
	flags.IntVar(&opts.bigLinesStep, "big_lines_step", domain.BigLinesDisabled, "Draw every N-meter line with the major stroke (-1 disables)")
	flags.String("source", config.SourceSrtm2Osm, "Contour source: srtm2osm, osmfile or postgres")
	flags.String("result_dir", "./result", "Directory for .osm and .svg files")
	flags.StringVar(&opts.envFile, "env_file", ".env", "Optional .env file with configuration")

	// флаги перекрывают переменные окружения и .env
	_ = v.BindPFlag("CONTOUR_SOURCE", flags.Lookup("source"))
	_ = v.BindPFlag("RESULT_DIR", flags.Lookup("result_dir"))

	return cmd
}

func run(cmd *cobra.Command, fs afero.Fs, v *viper.Viper, opts *options, args []string) error {
	req, err := parseRequest(args, opts)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFrom(v, opts.envFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New("osm2svg", cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	stack, err := app.NewRenderStack(cfg, fs, nil, log)
	if err != nil {
		log.Error("Failed to build render pipeline", zap.Error(err))
		return err
	}
	defer stack.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := stack.UseCase.Render(ctx, req)
	if stderrors.Is(err, errors.ErrNoGeometry) {
		log.Warn("No contour lines in the area, drawing not written",
			zap.String("name", req.Name),
			zap.Error(err))
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: no contour lines for %s, nothing written\n", req.Name)
		return nil
	}
	if err != nil {
		log.Error("Render failed", zap.String("name", req.Name), zap.Error(err))
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Path)
	return nil
}
