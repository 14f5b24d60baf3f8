package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/menta2k/logo-normalizer/internal/config"
	"github.com/menta2k/logo-normalizer/internal/logger"
	"github.com/menta2k/logo-normalizer/pkg/codec"
	"github.com/menta2k/logo-normalizer/pkg/normalizer"
	"github.com/menta2k/logo-normalizer/pkg/processing"
	"github.com/menta2k/logo-normalizer/pkg/resample"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(afero.NewOsFs()).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	var (
		canvasSize int
		maxScale   float64
		filter     string
		logLevel   string
		logJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "logo-normalizer [directory]",
		Short: "Normalize PNG logos onto a centered transparent square canvas",
		Long: "Autocrops every PNG directly inside the directory (default public/logos),\n" +
			"scales it to fit the margin box and centers it on a transparent square canvas.\n" +
			"Files are overwritten in place; keep a backup of the originals.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewLogger(&logger.Config{
				Level:      logger.ParseLevel(logLevel),
				Output:     cmd.ErrOrStderr(),
				JSON:       logJSON,
				TimeFormat: "15:04:05",
			})
			ctx := logger.ContextWithLogger(cmd.Context(), log)

			c := codec.NewPNG()
			if err := codec.Check(c); err != nil {
				log.Error("[error] missing image codec", "err", err)
				log.Error(codec.InstallHint)
				return err
			}

			overrides := map[string]any{}
			if len(args) == 1 {
				overrides["directory"] = args[0]
			}
			if cmd.Flags().Changed("canvas-size") {
				overrides["canvas_size"] = canvasSize
			}
			if cmd.Flags().Changed("max-scale") {
				overrides["max_logo_scale"] = maxScale
			}
			cfg, err := config.Load(overrides)
			if err != nil {
				log.Error("invalid configuration", "err", err)
				return err
			}

			r, err := resample.ByName(filter)
			if err != nil {
				log.Error("invalid filter", "err", err)
				return err
			}
			n, err := normalizer.NewWithResampler(cfg.Options(), r)
			if err != nil {
				log.Error("invalid configuration", "err", err)
				return err
			}

			_, err = processing.NewProcessor(fs, c, n).Run(ctx, cfg.Directory)
			switch {
			case errors.Is(err, processing.ErrDirectoryNotFound), errors.Is(err, processing.ErrNoMatchingFiles):
				return nil
			case err != nil:
				log.Error("normalization failed", "err", err)
				return err
			}
			return nil
		},
	}

	defaults := config.Default()
	flags := cmd.Flags()
	flags.IntVar(&canvasSize, "canvas-size", defaults.CanvasSize, "canvas edge length in pixels")
	flags.Float64Var(&maxScale, "max-scale", defaults.MaxLogoScale, "largest fraction of the canvas the logo may span, in (0,1]")
	flags.StringVar(&filter, "filter", resample.Default, fmt.Sprintf("resample filter: %s", strings.Join(resample.Names(), "|")))
	flags.StringVar(&logLevel, "log-level", string(logger.InfoLevel), "log level: debug|info|warn|error")
	flags.BoolVar(&logJSON, "log-json", false, "emit logs as JSON")

	return cmd
}
