package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/expki/go-colorquant/config"
	"github.com/expki/go-colorquant/imageio"
	"github.com/expki/go-colorquant/kmeans"
	"github.com/expki/go-colorquant/logger"
	"github.com/spf13/cobra"
)

type runFlags struct {
	configPath    string
	input         string
	output        string
	k             int
	maxIterations int
	threshold     float64
	workers       int
	centroids     string
	noCentroids   bool
	resume        bool
	seed          int64
	logLevel      string
	progress      bool
}

func newRunCmd() *cobra.Command {
	flags := &runFlags{}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Quantize the colours of an image",
		Long: `Quantize the colours of an image.

The configuration file is optional; flags override its values.

Examples:
  colorquant run --config config.json
  colorquant run --input photo.jpg --output result.png -k 8
  colorquant run --config config.json --resume --workers 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			if err = logger.Initialize(cfg.LogLevel.Zap()); err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var progress io.Writer
			if cfg.Progress {
				progress = cmd.ErrOrStderr()
			}
			err = quantize(ctx, cfg, progress)
			if err != nil {
				logger.Sugar().Errorf("Quantization failed: %v", err)
			}
			return err
		},
	}

	f := runCmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "path to the JSON configuration file")
	f.StringVarP(&flags.input, "input", "i", "", "image to quantize")
	f.StringVarP(&flags.output, "output", "o", "", "path of the recoloured image (.png or .jpg)")
	f.IntVarP(&flags.k, "k", "k", config.DEFAULT_K, "number of colours")
	f.IntVar(&flags.maxIterations, "max-iterations", config.DEFAULT_MAX_ITERATIONS, "iteration budget")
	f.Float64Var(&flags.threshold, "threshold", config.DEFAULT_CONVERGENCE_THRESHOLD, "stop once no centroid moves this far (L1), 0 runs every iteration")
	f.IntVarP(&flags.workers, "workers", "w", 0, "parallel workers (0 uses every CPU)")
	f.StringVar(&flags.centroids, "centroids", "", "centroid file, a .zst suffix compresses it (default "+config.DEFAULT_CENTROIDS_PATH+")")
	f.BoolVar(&flags.noCentroids, "no-centroids", false, "do not persist centroids")
	f.BoolVar(&flags.resume, "resume", false, "continue from the stored centroid set")
	f.Int64Var(&flags.seed, "seed", 0, "seed for the initial sampling (0 is random)")
	f.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")
	f.BoolVar(&flags.progress, "progress", false, "show progress bars")
	return runCmd
}

// resolve reads the configuration file, when given, and applies every flag
// the user set explicitly.
func (r *runFlags) resolve(cmd *cobra.Command) (cfg config.Config, err error) {
	if r.configPath != "" {
		raw, err := os.ReadFile(r.configPath)
		if err != nil {
			return cfg, errors.Join(errors.New("could not read config file"), err)
		}
		cfg, err = config.ParseConfig(raw)
		if err != nil {
			return cfg, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("input") {
		cfg.Input = r.input
	}
	if changed("output") {
		cfg.Output = r.output
	}
	if changed("k") {
		cfg.KMeans.K = r.k
	}
	if changed("max-iterations") {
		cfg.KMeans.MaxIterations = r.maxIterations
	}
	if changed("threshold") {
		threshold := r.threshold
		cfg.KMeans.ConvergenceThreshold = &threshold
	}
	if changed("workers") {
		cfg.KMeans.Workers = r.workers
	}
	if changed("centroids") {
		cfg.Centroids.Path = r.centroids
	}
	if changed("no-centroids") {
		cfg.Centroids.Disabled = r.noCentroids
	}
	if changed("resume") {
		cfg.KMeans.Resume = r.resume
	}
	if changed("seed") {
		cfg.KMeans.Seed = r.seed
	}
	if changed("log-level") {
		cfg.LogLevel = config.LogLevel(r.logLevel)
	}
	if changed("progress") {
		cfg.Progress = r.progress
	}

	if cfg.Input == "" {
		return cfg, errors.New("no input image given")
	}
	if cfg.Output == "" {
		return cfg, errors.New("no output image given")
	}
	return cfg, nil
}

// quantize loads the input image, clusters its colours and writes the recoloured image.
func quantize(ctx context.Context, cfg config.Config, progress io.Writer) error {
	buffer, err := imageio.Load(cfg.Input)
	if err != nil {
		return errors.Join(kmeans.ErrInput, err)
	}
	logger.Sugar().Infof("Loaded %s (%dx%d)", cfg.Input, buffer.Width, buffer.Height)

	centroids, closeStore, err := openStore(cfg.Centroids)
	if err != nil {
		return err
	}
	defer closeStore()

	controller := kmeans.New(kmeans.OptionsFromConfig(cfg.KMeans, progress), centroids)
	options := controller.Options()
	logger.Sugar().Infof("Clustering into %d colours with %d workers", options.K, options.Workers)

	result, err := controller.Run(ctx, buffer)
	if err != nil {
		return err
	}
	logger.Sugar().Infof("Clustering %s at iteration %d (max shift %.4f)", result.State.Status, result.State.Iteration, result.State.MaxShift)

	output, err := controller.Reconstruct(ctx, buffer, result.Centroids)
	if err != nil {
		return err
	}
	if err = imageio.Save(cfg.Output, output); err != nil {
		return err
	}
	logger.Sugar().Infof("Wrote %s", cfg.Output)
	return nil
}
