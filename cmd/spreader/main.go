package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/playlist-spreader/internal/config"
	"github.com/handiism/playlist-spreader/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger

	// Global flags
	configPath string
	verbose    bool

	// Shuffle flags
	outputPath           string
	minDistance          int
	count                int
	seed                 int64
	passThrough          bool
	distributionReport   string
	suppressDistribution bool
	playlistFormat       string
	extended             bool
	readTags             bool
)

var rootCmd = &cobra.Command{
	Use:   "spreader <tracks>",
	Short: "Shuffle a playlist, keeping versions of the same song apart",
	Long: `Playlist Spreader reads a track list (CSV, TSV or M3U), groups tracks that are
versions of the same song by their file names, and writes a weighted shuffle in
which versions of one song are at least --min-distance slots apart.

For interactive mode, use: spreader-tui`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runShuffle,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (.json or .yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	f := rootCmd.Flags()
	f.StringVarP(&outputPath, "output", "o", "", "Playlist to write (default <input>.shuffled.<format>)")
	f.IntVarP(&minDistance, "min-distance", "d", 0, "Minimum slots between versions of the same song")
	f.IntVarP(&count, "count", "n", 0, "Number of slots (default: number of input tracks)")
	f.Int64Var(&seed, "seed", 0, "Random seed for a reproducible shuffle")
	f.BoolVar(&passThrough, "pass-through", false, "Keep the input order (optionally truncated by --count)")
	f.StringVar(&distributionReport, "distribution-report", "", "Write per-track placement statistics to this CSV file")
	f.BoolVar(&suppressDistribution, "suppress-distribution", false, "Write the distribution report without printing it")
	f.StringVarP(&playlistFormat, "format", "f", "", "Playlist format: m3u, pls, wpl or zpl")
	f.BoolVar(&extended, "extended", true, "Write #EXTINF lines in M3U output")
	f.BoolVar(&readTags, "tags", false, "Read titles and artists from ID3 tags")

	rootCmd.AddCommand(groupsCmd, auditCmd, linkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// loadSettings reads the config file, then applies the flags that were set.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if configPath != "" {
		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	f := cmd.Flags()
	if f.Changed("min-distance") {
		settings.MinDistance = minDistance
	}
	if f.Changed("count") {
		if count <= 0 {
			return nil, fmt.Errorf("%w: count must be positive, got %d", config.ErrInvalidConfiguration, count)
		}
		settings.Count = count
	}
	if f.Changed("seed") {
		settings.Seed = &seed
	}
	if f.Changed("pass-through") {
		settings.PassThrough = passThrough
	}
	if f.Changed("distribution-report") {
		settings.DistributionReport = distributionReport
	}
	if f.Changed("suppress-distribution") {
		settings.SuppressDistribution = suppressDistribution
	}
	if f.Changed("format") {
		settings.PlaylistFormat = playlistFormat
	}
	if f.Changed("extended") {
		settings.M3UExtended = extended
	}
	if f.Changed("tags") {
		settings.ReadTags = readTags
	}

	return settings, nil
}

// signalContext is cancelled on the first interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\nInterrupted, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

// printProgress prints events with a level prefix, hiding verbose ones
// unless --verbose is set.
func printProgress(event pipeline.ProgressEvent) {
	if event.Level == pipeline.LevelVerbose && !verbose {
		return
	}

	prefix := ""
	switch event.Level {
	case pipeline.LevelError:
		prefix = "✗ "
	case pipeline.LevelWarning:
		prefix = "! "
	case pipeline.LevelSuccess:
		prefix = "✓ "
	case pipeline.LevelInfo:
		prefix = "› "
	default:
		prefix = "  "
	}

	fmt.Println(prefix + event.Message)
}

func runShuffle(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Println("♫ Playlist Spreader")
	fmt.Println("────────────────────────────────────────")
	fmt.Println()

	runner := pipeline.NewRunner(settings, logger, printProgress)
	summary, err := runner.Run(ctx, args[0], outputPath)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("────────────────────────────────────────")
	if summary.PassThrough {
		fmt.Printf("Complete! %d entries in input order\n", len(summary.Placements))
		return nil
	}

	fmt.Printf("Complete! %d slots from %d tracks in %d titles\n",
		len(summary.Placements), summary.InputTracks, len(summary.Grouping.Groups))
	if summary.SeedGiven {
		fmt.Printf("   seed %d\n", summary.Seed)
	} else {
		fmt.Printf("   seed %d (repeat with --seed %d)\n", summary.Seed, summary.Seed)
	}
	if n := len(summary.Shuffle.Relaxations); n > 0 {
		fmt.Printf("   %d placements relaxed the distance rule\n", n)
	}
	return nil
}
