package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dotcommander/bananaq/internal/config"
	"github.com/dotcommander/bananaq/internal/cue"
	"github.com/dotcommander/bananaq/internal/outputters"
	"github.com/dotcommander/bananaq/internal/profile"
	"github.com/dotcommander/bananaq/internal/scoring"
)

// Version is set at build time with -ldflags "-X github.com/dotcommander/bananaq/cmd.Version=..."
var Version = "dev"

var (
	quiet        bool
	verbose      bool
	strict       bool
	outputFormat string
	outputFile   string
	profilePath  string
	seed         uint64
)

var (
	exitFunc           = os.Exit
	stdout   io.Writer = os.Stdout
	stderr   io.Writer = os.Stderr
	logger             = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "bananaq",
	Short: "Banana quality prediction - heuristic quality, yield and appearance estimates",
	Long: `bananaq scores banana measurements against a profile of optimal ranges and
feature importances. It predicts Good or Bad quality with a confidence, suggests
how to improve out-of-range parameters, describes the expected appearance and
estimates crop yield.

Measurements are the seven normalized values of the banana quality dataset:
size, weight, sweetness, softness, harvest time, ripeness and acidity.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		switch {
		case verbose:
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		case quiet:
			cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		default:
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command, exiting non-zero on failure.
func Execute() {
	rootCmd.Version = Version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		exitFunc(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "Treat values outside the form slider bounds as errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "Weight profile file (YAML or JSON); built-in profile if empty")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed the confidence jitter for reproducible output (0 = random)")

	bindFlags()
}

// bindFlags binds the persistent flags to their configuration keys.
func bindFlags() {
	for _, name := range []string{"quiet", "verbose", "strict", "format", "output", "profile", "seed"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	for _, path := range config.ConfigFiles {
		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				fmt.Fprintf(stderr, "Error reading config file: %v\n", err)
				exitFunc(1)
			}
			break
		}
	}
}

// loadProfile returns the configured weight profile, or the built-in one.
func loadProfile(cfg *config.Config, validator *cue.Validator) (*profile.Profile, error) {
	if cfg.Profile == "" {
		return profile.Default(), nil
	}
	p, err := profile.Load(cfg.Profile, validator)
	if err != nil {
		return nil, fmt.Errorf("error loading profile %s: %w", cfg.Profile, err)
	}
	logger.Debug("profile loaded", zap.String("path", cfg.Profile), zap.String("name", p.Name()))
	return p, nil
}

// newEngine builds a scoring engine for the configured profile and seed.
func newEngine(cfg *config.Config, validator *cue.Validator) (*scoring.Engine, error) {
	p, err := loadProfile(cfg, validator)
	if err != nil {
		return nil, err
	}
	var opts []scoring.Option
	if cfg.Seed != 0 {
		opts = append(opts, scoring.WithSeed(cfg.Seed))
	}
	return scoring.NewEngine(p, opts...), nil
}

// newOutputter creates an outputter writing to the command's stdout.
func newOutputter(cfg *config.Config) *outputters.Outputter {
	o := outputters.NewOutputter(cfg, Version)
	o.SetStdout(stdout)
	return o
}
