// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ezrec/starjconf/catalog"
	"github.com/ezrec/starjconf/config"
	"github.com/ezrec/starjconf/driver"
)

const DEFAULT_CONFIG = "starjconf.yaml"

var (
	// Global flags
	verbose    bool
	configPath string
	outputDir  string
	extension  string
	jobs       int
	only       []string
	manifest   bool

	// Logger
	logger   *zap.Logger
	logLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
)

// rootCmd generates the fixture set.
var rootCmd = &cobra.Command{
	Use:   "starjconf",
	Short: "Generate self-checking starj conformance fixtures",
	Long: `starjconf writes one assembler fixture per starj instruction family.

Each fixture halts with 1 when every check passes, or 0 at the first
failed check.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			logLevel.SetLevel(zapcore.DebugLevel)
		}
		zcfg.Level = logLevel
		var err error
		logger, err = zcfg.Build()
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
	RunE: runGenerate,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the fixtures (default)",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the planned fixtures and the instructions they cover",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the case catalog and build every fixture without writing",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", DEFAULT_CONFIG, "Configuration file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&extension, "ext", "", "Fixture file extension (default from config)")
	rootCmd.PersistentFlags().IntVarP(&jobs, "jobs", "j", 0, "Parallel fixture builders, 0 for no limit")
	rootCmd.PersistentFlags().StringSliceVar(&only, "only", nil, "Generate only these fixtures or instructions")
	rootCmd.PersistentFlags().BoolVar(&manifest, "manifest", false, "Also write manifest.yaml")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// settings loads the config file and applies explicitly set flags.
func settings(cmd *cobra.Command) (cfg *config.Config, err error) {
	cfg, err = config.Load(configPath)
	if err != nil {
		return
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if cfg.Verbose {
		logLevel.SetLevel(zapcore.DebugLevel)
	}
	if flags.Changed("output") {
		cfg.OutputDir = outputDir
	}
	if flags.Changed("ext") {
		cfg.Extension = extension
	}
	if flags.Changed("jobs") {
		cfg.Jobs = jobs
	}
	if flags.Changed("only") {
		cfg.Only = only
	}
	if flags.Changed("manifest") {
		cfg.Manifest = manifest
	}

	err = cfg.Validate()
	return
}

func newDriver(cfg *config.Config) *driver.Driver {
	log := logger
	if log == nil {
		log = zap.NewNop()
	}
	return &driver.Driver{
		Log:      log,
		FS:       driver.DirFS("."),
		Dir:      cfg.OutputDir,
		Ext:      cfg.Extension,
		Jobs:     cfg.Jobs,
		Only:     cfg.Only,
		Manifest: cfg.Manifest,
	}
}

// runGenerate writes every selected fixture.
func runGenerate(cmd *cobra.Command, args []string) (err error) {
	cfg, err := settings(cmd)
	if err != nil {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	written, err := newDriver(cfg).Run(ctx)
	if err != nil {
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d files written to %v\n", len(written), cfg.OutputDir)
	return
}

// runList prints the plan.
func runList(cmd *cobra.Command, args []string) (err error) {
	cfg, err := settings(cmd)
	if err != nil {
		return
	}

	plan, err := newDriver(cfg).Plan()
	if err != nil {
		return
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "FIXTURE\tKIND\tCOVERS")
	for _, job := range plan {
		kind := "structural"
		if job.Oracle {
			kind = "oracle"
		}
		fmt.Fprintf(tw, "%v%v\t%v\t%v\n", job.Name, cfg.Extension, kind, strings.Join(job.Covers, " "))
	}
	return tw.Flush()
}

// runCheck verifies the catalog and every fixture, writing nothing.
func runCheck(cmd *cobra.Command, args []string) (err error) {
	cfg, err := settings(cmd)
	if err != nil {
		return
	}

	err = catalog.CheckAll()
	if err != nil {
		return
	}

	d := newDriver(cfg)
	plan, err := d.Plan()
	if err != nil {
		return
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	progs, err := d.Build(ctx, plan)
	if err != nil {
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d fixtures valid\n", len(progs))
	return
}
