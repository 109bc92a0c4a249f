package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/iwvelando/asset-depreciation/internal/config"
	"github.com/iwvelando/asset-depreciation/internal/logging"
	"github.com/iwvelando/asset-depreciation/pkg/constants"
	"github.com/iwvelando/asset-depreciation/pkg/format"
	"github.com/iwvelando/asset-depreciation/pkg/report"
	"github.com/iwvelando/asset-depreciation/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type cliOptions struct {
	configPath   string
	logLevel     string
	outputFormat string
	envFile      string
	outPath      string
}

// run holds everything a command needs after the configuration is loaded.
type run struct {
	conf         *config.Configuration
	logger       *zap.Logger
	outputFormat string
	formatter    *format.Formatter
	items        []report.Item
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:          "asset-depreciation",
		Short:        "Compute fixed-asset depreciation schedules",
		Long:         "Compute straight-line and double-declining balance depreciation schedules for the assets in a YAML configuration.",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", constants.DefaultConfigFile,
		"path to configuration file (see "+constants.ExampleConfigFile+")")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&opts.outputFormat, "output-format", "", "output format override: pretty, csv, json, xlsx, pdf")
	flags.StringVar(&opts.envFile, "env-file", constants.DefaultEnvFile, "dotenv file loaded before reading the environment")
	flags.StringVar(&opts.outPath, "out", "", "write output to this file instead of stdout")

	root.AddCommand(newScheduleCmd(opts))
	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version)
			return err
		},
	}
}

// load reads the environment and configuration, builds the logger and
// resolves the output settings shared by the schedule and report commands.
func load(opts *cliOptions) (*run, error) {
	if err := config.LoadEnv(opts.envFile); err != nil {
		return nil, err
	}

	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}

	logger, err := logging.New(conf.Logging, opts.logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// CLI override takes precedence over config.
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return nil, err
	}

	formatter, err := format.NewFormatter(conf.Output.Locale, conf.Output.Currency)
	if err != nil {
		return nil, err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.load"),
		)
	}

	items, err := conf.Items()
	if err != nil {
		return nil, fmt.Errorf("failed to parse assets: %w", err)
	}

	return &run{
		conf:         conf,
		logger:       logger,
		outputFormat: outputFormat,
		formatter:    formatter,
		items:        items,
	}, nil
}

// withOutput calls write with the configured destination, creating the
// --out file when one is given.
func withOutput(cmd *cobra.Command, opts *cliOptions, write func(io.Writer) error) error {
	if opts.outPath == "" {
		return write(cmd.OutOrStdout())
	}

	file, err := os.Create(opts.outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func reportYear(flagYear, configuredYear int, now time.Time) int {
	if flagYear != 0 {
		return flagYear
	}
	if configuredYear != 0 {
		return configuredYear
	}
	return now.Year()
}
