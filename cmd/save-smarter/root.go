package main

import (
	"fmt"
	"io"
	"time"

	"github.com/iwvelando/save-smarter/internal/config"
	"github.com/iwvelando/save-smarter/internal/projection"
	"github.com/iwvelando/save-smarter/pkg/constants"
	"github.com/iwvelando/save-smarter/pkg/datetime"
	"github.com/iwvelando/save-smarter/pkg/output"
	"github.com/iwvelando/save-smarter/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// nowFunc is the clock used for reference dates; tests pin it.
var nowFunc = time.Now

type rootOptions struct {
	configPath   string
	outputFormat string
	logLevel     string
	today        string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "save-smarter",
		Short: "Savings goal calculator",
		Long: "Project whether savings goals are reached through compound interest alone " +
			"and, when they are not, the deposit needed every day, week or month.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProjections(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	cmd.Flags().StringVarP(&opts.outputFormat, "output-format", "o", "", "type of output override: pretty, csv")
	cmd.Flags().StringVar(&opts.today, "today", "", "reference date (YYYY-MM-DD) overriding the configured one")

	cmd.AddCommand(newServeCmd(opts))

	return cmd
}

func runProjections(cmd *cobra.Command, opts *rootOptions) error {
	conf, err := config.LoadConfiguration(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s (start from %s): %w",
			opts.configPath, constants.ExampleConfigFile, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	if opts.today != "" {
		if _, err := datetime.ParseDate(opts.today); err != nil {
			return fmt.Errorf("--today: %w", err)
		}
		conf.Common.ReferenceDate = opts.today
	}

	today, err := conf.ReferenceDate(nowFunc())
	if err != nil {
		return err
	}
	for _, warning := range conf.ValidateConfiguration(today) {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := projection.GetProjectionsWithFixedTime(cmd.Context(), logger, *conf, nowFunc())
	if err != nil {
		logger.Error("failed to project goals",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return err
	}

	return writeResults(cmd.OutOrStdout(), outputFormat, results)
}

func writeResults(w io.Writer, outputFormat string, results []projection.Projection) error {
	if outputFormat != constants.OutputFormatCSV {
		output.WritePretty(w, results)
		return nil
	}

	csvData, err := output.CsvString(results)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, csvData)
	return err
}
