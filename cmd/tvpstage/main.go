package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	gojson "github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/NxtCent1/tvpstage/pkg/config"
	"github.com/NxtCent1/tvpstage/pkg/loader"
	"github.com/NxtCent1/tvpstage/pkg/logger"
	"github.com/NxtCent1/tvpstage/pkg/sqltype"
	"github.com/NxtCent1/tvpstage/pkg/tvp"
)

var version = "0.1.0"

// stageSummary is the JSON report printed after a successful stage run. The
// column descriptors carry the final, fully widened metadata.
type stageSummary struct {
	Table       string                 `json:"table"`
	Columns     []tvp.ColumnDescriptor `json:"columns"`
	RowCount    int                    `json:"row_count"`
	RowsSkipped int                    `json:"rows_skipped"`
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "tvpstage",
		Short: "tvpstage - stage tabular data for SQL Server table-valued parameters",
		Long: `tvpstage builds a strongly-typed in-memory table from delimited input,
coercing every cell to its column's SQL type and widening column metadata to
cover the widest value seen. The resulting metadata is what a TDS encoder
needs to size its wire buffers.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tvpstage v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "List supported SQL type categories",
		Run: func(cmd *cobra.Command, args []string) {
			for _, cat := range sqltype.All() {
				fmt.Printf("  - %s\n", cat)
			}
		},
	})

	var configFile, inputFile, logLevel string
	stageCmd := &cobra.Command{
		Use:   "stage",
		Short: "Stage a delimited file into a TVP and report its metadata",
		Long: `Stage reads a delimited file, coerces every row against the column
declarations in the config file, and prints a JSON summary with the final
widened column metadata and row count.

Example:
  tvpstage stage --config table.yaml --input rows.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(configFile, inputFile, logLevel)
		},
	}
	stageCmd.Flags().StringVarP(&configFile, "config", "c", "", "staging config file (required)")
	stageCmd.Flags().StringVarP(&inputFile, "input", "i", "", "delimited input file (required)")
	stageCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	_ = stageCmd.MarkFlagRequired("config")
	_ = stageCmd.MarkFlagRequired("input")
	root.AddCommand(stageCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runStage(configFile, inputFile, logLevel string) error {
	var cfg config.StagingConfig
	cfg.Loader = config.DefaultLoaderConfig()
	if err := config.Load(configFile, &cfg); err != nil {
		return err
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = logLevel
	}
	if cfg.Logging.Encoding == "" {
		cfg.Logging.Encoding = "console"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Encoding,
	}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	log := logger.With(zap.String("table", cfg.Table.Name))

	table, err := loader.BuildTable(cfg.Table)
	if err != nil {
		return err
	}

	in, err := os.Open(inputFile) //nolint:gosec // G304: path comes from the operator
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	log.Info("staging input",
		zap.String("input", inputFile),
		zap.Int("columns", table.ColumnCount()))

	result, err := loader.NewCSVLoader(cfg.Loader, log).Load(context.Background(), in, table)
	if err != nil {
		return err
	}

	summary := stageSummary{
		Table:       table.Name(),
		Columns:     table.ColumnMetadata(),
		RowCount:    table.RowCount(),
		RowsSkipped: result.RowsSkipped,
	}
	out, err := gojson.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
