package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"colcompare/adapters/console"
	"colcompare/adapters/excel"
	"colcompare/app"
	"colcompare/domain/compare"
	"colcompare/internal"
	"colcompare/internal/config"
	"colcompare/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

// errReported marks failures whose message has already been printed
var errReported = stderrors.New("comparison failed")

func main() {
	// A missing .env is fine; the environment alone is enough
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		if !stderrors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "colcompare",
		Short:         "Find rows whose key column value exists in only one of two spreadsheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newCompareCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

type compareFlags struct {
	column       string
	output       string
	sheet1       string
	sheet2       string
	exactColumns bool
	stripStyles  bool
	keyLabel     string
	format       string
	configFile   string
}

func newCompareCmd() *cobra.Command {
	var flags compareFlags

	cmd := &cobra.Command{
		Use:   "compare [file1] [file2]",
		Short: "Compare one column of two spreadsheets",
		Long: `Compare the values of one key column across two spreadsheet files and
report the rows whose key appears in only one of them.

Column names match regardless of case, and spaces match underscores, so
"Promotion Code" finds a column named promotion_code. Use --exact-columns
to require an exact match.

Without --output the mismatches are printed. With --output they are written
to a new file whose type follows the extension: .xlsx, .xlsm, .csv, .md, .html.
No file is written when there are no mismatches.

Settings can also come from the environment (LOG_LEVEL, COMPARE_SHEET1,
COMPARE_SHEET2, COMPARE_EXACT_COLUMNS, COMPARE_STRIP_STYLES, COMPARE_KEY_LABEL,
COMPARE_TEMP_DIR, COMPARE_SOURCE_LABEL1, COMPARE_SOURCE_LABEL2, COMPARE_FORMAT),
a .env file, or a YAML file passed with --config. Flags win over all of them.

Example: colcompare compare file1.xlsx file2.xlsx --column "Promotion Code" -o out/mismatches.xlsx`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.column, "column", "c", "", "Key column to compare")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Write mismatches to this file instead of printing them")
	cmd.Flags().StringVar(&flags.sheet1, "sheet1", "", "Sheet of file1 (name or 0-based index; default first sheet)")
	cmd.Flags().StringVar(&flags.sheet2, "sheet2", "", "Sheet of file2 (name or 0-based index; default first sheet)")
	cmd.Flags().BoolVar(&flags.exactColumns, "exact-columns", false, "Match the column name exactly")
	cmd.Flags().BoolVar(&flags.stripStyles, "strip-styles", false, "Load from copies of the inputs with cell styles reset")
	cmd.Flags().StringVar(&flags.keyLabel, "key-label", "", "Header for the key column in the report (default: --column)")
	cmd.Flags().StringVar(&flags.format, "format", "", "Printed report format: text|markdown")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "YAML file with compare settings")
	_ = cmd.MarkFlagRequired("column")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "colcompare %s\n", version)
		},
	}
}

func runCompare(cmd *cobra.Command, file1, file2 string, flags compareFlags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel), cmd.ErrOrStderr())
	defer logger.Sync()

	options := app.DefaultCompareOptions()
	options.StripStyles = cfg.Compare.StripStyles
	options.KeyLabel = cfg.Compare.KeyLabel
	options.Labels = compare.Labels{Left: cfg.Compare.SourceLabel1, Right: cfg.Compare.SourceLabel2}
	if cfg.Compare.ExactColumns {
		options.MatchMode = compare.ColumnMatchExact
	}

	excelConfig := excel.DefaultExcelConfig()
	excelConfig.TempDir = cfg.Compare.TempDir

	service := app.NewComparatorService(
		excel.NewDataReader(logger.Named("reader")),
		excel.NewDataWriter(excelConfig, logger.Named("writer")),
		excel.NewStyleSanitizer(excelConfig.TempDir, logger.Named("sanitizer")),
		options,
		logger.Named("compare"),
	)

	out := cmd.OutOrStdout()
	report, err := service.Compare(cmd.Context(), app.CompareRequest{
		File1:  file1,
		File2:  file2,
		Column: flags.column,
		Output: flags.output,
		Sheet1: cfg.Compare.Sheet1,
		Sheet2: cfg.Compare.Sheet2,
	})
	if err != nil {
		logger.Debug("compare failed: %v", err)
		fmt.Fprintln(out, app.UserMessage(err, flags.column))
		return errReported
	}

	if report.OutputPath != "" {
		_, err := fmt.Fprintln(out, console.OutputWrittenMessage(report))
		return err
	}
	return printerFor(cfg.Compare.Format).Print(out, report)
}

// loadConfig layers environment, optional YAML file, then explicitly set flags
func loadConfig(cmd *cobra.Command, flags compareFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flags.configFile != "" {
		if cfg, err = config.LoadFile(cfg, flags.configFile); err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("sheet1") {
		cfg.Compare.Sheet1 = flags.sheet1
	}
	if changed("sheet2") {
		cfg.Compare.Sheet2 = flags.sheet2
	}
	if changed("exact-columns") {
		cfg.Compare.ExactColumns = flags.exactColumns
	}
	if changed("strip-styles") {
		cfg.Compare.StripStyles = flags.stripStyles
	}
	if changed("key-label") {
		cfg.Compare.KeyLabel = flags.keyLabel
	}
	if changed("format") {
		cfg.Compare.Format = strings.ToLower(flags.format)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printerFor(format string) ports.ReportPrinterPort {
	if format == config.FormatMarkdown {
		return console.MarkdownPrinter{}
	}
	return console.TextPrinter{}
}
