package cli

import (
	"github.com/spf13/cobra"

	"github.com/rowlog/rowlog/pkg/config"
	"github.com/rowlog/rowlog/pkg/logger"
	"github.com/rowlog/rowlog/pkg/rowlog"
)

func newAppendCmd() *cobra.Command {
	var (
		schemaDecl string
		rowDecl    string
		filePath   string
		headerStr  string
		destStr    string
		precision  int
	)

	cmd := &cobra.Command{
		Use:   "append",
		Short: "Append one row to a log",
		Long: `Append one typed row to a log.

The schema is declared as name:kind pairs (kinds: int, uint, float, bool,
text, label) and the row as comma-separated values in the same order. Flags
override the corresponding settings from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("file") {
				cfg.Writer.FilePath = filePath
			}
			if cmd.Flags().Changed("header") {
				cfg.Writer.HeaderPolicy = headerStr
			}
			if cmd.Flags().Changed("dest") {
				cfg.Writer.Destination = destStr
			}
			if cmd.Flags().Changed("precision") {
				cfg.Writer.FloatPrecision = precision
			}

			shape, err := parseShape(schemaDecl)
			if err != nil {
				return err
			}
			rec, err := parseRow(shape, rowDecl)
			if err != nil {
				return err
			}

			wcfg, err := cfg.WriterRowlogConfig()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.EnableCallers)
			if err != nil {
				return err
			}

			w, err := rowlog.New(shape, wcfg, log)
			if err != nil {
				return err
			}
			w.SetConsole(cmd.OutOrStdout())
			return w.AddRow(rec)
		},
	}

	cmd.Flags().StringVar(&schemaDecl, "schema", "", "row schema as name:kind,... (required)")
	cmd.Flags().StringVar(&rowDecl, "row", "", "row values, comma-separated (required)")
	cmd.Flags().StringVar(&filePath, "file", "", "target file for the file sink")
	cmd.Flags().StringVar(&headerStr, "header", "once", "header policy: once, always or never")
	cmd.Flags().StringVar(&destStr, "dest", "file", "destination: file, console or both")
	cmd.Flags().IntVar(&precision, "precision", rowlog.DefaultFloatPrecision, "digits after the decimal point for floats")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("row")

	return cmd
}
