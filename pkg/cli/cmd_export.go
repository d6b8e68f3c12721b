package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rowlog/rowlog/pkg/config"
	"github.com/rowlog/rowlog/pkg/export"
	"github.com/rowlog/rowlog/pkg/logger"
)

func newExportCmd() *cobra.Command {
	var sheetName string

	cmd := &cobra.Command{
		Use:   "export SRC DST",
		Short: "Export a CSV log to an XLSX workbook",
		Long:  "Export a finished CSV log to an XLSX workbook, one worksheet row per log line.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("sheet") {
				sheetName = cfg.Export.SheetName
			}

			log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.EnableCallers)
			if err != nil {
				return err
			}

			meta, err := export.ToXLSX(args[0], args[1], sheetName, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s (%d bytes, sha256 %s)\n",
				meta.RowCount, meta.Path, meta.Size, meta.Checksum)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "Sheet1", "worksheet name")

	return cmd
}
