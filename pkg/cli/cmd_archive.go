package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rowlog/rowlog/pkg/archive"
	"github.com/rowlog/rowlog/pkg/config"
	"github.com/rowlog/rowlog/pkg/logger"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive PATH",
		Short: "Upload a finished log to object storage",
		Long: `Upload a finished log file (or its XLSX export) to Alibaba Cloud OSS.

Endpoint, bucket and credentials come from the archive section of the config
file or from the OSS_* environment variables.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.EnableCallers)
			if err != nil {
				return err
			}

			uploader, err := archive.NewUploader(&cfg.Archive, log)
			if err != nil {
				return err
			}

			result, err := uploader.Upload(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "archived %s as %s\n%s\n", args[0], result.ObjectKey, result.SignedURL)
			return nil
		},
	}

	return cmd
}
