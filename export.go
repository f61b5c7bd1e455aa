package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sadopc/hashira/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export bonds and focus history to CSV, JSON or YAML",
	Example: `  hashira export --format csv
  hashira export --format json --out focus.json
  hashira export -f yaml`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "Export format: csv, json or yaml")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default hashira-export-<date>.<format> in the current directory)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if !slices.Contains(export.Formats, exportFormat) {
		return fmt.Errorf("unknown format %q (want one of %s)", exportFormat, strings.Join(export.Formats, ", "))
	}

	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	now := time.Now()
	data, err := export.Load(rt.store, now.Format("2006-01-02"))
	if err != nil {
		return err
	}

	path := exportOut
	if path == "" {
		path = export.Filename(exportFormat, now)
	}
	if err := export.Write(exportFormat, data, path); err != nil {
		return err
	}

	rt.logger.Info().Str("path", path).Str("format", exportFormat).Int("tasks", len(data.Tasks)).Int("sessions", len(data.History)).Msg("exported")
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bonds and %d sessions to %s\n", len(data.Tasks), len(data.History), path)
	return nil
}

