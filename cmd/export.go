package cmd

import (
	"fmt"

	"github.com/theirongolddev/stratsim/internal/engine"
	"github.com/theirongolddev/stratsim/internal/export"
	"github.com/theirongolddev/stratsim/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagExportFormats []string
	flagExportDir     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run one simulation and write CSV, XLSX or PDF reports",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringSliceVarP(&flagExportFormats, "format", "f", []string{"csv"}, "Formats to write: csv, xlsx, pdf")
	exportCmd.Flags().StringVarP(&flagExportDir, "out", "o", "", "Output directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, p, err := loadParams(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	// Resolve every format before simulating so a typo writes nothing.
	formats := make([]export.Format, 0, len(flagExportFormats))
	for _, name := range flagExportFormats {
		f, err := export.Lookup(name)
		if err != nil {
			return err
		}
		formats = append(formats, f)
	}

	dir := cfg.Export.Dir
	if flagExportDir != "" {
		dir = flagExportDir
	}

	rep, err := pipeline.Run(p, engine.SourceFromSeed(cfg.General.Seed))
	if err != nil {
		return err
	}
	logger.Debug("simulated", "run", rep.Result.RunID, "mode", p.Mode)

	opts := export.Options{LinesPerPage: cfg.Export.LinesPerPage}
	if maxLines := export.MaxLinesPerPage(); opts.LinesPerPage > maxLines {
		logger.Warn("lines_per_page exceeds the page; clamping", "configured", opts.LinesPerPage, "max", maxLines)
	}
	for _, f := range formats {
		path, err := export.WriteFile(dir, f, rep, opts)
		if err != nil {
			return err
		}
		logger.Info("exported", "format", f.Name, "path", path)
		fmt.Printf("  Wrote %s\n", path)
	}
	return nil
}
