package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/playabrava/gestor-camping/internal/application/reporting"
	infrapdf "github.com/playabrava/gestor-camping/internal/infrastructure/pdf"
)

var (
	exportFormat   string
	exportOut      string
	exportEncoding string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporta el informe de incidencias (csv o pdf) a un directorio",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "csv o pdf")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "directorio de salida (por defecto REPORT_DIR)")
	exportCmd.Flags().StringVar(&exportEncoding, "encoding", "utf-8", "codificación del CSV: utf-8 o windows-1252")
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	enc, ok := reporting.ParseEncoding(exportEncoding)
	if !ok {
		return fmt.Errorf("encoding no soportado: %s", exportEncoding)
	}

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	store, err := e.incidentStore(ctx)
	if err != nil {
		return err
	}
	dir := exportOut
	if dir == "" {
		dir = e.cfg.Report.Dir
	}
	exporter := reporting.NewExporter(infrapdf.NewMarotoReportGenerator(""), e.cfg.App.Location(), e.log.Zerolog())

	var path string
	switch exportFormat {
	case "csv":
		path, err = exporter.WriteCSV(dir, store.List(), time.Now(), enc)
	case "pdf":
		path, err = exporter.WritePDF(ctx, dir, store.List(), time.Now())
	default:
		return fmt.Errorf("formato no soportado: %s", exportFormat)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
