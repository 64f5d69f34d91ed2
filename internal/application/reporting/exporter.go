package reporting

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/playabrava/gestor-camping/internal/application/ports"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// Encoding codificación del CSV exportado.
type Encoding string

const (
	EncodingUTF8        Encoding = "utf-8"
	EncodingWindows1252 Encoding = "windows-1252"
)

// ParseEncoding acepta "", "utf-8", "utf8", "windows-1252", "cp1252".
func ParseEncoding(raw string) (Encoding, bool) {
	switch raw {
	case "", "utf-8", "utf8", "UTF-8":
		return EncodingUTF8, true
	case "windows-1252", "cp1252", "WINDOWS-1252":
		return EncodingWindows1252, true
	}
	return "", false
}

// ErrPDFDisabled el exportador se construyó sin generador PDF.
var ErrPDFDisabled = errors.New("reporting: generador PDF no configurado")

// Exporter produce los ficheros de informe (CSV y PDF) a partir de una instantánea.
type Exporter struct {
	pdf ports.ReportPDFGenerator
	loc *time.Location
	log zerolog.Logger
}

// NewExporter pdf puede ser nil si no se necesitan informes PDF.
func NewExporter(pdf ports.ReportPDFGenerator, loc *time.Location, log zerolog.Logger) *Exporter {
	if loc == nil {
		loc = time.UTC
	}
	return &Exporter{pdf: pdf, loc: loc, log: log.With().Str("component", "reporting").Logger()}
}

// Location zona horaria con la que se formatean las fechas.
func (e *Exporter) Location() *time.Location { return e.loc }

// CSV cuerpo del informe en la codificación pedida.
func (e *Exporter) CSV(list []*entity.Incident, enc Encoding) ([]byte, error) {
	text := ExportCSV(list, e.loc)
	if enc == EncodingWindows1252 {
		return ToWindows1252(text)
	}
	return []byte(text), nil
}

// PDF informe imprimible con métricas y listado.
func (e *Exporter) PDF(ctx context.Context, list []*entity.Incident, now time.Time) ([]byte, error) {
	if e.pdf == nil {
		return nil, ErrPDFDisabled
	}
	now = now.In(e.loc)
	return e.pdf.GenerateReportPDF(ctx, ports.ReportData{
		GeneratedAt: now,
		Location:    e.loc,
		Summary:     Summary(list, now),
		Incidents:   list,
	})
}

// WriteCSV escribe reporte_camping_<fecha>.csv en dir y devuelve la ruta.
func (e *Exporter) WriteCSV(dir string, list []*entity.Incident, now time.Time, enc Encoding) (string, error) {
	body, err := e.CSV(list, enc)
	if err != nil {
		return "", err
	}
	return e.write(dir, CSVFilename(now.In(e.loc)), body)
}

// WritePDF escribe reporte_camping_<fecha>.pdf en dir y devuelve la ruta.
func (e *Exporter) WritePDF(ctx context.Context, dir string, list []*entity.Incident, now time.Time) (string, error) {
	body, err := e.PDF(ctx, list, now)
	if err != nil {
		return "", err
	}
	return e.write(dir, PDFFilename(now.In(e.loc)), body)
}

func (e *Exporter) write(dir, name string, body []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("reporting: crear directorio %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("reporting: escribir %s: %w", path, err)
	}
	e.log.Info().Str("path", path).Int("bytes", len(body)).Msg("informe generado")
	return path, nil
}
