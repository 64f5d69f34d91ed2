package reporting

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// CSVHeader primera fila del informe, literal y sin comillas.
const CSVHeader = "ID,Título,Descripción,Ubicación,Categoría,Prioridad,Estado,Reportado Por,Fecha Creación,Fecha Actualización"

// DateTimeLayout fecha + hora en el orden local español.
const DateTimeLayout = "02/01/2006 15:04:05"

// ExportCSV informe de incidencias en el orden recibido. Cada campo de datos va
// entre comillas dobles con las comillas internas duplicadas; saltos de línea LF.
// Función pura: la misma instantánea produce siempre los mismos bytes.
func ExportCSV(list []*entity.Incident, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	var b strings.Builder
	b.WriteString(CSVHeader)
	for _, inc := range list {
		b.WriteByte('\n')
		fields := []string{
			inc.ID,
			inc.Title,
			inc.Description,
			inc.Location,
			inc.Category.Label(),
			inc.Priority.Label(),
			inc.Status.Label(),
			inc.Reporter,
			inc.CreatedAt.In(loc).Format(DateTimeLayout),
			inc.UpdatedAt.In(loc).Format(DateTimeLayout),
		}
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(f))
		}
	}
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// CSVFilename reporte_camping_<YYYY-MM-DD>.csv
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("reporte_camping_%s.csv", now.Format("2006-01-02"))
}

// PDFFilename reporte_camping_<YYYY-MM-DD>.pdf
func PDFFilename(now time.Time) string {
	return fmt.Sprintf("reporte_camping_%s.pdf", now.Format("2006-01-02"))
}

// ToWindows1252 transcodifica para Excel en Windows; los caracteres sin
// equivalente se sustituyen.
func ToWindows1252(s string) ([]byte, error) {
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("reporting: windows-1252: %w", err)
	}
	return out, nil
}
