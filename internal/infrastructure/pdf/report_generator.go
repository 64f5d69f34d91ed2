// Package pdf genera el informe imprimible de incidencias del camping.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Camping Playa Brava   │  Informe + fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TARJETAS: Pendientes | Alta prioridad | Resueltas | Total  │
//	│  POR CATEGORÍA: nombre, nº, %                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Título | Ubicación | Prioridad | Estado | Fecha │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/application/ports"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

var _ ports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 84, Blue: 166} // azul Playa Brava
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 45}
)

const dateLayout = "02/01/2006 15:04"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	title string
}

// NewMarotoReportGenerator title aparece en la cabecera, ej: "Camping Playa Brava".
func NewMarotoReportGenerator(title string) *MarotoReportGenerator {
	if title == "" {
		title = "Camping Playa Brava"
	}
	return &MarotoReportGenerator{title: title}
}

// GenerateReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, data ports.ReportData) ([]byte, error) {
	loc := data.Location
	if loc == nil {
		loc = time.UTC
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de incidencias", true).
		WithAuthor(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data.GeneratedAt.In(loc), data.Summary.DateLabel))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(countsRow(data.Summary.Counts))
	m.AddRows(sectionTitle("INCIDENCIAS POR CATEGORÍA"))
	m.AddRows(categoryRows(data.Summary.ByCategory)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle(fmt.Sprintf("LISTADO (%d)", len(data.Incidents))))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(data.Incidents, loc)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoReportGenerator) headerRow(now time.Time, period string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Mantenimiento: "+period, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE INCIDENCIAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+now.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func countsRow(c dto.CountsDTO) core.Row {
	card := func(label string, n int, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Style: fontstyle.Bold, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(fmt.Sprintf("%d", n), props.Text{Size: 16, Style: fontstyle.Bold, Color: color, Align: align.Center, Top: 6}),
		)
	}
	return row.New(18).Add(
		card("PENDIENTES", c.Pending, colorPrimary),
		card("ALTA PRIORIDAD", c.HighPriority, colorAlert),
		card("RESUELTAS", c.Resolved, colorPrimary),
		card("TOTAL", c.Total, colorGray),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func categoryRows(stats []dto.CategoryStatDTO) []core.Row {
	out := make([]core.Row, 0, len(stats))
	for _, s := range stats {
		out = append(out, row.New(5).Add(
			col.New(6).Add(text.New(s.Label, props.Text{Size: 8, Left: 2})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", s.Count), props.Text{Size: 8, Align: align.Right})),
			col.New(3).Add(text.New(s.Percentage.StringFixed(1)+"%", props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return out
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 2, align.Left),
		h("Título", 3, align.Left),
		h("Ubicación", 2, align.Left),
		h("Prioridad", 1, align.Center),
		h("Estado", 2, align.Center),
		h("Creada", 2, align.Right),
	)
}

// tableRows una fila por incidencia, en el orden recibido.
func tableRows(list []*entity.Incident, loc *time.Location) []core.Row {
	out := make([]core.Row, 0, len(list))
	for _, inc := range list {
		prio := props.Text{Size: 7.5, Align: align.Center, Top: 1}
		if inc.Priority.IsHigh() {
			prio.Color = colorAlert
			prio.Style = fontstyle.Bold
		}
		out = append(out, row.New(6).Add(
			col.New(2).Add(text.New(inc.ID, props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(3).Add(text.New(truncate(inc.Title, 40), props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(2).Add(text.New(truncate(inc.Location, 25), props.Text{Size: 7.5, Top: 1, Left: 1})),
			col.New(1).Add(text.New(inc.Priority.Label(), prio)),
			col.New(2).Add(text.New(inc.Status.Label(), props.Text{Size: 7.5, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(inc.CreatedAt.In(loc).Format(dateLayout), props.Text{
				Size: 7.5, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
			})),
		))
	}
	return out
}

// ── helpers ───────────────────────────────────────────────────────────────────

// truncate corta a n runas añadiendo "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
