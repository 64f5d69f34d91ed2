// Package reporting deriva las métricas del tablero y los informes (CSV/PDF)
// a partir de una instantánea de incidencias. Todo es puro y se recalcula en
// cada lectura.
package reporting

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Counts tarjetas del tablero: pendientes, alta prioridad (ALTA+CRITICA), finalizadas y total.
func Counts(list []*entity.Incident) dto.CountsDTO {
	c := dto.CountsDTO{Total: len(list)}
	for _, inc := range list {
		switch inc.Status {
		case entity.StatusPendiente:
			c.Pending++
		case entity.StatusFinalizada:
			c.Resolved++
		}
		if inc.Priority.IsHigh() {
			c.HighPriority++
		}
	}
	return c
}

// ByCategory una entrada por categoría, de mayor a menor número de incidencias.
// Los empates conservan el orden del enum.
func ByCategory(list []*entity.Incident) []dto.CategoryStatDTO {
	counts := make(map[entity.Category]int, len(entity.Categories))
	for _, inc := range list {
		counts[inc.Category]++
	}

	total := decimal.NewFromInt(int64(len(list)))
	out := make([]dto.CategoryStatDTO, 0, len(entity.Categories))
	for _, c := range entity.Categories {
		pct := decimal.Zero
		if len(list) > 0 {
			pct = decimal.NewFromInt(int64(counts[c])).Mul(hundred).DivRound(total, 2)
		}
		out = append(out, dto.CategoryStatDTO{
			Category:   string(c),
			Label:      c.Label(),
			Count:      counts[c],
			Percentage: pct,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ByPriority conteo por prioridad en orden BAJA, MEDIA, ALTA, CRITICA.
func ByPriority(list []*entity.Incident) []dto.EnumCountDTO {
	counts := make(map[entity.Priority]int, len(entity.Priorities))
	for _, inc := range list {
		counts[inc.Priority]++
	}
	out := make([]dto.EnumCountDTO, 0, len(entity.Priorities))
	for _, p := range entity.Priorities {
		out = append(out, dto.EnumCountDTO{Value: string(p), Label: p.Label(), Count: counts[p]})
	}
	return out
}

// ByStatus conteo por estado en orden PENDIENTE, EN_PROCESO, FINALIZADA.
func ByStatus(list []*entity.Incident) []dto.EnumCountDTO {
	counts := make(map[entity.Status]int, len(entity.Statuses))
	for _, inc := range list {
		counts[inc.Status]++
	}
	out := make([]dto.EnumCountDTO, 0, len(entity.Statuses))
	for _, s := range entity.Statuses {
		out = append(out, dto.EnumCountDTO{Value: string(s), Label: s.Label(), Count: counts[s]})
	}
	return out
}

// Summary agrupa todas las métricas del panel de estadísticas.
func Summary(list []*entity.Incident, now time.Time) dto.StatsSummaryDTO {
	return dto.StatsSummaryDTO{
		Counts:     Counts(list),
		ByCategory: ByCategory(list),
		ByPriority: ByPriority(list),
		ByStatus:   ByStatus(list),
		DateLabel:  MonthLabel(now),
	}
}

// MonthLabel ej: "octubre de 2026".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s de %d", monthNames[t.Month()-1], t.Year())
}
