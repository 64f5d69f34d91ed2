// Package scheduler ejecuta la exportación periódica del informe de incidencias.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/playabrava/gestor-camping/internal/application/reporting"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// Snapshotter fuente de la instantánea a exportar (incidents.Store).
type Snapshotter interface {
	List() []*entity.Incident
}

// ReportJob escribe el CSV (y el PDF si hay generador) del día en Dir.
type ReportJob struct {
	source   Snapshotter
	exporter *reporting.Exporter
	dir      string
	withPDF  bool
	log      zerolog.Logger
	now      func() time.Time
}

// NewReportJob withPDF añade el informe PDF a cada ejecución.
func NewReportJob(source Snapshotter, exporter *reporting.Exporter, dir string, withPDF bool, log zerolog.Logger) *ReportJob {
	return &ReportJob{
		source:   source,
		exporter: exporter,
		dir:      dir,
		withPDF:  withPDF,
		log:      log.With().Str("component", "scheduler").Logger(),
		now:      time.Now,
	}
}

// Run una ejecución; devuelve las rutas escritas.
func (j *ReportJob) Run(ctx context.Context) ([]string, error) {
	list := j.source.List()
	now := j.now()

	csvPath, err := j.exporter.WriteCSV(j.dir, list, now, reporting.EncodingUTF8)
	if err != nil {
		return nil, err
	}
	paths := []string{csvPath}
	if j.withPDF {
		pdfPath, err := j.exporter.WritePDF(ctx, j.dir, list, now)
		if err != nil {
			return paths, err
		}
		paths = append(paths, pdfPath)
	}
	return paths, nil
}

// Scheduler envuelve cron con la zona horaria del informe.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New crea el planificador en loc (las expresiones se evalúan en esa zona).
func New(loc *time.Location, log zerolog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// AddReportJob programa job con una expresión cron de 5 campos (ej: "0 7 * * *").
func (s *Scheduler) AddReportJob(expr string, job *ReportJob) error {
	_, err := s.cron.AddFunc(expr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		paths, err := job.Run(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("exportación programada fallida")
			return
		}
		s.log.Info().Strs("files", paths).Msg("exportación programada")
	})
	if err != nil {
		return fmt.Errorf("scheduler: expresión %q: %w", expr, err)
	}
	return nil
}

// Start arranca en segundo plano.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop espera a que terminen los trabajos en curso o a que venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Entries número de trabajos programados.
func (s *Scheduler) Entries() int { return len(s.cron.Entries()) }
