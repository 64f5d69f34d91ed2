package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playabrava/gestor-camping/internal/application/reporting"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

type fixedSource []*entity.Incident

func (f fixedSource) List() []*entity.Incident { return f }

func TestReportJob_EscribeCSV(t *testing.T) {
	dir := t.TempDir()
	src := fixedSource{{ID: "INC-2026-001", Title: "Farola", Status: entity.StatusPendiente}}
	job := NewReportJob(src, reporting.NewExporter(nil, time.UTC, zerolog.Nop()), dir, false, zerolog.Nop())
	job.now = func() time.Time { return time.Date(2026, 10, 19, 7, 0, 0, 0, time.UTC) }

	paths, err := job.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "reporte_camping_2026-10-19.csv")}, paths)

	body, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), `"INC-2026-001","Farola"`)
}

func TestReportJob_PDFSinGenerador(t *testing.T) {
	job := NewReportJob(fixedSource{}, reporting.NewExporter(nil, time.UTC, zerolog.Nop()), t.TempDir(), true, zerolog.Nop())
	paths, err := job.Run(context.Background())
	assert.Error(t, err)
	assert.Len(t, paths, 1, "el CSV se escribe aunque falle el PDF")
}

func TestScheduler_ExpresionInvalida(t *testing.T) {
	s := New(time.UTC, zerolog.Nop())
	job := NewReportJob(fixedSource{}, reporting.NewExporter(nil, nil, zerolog.Nop()), t.TempDir(), false, zerolog.Nop())

	assert.Error(t, s.AddReportJob("cada día", job))
	require.NoError(t, s.AddReportJob("0 7 * * *", job))
	assert.Equal(t, 1, s.Entries())

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
