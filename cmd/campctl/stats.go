package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/playabrava/gestor-camping/internal/application/reporting"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
	"github.com/playabrava/gestor-camping/internal/infrastructure/postgres"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Resumen de incidencias; con postgres añade tiempos de resolución por categoría",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 30, "ventana en días para los tiempos de resolución")
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	store, err := e.incidentStore(ctx)
	if err != nil {
		return err
	}
	now := time.Now().In(e.cfg.App.Location())
	sum := reporting.Summary(store.List(), now)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d incidencias, %d pendientes, %d prioridad alta, %d resueltas\n",
		sum.DateLabel, sum.Counts.Total, sum.Counts.Pending, sum.Counts.HighPriority, sum.Counts.Resolved)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORÍA\tINCIDENCIAS\t%")
	for _, c := range sum.ByCategory {
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.Label, c.Count, c.Percentage.StringFixed(2))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	pg, ok := e.store.(*postgres.Store)
	if !ok {
		return nil
	}
	rows, err := postgres.NewAnalyticsRepository(pg.Pool()).ResolutionByCategory(ctx, now.AddDate(0, 0, -statsDays), now)
	if err != nil {
		return fmt.Errorf("tiempos de resolución: %w", err)
	}
	w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ÚLTIMOS %d DÍAS\tTOTAL\tPENDIENTES\tRESUELTAS\tHORAS MEDIAS\n", statsDays)
	for _, r := range rows {
		label := r.Category
		if c, ok := entity.ParseCategory(r.Category); ok {
			label = c.Label()
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", label, r.Total, r.Pending, r.Resolved, r.AvgHoursToClose.StringFixed(1))
	}
	return w.Flush()
}
