package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/playabrava/gestor-camping/internal/domain"
	"github.com/playabrava/gestor-camping/internal/infrastructure/fixtures"
)

var seedReplace bool

var seedCmd = &cobra.Command{
	Use:   "seed <fixtures.yaml>",
	Short: "Carga usuarios e incidencias de un fichero YAML",
	Long: `Registra los usuarios del fichero (los emails ya existentes se omiten) y añade
las incidencias cuyo ID no exista. Con --replace las incidencias guardadas se sustituyen.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedReplace, "replace", false, "sustituir las incidencias existentes")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	f, err := fixtures.Load(args[0])
	if err != nil {
		return err
	}
	seeded, err := f.BuildIncidents(time.Now())
	if err != nil {
		return err
	}

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	users := 0
	for _, in := range f.UserRequests() {
		_, err := e.registry.Register(ctx, in)
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			e.log.Info().Str("email", in.Email).Msg("usuario ya registrado, se omite")
			continue
		case domain.IsPersistWarning(err):
			e.log.Warn().Err(err).Str("email", in.Email).Msg("usuario registrado sin guardar")
		case err != nil:
			return fmt.Errorf("usuario %s: %w", in.Email, err)
		}
		users++
	}

	existing, err := e.store.LoadIncidents(ctx)
	if err != nil {
		return fmt.Errorf("cargar incidencias: %w", err)
	}
	merged, added := fixtures.Merge(existing, seeded, seedReplace)
	if err := e.store.SaveIncidents(ctx, merged); err != nil {
		return fmt.Errorf("guardar incidencias: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "usuarios nuevos: %d, incidencias añadidas: %d, total: %d\n", users, added, len(merged))
	return nil
}
