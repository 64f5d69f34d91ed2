package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/playabrava/gestor-camping/internal/infrastructure/postgres"
	"github.com/playabrava/gestor-camping/pkg/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones de PostgreSQL y muestra la versión",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}
	v, err := postgres.MigrationVersion(ctx, pool)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "migraciones aplicadas, versión %d\n", v)
	return nil
}
