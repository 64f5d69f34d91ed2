// campctl herramienta de operación del gestor de incidencias: carga de datos
// de ejemplo, exportación de informes, migraciones y gestión de roles.
//
// Usa la misma configuración que la API (.env / variables de entorno).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/playabrava/gestor-camping/internal/application/access"
	"github.com/playabrava/gestor-camping/internal/application/incidents"
	"github.com/playabrava/gestor-camping/internal/application/registry"
	"github.com/playabrava/gestor-camping/internal/domain/repository"
	"github.com/playabrava/gestor-camping/internal/infrastructure/storage"
	"github.com/playabrava/gestor-camping/pkg/config"
	"github.com/playabrava/gestor-camping/pkg/logger"
)

var driverFlag string

var rootCmd = &cobra.Command{
	Use:           "campctl",
	Short:         "Operación del gestor de incidencias Playa Brava",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "almacenamiento: memory, redis o postgres (por defecto STORAGE_DRIVER)")
	rootCmd.AddCommand(seedCmd, exportCmd, migrateCmd, usersCmd, statsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// env dependencias compartidas por los subcomandos.
type env struct {
	cfg      *config.Config
	log      *logger.Logger
	store    repository.PersistenceAdapter
	registry *registry.Registry
	policy   *access.Policy
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if driverFlag != "" {
		cfg.Storage.Driver = driverFlag
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "campctl", Output: os.Stderr})

	store, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		return nil, err
	}
	policy, err := access.NewPolicy()
	if err != nil {
		store.Close()
		return nil, err
	}
	reg := registry.New(store, policy, log.Zerolog(), registry.Options{SuperAdminPassword: cfg.Auth.SuperAdminPassword})
	if err := reg.Load(ctx); err != nil {
		store.Close()
		return nil, err
	}
	return &env{cfg: cfg, log: log, store: store, registry: reg, policy: policy}, nil
}

// incidentStore almacén de incidencias cargado desde el adaptador.
func (e *env) incidentStore(ctx context.Context) (*incidents.Store, error) {
	s := incidents.NewStore(e.store, e.policy, e.log.Zerolog())
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn().Err(err).Msg("cerrar almacenamiento")
	}
}
