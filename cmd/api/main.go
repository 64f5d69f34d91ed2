// @title        Gestor de incidencias Playa Brava
// @version      1.0
// @description  API de incidencias de mantenimiento del camping: alta, triaje, comentarios, estadísticas e informes.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in           header
// @name         Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/playabrava/gestor-camping/docs"
	"github.com/playabrava/gestor-camping/internal/application/access"
	"github.com/playabrava/gestor-camping/internal/application/auth"
	"github.com/playabrava/gestor-camping/internal/application/incidents"
	"github.com/playabrava/gestor-camping/internal/application/registry"
	"github.com/playabrava/gestor-camping/internal/application/reporting"
	"github.com/playabrava/gestor-camping/internal/application/usecase"
	infraai "github.com/playabrava/gestor-camping/internal/infrastructure/ai"
	infrapdf "github.com/playabrava/gestor-camping/internal/infrastructure/pdf"
	"github.com/playabrava/gestor-camping/internal/infrastructure/scheduler"
	"github.com/playabrava/gestor-camping/internal/infrastructure/storage"
	httpRouter "github.com/playabrava/gestor-camping/internal/interfaces/http"
	"github.com/playabrava/gestor-camping/pkg/config"
	"github.com/playabrava/gestor-camping/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Str("ai", cfg.AI.Provider).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	policy, err := access.NewPolicy()
	if err != nil {
		log.Fatal().Err(err).Msg("política de acceso")
	}

	// Sin registro de usuarios no se puede autenticar a nadie: error fatal.
	reg := registry.New(store, policy, log.Zerolog(), registry.Options{SuperAdminPassword: cfg.Auth.SuperAdminPassword})
	if err := reg.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar registro de usuarios")
	}

	incidentStore := incidents.NewStore(store, policy, log.Zerolog())
	if err := incidentStore.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar incidencias")
	}

	suggestions, err := infraai.New(ctx, cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de IA")
	}
	aiUC := usecase.NewAIUseCase(suggestions, incidentStore, log.Zerolog())

	authUC := auth.NewAuthUseCase(reg, store, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Zerolog())

	loc := cfg.App.Location()
	exporter := reporting.NewExporter(infrapdf.NewMarotoReportGenerator(""), loc, log.Zerolog())

	var cronSched *scheduler.Scheduler
	if cfg.Report.Cron != "" {
		cronSched = scheduler.New(loc, log.Zerolog())
		job := scheduler.NewReportJob(incidentStore, exporter, cfg.Report.Dir, true, log.Zerolog())
		if err := cronSched.AddReportJob(cfg.Report.Cron, job); err != nil {
			log.Fatal().Err(err).Str("cron", cfg.Report.Cron).Msg("programar informe")
		}
		cronSched.Start()
		log.Info().Str("cron", cfg.Report.Cron).Str("dir", cfg.Report.Dir).Msg("informe programado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // informes PDF y llamadas a la IA (15 s)
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestor de incidencias Playa Brava",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   cfg.App.Name,
			"storage":   cfg.Storage.Driver,
			"incidents": len(incidentStore.List()),
			"version":   incidentStore.Version(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		Registry:  reg,
		Store:     incidentStore,
		AIUC:      aiUC,
		Exporter:  exporter,
		JWTSecret: cfg.JWT.Secret,
		Log:       log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cronSched != nil {
		cronSched.Stop(shutdownCtx)
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
