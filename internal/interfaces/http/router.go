package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/playabrava/gestor-camping/internal/application/auth"
	"github.com/playabrava/gestor-camping/internal/application/incidents"
	"github.com/playabrava/gestor-camping/internal/application/registry"
	"github.com/playabrava/gestor-camping/internal/application/reporting"
	"github.com/playabrava/gestor-camping/internal/application/usecase"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Registry  *registry.Registry
	Store     *incidents.Store
	AIUC      *usecase.AIUseCase
	Exporter  *reporting.Exporter
	JWTSecret string
	Log       zerolog.Logger
	// Now reloj para estadísticas e informes; nil = time.Now.
	Now func() time.Time
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas: token válido y usuario vigente en el registro
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), CurrentUser(deps.Registry))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/session", authHandler.Session)

	// Usuarios (solo administradores)
	users := protected.Group("/users", RequireRole(string(entity.RoleAdmin)))
	userHandler := NewUserHandler(deps.Registry)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Patch("/:email/role", userHandler.SetRole)

	// Incidencias
	incidentsGroup := protected.Group("/incidents")
	incidentHandler := NewIncidentHandler(deps.Store)
	aiHandler := NewAIHandler(deps.AIUC)
	incidentsGroup.Get("/", incidentHandler.List)
	incidentsGroup.Post("/", incidentHandler.Create)
	incidentsGroup.Get("/:id", incidentHandler.GetByID)
	incidentsGroup.Patch("/:id/status", incidentHandler.ChangeStatus)
	incidentsGroup.Post("/:id/comments", incidentHandler.AddComment)
	incidentsGroup.Post("/:id/ai-solution", aiHandler.SuggestSolution)

	// IA
	protected.Post("/ai/analyze", aiHandler.Analyze)

	// Estadísticas e informes
	loc := time.UTC
	if deps.Exporter != nil {
		loc = deps.Exporter.Location()
	}
	statsHandler := NewStatsHandler(deps.Store, loc, deps.Now)
	protected.Get("/stats/summary", statsHandler.Summary)

	reportHandler := NewReportHandler(deps.Store, deps.Exporter, deps.Now)
	reports := protected.Group("/reports")
	reports.Get("/incidents.csv", reportHandler.CSV)
	reports.Get("/incidents.pdf", reportHandler.PDF)
}

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		ev := log.Info()
		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Str("user", GetEmail(c)).
			Msg("http")
		return err
	}
}
