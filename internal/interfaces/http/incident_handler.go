package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/application/incidents"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// IncidentHandler alta, consulta, cambio de estado y comentarios de incidencias.
type IncidentHandler struct {
	store *incidents.Store
}

// NewIncidentHandler construye el handler.
func NewIncidentHandler(store *incidents.Store) *IncidentHandler {
	return &IncidentHandler{store: store}
}

// List godoc
// @Summary      Listar incidencias
// @Description  Más recientes primero. status=ALL (por defecto) o un estado; q busca en título, descripción y ubicación sin distinguir mayúsculas.
// @Tags         incidents
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDIENTE, EN_PROCESO, FINALIZADA o ALL"
// @Param        q       query  string  false  "Texto a buscar"
// @Param        limit   query  int     false  "Máximo de elementos (0 = todos, tope 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200     {object}  dto.IncidentListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/incidents [get]
func (h *IncidentHandler) List(c *fiber.Ctx) error {
	var in dto.IncidentQuery
	if err := c.QueryParser(&in); err != nil {
		return validation(c, "parámetros de búsqueda inválidos")
	}
	q := incidents.Query{Status: incidents.StatusAll, Search: in.Search}
	if raw := strings.TrimSpace(in.Status); raw != "" && !strings.EqualFold(raw, string(incidents.StatusAll)) {
		st, ok := entity.ParseStatus(raw)
		if !ok {
			return validation(c, "status debe ser PENDIENTE, EN_PROCESO, FINALIZADA o ALL")
		}
		q.Status = st
	}
	return c.JSON(dto.IncidentsFromEntities(h.store.Filter(q), in.Page()))
}

// GetByID godoc
// @Summary      Obtener incidencia por ID
// @Tags         incidents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la incidencia (INC-2026-001)"
// @Success      200  {object}  dto.IncidentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/incidents/{id} [get]
func (h *IncidentHandler) GetByID(c *fiber.Ctx) error {
	inc, err := h.store.Get(c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.IncidentFromEntity(inc))
}

// Create godoc
// @Summary      Reportar incidencia
// @Description  Queda PENDIENTE y a nombre del usuario del token.
// @Tags         incidents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIncidentRequest  true  "Datos de la incidencia"
// @Success      201   {object}  dto.IncidentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/incidents [post]
func (h *IncidentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIncidentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Location) == "" {
		return validation(c, "title, description y location son requeridos")
	}
	priority, ok := entity.ParsePriority(in.Priority)
	if !ok {
		return validation(c, "priority debe ser BAJA, MEDIA, ALTA o CRITICA")
	}
	category, ok := entity.ParseCategory(in.Category)
	if !ok {
		return validation(c, "category desconocida")
	}
	nuevo := incidents.NewIncident{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Priority:    priority,
		Category:    category,
	}
	if in.AISummary != "" || len(in.SuggestedSteps) > 0 {
		nuevo.AIAnalysis = &entity.AIAnalysis{Summary: in.AISummary, SuggestedSteps: in.SuggestedSteps}
	}

	reporter := GetName(c)
	var dept entity.Department
	if u := GetUser(c); u != nil {
		reporter, dept = u.Name, u.Department
	}
	inc, err := h.store.Create(c.Context(), nuevo, reporter, dept)
	return h.respond(c, fiber.StatusCreated, inc, err)
}

// ChangeStatus godoc
// @Summary      Cambiar estado
// @Description  Solo administradores. Repetir el estado actual no genera historial.
// @Tags         incidents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la incidencia"
// @Param        body  body  dto.ChangeStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.IncidentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/incidents/{id}/status [patch]
func (h *IncidentHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	actor := GetUser(c)
	if actor == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no identificado"})
	}
	status, ok := entity.ParseStatus(in.Status)
	if !ok {
		// el estado crudo llega al almacén para que el permiso se compruebe antes
		status = entity.Status(in.Status)
	}
	inc, err := h.store.ChangeStatus(c.Context(), c.Params("id"), status, actor)
	return h.respond(c, fiber.StatusOK, inc, err)
}

// AddComment godoc
// @Summary      Comentar incidencia
// @Tags         incidents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la incidencia"
// @Param        body  body  dto.AddCommentRequest  true  "Texto"
// @Success      201   {object}  dto.IncidentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/incidents/{id}/comments [post]
func (h *IncidentHandler) AddComment(c *fiber.Ctx) error {
	var in dto.AddCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Text) == "" {
		return validation(c, "text es requerido")
	}
	inc, err := h.store.AddComment(c.Context(), c.Params("id"), in.Text, GetName(c))
	return h.respond(c, fiber.StatusCreated, inc, err)
}

// respond escribe la incidencia; un PersistWarning se devuelve como aviso.
func (h *IncidentHandler) respond(c *fiber.Ctx, status int, inc *entity.Incident, err error) error {
	warning, err := warningOf(err)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.IncidentFromEntity(inc)
	out.Warning = warning
	return c.Status(status).JSON(out)
}
