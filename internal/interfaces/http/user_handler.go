package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/playabrava/gestor-camping/internal/application/dto"
	"github.com/playabrava/gestor-camping/internal/application/registry"
	"github.com/playabrava/gestor-camping/internal/domain/entity"
)

// UserHandler gestión de usuarios desde el panel de administración.
type UserHandler struct {
	reg *registry.Registry
}

// NewUserHandler construye el handler.
func NewUserHandler(reg *registry.Registry) *UserHandler {
	return &UserHandler{reg: reg}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.reg.List(entity.Role(GetRole(c)))
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.UserFromEntity(u))
	}
	return c.JSON(dto.UserListResponse{Items: items, Total: len(items)})
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return validation(c, "name, email y password son requeridos")
	}
	u, err := h.reg.CreateUser(c.Context(), entity.Role(GetRole(c)), in)
	warning, err := warningOf(err)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UserResult{User: dto.UserFromEntity(u), Warning: warning})
}

// SetRole godoc
// @Summary      Cambiar rol de un usuario
// @Description  La cuenta de súper administrador no puede cambiar de rol.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        email  path  string                 true  "Email del usuario"
// @Param        body   body  dto.UpdateRoleRequest  true  "ADMIN o USER"
// @Success      200    {object}  dto.UserResult
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      403    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/users/{email}/role [patch]
func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil || email == "" {
		return validation(c, "email inválido")
	}
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	role, ok := entity.ParseRole(in.Role)
	if !ok {
		return validation(c, "role debe ser ADMIN o USER")
	}
	u, err := h.reg.SetRole(c.Context(), entity.Role(GetRole(c)), email, role)
	warning, err := warningOf(err)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UserResult{User: dto.UserFromEntity(u), Warning: warning})
}
