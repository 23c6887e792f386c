package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mantenpro/mantenpro-api/internal/application/dto"
	"github.com/mantenpro/mantenpro-api/internal/application/usecase"
	"github.com/mantenpro/mantenpro-api/internal/domain"
)

// PlantHandler maneja las peticiones HTTP para plantas (protegido).
type PlantHandler struct {
	uc *usecase.PlantUseCase
}

// NewPlantHandler construye el handler.
func NewPlantHandler(uc *usecase.PlantUseCase) *PlantHandler {
	return &PlantHandler{uc: uc}
}

// Create godoc
// @Summary      Crear planta
// @Tags         plants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePlantRequest  true  "Datos de la planta"
// @Success      201   {object}  dto.PlantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/plants [post]
func (h *PlantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlantRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plant, err := h.uc.Create(in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y name son requeridos"})
		case domain.ErrDuplicate:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una planta con ese código"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPlantResponse(plant))
}

// GetByID godoc
// @Summary      Obtener planta
// @Tags         plants
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la planta"
// @Success      200  {object}  dto.PlantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plants/{id} [get]
func (h *PlantHandler) GetByID(c *fiber.Ctx) error {
	plant, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "planta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NewPlantResponse(plant))
}

// List godoc
// @Summary      Listar plantas
// @Tags         plants
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.PlantResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/plants [get]
func (h *PlantHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	plants, err := h.uc.List(page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.PlantResponse, 0, len(plants))
	for _, p := range plants {
		out = append(out, dto.NewPlantResponse(p))
	}
	return c.JSON(out)
}
