package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/application/quality"
)

// QualityHandler inspecciones de calidad.
type QualityHandler struct {
	uc *quality.UseCase
}

// NewQualityHandler construye el handler.
func NewQualityHandler(uc *quality.UseCase) *QualityHandler {
	return &QualityHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar inspección de calidad
// @Description  El inspector es el usuario del token. Actualiza los contadores de la orden de producción.
// @Tags         quality-inspections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QualityInspectionRequest  true  "Resultado de la inspección"
// @Success      201   {object}  dto.QualityInspectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quality-inspections [post]
func (h *QualityHandler) Create(c *fiber.Ctx) error {
	var in dto.QualityInspectionRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Corregir inspección de calidad
// @Tags         quality-inspections
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la inspección"
// @Param        body  body  dto.QualityInspectionRequest  true  "Resultado corregido"
// @Success      200   {object}  dto.QualityInspectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quality-inspections/{id} [put]
func (h *QualityHandler) Update(c *fiber.Ctx) error {
	var in dto.QualityInspectionRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar inspección de calidad
// @Tags         quality-inspections
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la inspección"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quality-inspections/{id} [delete]
func (h *QualityHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetRole(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Quality inspection deleted successfully"})
}

// GetByID godoc
// @Summary      Obtener inspección de calidad
// @Tags         quality-inspections
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la inspección"
// @Success      200  {object}  dto.QualityInspectionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quality-inspections/{id} [get]
func (h *QualityHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar inspecciones de calidad
// @Tags         quality-inspections
// @Security     Bearer
// @Produce      json
// @Param        status               query  string  false  "Released | Rejected"
// @Param        production_order_id  query  string  false  "Orden de producción"
// @Param        limit                query  int     false  "Límite"  default(20)
// @Param        offset               query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.QualityInspectionResponse
// @Router       /api/quality-inspections [get]
func (h *QualityHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), dto.InspectionFilter{
		Status:            c.Query("status"),
		ProductionOrderID: c.Query("production_order_id"),
		PageRequest:       pageFrom(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPending godoc
// @Summary      Hojas viajeras pendientes de inspección
// @Tags         quality-inspections
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de producción"
// @Success      200  {array}   dto.PendingInspectionResponse
// @Router       /api/quality-inspections/production-order/{id}/pending [get]
func (h *QualityHandler) ListPending(c *fiber.Ctx) error {
	out, err := h.uc.ListPending(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
