package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de lotes y movimientos de material (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ReceiveBatch godoc
// @Summary      Recibir lote de material
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveBatchRequest  true  "Lote, material, colada y cantidad"
// @Success      201   {object}  dto.InventoryBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/batches [post]
func (h *InventoryHandler) ReceiveBatch(c *fiber.Ctx) error {
	var in dto.ReceiveBatchRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.ReceiveBatch(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Receipt | Issue | Return | Adjustment"
// @Success      201   {object}  dto.InventoryMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.RegisterMovement(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// IssueToProduction godoc
// @Summary      Entregar material a producción
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueToProductionRequest  true  "Orden, material, lote y cantidad"
// @Success      201   {object}  dto.InventoryMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/issue-to-production [post]
func (h *InventoryHandler) IssueToProduction(c *fiber.Ctx) error {
	var in dto.IssueToProductionRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.IssueToProduction(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Kardex de materiales
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        material_id    query  string  false  "Material"
// @Param        movement_type  query  string  false  "Receipt | Issue | Return | Adjustment"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.InventoryMovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.uc.ListMovements(c.Context(), dto.MovementFilter{
		MaterialID:   c.Query("material_id"),
		MovementType: c.Query("movement_type"),
		PageRequest:  pageFrom(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
