package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/application/shipping"
)

// ShipmentHandler embarques con filtro de calidad.
type ShipmentHandler struct {
	uc *shipping.UseCase
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc *shipping.UseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear embarque
// @Description  Cada línea con orden de producción pasa por el filtro de calidad. Si una falla no se guarda nada.
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ShipmentRequest  true  "Cliente, fecha y líneas"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse  "VALIDATION; details trae requested/approved/already_shipped/available"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.ShipmentRequest
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
// @Summary      Reemplazar embarque
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del embarque"
// @Param        body  body  dto.ShipmentRequest  true  "Cabecera y líneas nuevas"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [put]
func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.ShipmentRequest
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
// @Summary      Eliminar embarque
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del embarque"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Shipment deleted successfully"})
}

// UpdateStatus godoc
// @Summary      Cambiar estado del embarque
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del embarque"
// @Param        body  body  dto.ShipmentStatusRequest  true  "Prepared | Shipped | Delivered"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/status [patch]
func (h *ShipmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.ShipmentStatusRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener embarque
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del embarque"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar embarques
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "Prepared | Shipped | Delivered"
// @Param        customer_id  query  string  false  "Cliente"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.ShipmentResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), dto.ShipmentFilter{
		Status:      c.Query("status"),
		CustomerID:  c.Query("customer_id"),
		PageRequest: pageFrom(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
