package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/application/sales"
)

// SalesOrderHandler órdenes de compra de clientes.
type SalesOrderHandler struct {
	uc *sales.UseCase
}

// NewSalesOrderHandler construye el handler.
func NewSalesOrderHandler(uc *sales.UseCase) *SalesOrderHandler {
	return &SalesOrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de venta
// @Tags         sales-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesOrderRequest  true  "Orden con sus líneas"
// @Success      201   {object}  dto.SalesOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales-orders [post]
func (h *SalesOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes de venta
// @Tags         sales-orders
// @Security     Bearer
// @Produce      json
// @Param        customer_id  query  string  false  "Cliente"
// @Param        status       query  string  false  "Open | Partial | Completed | Cancelled"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.SalesOrderResponse
// @Router       /api/sales-orders [get]
func (h *SalesOrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetRole(c), dto.SalesOrderFilter{
		CustomerID:  c.Query("customer_id"),
		Status:      c.Query("status"),
		PageRequest: pageFrom(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de venta
// @Tags         sales-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.SalesOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id} [get]
func (h *SalesOrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetRole(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ApprovedQuantities godoc
// @Summary      Saldo embarcable por línea
// @Description  Aprobado por calidad, ya embarcado y disponible por cada línea de la orden.
// @Tags         sales-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}   dto.ApprovedQuantityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id}/approved-quantities [get]
func (h *SalesOrderHandler) ApprovedQuantities(c *fiber.Ctx) error {
	out, err := h.uc.ApprovedQuantities(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
