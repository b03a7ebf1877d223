package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/application/production"
)

// ProductionHandler órdenes de producción y hojas viajeras.
type ProductionHandler struct {
	uc *production.UseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.UseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de producción
// @Tags         production-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductionOrderRequest  true  "Parte, cantidad y fecha compromiso"
// @Success      201   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/production-orders [post]
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductionOrderRequest
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
// @Summary      Listar órdenes de producción
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        status          query  string  false  "Estado"
// @Param        part_number_id  query  string  false  "Número de parte"
// @Param        limit           query  int     false  "Límite"  default(20)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.ProductionOrderResponse
// @Router       /api/production-orders [get]
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), dto.ProductionOrderFilter{
		Status:       c.Query("status"),
		PartNumberID: c.Query("part_number_id"),
		PageRequest:  pageFrom(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de producción
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProductionOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id} [get]
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden de producción
// @Description  Estado, prioridad, fechas y cantidad. Los contadores solo cambian por inspecciones.
// @Tags         production-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateProductionOrderRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ProductionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id} [put]
func (h *ProductionHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductionOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Verify godoc
// @Summary      Verificar contadores
// @Description  Compara quantity_completed/scrapped guardados con la suma de las inspecciones.
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.VerifyCountersResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/verify [get]
func (h *ProductionHandler) Verify(c *fiber.Ctx) error {
	out, err := h.uc.Verify(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Reconciliar contadores
// @Tags         production-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.VerifyCountersResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/reconcile [post]
func (h *ProductionHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.uc.Reconcile(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GenerateTravelSheet godoc
// @Summary      Generar hoja viajera
// @Description  Una operación por paso de la ruta del número de parte, cada una con su QR.
// @Tags         travel-sheets
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden de producción"
// @Param        body  body  dto.CreateTravelSheetRequest  false  "Lote opcional"
// @Success      201   {object}  dto.TravelSheetResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/travel-sheets [post]
func (h *ProductionHandler) GenerateTravelSheet(c *fiber.Ctx) error {
	var in dto.CreateTravelSheetRequest
	if len(c.Body()) > 0 {
		if ok, err := bindJSON(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.GenerateTravelSheet(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTravelSheets godoc
// @Summary      Hojas viajeras de una orden
// @Tags         travel-sheets
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden de producción"
// @Success      200  {array}   dto.TravelSheetResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production-orders/{id}/travel-sheets [get]
func (h *ProductionHandler) ListTravelSheets(c *fiber.Ctx) error {
	out, err := h.uc.ListTravelSheets(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TravelSheetPDF godoc
// @Summary      Imprimir hoja viajera
// @Tags         travel-sheets
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la hoja viajera"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/travel-sheets/{id}/pdf [get]
func (h *ProductionHandler) TravelSheetPDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.TravelSheetPDF(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(doc)
}
