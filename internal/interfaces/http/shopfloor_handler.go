package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/application/shopfloor"
)

// ShopfloorHandler escáner QR de planta.
type ShopfloorHandler struct {
	uc *shopfloor.UseCase
}

// NewShopfloorHandler construye el handler.
func NewShopfloorHandler(uc *shopfloor.UseCase) *ShopfloorHandler {
	return &ShopfloorHandler{uc: uc}
}

// Scan godoc
// @Summary      Escanear QR de operación
// @Description  Siempre responde 200; success=false describe el rechazo.
// @Tags         qr-scanner
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QRScanRequest  true  "Gafete del operador y contenido del QR"
// @Success      200   {object}  dto.QRScanResponse
// @Router       /api/qr-scanner/scan [post]
func (h *ShopfloorHandler) Scan(c *fiber.Ctx) error {
	var in dto.QRScanRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Scan(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Cerrar operación
// @Tags         qr-scanner
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la operación"
// @Param        body  body  dto.CompleteOperationRequest  true  "Piezas buenas y scrap"
// @Success      200   {object}  dto.CompleteOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/qr-scanner/operations/{id}/complete [put]
func (h *ShopfloorHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteOperationRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Complete(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetOperation godoc
// @Summary      Obtener operación
// @Tags         qr-scanner
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la operación"
// @Success      200  {object}  dto.TravelSheetOperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/qr-scanner/operations/{id} [get]
func (h *ShopfloorHandler) GetOperation(c *fiber.Ctx) error {
	out, err := h.uc.GetOperation(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
