package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/aurexia-api/internal/application/analytics"
	"github.com/jhoicas/aurexia-api/internal/application/inventory"
	"github.com/jhoicas/aurexia-api/internal/application/production"
	"github.com/jhoicas/aurexia-api/internal/application/quality"
	"github.com/jhoicas/aurexia-api/internal/application/sales"
	"github.com/jhoicas/aurexia-api/internal/application/shipping"
	"github.com/jhoicas/aurexia-api/internal/application/shopfloor"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SalesUC      *sales.UseCase
	ProductionUC *production.UseCase
	ShopfloorUC  *shopfloor.UseCase
	QualityUC    *quality.UseCase
	ShippingUC   *shipping.UseCase
	InventoryUC  *inventory.UseCase
	DashboardUC  *analytics.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Sales orders
	salesHandler := NewSalesOrderHandler(deps.SalesUC)
	so := api.Group("/sales-orders")
	so.Post("/", salesHandler.Create)
	so.Get("/", salesHandler.List)
	so.Get("/:id", salesHandler.GetByID)
	so.Get("/:id/approved-quantities", salesHandler.ApprovedQuantities)

	// Production orders y hojas viajeras
	prodHandler := NewProductionHandler(deps.ProductionUC)
	po := api.Group("/production-orders")
	po.Post("/", prodHandler.Create)
	po.Get("/", prodHandler.List)
	po.Get("/:id", prodHandler.GetByID)
	po.Put("/:id", prodHandler.Update)
	po.Get("/:id/verify", prodHandler.Verify)
	po.Post("/:id/reconcile", prodHandler.Reconcile)
	po.Post("/:id/travel-sheets", prodHandler.GenerateTravelSheet)
	po.Get("/:id/travel-sheets", prodHandler.ListTravelSheets)
	api.Get("/travel-sheets/:id/pdf", prodHandler.TravelSheetPDF)

	// QR scanner
	shopHandler := NewShopfloorHandler(deps.ShopfloorUC)
	qr := api.Group("/qr-scanner")
	qr.Post("/scan", shopHandler.Scan)
	qr.Put("/operations/:id/complete", shopHandler.Complete)
	qr.Get("/operations/:id", shopHandler.GetOperation)

	// Quality inspections
	qcHandler := NewQualityHandler(deps.QualityUC)
	qc := api.Group("/quality-inspections")
	qc.Post("/", qcHandler.Create)
	qc.Get("/", qcHandler.List)
	qc.Get("/production-order/:id/pending", qcHandler.ListPending)
	qc.Get("/:id", qcHandler.GetByID)
	qc.Put("/:id", qcHandler.Update)
	qc.Delete("/:id", RequireRole("delete quality inspections", entity.RoleAdmin, entity.RoleManagement), qcHandler.Delete)

	// Shipments
	shipHandler := NewShipmentHandler(deps.ShippingUC)
	sh := api.Group("/shipments")
	sh.Post("/", shipHandler.Create)
	sh.Get("/", shipHandler.List)
	sh.Get("/:id", shipHandler.GetByID)
	sh.Put("/:id", shipHandler.Update)
	sh.Patch("/:id/status", shipHandler.UpdateStatus)
	sh.Delete("/:id", shipHandler.Delete)

	// Inventory
	invHandler := NewInventoryHandler(deps.InventoryUC)
	inv := api.Group("/inventory")
	inv.Post("/batches", invHandler.ReceiveBatch)
	inv.Post("/movements", invHandler.RegisterMovement)
	inv.Get("/movements", invHandler.ListMovements)
	inv.Post("/issue-to-production", invHandler.IssueToProduction)

	// Dashboard
	dashHandler := NewDashboardHandler(deps.DashboardUC)
	dash := api.Group("/dashboard")
	dash.Get("/stats", dashHandler.GetStats)
	dash.Get("/production", dashHandler.ProductionBoard)
	dash.Get("/work-center-load", dashHandler.WorkCenterLoad)
	dash.Get("/daily-production", dashHandler.DailyProduction)
}
