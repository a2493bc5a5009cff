package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	ReceiptUC    *inventory.ReceiptUseCase
	DeliveryUC   *inventory.DeliveryUseCase
	TransferUC   *inventory.TransferUseCase
	AdjustmentUC *inventory.AdjustmentUseCase
	HistoryUC    *inventory.HistoryUseCase
	DashboardUC  *usecase.DashboardUseCase
	ReportUC     *usecase.ReportUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
// manager crea y elimina; manager y staff procesan cambios de estado; ambos leen.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managerOnly := RequireRole(string(entity.RoleManager))
	processors := RequireRole(string(entity.RoleManager), string(entity.RoleStaff))

	me := protected.Group("/auth")
	me.Get("/me", authHandler.Me)
	me.Put("/profile", authHandler.UpdateProfile)
	me.Put("/password", authHandler.ChangePassword)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", managerOnly, productHandler.Create)
	products.Put("/:id", managerOnly, productHandler.Update)
	products.Delete("/:id", managerOnly, productHandler.Delete)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", managerOnly, warehouseHandler.Create)
	warehouses.Put("/:id", managerOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", managerOnly, warehouseHandler.Delete)

	reportHandler := NewReportHandler(deps.ReportUC)

	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC)
	receipts.Get("/", receiptHandler.List)
	receipts.Get("/:id", receiptHandler.GetByID)
	receipts.Get("/:id/pdf", reportHandler.DocumentPDF(entity.DocumentReceipt))
	receipts.Post("/", managerOnly, receiptHandler.Create)
	receipts.Put("/:id/status", processors, receiptHandler.UpdateStatus)
	receipts.Delete("/:id", managerOnly, receiptHandler.Delete)

	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Get("/:id/pdf", reportHandler.DocumentPDF(entity.DocumentDelivery))
	deliveries.Post("/", managerOnly, deliveryHandler.Create)
	deliveries.Put("/:id/status", processors, deliveryHandler.UpdateStatus)
	deliveries.Delete("/:id", managerOnly, deliveryHandler.Delete)

	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Get("/:id/pdf", reportHandler.DocumentPDF(entity.DocumentTransfer))
	transfers.Post("/", managerOnly, transferHandler.Create)
	transfers.Put("/:id/status", processors, transferHandler.UpdateStatus)
	transfers.Delete("/:id", managerOnly, transferHandler.Delete)

	adjustments := protected.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/", managerOnly, adjustmentHandler.Create)
	adjustments.Delete("/:id", managerOnly, adjustmentHandler.Delete)

	history := protected.Group("/history")
	historyHandler := NewHistoryHandler(deps.HistoryUC, deps.DashboardUC)
	history.Get("/", historyHandler.List)
	history.Get("/dashboard/stats", historyHandler.DashboardStats)

	protected.Get("/reports/stock", reportHandler.StockReport)
}
