package dto

import "time"

// CreateAdjustmentRequest entrada de POST /api/adjustments.
type CreateAdjustmentRequest struct {
	ProductID   string `json:"product_id" validate:"required"`
	Warehouse   string `json:"warehouse" validate:"required"`
	NewQuantity *int   `json:"new_quantity" validate:"required,min=0"`
	Reason      string `json:"reason" validate:"required"`
}

// AdjustmentResponse salida de un ajuste.
type AdjustmentResponse struct {
	ID            string               `json:"id"`
	Number        string               `json:"number"`
	ProductID     string               `json:"product_id"`
	ProductName   string               `json:"product_name"`
	Warehouse     WarehouseRefResponse `json:"warehouse"`
	OldQuantity   int                  `json:"old_quantity"`
	NewQuantity   int                  `json:"new_quantity"`
	Difference    int                  `json:"difference"`
	Reason        string               `json:"reason"`
	Status        string               `json:"status"`
	Date          time.Time            `json:"date"`
	CreatedBy     string               `json:"created_by"`
	CreatedByName string               `json:"created_by_name"`
	ApprovedBy    string               `json:"approved_by"`
	CreatedAt     time.Time            `json:"created_at"`
}

// AdjustmentListRequest filtros de GET /api/adjustments.
type AdjustmentListRequest struct {
	ProductID string `query:"product_id"`
	Warehouse string `query:"warehouse"`
	PageRequest
}

// AdjustmentListResponse lista paginada de ajustes.
type AdjustmentListResponse struct {
	Items []AdjustmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
