package dto

import (
	"encoding/json"
	"time"
)

// HistoryEntryResponse entrada del historial.
type HistoryEntryResponse struct {
	ID         string          `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"type"`
	EntityID   string          `json:"entity_id"`
	Data       json.RawMessage `json:"data"`
	UserID     string          `json:"user_id"`
	UserName   string          `json:"user_name"`
	Timestamp  time.Time       `json:"timestamp"`
}

// HistoryListRequest filtros de GET /api/history.
type HistoryListRequest struct {
	Type   string `query:"type" validate:"omitempty,oneof=product receipt delivery transfer adjustment warehouse user"`
	Action string `query:"action" validate:"omitempty,oneof=create update delete move validate"`
	UserID string `query:"user_id"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
}

// PendingOperationsDTO documentos en draft, waiting o ready.
type PendingOperationsDTO struct {
	Receipts   int `json:"receipts"`
	Deliveries int `json:"deliveries"`
	Transfers  int `json:"transfers"`
}

// DashboardStatsDTO respuesta de GET /api/history/dashboard/stats.
type DashboardStatsDTO struct {
	TotalProducts    int                    `json:"total_products"`
	LowStockProducts int                    `json:"low_stock_products"`
	Pending          PendingOperationsDTO   `json:"pending"`
	ActiveWarehouses int                    `json:"active_warehouses"`
	RecentActivity   []HistoryEntryResponse `json:"recent_activity"`
}
