package dto

import "time"

// OperationItemRequest línea de recepción o entrega.
type OperationItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// OperationItemResponse línea con instantánea de nombre y unidad.
type OperationItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
}

// CreateReceiptRequest entrada para crear una recepción. warehouse acepta ID o nombre.
type CreateReceiptRequest struct {
	Supplier  string                 `json:"supplier" validate:"required"`
	Warehouse string                 `json:"warehouse" validate:"required"`
	Items     []OperationItemRequest `json:"items" validate:"required,min=1,dive"`
	Date      *time.Time             `json:"date"`
	Notes     string                 `json:"notes"`
}

// CreateDeliveryRequest entrada para crear una entrega.
type CreateDeliveryRequest struct {
	Customer        string                 `json:"customer" validate:"required"`
	Warehouse       string                 `json:"warehouse" validate:"required"`
	ShippingAddress string                 `json:"shipping_address"`
	Items           []OperationItemRequest `json:"items" validate:"required,min=1,dive"`
	Date            *time.Time             `json:"date"`
	Notes           string                 `json:"notes"`
}

// CreateTransferRequest entrada para crear un traslado de un producto entre bodegas.
type CreateTransferRequest struct {
	ProductID    string     `json:"product_id" validate:"required"`
	Quantity     int        `json:"quantity" validate:"min=1"`
	FromLocation string     `json:"from_location" validate:"required"`
	ToLocation   string     `json:"to_location" validate:"required,nefield=FromLocation"`
	Date         *time.Time `json:"date"`
	Notes        string     `json:"notes"`
}

// UpdateStatusRequest entrada de PUT /:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// DocumentListRequest filtros de listados de documentos.
type DocumentListRequest struct {
	Status    string `query:"status" validate:"omitempty,oneof=draft waiting ready done canceled"`
	Warehouse string `query:"warehouse"`
	PageRequest
}

// WarehouseRefResponse referencia de bodega en documentos.
type WarehouseRefResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DocumentHeaderResponse campos comunes de documentos.
type DocumentHeaderResponse struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	Date          time.Time `json:"date"`
	CreatedBy     string    `json:"created_by"`
	CreatedByName string    `json:"created_by_name"`
	ProcessedBy   string    `json:"processed_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ReceiptResponse salida de una recepción.
type ReceiptResponse struct {
	DocumentHeaderResponse
	Supplier  string                  `json:"supplier"`
	Warehouse WarehouseRefResponse    `json:"warehouse"`
	Items     []OperationItemResponse `json:"items"`
}

// DeliveryResponse salida de una entrega.
type DeliveryResponse struct {
	DocumentHeaderResponse
	Customer        string                  `json:"customer"`
	Warehouse       WarehouseRefResponse    `json:"warehouse"`
	ShippingAddress string                  `json:"shipping_address"`
	Items           []OperationItemResponse `json:"items"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	DocumentHeaderResponse
	ProductID    string               `json:"product_id"`
	ProductName  string               `json:"product_name"`
	Quantity     int                  `json:"quantity"`
	FromLocation WarehouseRefResponse `json:"from_location"`
	ToLocation   WarehouseRefResponse `json:"to_location"`
}

// ReceiptListResponse lista paginada de recepciones.
type ReceiptListResponse struct {
	Items []ReceiptResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// DeliveryListResponse lista paginada de entregas.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// TransferListResponse lista paginada de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
