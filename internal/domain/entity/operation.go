package entity

import "time"

// DocumentType tipo de documento de inventario. Cada tipo tiene su propia secuencia.
type DocumentType string

const (
	DocumentReceipt    DocumentType = "receipt"
	DocumentDelivery   DocumentType = "delivery"
	DocumentTransfer   DocumentType = "transfer"
	DocumentAdjustment DocumentType = "adjustment"
)

// Prefix devuelve el prefijo del número de documento (RCP, DEL, TRF, ADJ).
func (t DocumentType) Prefix() string {
	switch t {
	case DocumentReceipt:
		return "RCP"
	case DocumentDelivery:
		return "DEL"
	case DocumentTransfer:
		return "TRF"
	case DocumentAdjustment:
		return "ADJ"
	}
	return ""
}

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t DocumentType) Valid() bool {
	return t.Prefix() != ""
}

// EntityType devuelve el tipo de entidad usado en el historial.
func (t DocumentType) EntityType() EntityType {
	return EntityType(t)
}

// Status estado de un documento de operación.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusWaiting  Status = "waiting"
	StatusReady    Status = "ready"
	StatusDone     Status = "done"
	StatusCanceled Status = "canceled"
)

// Valid indica si el estado es uno de los cinco reconocidos.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusWaiting, StatusReady, StatusDone, StatusCanceled:
		return true
	}
	return false
}

// IsTerminal indica si el estado es final (done o canceled).
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusCanceled
}

// PendingStatuses estados que cuentan como pendientes en el dashboard.
var PendingStatuses = []Status{StatusDraft, StatusWaiting, StatusReady}

// OperationItem línea de una recepción o entrega. ProductName y Unit son instantáneas al crear.
type OperationItem struct {
	ProductID   string
	ProductName string
	Quantity    int // >= 1
	Unit        string
}

// DocumentHeader campos comunes de recepciones, entregas y traslados.
type DocumentHeader struct {
	ID            string
	Number        string // RCP-0001, DEL-0001, TRF-0001
	Status        Status
	Notes         string
	Date          time.Time
	CreatedBy     string
	CreatedByName string
	ProcessedBy   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Receipt recepción de mercancía de un proveedor hacia una bodega.
type Receipt struct {
	DocumentHeader
	Supplier  string
	Warehouse WarehouseRef
	Items     []OperationItem
}

// Delivery entrega de mercancía desde una bodega a un cliente.
type Delivery struct {
	DocumentHeader
	Customer        string
	Warehouse       WarehouseRef
	ShippingAddress string
	Items           []OperationItem
}

// Transfer traslado interno de un producto entre dos bodegas.
type Transfer struct {
	DocumentHeader
	ProductID   string
	ProductName string
	Quantity    int
	From        WarehouseRef
	To          WarehouseRef
}
