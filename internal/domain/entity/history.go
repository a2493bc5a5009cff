package entity

import (
	"encoding/json"
	"time"
)

// HistoryRetention tiempo por defecto que se conserva una entrada del historial.
const HistoryRetention = 90 * 24 * time.Hour

// HistoryAction acción registrada en el historial.
type HistoryAction string

const (
	ActionCreate   HistoryAction = "create"
	ActionUpdate   HistoryAction = "update"
	ActionDelete   HistoryAction = "delete"
	ActionMove     HistoryAction = "move"
	ActionValidate HistoryAction = "validate"
)

// Valid indica si la acción pertenece al conjunto cerrado.
func (a HistoryAction) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionMove, ActionValidate:
		return true
	}
	return false
}

// EntityType tipo de entidad afectada por una entrada del historial.
type EntityType string

const (
	EntityProduct    EntityType = "product"
	EntityReceipt    EntityType = "receipt"
	EntityDelivery   EntityType = "delivery"
	EntityTransfer   EntityType = "transfer"
	EntityAdjustment EntityType = "adjustment"
	EntityWarehouse  EntityType = "warehouse"
	EntityUser       EntityType = "user"
)

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t EntityType) Valid() bool {
	switch t {
	case EntityProduct, EntityReceipt, EntityDelivery, EntityTransfer, EntityAdjustment, EntityWarehouse, EntityUser:
		return true
	}
	return false
}

// HistoryEntry registro append-only de una acción. Nunca se modifica; se purga por antigüedad.
type HistoryEntry struct {
	ID         string
	Action     HistoryAction
	EntityType EntityType
	EntityID   string
	Data       json.RawMessage
	UserID     string
	UserName   string
	Timestamp  time.Time
}
