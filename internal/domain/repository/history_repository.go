package repository

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// HistoryFilter filtros del historial. Limit por defecto 100.
type HistoryFilter struct {
	EntityType entity.EntityType
	Action     entity.HistoryAction
	UserID     string
	Limit      int
}

// HistoryRepository puerto append-only del historial.
type HistoryRepository interface {
	Append(ctx context.Context, e *entity.HistoryEntry) error
	// List devuelve las entradas más recientes primero.
	List(ctx context.Context, f HistoryFilter) ([]*entity.HistoryEntry, error)
	// PurgeBefore elimina entradas anteriores a cutoff y devuelve cuántas borró.
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
