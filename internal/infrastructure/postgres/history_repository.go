package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo historial append-only sobre PostgreSQL. data es JSONB.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador del historial.
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Append inserta una entrada. Un payload vacío se guarda como objeto vacío.
func (r *HistoryRepo) Append(ctx context.Context, e *entity.HistoryEntry) error {
	data := []byte(e.Data)
	if len(data) == 0 {
		data = []byte("{}")
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO history (id, action, entity_type, entity_id, data, user_id, user_name, timestamp)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8)`,
		e.ID, e.Action, e.EntityType, e.EntityID, string(data), e.UserID, e.UserName, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// List devuelve las entradas más recientes primero.
func (r *HistoryRepo) List(ctx context.Context, f repository.HistoryFilter) ([]*entity.HistoryEntry, error) {
	b := psql.Select("id", "action", "entity_type", "entity_id", "data", "user_id", "user_name", "timestamp").From("history")
	if f.EntityType != "" {
		b = b.Where(squirrel.Eq{"entity_type": f.EntityType})
	}
	if f.Action != "" {
		b = b.Where(squirrel.Eq{"action": f.Action})
	}
	if f.UserID != "" {
		b = b.Where(squirrel.Eq{"user_id": f.UserID})
	}
	query, args, err := paginate(b.OrderBy("timestamp DESC"), f.Limit, 0).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list history: %w", err)
	}
	var list []*entity.HistoryEntry
	if err := pgxscan.Select(ctx, r.q, &list, query, args...); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return list, nil
}

// PurgeBefore elimina las entradas con timestamp anterior a cutoff.
func (r *HistoryRepo) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM history WHERE timestamp < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge history: %w", err)
	}
	return cmd.RowsAffected(), nil
}
