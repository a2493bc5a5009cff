package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

var sequenceTables = map[entity.DocumentType]string{
	entity.DocumentReceipt:    "receipts",
	entity.DocumentDelivery:   "deliveries",
	entity.DocumentTransfer:   "transfers",
	entity.DocumentAdjustment: "adjustments",
}

// SequenceRepo contador por tipo de documento en doc_sequences.
// El UPSERT bloquea la fila del tipo hasta el fin de la tx: dos creaciones concurrentes no obtienen el mismo número.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el contador de documentos.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el contador. La primera vez arranca del mayor sufijo numérico existente.
func (r *SequenceRepo) Next(ctx context.Context, docType entity.DocumentType) (int64, error) {
	table, ok := sequenceTables[docType]
	if !ok {
		return 0, fmt.Errorf("sequence: tipo de documento desconocido %q", docType)
	}
	query := `
		INSERT INTO doc_sequences (doc_type, last_value)
		VALUES ($1, COALESCE((
			SELECT MAX(CAST(substring(number FROM '[0-9]+$') AS BIGINT)) FROM ` + table + `
			WHERE number LIKE $2
		), 0) + 1)
		ON CONFLICT (doc_type) DO UPDATE SET last_value = doc_sequences.last_value + 1
		RETURNING last_value`
	var n int64
	if err := r.q.QueryRow(ctx, query, docType, docType.Prefix()+"-%").Scan(&n); err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", docType, err)
	}
	return n, nil
}
