package inventory

import (
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// rank orden del flujo draft -> waiting -> ready -> done.
var rank = map[entity.Status]int{
	entity.StatusDraft:   0,
	entity.StatusWaiting: 1,
	entity.StatusReady:   2,
	entity.StatusDone:    3,
}

// CheckTransition valida el paso de from a to.
// changed=false significa no-op: mismo estado (incluye reenviar el estado final actual).
// Reglas:
//   - to desconocido: ErrInvalidStatus.
//   - desde done o canceled hacia otro estado: ErrTerminalStatus.
//   - canceled se permite desde cualquier estado no final.
//   - hacia adelante se permite saltando pasos; hacia atrás ErrInvalidTransition.
func CheckTransition(from, to entity.Status) (changed bool, err error) {
	if !to.Valid() {
		return false, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, to)
	}
	if from == to {
		return false, nil
	}
	if from.IsTerminal() {
		return false, fmt.Errorf("%w: %s", domain.ErrTerminalStatus, from)
	}
	if to == entity.StatusCanceled {
		return true, nil
	}
	if rank[to] < rank[from] {
		return false, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	return true, nil
}
