package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
)

func TestCheckTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    entity.Status
		to      entity.Status
		changed bool
		err     error
	}{
		{"draft a waiting", entity.StatusDraft, entity.StatusWaiting, true, nil},
		{"waiting a ready", entity.StatusWaiting, entity.StatusReady, true, nil},
		{"ready a done", entity.StatusReady, entity.StatusDone, true, nil},
		{"draft directo a done", entity.StatusDraft, entity.StatusDone, true, nil},
		{"cancelar desde draft", entity.StatusDraft, entity.StatusCanceled, true, nil},
		{"cancelar desde ready", entity.StatusReady, entity.StatusCanceled, true, nil},
		{"mismo estado no final", entity.StatusWaiting, entity.StatusWaiting, false, nil},
		{"done reenviado es no-op", entity.StatusDone, entity.StatusDone, false, nil},
		{"canceled reenviado es no-op", entity.StatusCanceled, entity.StatusCanceled, false, nil},
		{"ready hacia atrás", entity.StatusReady, entity.StatusDraft, false, domain.ErrInvalidTransition},
		{"done a draft", entity.StatusDone, entity.StatusDraft, false, domain.ErrTerminalStatus},
		{"canceled a done", entity.StatusCanceled, entity.StatusDone, false, domain.ErrTerminalStatus},
		{"done a canceled", entity.StatusDone, entity.StatusCanceled, false, domain.ErrTerminalStatus},
		{"estado desconocido", entity.StatusDraft, entity.Status("shipped"), false, domain.ErrInvalidStatus},
		{"desconocido desde done", entity.StatusDone, entity.Status(""), false, domain.ErrInvalidStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			changed, err := inventory.CheckTransition(tc.from, tc.to)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.changed, changed)
		})
	}
}
