package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const defaultHistoryLimit = 100

// Record agrega una entrada al historial usando el repositorio de la transacción del llamador.
// Es append puro: nadie lee el historial para decidir.
func Record(
	ctx context.Context,
	repo repository.HistoryRepository,
	action entity.HistoryAction,
	entityType entity.EntityType,
	entityID string,
	data any,
	actor Actor,
) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("history payload: %w", err)
	}
	return repo.Append(ctx, &entity.HistoryEntry{
		ID:         uuid.New().String(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Data:       payload,
		UserID:     actor.UserID,
		UserName:   actor.Name,
		Timestamp:  time.Now().UTC(),
	})
}

// HistoryUseCase consulta y mantenimiento (retención) del historial.
type HistoryUseCase struct {
	repo repository.HistoryRepository
	log  *logger.Logger
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(repo repository.HistoryRepository, log *logger.Logger) *HistoryUseCase {
	return &HistoryUseCase{repo: repo, log: log}
}

// List devuelve el historial filtrado, más reciente primero.
func (uc *HistoryUseCase) List(ctx context.Context, in dto.HistoryListRequest) ([]dto.HistoryEntryResponse, error) {
	f := repository.HistoryFilter{
		EntityType: entity.EntityType(in.Type),
		Action:     entity.HistoryAction(in.Action),
		UserID:     in.UserID,
		Limit:      in.Limit,
	}
	if f.EntityType != "" && !f.EntityType.Valid() {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Type)
	}
	if f.Action != "" && !f.Action.Valid() {
		return nil, fmt.Errorf("%w: acción %q", domain.ErrInvalidInput, in.Action)
	}
	if f.Limit <= 0 {
		f.Limit = defaultHistoryLimit
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return ToHistoryResponses(list), nil
}

// Purge elimina las entradas más antiguas que retention.
func (uc *HistoryUseCase) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		retention = entity.HistoryRetention
	}
	cutoff := time.Now().UTC().Add(-retention)
	n, err := uc.repo.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge history: %w", err)
	}
	return n, nil
}

// RunRetention purga periódicamente hasta que ctx se cancele. Pensado para una goroutine en main.
func (uc *HistoryUseCase) RunRetention(ctx context.Context, every, retention time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		n, err := uc.Purge(ctx, retention)
		if err != nil {
			uc.log.Error().Err(err).Msg("retención del historial")
		} else if n > 0 {
			uc.log.Info().Int64("deleted", n).Msg("historial purgado")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ToHistoryResponses mapea entradas del historial a DTO (también lo usa el dashboard).
func ToHistoryResponses(list []*entity.HistoryEntry) []dto.HistoryEntryResponse {
	out := make([]dto.HistoryEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.HistoryEntryResponse{
			ID:         e.ID,
			Action:     string(e.Action),
			EntityType: string(e.EntityType),
			EntityID:   e.EntityID,
			Data:       e.Data,
			UserID:     e.UserID,
			UserName:   e.UserName,
			Timestamp:  e.Timestamp,
		})
	}
	return out
}
