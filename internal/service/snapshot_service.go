package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/storage"
)

// snapshotService реализует SnapshotService
type snapshotService struct {
	repo    storage.SnapshotRepository
	dataset *DatasetHolder
	logger  *zap.Logger
}

// NewSnapshotService создает новый экземпляр сервиса снимков.
// Без репозитория все операции возвращают ErrSnapshotsDisabled.
func NewSnapshotService(deps *ServiceDependencies) SnapshotService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &snapshotService{
		repo:    deps.Snapshots,
		dataset: deps.Dataset,
		logger:  logger.Named("snapshots"),
	}
}

// Enabled сообщает, настроено ли хранилище
func (s *snapshotService) Enabled() bool {
	return s.repo != nil
}

// Save сохраняет снимок
func (s *snapshotService) Save(ctx context.Context, req *models.SaveSnapshotRequest) (*models.SavedSnapshot, error) {
	if !s.Enabled() {
		return nil, ErrSnapshotsDisabled
	}

	snapshot := &models.SavedSnapshot{
		Owner:  strings.TrimSpace(req.Owner),
		Label:  strings.TrimSpace(req.Label),
		Stacks: req.RawStacks(),
	}
	if err := s.repo.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	s.logger.Info("Snapshot saved",
		zap.String("snapshot_id", snapshot.ID.String()),
		zap.String("owner", snapshot.Owner),
		zap.Int("stacks", len(snapshot.Stacks)),
	)
	return snapshot, nil
}

// Get возвращает снимок по ID
func (s *snapshotService) Get(ctx context.Context, id uuid.UUID) (*models.SavedSnapshot, error) {
	if !s.Enabled() {
		return nil, ErrSnapshotsDisabled
	}

	snapshot, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &NotFoundError{Query: id.String()}
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return snapshot, nil
}

// List возвращает снимки владельца
func (s *snapshotService) List(ctx context.Context, owner string, limit int) ([]models.SavedSnapshot, error) {
	if !s.Enabled() {
		return nil, ErrSnapshotsDisabled
	}
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}

	snapshots, err := s.repo.ListByOwner(ctx, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// Delete удаляет снимок
func (s *snapshotService) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.Enabled() {
		return ErrSnapshotsDisabled
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &NotFoundError{Query: id.String()}
		}
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Evaluate проверяет сохраненный снимок по текущим данным
func (s *snapshotService) Evaluate(ctx context.Context, id uuid.UUID, onlyNew bool) (*models.CraftableResponse, error) {
	snapshot, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	state, err := s.dataset.Current()
	if err != nil {
		return nil, err
	}
	return evaluate(state, snapshot.Stacks, onlyNew), nil
}
