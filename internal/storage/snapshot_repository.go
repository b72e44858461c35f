package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/shard-legends/codex-service/internal/models"
)

// DefaultMaxSnapshotsPerOwner ограничивает число хранимых снимков одного владельца
const DefaultMaxSnapshotsPerOwner = 20

// snapshotRepository реализует SnapshotRepository поверх PostgreSQL
type snapshotRepository struct {
	db          DatabaseInterface
	metrics     MetricsInterface
	maxPerOwner int
	now         func() time.Time
}

// NewSnapshotRepository создает новый экземпляр репозитория снимков
func NewSnapshotRepository(deps *RepositoryDependencies, maxPerOwner int) SnapshotRepository {
	if maxPerOwner <= 0 {
		maxPerOwner = DefaultMaxSnapshotsPerOwner
	}
	return &snapshotRepository{
		db:          deps.DB,
		metrics:     deps.MetricsCollector,
		maxPerOwner: maxPerOwner,
		now:         time.Now,
	}
}

// EnsureSchema создает схему codex и таблицу снимков
func (r *snapshotRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE SCHEMA IF NOT EXISTS codex`,
		`CREATE TABLE IF NOT EXISTS codex.saved_snapshots (
			id         UUID PRIMARY KEY,
			owner      VARCHAR(64) NOT NULL,
			label      VARCHAR(128) NOT NULL DEFAULT '',
			stacks     JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_snapshots_owner_created
			ON codex.saved_snapshots (owner, created_at DESC)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return errors.Wrap(err, "failed to ensure snapshot schema")
		}
	}
	return nil
}

// Save сохраняет снимок и удаляет самые старые снимки владельца сверх лимита.
// Пустые ID и CreatedAt заполняются.
func (r *snapshotRepository) Save(ctx context.Context, snapshot *models.SavedSnapshot) error {
	start := time.Now()

	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = r.now().UTC()
	}

	stacks, err := json.Marshal(snapshot.Stacks)
	if err != nil {
		return errors.Wrap(err, "failed to encode snapshot stacks")
	}

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO codex.saved_snapshots (id, owner, label, stacks, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.Exec(ctx, insert, snapshot.ID, snapshot.Owner, snapshot.Label, stacks, snapshot.CreatedAt); err != nil {
		return errors.Wrap(err, "failed to insert snapshot")
	}

	prune := `
		DELETE FROM codex.saved_snapshots
		WHERE owner = $1 AND id NOT IN (
			SELECT id FROM codex.saved_snapshots
			WHERE owner = $1
			ORDER BY created_at DESC
			LIMIT $2
		)`
	if _, err := tx.Exec(ctx, prune, snapshot.Owner, r.maxPerOwner); err != nil {
		return errors.Wrap(err, "failed to prune old snapshots")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	r.observe("insert", start)
	return nil
}

// Get возвращает снимок по ID
func (r *snapshotRepository) Get(ctx context.Context, id uuid.UUID) (*models.SavedSnapshot, error) {
	start := time.Now()

	query := `
		SELECT id, owner, label, stacks, created_at
		FROM codex.saved_snapshots
		WHERE id = $1`

	var (
		snapshot models.SavedSnapshot
		stacks   []byte
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snapshot.ID,
		&snapshot.Owner,
		&snapshot.Label,
		&stacks,
		&snapshot.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to get snapshot %s", id)
	}

	if err := json.Unmarshal(stacks, &snapshot.Stacks); err != nil {
		return nil, errors.Wrap(err, "failed to decode snapshot stacks")
	}

	r.observe("select", start)
	return &snapshot, nil
}

// ListByOwner возвращает снимки владельца, новые первыми
func (r *snapshotRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]models.SavedSnapshot, error) {
	start := time.Now()

	if limit <= 0 || limit > r.maxPerOwner {
		limit = r.maxPerOwner
	}

	query := `
		SELECT id, owner, label, stacks, created_at
		FROM codex.saved_snapshots
		WHERE owner = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, owner, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list snapshots")
	}
	defer rows.Close()

	snapshots := make([]models.SavedSnapshot, 0)
	for rows.Next() {
		var (
			snapshot models.SavedSnapshot
			stacks   []byte
		)
		if err := rows.Scan(&snapshot.ID, &snapshot.Owner, &snapshot.Label, &stacks, &snapshot.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan snapshot")
		}
		if err := json.Unmarshal(stacks, &snapshot.Stacks); err != nil {
			return nil, errors.Wrap(err, "failed to decode snapshot stacks")
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate snapshots")
	}

	r.observe("select", start)
	return snapshots, nil
}

// Delete удаляет снимок
func (r *snapshotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	affected, err := r.db.Exec(ctx, `DELETE FROM codex.saved_snapshots WHERE id = $1`, id)
	if err != nil {
		return errors.Wrapf(err, "failed to delete snapshot %s", id)
	}
	if affected == 0 {
		return ErrNotFound
	}

	r.observe("delete", start)
	return nil
}

func (r *snapshotRepository) observe(operation string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.IncDBQuery(operation)
	r.metrics.ObserveDBQueryDuration(operation, time.Since(start))
}
