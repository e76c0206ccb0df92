package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"kelly-montecarlo/internal/storage"
)

// RunStore implements storage.RunStore using PostgreSQL. Config and report
// are stored as JSONB.
type RunStore struct {
	pool *Pool
}

func NewRunStore(pool *Pool) *RunStore {
	return &RunStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RunStore = (*RunStore)(nil)

// Save inserts run. Returns ErrDuplicateKey if the ID exists and
// ErrInvalidInput if the ID is not a UUID.
func (s *RunStore) Save(ctx context.Context, run *storage.Run) error {
	if run == nil {
		return storage.ErrInvalidInput
	}
	id, err := uuid.Parse(run.ID)
	if err != nil {
		return storage.ErrInvalidInput
	}

	cfg, err := json.Marshal(run.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	rep, err := json.Marshal(run.Report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	query := `
		INSERT INTO simulation_runs (id, created_at, config, report, blended_kelly)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.pool.Exec(ctx, query, id, run.CreatedAt, cfg, rep, run.BlendedKelly)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert simulation run: %w", err)
	}
	return nil
}

func (s *RunStore) Get(ctx context.Context, id string) (*storage.Run, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, storage.ErrNotFound
	}

	query := `
		SELECT id, created_at, config, report, blended_kelly
		FROM simulation_runs
		WHERE id = $1
	`
	run, err := scanRun(s.pool.QueryRow(ctx, query, parsed))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get simulation run: %w", err)
	}
	return run, nil
}

func (s *RunStore) List(ctx context.Context, limit int) ([]*storage.Run, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT id, created_at, config, report, blended_kelly
		FROM simulation_runs
		ORDER BY created_at DESC, id
		LIMIT $1
	`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list simulation runs: %w", err)
	}
	defer rows.Close()

	var out []*storage.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan simulation run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func scanRun(row pgx.Row) (*storage.Run, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		cfg, rep  []byte
		run       storage.Run
	)
	if err := row.Scan(&id, &createdAt, &cfg, &rep, &run.BlendedKelly); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(cfg, &run.Config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := json.Unmarshal(rep, &run.Report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	run.ID = id.String()
	run.CreatedAt = createdAt
	return &run, nil
}
