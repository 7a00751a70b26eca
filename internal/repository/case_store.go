package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/vakildesk/vakildesk-api/internal/models"
)

// CaseCollectionKey is the fixed namespace key the whole collection lives
// under. There is exactly one persisted value.
const CaseCollectionKey = "vakildesk:cases"

// CaseStore persists the full case collection as a single JSON blob in a
// key-value table. Load-on-init, write-on-change.
type CaseStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewCaseStore constructs the store.
func NewCaseStore(db *sqlx.DB, logger *zap.Logger) *CaseStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CaseStore{db: db, logger: logger}
}

// EnsureSchema creates the key-value table when it does not exist yet.
func (s *CaseStore) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS kv_blobs (
		key TEXT PRIMARY KEY,
		value JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure kv_blobs table: %w", err)
	}
	return nil
}

// Load reads the persisted collection. A missing row or a value that does
// not parse as a case collection yields an empty collection, never an error:
// a corrupt blob means a fresh start, not a dead application.
func (s *CaseStore) Load(ctx context.Context) ([]models.Case, error) {
	const query = `SELECT value FROM kv_blobs WHERE key = $1`
	var raw []byte
	if err := s.db.GetContext(ctx, &raw, query, CaseCollectionKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.Case{}, nil
		}
		return nil, fmt.Errorf("load case collection: %w", err)
	}

	var cases []models.Case
	if err := json.Unmarshal(raw, &cases); err != nil {
		s.logger.Warn("persisted case collection unreadable, starting fresh", zap.Error(err))
		return []models.Case{}, nil
	}
	if cases == nil {
		cases = []models.Case{}
	}
	return cases, nil
}

// Save upserts the full collection under the fixed key.
func (s *CaseStore) Save(ctx context.Context, cases []models.Case) error {
	if cases == nil {
		cases = []models.Case{}
	}
	payload, err := json.Marshal(cases)
	if err != nil {
		return fmt.Errorf("encode case collection: %w", err)
	}

	const query = `INSERT INTO kv_blobs (key, value, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, query, CaseCollectionKey, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("save case collection: %w", err)
	}
	return nil
}
