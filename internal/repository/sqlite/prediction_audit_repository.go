// Package sqlite keeps the prediction audit log in a local SQLite file, for
// deployments without Postgres.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"liverRisk/business/prediction"
	"liverRisk/domain"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/001_prediction_audits.sql
var migrationSQL string

const maxAuditPage = 200

type PredictionAuditRepository struct {
	db *sql.DB
}

var _ prediction.AuditRepository = (*PredictionAuditRepository)(nil)

// Open creates or migrates the audit database at path.
func Open(path string) (*PredictionAuditRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}
	// one writer; also keeps ":memory:" databases on a single connection
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma: %w", err)
		}
	}

	if _, err := db.Exec(migrationSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &PredictionAuditRepository{db: db}, nil
}

func (r *PredictionAuditRepository) Close() error {
	return r.db.Close()
}

func (r *PredictionAuditRepository) Save(ctx context.Context, record *domain.PredictionAudit) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prediction_audits (
			id, request_id, model_version, label, confidence, warning_count,
			attribution_enabled, top_feature, latency_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID.String(),
		record.RequestID,
		record.ModelVersion,
		record.Label,
		record.Confidence,
		record.WarningCount,
		record.AttributionEnabled,
		record.TopFeature,
		record.LatencyMs,
		record.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting audit row: %w", err)
	}
	return nil
}

// Recent returns the newest audit rows first.
func (r *PredictionAuditRepository) Recent(ctx context.Context, limit int) ([]domain.PredictionAudit, error) {
	if limit <= 0 || limit > maxAuditPage {
		limit = maxAuditPage
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, request_id, model_version, label, confidence, warning_count,
		       attribution_enabled, top_feature, latency_ms, created_at
		FROM prediction_audits
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying audit rows: %w", err)
	}
	defer rows.Close()

	out := []domain.PredictionAudit{}
	for rows.Next() {
		var (
			rec       domain.PredictionAudit
			id        string
			createdAt int64
		)
		if err := rows.Scan(
			&id,
			&rec.RequestID,
			&rec.ModelVersion,
			&rec.Label,
			&rec.Confidence,
			&rec.WarningCount,
			&rec.AttributionEnabled,
			&rec.TopFeature,
			&rec.LatencyMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit row: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("audit row id %q: %w", id, err)
		}
		rec.CreatedAt = time.Unix(0, createdAt).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit rows: %w", err)
	}

	return out, nil
}
