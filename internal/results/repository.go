// Package results implements the save/load contract for finished sessions.
// The engine produces a terminal Result; this repository stores it so a
// trainee's history survives the process.
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Record is one persisted session outcome.
type Record struct {
	SessionID         string    `json:"session_id"`
	CaseID            string    `json:"case_id"`
	Score             int       `json:"score"`
	CriticalRequired  int       `json:"critical_required"`
	CriticalCompleted int       `json:"critical_completed"`
	DurationSeconds   int       `json:"duration_seconds"`
	Feedback          []string  `json:"feedback"`
	CompletedAt       time.Time `json:"completed_at"`
}

type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewRepository(db *sql.DB, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{db: db, logger: logger}
}

// Save writes one session outcome. Feedback is stored as a JSON array so
// the ordered list round-trips intact.
func (r *Repository) Save(ctx context.Context, rec Record) error {
	feedback, err := json.Marshal(rec.Feedback)
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}

	const query = `
		INSERT INTO session_results
			(session_id, case_id, score, critical_required, critical_completed, duration_seconds, feedback, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := r.db.ExecContext(ctx, query,
		rec.SessionID, rec.CaseID, rec.Score,
		rec.CriticalRequired, rec.CriticalCompleted,
		rec.DurationSeconds, feedback, rec.CompletedAt,
	); err != nil {
		return fmt.Errorf("save session result: %w", err)
	}

	r.logger.Info("session result saved",
		zap.String("session_id", rec.SessionID),
		zap.String("case_id", rec.CaseID),
		zap.Int("score", rec.Score))
	return nil
}

// Get loads one session outcome by id.
func (r *Repository) Get(ctx context.Context, sessionID string) (Record, error) {
	const query = `
		SELECT session_id, case_id, score, critical_required, critical_completed, duration_seconds, feedback, completed_at
		FROM session_results
		WHERE session_id = $1`

	var rec Record
	var feedback []byte
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&rec.SessionID, &rec.CaseID, &rec.Score,
		&rec.CriticalRequired, &rec.CriticalCompleted,
		&rec.DurationSeconds, &feedback, &rec.CompletedAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("load session result %s: %w", sessionID, err)
	}
	if len(feedback) > 0 {
		if err := json.Unmarshal(feedback, &rec.Feedback); err != nil {
			return Record{}, fmt.Errorf("decode feedback for %s: %w", sessionID, err)
		}
	}
	return rec, nil
}

// ListRecent returns the newest outcomes first, capped at limit.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT session_id, case_id, score, critical_required, critical_completed, duration_seconds, feedback, completed_at
		FROM session_results
		ORDER BY completed_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list session results: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var feedback []byte
		if err := rows.Scan(
			&rec.SessionID, &rec.CaseID, &rec.Score,
			&rec.CriticalRequired, &rec.CriticalCompleted,
			&rec.DurationSeconds, &feedback, &rec.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan session result: %w", err)
		}
		if len(feedback) > 0 {
			if err := json.Unmarshal(feedback, &rec.Feedback); err != nil {
				return nil, fmt.Errorf("decode feedback: %w", err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
