package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/liangzhipengdamon-maker/SmartPen/internal/types"
)

// Attempt is one recorded practice result for a user and glyph.
type Attempt struct {
	ID               uuid.UUID `json:"id"`
	UserID           string    `json:"user_id"`
	Glyph            string    `json:"glyph"`
	TotalScore       float64   `json:"total_score"`
	HandwritingScore float64   `json:"handwriting_score"`
	PostureScore     float64   `json:"posture_score"`
	Grade            string    `json:"grade"`
	OrderValid       bool      `json:"order_valid"`
	Code             string    `json:"code,omitempty"`
	TimeSpentSeconds float64   `json:"time_spent_seconds"`
	CreatedAt        time.Time `json:"created_at"`
}

// GlyphStats aggregates a user's history for one glyph.
type GlyphStats struct {
	Attempts  int     `json:"attempts"`
	BestScore float64 `json:"best_score"`
	MeanScore float64 `json:"mean_score"`
}

// AttemptFromResult builds an Attempt record from a scoring result.
func AttemptFromResult(userID, glyph string, result *types.Result, elapsed time.Duration) Attempt {
	return Attempt{
		ID:               uuid.New(),
		UserID:           userID,
		Glyph:            glyph,
		TotalScore:       result.TotalScore,
		HandwritingScore: result.HandwritingScore,
		PostureScore:     result.PostureScore,
		Grade:            result.Grade,
		OrderValid:       result.OrderVerdict.IsValid,
		Code:             string(result.Code),
		TimeSpentSeconds: elapsed.Seconds(),
	}
}

// SaveAttempt stores one practice record.
func (s *Store) SaveAttempt(ctx context.Context, attempt Attempt) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO practice_attempts
		 (id, user_id, glyph, total_score, handwriting_score, posture_score,
		  grade, order_valid, code, time_spent_seconds)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		attempt.ID, attempt.UserID, attempt.Glyph,
		attempt.TotalScore, attempt.HandwritingScore, attempt.PostureScore,
		attempt.Grade, attempt.OrderValid, attempt.Code, attempt.TimeSpentSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to save attempt: %w", err)
	}
	return nil
}

// RecentAttempts returns the user's most recent practice records, newest
// first.
func (s *Store) RecentAttempts(ctx context.Context, userID string, limit int) ([]Attempt, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, glyph, total_score, handwriting_score, posture_score,
		        grade, order_valid, code, time_spent_seconds, created_at
		 FROM practice_attempts
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.Glyph,
			&a.TotalScore, &a.HandwritingScore, &a.PostureScore,
			&a.Grade, &a.OrderValid, &a.Code, &a.TimeSpentSeconds, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attempts: %w", err)
	}
	return attempts, nil
}

// StatsForGlyph aggregates the user's attempts for one glyph.
func (s *Store) StatsForGlyph(ctx context.Context, userID, glyph string) (GlyphStats, error) {
	var stats GlyphStats
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(MAX(total_score), 0),
		        COALESCE(AVG(total_score), 0)
		 FROM practice_attempts
		 WHERE user_id = $1 AND glyph = $2`,
		userID, glyph,
	).Scan(&stats.Attempts, &stats.BestScore, &stats.MeanScore)
	if err != nil {
		return GlyphStats{}, fmt.Errorf("failed to aggregate attempts: %w", err)
	}
	return stats, nil
}
