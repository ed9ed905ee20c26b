package repository

import (
	"context"

	"gestimmo-api/core/database"
	"gestimmo-api/core/logger"
	"gestimmo-api/modules/matching/entity"

	"github.com/google/uuid"
)

// MatchingRepository handles persisted candidate matches.
type MatchingRepository struct {
	DB database.Database
}

func NewMatchingRepository(db database.Database) *MatchingRepository {
	return &MatchingRepository{DB: db}
}

// MatchingRepositoryInterface defines the repository contract.
type MatchingRepositoryInterface interface {
	ReplaceMatches(ctx context.Context, interventionID uuid.UUID, matches []entity.InterventionMatch) error
	GetMatchesByInterventionID(ctx context.Context, interventionID uuid.UUID) ([]entity.InterventionMatch, error)
}

// ReplaceMatches swaps the stored candidate set for an intervention with the
// newly computed one. Always clear-then-insert, never merge.
func (r *MatchingRepository) ReplaceMatches(ctx context.Context, interventionID uuid.UUID, matches []entity.InterventionMatch) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("MatchingRepository:ReplaceMatches:Begin", "error", err)
		return err
	}
	defer tx.Rollback()

	deleteQuery := `DELETE FROM intervention_matches WHERE intervention_id = $1`
	if _, err := tx.ExecContext(ctx, deleteQuery, interventionID); err != nil {
		logger.Error("MatchingRepository:ReplaceMatches:Delete", "error", err)
		return err
	}

	insertQuery := `
		INSERT INTO intervention_matches
			(intervention_id, match_date, start_minute, end_minute, duration_minutes, tenant_id, provider_id, score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, m := range matches {
		if _, err := tx.ExecContext(ctx, insertQuery,
			interventionID, m.MatchDate, m.StartMinute, m.EndMinute,
			m.DurationMinutes, m.TenantID, m.ProviderID, m.Score); err != nil {
			logger.Error("MatchingRepository:ReplaceMatches:Insert", "error", err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("MatchingRepository:ReplaceMatches:Commit", "error", err)
		return err
	}
	return nil
}

func (r *MatchingRepository) GetMatchesByInterventionID(ctx context.Context, interventionID uuid.UUID) ([]entity.InterventionMatch, error) {
	query := `
		SELECT id, intervention_id, match_date, start_minute, end_minute,
		       duration_minutes, tenant_id, provider_id, score, created_at
		FROM intervention_matches
		WHERE intervention_id = $1
		ORDER BY score DESC, match_date, start_minute
	`

	var items []entity.InterventionMatch
	err := r.DB.SelectContext(ctx, &items, query, interventionID)
	if err != nil {
		logger.Error("MatchingRepository:GetMatchesByInterventionID", "error", err)
		return nil, err
	}

	return items, nil
}
