package repository

import (
	"context"

	"gestimmo-api/core/database"
	"gestimmo-api/core/logger"
	"gestimmo-api/modules/availability/entity"

	"github.com/google/uuid"
)

// AvailabilityRepository handles availability table access.
type AvailabilityRepository struct {
	DB database.Database
}

func NewAvailabilityRepository(db database.Database) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

// AvailabilityRepositoryInterface defines the repository contract.
type AvailabilityRepositoryInterface interface {
	ReplaceForUser(ctx context.Context, interventionID, userID uuid.UUID, slots []entity.Availability) error
	ListByIntervention(ctx context.Context, interventionID uuid.UUID, roleFilter string) ([]entity.Availability, error)
}

// ReplaceForUser swaps the full availability set for one (user, intervention)
// pair. Submission is always a full replace; delete and insert run in a
// single transaction so concurrent readers never observe a partial set.
func (r *AvailabilityRepository) ReplaceForUser(ctx context.Context, interventionID, userID uuid.UUID, slots []entity.Availability) error {
	tx, err := r.DB.SQLx().BeginTxx(ctx, nil)
	if err != nil {
		logger.Error("AvailabilityRepository:ReplaceForUser:Begin", "error", err)
		return err
	}
	defer tx.Rollback()

	deleteQuery := `DELETE FROM availabilities WHERE intervention_id = $1 AND user_id = $2`
	if _, err := tx.ExecContext(ctx, deleteQuery, interventionID, userID); err != nil {
		logger.Error("AvailabilityRepository:ReplaceForUser:Delete", "error", err)
		return err
	}

	insertQuery := `
		INSERT INTO availabilities (intervention_id, user_id, role, slot_date, start_minute, end_minute)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, slot := range slots {
		if _, err := tx.ExecContext(ctx, insertQuery,
			slot.InterventionID, slot.UserID, slot.Role, slot.Date, slot.StartMinute, slot.EndMinute); err != nil {
			logger.Error("AvailabilityRepository:ReplaceForUser:Insert", "error", err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("AvailabilityRepository:ReplaceForUser:Commit", "error", err)
		return err
	}
	return nil
}

// ListByIntervention returns all availability rows for an intervention,
// optionally filtered by participant role.
func (r *AvailabilityRepository) ListByIntervention(ctx context.Context, interventionID uuid.UUID, roleFilter string) ([]entity.Availability, error) {
	query := `
		SELECT id, intervention_id, user_id, role, slot_date, start_minute, end_minute, created_at
		FROM availabilities
		WHERE intervention_id = $1
	`
	args := []any{interventionID}

	if roleFilter != "" {
		query += ` AND role = $2`
		args = append(args, roleFilter)
	}
	query += ` ORDER BY slot_date, start_minute`

	var items []entity.Availability
	err := r.DB.SelectContext(ctx, &items, query, args...)
	if err != nil {
		logger.Error("AvailabilityRepository:ListByIntervention", "error", err)
		return nil, err
	}

	return items, nil
}
