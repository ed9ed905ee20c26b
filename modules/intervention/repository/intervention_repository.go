package repository

import (
	"context"
	"database/sql"
	"time"

	"gestimmo-api/core/database"
	"gestimmo-api/core/logger"
	"gestimmo-api/modules/intervention/entity"

	"github.com/google/uuid"
)

// InterventionRepository handles intervention table access.
type InterventionRepository struct {
	DB database.Database
}

func NewInterventionRepository(db database.Database) *InterventionRepository {
	return &InterventionRepository{DB: db}
}

// InterventionRepositoryInterface defines the repository contract.
type InterventionRepositoryInterface interface {
	Create(ctx context.Context, iv *entity.Intervention) (*entity.Intervention, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Intervention, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Intervention, error)
	Update(ctx context.Context, iv *entity.Intervention) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InterventionStatus) error
	UpdateSchedule(ctx context.Context, id uuid.UUID, status entity.InterventionStatus, date time.Time, startTime string) error

	AddAssignment(ctx context.Context, a *entity.Assignment) error
	RemoveAssignment(ctx context.Context, interventionID, userID uuid.UUID) error
	GetAssignments(ctx context.Context, interventionID uuid.UUID) ([]entity.Assignment, error)
	IsParticipant(ctx context.Context, interventionID, userID uuid.UUID) (bool, error)
}

// ===================== Intervention CRUD =====================

func (r *InterventionRepository) Create(ctx context.Context, iv *entity.Intervention) (*entity.Intervention, error) {
	query := `
		INSERT INTO interventions (reference, title, description, address, tenant_id, manager_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, reference, title, description, address, tenant_id, manager_id, status,
		          scheduled_date, scheduled_time, created_at, updated_at
	`

	var created entity.Intervention
	err := r.DB.GetContext(ctx, &created, query,
		iv.Reference, iv.Title, iv.Description, iv.Address, iv.TenantID, iv.ManagerID, iv.Status)
	if err != nil {
		logger.Error("InterventionRepository:Create", "error", err)
		return nil, err
	}

	return &created, nil
}

func (r *InterventionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Intervention, error) {
	query := `
		SELECT id, reference, title, description, address, tenant_id, manager_id, status,
		       scheduled_date, scheduled_time, created_at, updated_at
		FROM interventions WHERE id = $1
	`

	var iv entity.Intervention
	err := r.DB.GetContext(ctx, &iv, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("InterventionRepository:GetByID", "error", err)
		return nil, err
	}

	return &iv, nil
}

// ListByUser returns interventions where the user is the tenant, the manager
// or an assigned provider.
func (r *InterventionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Intervention, error) {
	query := `
		SELECT DISTINCT i.id, i.reference, i.title, i.description, i.address, i.tenant_id,
		       i.manager_id, i.status, i.scheduled_date, i.scheduled_time, i.created_at, i.updated_at
		FROM interventions i
		LEFT JOIN intervention_assignments ia ON ia.intervention_id = i.id
		WHERE i.tenant_id = $1 OR i.manager_id = $1 OR ia.user_id = $1
		ORDER BY i.created_at DESC
	`

	var items []entity.Intervention
	err := r.DB.SelectContext(ctx, &items, query, userID)
	if err != nil {
		logger.Error("InterventionRepository:ListByUser", "error", err)
		return nil, err
	}

	return items, nil
}

func (r *InterventionRepository) Update(ctx context.Context, iv *entity.Intervention) error {
	query := `
		UPDATE interventions
		SET title = $2, description = $3, address = $4, status = $5, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query, iv.ID, iv.Title, iv.Description, iv.Address, iv.Status)
	if err != nil {
		logger.Error("InterventionRepository:Update", "error", err)
		return err
	}
	return nil
}

func (r *InterventionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.InterventionStatus) error {
	query := `UPDATE interventions SET status = $2, updated_at = NOW() WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		logger.Error("InterventionRepository:UpdateStatus", "error", err)
		return err
	}
	return nil
}

// UpdateSchedule records the chosen slot and advances the lifecycle state in
// one statement.
func (r *InterventionRepository) UpdateSchedule(ctx context.Context, id uuid.UUID, status entity.InterventionStatus, date time.Time, startTime string) error {
	query := `
		UPDATE interventions
		SET status = $2, scheduled_date = $3, scheduled_time = $4, updated_at = NOW()
		WHERE id = $1
	`

	err := r.DB.ExecContext(ctx, query, id, status, date, startTime)
	if err != nil {
		logger.Error("InterventionRepository:UpdateSchedule", "error", err)
		return err
	}
	return nil
}

// ===================== Assignments =====================

func (r *InterventionRepository) AddAssignment(ctx context.Context, a *entity.Assignment) error {
	query := `
		INSERT INTO intervention_assignments (intervention_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (intervention_id, user_id) DO NOTHING
	`

	err := r.DB.ExecContext(ctx, query, a.InterventionID, a.UserID, a.Role)
	if err != nil {
		logger.Error("InterventionRepository:AddAssignment", "error", err)
		return err
	}
	return nil
}

func (r *InterventionRepository) RemoveAssignment(ctx context.Context, interventionID, userID uuid.UUID) error {
	query := `DELETE FROM intervention_assignments WHERE intervention_id = $1 AND user_id = $2`
	err := r.DB.ExecContext(ctx, query, interventionID, userID)
	if err != nil {
		logger.Error("InterventionRepository:RemoveAssignment", "error", err)
		return err
	}
	return nil
}

func (r *InterventionRepository) GetAssignments(ctx context.Context, interventionID uuid.UUID) ([]entity.Assignment, error) {
	query := `
		SELECT intervention_id, user_id, role, created_at
		FROM intervention_assignments
		WHERE intervention_id = $1
		ORDER BY created_at
	`

	var items []entity.Assignment
	err := r.DB.SelectContext(ctx, &items, query, interventionID)
	if err != nil {
		logger.Error("InterventionRepository:GetAssignments", "error", err)
		return nil, err
	}

	return items, nil
}

// IsParticipant reports whether the user is the tenant, the manager or an
// assigned provider of the intervention.
func (r *InterventionRepository) IsParticipant(ctx context.Context, interventionID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM interventions i
			LEFT JOIN intervention_assignments ia ON ia.intervention_id = i.id
			WHERE i.id = $1 AND (i.tenant_id = $2 OR i.manager_id = $2 OR ia.user_id = $2)
		)
	`

	var exists bool
	err := r.DB.GetContext(ctx, &exists, query, interventionID, userID)
	if err != nil {
		logger.Error("InterventionRepository:IsParticipant", "error", err)
		return false, err
	}

	return exists, nil
}
