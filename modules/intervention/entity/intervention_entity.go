package entity

import (
	"time"

	"github.com/google/uuid"
)

// InterventionStatus represents the lifecycle state of a work order.
// Values are kept in French, matching what the mobile and web clients expect.
type InterventionStatus string

const (
	StatusEnAttente              InterventionStatus = "en_attente"
	StatusDisponibilitesSoumises InterventionStatus = "disponibilites_soumises"
	StatusPlanifiee              InterventionStatus = "planifiee"
	StatusTerminee               InterventionStatus = "terminee"
	StatusAnnulee                InterventionStatus = "annulee"
)

// Intervention is a property work order coordinated between a tenant, one or
// more providers and a manager.
type Intervention struct {
	ID            uuid.UUID          `db:"id" json:"id"`
	Reference     string             `db:"reference" json:"reference"`
	Title         string             `db:"title" json:"title"`
	Description   *string            `db:"description" json:"description,omitempty"`
	Address       string             `db:"address" json:"address"`
	TenantID      uuid.UUID          `db:"tenant_id" json:"tenant_id"`
	ManagerID     *uuid.UUID         `db:"manager_id" json:"manager_id,omitempty"`
	Status        InterventionStatus `db:"status" json:"status"`
	ScheduledDate *time.Time         `db:"scheduled_date" json:"scheduled_date,omitempty"`
	ScheduledTime *string            `db:"scheduled_time" json:"scheduled_time,omitempty"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `db:"updated_at" json:"updated_at"`
}

// Assignment links a provider to an intervention.
type Assignment struct {
	InterventionID uuid.UUID `db:"intervention_id" json:"intervention_id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Role           string    `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
