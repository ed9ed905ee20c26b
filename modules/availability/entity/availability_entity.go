package entity

import (
	"time"

	"github.com/google/uuid"
)

// Availability is one declared block of free time for one participant on one
// intervention. Times are minutes since midnight on the slot date; the
// invariant start < end is enforced at the validation boundary and by a
// database check constraint.
type Availability struct {
	ID             uuid.UUID `db:"id" json:"id"`
	InterventionID uuid.UUID `db:"intervention_id" json:"intervention_id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Role           string    `db:"role" json:"role"`
	Date           time.Time `db:"slot_date" json:"date"`
	StartMinute    int       `db:"start_minute" json:"start_minute"`
	EndMinute      int       `db:"end_minute" json:"end_minute"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
