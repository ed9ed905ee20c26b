package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is one declared free-time window fed into the engine.
type AvailabilitySlot struct {
	UserID      uuid.UUID
	Date        time.Time
	StartMinute int
	EndMinute   int
}

// Interval returns the slot's time window.
func (s AvailabilitySlot) Interval() TimeInterval {
	return TimeInterval{StartMinute: s.StartMinute, EndMinute: s.EndMinute}
}

// CandidateMatch is one computed overlap between a tenant window and a
// provider window on the same date.
type CandidateMatch struct {
	Date            time.Time
	OverlapStart    int
	OverlapEnd      int
	DurationMinutes int
	TenantID        uuid.UUID
	ProviderID      uuid.UUID
	Score           int
}

// MatchingResult is the engine's output for one invocation.
type MatchingResult struct {
	Success        bool
	PerfectMatch   *CandidateMatch
	PartialMatches []CandidateMatch
	Suggestions    []CandidateMatch
	Message        string
}

// InterventionMatch is a persisted candidate match.
type InterventionMatch struct {
	ID              uuid.UUID `db:"id"`
	InterventionID  uuid.UUID `db:"intervention_id"`
	MatchDate       time.Time `db:"match_date"`
	StartMinute     int       `db:"start_minute"`
	EndMinute       int       `db:"end_minute"`
	DurationMinutes int       `db:"duration_minutes"`
	TenantID        uuid.UUID `db:"tenant_id"`
	ProviderID      uuid.UUID `db:"provider_id"`
	Score           int       `db:"score"`
	CreatedAt       time.Time `db:"created_at"`
}
