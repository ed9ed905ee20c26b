package service

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"gestimmo-api/modules/matching/entity"

	"github.com/google/uuid"
)

func newTestEngine(now time.Time) *MatchingEngine {
	e := NewMatchingEngine()
	e.now = func() time.Time { return now }
	return e
}

func slot(userID uuid.UUID, d time.Time, start, end int) entity.AvailabilitySlot {
	return entity.AvailabilitySlot{UserID: userID, Date: d, StartMinute: start, EndMinute: end}
}

func TestMatchNoTenantAvailability(t *testing.T) {
	e := newTestEngine(date(2025, time.June, 8))
	provider := uuid.New()

	result := e.Match(nil, []entity.AvailabilitySlot{
		slot(provider, date(2025, time.June, 10), 9*60, 12*60),
	})

	if result.Success {
		t.Error("Success = true, want false")
	}
	if !strings.Contains(result.Message, "locataire") {
		t.Errorf("Message = %q, want mention of locataire", result.Message)
	}
}

func TestMatchNoProviderAvailability(t *testing.T) {
	e := newTestEngine(date(2025, time.June, 8))
	tenant := uuid.New()

	result := e.Match([]entity.AvailabilitySlot{
		slot(tenant, date(2025, time.June, 10), 9*60, 12*60),
	}, nil)

	if result.Success {
		t.Error("Success = true, want false")
	}
	if !strings.Contains(result.Message, "prestataire") {
		t.Errorf("Message = %q, want mention of prestataire", result.Message)
	}
}

func TestMatchDifferentDatesProduceNoCandidates(t *testing.T) {
	e := newTestEngine(date(2025, time.June, 8))
	tenant, provider := uuid.New(), uuid.New()

	result := e.Match(
		[]entity.AvailabilitySlot{slot(tenant, date(2025, time.June, 10), 9*60, 12*60)},
		[]entity.AvailabilitySlot{slot(provider, date(2025, time.June, 11), 9*60, 12*60)},
	)

	if result.Success {
		t.Error("Success = true, want false when dates never align")
	}
	if result.Message != msgNoCompatibleSlot {
		t.Errorf("Message = %q, want %q", result.Message, msgNoCompatibleSlot)
	}
}

func TestMatchDiscardsZeroDurationOverlaps(t *testing.T) {
	e := newTestEngine(date(2025, time.June, 8))
	tenant, provider := uuid.New(), uuid.New()
	d := date(2025, time.June, 10)

	// Windows touch at 12:00 but never overlap.
	result := e.Match(
		[]entity.AvailabilitySlot{slot(tenant, d, 9*60, 12*60)},
		[]entity.AvailabilitySlot{slot(provider, d, 12*60, 15*60)},
	)

	if result.Success {
		t.Error("Success = true, want false for touching windows")
	}
}

func TestMatchPartialEndToEnd(t *testing.T) {
	e := newTestEngine(date(2025, time.June, 8))
	tenant, provider := uuid.New(), uuid.New()
	d := date(2025, time.June, 10)

	result := e.Match(
		[]entity.AvailabilitySlot{slot(tenant, d, 9*60, 13*60)},
		[]entity.AvailabilitySlot{slot(provider, d, 10*60, 12*60+30)},
	)

	if !result.Success {
		t.Fatal("Success = false, want true")
	}
	if result.PerfectMatch != nil {
		t.Errorf("PerfectMatch = %+v, want nil at score 80", result.PerfectMatch)
	}
	if len(result.PartialMatches) != 1 {
		t.Fatalf("len(PartialMatches) = %d, want 1", len(result.PartialMatches))
	}

	m := result.PartialMatches[0]
	if m.OverlapStart != 10*60 || m.OverlapEnd != 12*60+30 {
		t.Errorf("overlap = [%d, %d), want [600, 750)", m.OverlapStart, m.OverlapEnd)
	}
	if m.DurationMinutes != 150 {
		t.Errorf("DurationMinutes = %d, want 150", m.DurationMinutes)
	}
	if m.Score != 80 {
		t.Errorf("Score = %d, want 80", m.Score)
	}
	if m.TenantID != tenant || m.ProviderID != provider {
		t.Error("participant IDs not carried through")
	}
}

func TestMatchPerfect(t *testing.T) {
	e := newTestEngine(date(2025, time.June, 8))
	tenant, provider := uuid.New(), uuid.New()
	d := date(2025, time.June, 10)

	// Four hours overlapping in business hours two days out: 60 + 25 + 15.
	result := e.Match(
		[]entity.AvailabilitySlot{slot(tenant, d, 9*60, 14*60)},
		[]entity.AvailabilitySlot{slot(provider, d, 9*60, 13*60)},
	)

	if result.PerfectMatch == nil {
		t.Fatal("PerfectMatch = nil, want one")
	}
	if result.PerfectMatch.Score != 100 {
		t.Errorf("Score = %d, want 100", result.PerfectMatch.Score)
	}
	if !strings.Contains(result.Message, "10/06/2025") {
		t.Errorf("Message = %q, want the scheduled date", result.Message)
	}
	if !strings.Contains(result.Message, "09:00") || !strings.Contains(result.Message, "13:00") {
		t.Errorf("Message = %q, want the overlap window", result.Message)
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	e := newTestEngine(date(2025, time.June, 8))
	tenant := uuid.New()
	providerA := uuid.New()
	providerB := uuid.New()
	d := date(2025, time.June, 10)

	tenantSlots := []entity.AvailabilitySlot{slot(tenant, d, 8*60, 18*60)}
	providerSlots := []entity.AvailabilitySlot{
		slot(providerA, d, 10*60, 11*60+30),
		slot(providerB, d, 10*60, 11*60+30),
		slot(providerA, d, 14*60, 15*60+30),
	}

	first := e.Match(tenantSlots, providerSlots)
	for i := 0; i < 5; i++ {
		again := e.Match(tenantSlots, providerSlots)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged from first result", i)
		}
	}

	// Equal scores break ties on start minute then provider ID.
	sugg := first.Suggestions
	if len(sugg) != 3 {
		t.Fatalf("len(Suggestions) = %d, want 3", len(sugg))
	}
	if sugg[0].OverlapStart > sugg[1].OverlapStart && sugg[0].Score == sugg[1].Score {
		t.Error("equal scores not ordered by start minute")
	}
}
