package service

import (
	"context"
	"testing"
	"time"

	"gestimmo-api/core/errors"
	"gestimmo-api/core/tasks"
	"gestimmo-api/core/utils"
	availentity "gestimmo-api/modules/availability/entity"
	interventionentity "gestimmo-api/modules/intervention/entity"
	"gestimmo-api/modules/matching/entity"

	"github.com/google/uuid"
)

// ===================== Fakes =====================

type fakeMatchRepo struct {
	replaced map[uuid.UUID][]entity.InterventionMatch
	stored   []entity.InterventionMatch
	err      error
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{replaced: make(map[uuid.UUID][]entity.InterventionMatch)}
}

func (f *fakeMatchRepo) ReplaceMatches(_ context.Context, interventionID uuid.UUID, matches []entity.InterventionMatch) error {
	if f.err != nil {
		return f.err
	}
	f.replaced[interventionID] = matches
	return nil
}

func (f *fakeMatchRepo) GetMatchesByInterventionID(_ context.Context, _ uuid.UUID) ([]entity.InterventionMatch, error) {
	return f.stored, f.err
}

type fakeAvailRepo struct {
	rows []availentity.Availability
}

func (f *fakeAvailRepo) ReplaceForUser(_ context.Context, _, _ uuid.UUID, _ []availentity.Availability) error {
	return nil
}

func (f *fakeAvailRepo) ListByIntervention(_ context.Context, _ uuid.UUID, roleFilter string) ([]availentity.Availability, error) {
	if roleFilter == "" {
		return f.rows, nil
	}
	var out []availentity.Availability
	for _, r := range f.rows {
		if r.Role == roleFilter {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeInterventionRepo struct {
	intervention *interventionentity.Intervention
	participant  bool

	scheduleCalls int
	lastStatus    interventionentity.InterventionStatus
	lastDate      time.Time
	lastTime      string
}

func (f *fakeInterventionRepo) Create(_ context.Context, iv *interventionentity.Intervention) (*interventionentity.Intervention, error) {
	return iv, nil
}

func (f *fakeInterventionRepo) GetByID(_ context.Context, _ uuid.UUID) (*interventionentity.Intervention, error) {
	return f.intervention, nil
}

func (f *fakeInterventionRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]interventionentity.Intervention, error) {
	return nil, nil
}

func (f *fakeInterventionRepo) Update(_ context.Context, _ *interventionentity.Intervention) error {
	return nil
}

func (f *fakeInterventionRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ interventionentity.InterventionStatus) error {
	return nil
}

func (f *fakeInterventionRepo) UpdateSchedule(_ context.Context, _ uuid.UUID, status interventionentity.InterventionStatus, date time.Time, startTime string) error {
	f.scheduleCalls++
	f.lastStatus = status
	f.lastDate = date
	f.lastTime = startTime
	return nil
}

func (f *fakeInterventionRepo) AddAssignment(_ context.Context, _ *interventionentity.Assignment) error {
	return nil
}

func (f *fakeInterventionRepo) RemoveAssignment(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

func (f *fakeInterventionRepo) GetAssignments(_ context.Context, _ uuid.UUID) ([]interventionentity.Assignment, error) {
	return nil, nil
}

func (f *fakeInterventionRepo) IsParticipant(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return f.participant, nil
}

type fakeLocker struct {
	acquired int
	released int
}

func (f *fakeLocker) AcquireWait(_ context.Context, _ string, _, _ time.Duration) (string, bool, error) {
	f.acquired++
	return "token", true, nil
}

func (f *fakeLocker) Release(_ context.Context, _, _ string) error {
	f.released++
	return nil
}

type fakeEnqueuer struct {
	payloads []tasks.MatchNotificationPayload
}

func (f *fakeEnqueuer) EnqueueMatchNotification(_ context.Context, p tasks.MatchNotificationPayload) error {
	f.payloads = append(f.payloads, p)
	return nil
}

// ===================== Helpers =====================

func availRow(userID uuid.UUID, role string, d time.Time, start, end int) availentity.Availability {
	return availentity.Availability{
		UserID:      userID,
		Role:        role,
		Date:        d,
		StartMinute: start,
		EndMinute:   end,
	}
}

type serviceFixture struct {
	svc              *MatchingService
	matchRepo        *fakeMatchRepo
	availRepo        *fakeAvailRepo
	interventionRepo *fakeInterventionRepo
	locker           *fakeLocker
	enqueuer         *fakeEnqueuer
}

func newServiceFixture(iv *interventionentity.Intervention, rows []availentity.Availability) *serviceFixture {
	f := &serviceFixture{
		matchRepo:        newFakeMatchRepo(),
		availRepo:        &fakeAvailRepo{rows: rows},
		interventionRepo: &fakeInterventionRepo{intervention: iv, participant: true},
		locker:           &fakeLocker{},
		enqueuer:         &fakeEnqueuer{},
	}
	f.svc = NewMatchingService(f.matchRepo, f.availRepo, f.interventionRepo, f.locker, f.enqueuer).(*MatchingService)
	return f
}

// ===================== Tests =====================

func TestRunMatchingSchedulesOnPerfectMatch(t *testing.T) {
	interventionID := uuid.New()
	tenant, provider, manager := uuid.New(), uuid.New(), uuid.New()
	slotDate := utils.TruncateToDate(time.Now().AddDate(0, 0, 2))

	iv := &interventionentity.Intervention{
		ID:        interventionID,
		TenantID:  tenant,
		ManagerID: &manager,
		Status:    interventionentity.StatusDisponibilitesSoumises,
	}
	// Four business hours in common two days out scores 100.
	f := newServiceFixture(iv, []availentity.Availability{
		availRow(tenant, "tenant", slotDate, 9*60, 14*60),
		availRow(provider, "provider", slotDate, 9*60, 13*60),
	})

	result := f.svc.RunMatching(context.Background(), interventionID)

	if result.PerfectMatch == nil {
		t.Fatal("PerfectMatch = nil, want one")
	}
	if f.interventionRepo.scheduleCalls != 1 {
		t.Fatalf("scheduleCalls = %d, want 1", f.interventionRepo.scheduleCalls)
	}
	if f.interventionRepo.lastStatus != interventionentity.StatusPlanifiee {
		t.Errorf("status = %q, want planifiee", f.interventionRepo.lastStatus)
	}
	if f.interventionRepo.lastTime != "09:00" {
		t.Errorf("scheduled time = %q, want 09:00", f.interventionRepo.lastTime)
	}

	if len(f.enqueuer.payloads) != 1 {
		t.Fatalf("enqueued payloads = %d, want 1", len(f.enqueuer.payloads))
	}
	p := f.enqueuer.payloads[0]
	if len(p.UserIDs) != 3 {
		t.Errorf("notified users = %d, want tenant, provider and manager", len(p.UserIDs))
	}
	if p.StartTime != "09:00" || p.EndTime != "13:00" {
		t.Errorf("payload window = %s-%s, want 09:00-13:00", p.StartTime, p.EndTime)
	}

	if f.locker.acquired != 1 || f.locker.released != 1 {
		t.Errorf("lock acquired=%d released=%d, want 1/1", f.locker.acquired, f.locker.released)
	}
}

func TestRunMatchingDoesNotRescheduleClosedIntervention(t *testing.T) {
	interventionID := uuid.New()
	tenant, provider := uuid.New(), uuid.New()
	slotDate := utils.TruncateToDate(time.Now().AddDate(0, 0, 2))

	for _, status := range []interventionentity.InterventionStatus{
		interventionentity.StatusPlanifiee,
		interventionentity.StatusTerminee,
		interventionentity.StatusAnnulee,
	} {
		t.Run(string(status), func(t *testing.T) {
			iv := &interventionentity.Intervention{ID: interventionID, TenantID: tenant, Status: status}
			f := newServiceFixture(iv, []availentity.Availability{
				availRow(tenant, "tenant", slotDate, 9*60, 14*60),
				availRow(provider, "provider", slotDate, 9*60, 13*60),
			})

			result := f.svc.RunMatching(context.Background(), interventionID)

			if result.PerfectMatch == nil {
				t.Fatal("PerfectMatch = nil, want one")
			}
			if f.interventionRepo.scheduleCalls != 0 {
				t.Errorf("scheduleCalls = %d, want 0", f.interventionRepo.scheduleCalls)
			}
			if len(f.enqueuer.payloads) != 0 {
				t.Errorf("enqueued payloads = %d, want 0", len(f.enqueuer.payloads))
			}
		})
	}
}

func TestRunMatchingPersistsSuggestions(t *testing.T) {
	interventionID := uuid.New()
	tenant, provider := uuid.New(), uuid.New()
	slotDate := utils.TruncateToDate(time.Now().AddDate(0, 0, 2))

	iv := &interventionentity.Intervention{
		ID:       interventionID,
		TenantID: tenant,
		Status:   interventionentity.StatusDisponibilitesSoumises,
	}
	// 45 minute overlap: suggestion tier only.
	f := newServiceFixture(iv, []availentity.Availability{
		availRow(tenant, "tenant", slotDate, 9*60, 9*60+45),
		availRow(provider, "provider", slotDate, 9*60, 10*60),
	})

	result := f.svc.RunMatching(context.Background(), interventionID)

	if result.PerfectMatch != nil || len(result.PartialMatches) != 0 {
		t.Fatalf("want suggestion tier only, got %+v", result)
	}
	if len(result.Suggestions) != 1 {
		t.Fatalf("len(Suggestions) = %d, want 1", len(result.Suggestions))
	}

	stored := f.matchRepo.replaced[interventionID]
	if len(stored) != 1 {
		t.Fatalf("persisted matches = %d, want 1", len(stored))
	}
	if stored[0].DurationMinutes != 45 {
		t.Errorf("persisted duration = %d, want 45", stored[0].DurationMinutes)
	}
	if f.interventionRepo.scheduleCalls != 0 {
		t.Errorf("scheduleCalls = %d, want 0 without a perfect match", f.interventionRepo.scheduleCalls)
	}
}

func TestComputeMatchesRejectsNonParticipant(t *testing.T) {
	interventionID := uuid.New()
	iv := &interventionentity.Intervention{ID: interventionID, Status: interventionentity.StatusEnAttente}

	f := newServiceFixture(iv, nil)
	f.interventionRepo.participant = false

	claims := &utils.TokenClaims{UserID: uuid.New(), Role: "provider"}
	_, appErr := f.svc.ComputeMatches(context.Background(), claims, interventionID)

	if appErr == nil {
		t.Fatal("expected an error for a non participant")
	}
	if appErr.Code != errors.ErrForbidden {
		t.Errorf("Code = %v, want ErrForbidden", appErr.Code)
	}
}

func TestGetStoredMatchesRequiresExistingIntervention(t *testing.T) {
	f := newServiceFixture(nil, nil)

	claims := &utils.TokenClaims{UserID: uuid.New(), Role: "tenant"}
	_, appErr := f.svc.GetStoredMatches(context.Background(), claims, uuid.New())

	if appErr == nil {
		t.Fatal("expected an error for a missing intervention")
	}
	if appErr.Code != errors.ErrNotFound {
		t.Errorf("Code = %v, want ErrNotFound", appErr.Code)
	}
}
