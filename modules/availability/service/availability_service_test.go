package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"gestimmo-api/core/errors"
	"gestimmo-api/core/utils"
	"gestimmo-api/modules/availability/dto"
	"gestimmo-api/modules/availability/entity"
	interventionentity "gestimmo-api/modules/intervention/entity"
	matchingdto "gestimmo-api/modules/matching/dto"
	matchingentity "gestimmo-api/modules/matching/entity"

	"github.com/google/uuid"
)

// ===================== Fakes =====================

type fakeAvailRepo struct {
	stored       map[uuid.UUID][]entity.Availability
	replaceCalls int
	replaceErr   error
}

func newFakeAvailRepo() *fakeAvailRepo {
	return &fakeAvailRepo{stored: make(map[uuid.UUID][]entity.Availability)}
}

func (f *fakeAvailRepo) ReplaceForUser(_ context.Context, interventionID, userID uuid.UUID, slots []entity.Availability) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaceCalls++

	kept := f.stored[interventionID][:0]
	for _, s := range f.stored[interventionID] {
		if s.UserID != userID {
			kept = append(kept, s)
		}
	}
	f.stored[interventionID] = append(kept, slots...)
	return nil
}

func (f *fakeAvailRepo) ListByIntervention(_ context.Context, interventionID uuid.UUID, roleFilter string) ([]entity.Availability, error) {
	var out []entity.Availability
	for _, s := range f.stored[interventionID] {
		if roleFilter == "" || s.Role == roleFilter {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeInterventionRepo struct {
	intervention *interventionentity.Intervention
	participant  bool

	statusCalls int
	lastStatus  interventionentity.InterventionStatus
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

func (f *fakeInterventionRepo) UpdateStatus(_ context.Context, _ uuid.UUID, status interventionentity.InterventionStatus) error {
	f.statusCalls++
	f.lastStatus = status
	return nil
}

func (f *fakeInterventionRepo) UpdateSchedule(_ context.Context, _ uuid.UUID, _ interventionentity.InterventionStatus, _ time.Time, _ string) error {
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

type fakeMatchingService struct {
	calls  int
	result *matchingentity.MatchingResult
}

func (f *fakeMatchingService) RunMatching(_ context.Context, _ uuid.UUID) *matchingentity.MatchingResult {
	f.calls++
	return f.result
}

func (f *fakeMatchingService) ComputeMatches(_ context.Context, _ *utils.TokenClaims, _ uuid.UUID) (*matchingdto.MatchingResultResponse, *errors.AppError) {
	return nil, nil
}

func (f *fakeMatchingService) GetStoredMatches(_ context.Context, _ *utils.TokenClaims, _ uuid.UUID) ([]matchingdto.StoredMatchResponse, *errors.AppError) {
	return nil, nil
}

// ===================== Tests =====================

func submitFixture(status interventionentity.InterventionStatus) (*AvailabilityService, *fakeAvailRepo, *fakeInterventionRepo, *fakeMatchingService) {
	availRepo := newFakeAvailRepo()
	interventionRepo := &fakeInterventionRepo{
		intervention: &interventionentity.Intervention{ID: uuid.New(), Status: status},
		participant:  true,
	}
	matchingSvc := &fakeMatchingService{
		result: &matchingentity.MatchingResult{Success: true, Message: "ok"},
	}
	svc := NewAvailabilityService(availRepo, interventionRepo, matchingSvc).(*AvailabilityService)
	return svc, availRepo, interventionRepo, matchingSvc
}

func validRequest() *dto.SubmitAvailabilitiesRequest {
	return &dto.SubmitAvailabilitiesRequest{
		Slots: []dto.AvailabilitySlotInput{
			{Date: "2025-06-10", StartTime: "09:00", EndTime: "12:00"},
			{Date: "2025-06-11", StartTime: "14:00", EndTime: "16:30"},
		},
	}
}

func TestSubmitStoresSlotsAndTriggersMatching(t *testing.T) {
	svc, availRepo, interventionRepo, matchingSvc := submitFixture(interventionentity.StatusEnAttente)
	claims := &utils.TokenClaims{UserID: uuid.New(), Role: "tenant"}

	resp, appErr := svc.Submit(context.Background(), claims, interventionRepo.intervention.ID, validRequest())
	if appErr != nil {
		t.Fatalf("Submit: %v", appErr)
	}

	if availRepo.replaceCalls != 1 {
		t.Errorf("replaceCalls = %d, want 1", availRepo.replaceCalls)
	}
	if matchingSvc.calls != 1 {
		t.Errorf("matching calls = %d, want 1", matchingSvc.calls)
	}
	if len(resp.Slots) != 2 {
		t.Errorf("len(resp.Slots) = %d, want 2", len(resp.Slots))
	}
	if resp.MatchingMessage != "ok" {
		t.Errorf("MatchingMessage = %q, want the engine message", resp.MatchingMessage)
	}

	// First submission advances the lifecycle.
	if interventionRepo.statusCalls != 1 || interventionRepo.lastStatus != interventionentity.StatusDisponibilitesSoumises {
		t.Errorf("status update = %d/%q, want 1/disponibilites_soumises",
			interventionRepo.statusCalls, interventionRepo.lastStatus)
	}
}

func TestSubmitIsAFullReplace(t *testing.T) {
	svc, _, interventionRepo, _ := submitFixture(interventionentity.StatusDisponibilitesSoumises)
	claims := &utils.TokenClaims{UserID: uuid.New(), Role: "tenant"}
	id := interventionRepo.intervention.ID

	if _, appErr := svc.Submit(context.Background(), claims, id, validRequest()); appErr != nil {
		t.Fatalf("first Submit: %v", appErr)
	}

	second := &dto.SubmitAvailabilitiesRequest{
		Slots: []dto.AvailabilitySlotInput{
			{Date: "2025-06-12", StartTime: "10:00", EndTime: "11:00"},
		},
	}
	resp, appErr := svc.Submit(context.Background(), claims, id, second)
	if appErr != nil {
		t.Fatalf("second Submit: %v", appErr)
	}

	if len(resp.Slots) != 1 {
		t.Fatalf("len(resp.Slots) = %d, want 1 after replace", len(resp.Slots))
	}
	if resp.Slots[0].Date != "2025-06-12" {
		t.Errorf("kept slot date = %s, want 2025-06-12", resp.Slots[0].Date)
	}
}

func TestSubmitRejectsManagers(t *testing.T) {
	svc, _, interventionRepo, _ := submitFixture(interventionentity.StatusEnAttente)
	claims := &utils.TokenClaims{UserID: uuid.New(), Role: "manager"}

	_, appErr := svc.Submit(context.Background(), claims, interventionRepo.intervention.ID, validRequest())
	if appErr == nil {
		t.Fatal("expected an error for a manager submission")
	}
	if appErr.Code != errors.ErrForbidden {
		t.Errorf("Code = %v, want ErrForbidden", appErr.Code)
	}
}

func TestSubmitRejectsClosedInterventions(t *testing.T) {
	for _, status := range []interventionentity.InterventionStatus{
		interventionentity.StatusAnnulee,
		interventionentity.StatusTerminee,
	} {
		t.Run(string(status), func(t *testing.T) {
			svc, _, interventionRepo, _ := submitFixture(status)
			claims := &utils.TokenClaims{UserID: uuid.New(), Role: "tenant"}

			_, appErr := svc.Submit(context.Background(), claims, interventionRepo.intervention.ID, validRequest())
			if appErr == nil {
				t.Fatal("expected an error on a closed intervention")
			}
			if appErr.Code != errors.ErrInvalidInput {
				t.Errorf("Code = %v, want ErrInvalidInput", appErr.Code)
			}
		})
	}
}

func TestSubmitValidatesSlots(t *testing.T) {
	tests := []struct {
		name string
		slot dto.AvailabilitySlotInput
		want string
	}{
		{"bad date", dto.AvailabilitySlotInput{Date: "10/06/2025", StartTime: "09:00", EndTime: "10:00"}, "date"},
		{"bad start", dto.AvailabilitySlotInput{Date: "2025-06-10", StartTime: "25:00", EndTime: "10:00"}, "début"},
		{"bad end", dto.AvailabilitySlotInput{Date: "2025-06-10", StartTime: "09:00", EndTime: "abc"}, "fin"},
		{"inverted", dto.AvailabilitySlotInput{Date: "2025-06-10", StartTime: "12:00", EndTime: "09:00"}, "précéder"},
		{"empty window", dto.AvailabilitySlotInput{Date: "2025-06-10", StartTime: "09:00", EndTime: "09:00"}, "précéder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, availRepo, interventionRepo, _ := submitFixture(interventionentity.StatusEnAttente)
			claims := &utils.TokenClaims{UserID: uuid.New(), Role: "provider"}

			req := &dto.SubmitAvailabilitiesRequest{Slots: []dto.AvailabilitySlotInput{tt.slot}}
			_, appErr := svc.Submit(context.Background(), claims, interventionRepo.intervention.ID, req)

			if appErr == nil {
				t.Fatal("expected a validation error")
			}
			if appErr.Code != errors.ErrInvalidInput {
				t.Errorf("Code = %v, want ErrInvalidInput", appErr.Code)
			}
			if !strings.Contains(appErr.Message, tt.want) {
				t.Errorf("Message = %q, want mention of %q", appErr.Message, tt.want)
			}
			if availRepo.replaceCalls != 0 {
				t.Error("invalid slots must not be stored")
			}
		})
	}
}

func TestListRejectsUnknownRoleFilter(t *testing.T) {
	svc, _, interventionRepo, _ := submitFixture(interventionentity.StatusEnAttente)
	claims := &utils.TokenClaims{UserID: uuid.New(), Role: "tenant"}

	_, appErr := svc.List(context.Background(), claims, interventionRepo.intervention.ID, "admin")
	if appErr == nil {
		t.Fatal("expected an error for an unknown role filter")
	}
	if appErr.Code != errors.ErrInvalidInput {
		t.Errorf("Code = %v, want ErrInvalidInput", appErr.Code)
	}
}
