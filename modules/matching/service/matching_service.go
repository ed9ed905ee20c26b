package service

import (
	"context"
	"fmt"
	"time"

	"gestimmo-api/core/errors"
	"gestimmo-api/core/logger"
	"gestimmo-api/core/tasks"
	"gestimmo-api/core/utils"
	authentity "gestimmo-api/modules/auth/entity"
	availentity "gestimmo-api/modules/availability/entity"
	availrepository "gestimmo-api/modules/availability/repository"
	interventionentity "gestimmo-api/modules/intervention/entity"
	interventionrepository "gestimmo-api/modules/intervention/repository"
	"gestimmo-api/modules/matching/dto"
	"gestimmo-api/modules/matching/entity"
	"gestimmo-api/modules/matching/repository"

	"github.com/google/uuid"
)

const (
	lockTTL     = 15 * time.Second
	lockMaxWait = 5 * time.Second
)

// interventionLocker serializes the rematch pipeline per intervention.
type interventionLocker interface {
	AcquireWait(ctx context.Context, key string, ttl, maxWait time.Duration) (string, bool, error)
	Release(ctx context.Context, key, token string) error
}

// notificationEnqueuer queues the match notification task.
type notificationEnqueuer interface {
	EnqueueMatchNotification(ctx context.Context, p tasks.MatchNotificationPayload) error
}

// MatchingService orchestrates the availability-matching engine: it loads
// declarations, runs the engine, persists the computed candidates and drives
// the status transition when a perfect match exists.
type MatchingService struct {
	repo             repository.MatchingRepositoryInterface
	availRepo        availrepository.AvailabilityRepositoryInterface
	interventionRepo interventionrepository.InterventionRepositoryInterface
	locker           interventionLocker
	enqueuer         notificationEnqueuer
	engine           *MatchingEngine
}

// MatchingServiceInterface defines the service contract.
type MatchingServiceInterface interface {
	// RunMatching executes the full rematch pipeline for an intervention.
	// Invoked after every availability submission; persistence and status
	// transition failures are logged and never propagated.
	RunMatching(ctx context.Context, interventionID uuid.UUID) *entity.MatchingResult

	ComputeMatches(ctx context.Context, claims *utils.TokenClaims, interventionID uuid.UUID) (*dto.MatchingResultResponse, *errors.AppError)
	GetStoredMatches(ctx context.Context, claims *utils.TokenClaims, interventionID uuid.UUID) ([]dto.StoredMatchResponse, *errors.AppError)
}

func NewMatchingService(
	repo repository.MatchingRepositoryInterface,
	availRepo availrepository.AvailabilityRepositoryInterface,
	interventionRepo interventionrepository.InterventionRepositoryInterface,
	locker interventionLocker,
	enqueuer notificationEnqueuer,
) MatchingServiceInterface {
	return &MatchingService{
		repo:             repo,
		availRepo:        availRepo,
		interventionRepo: interventionRepo,
		locker:           locker,
		enqueuer:         enqueuer,
		engine:           NewMatchingEngine(),
	}
}

// RunMatching serializes the rematch behind a per-intervention lock so two
// participants submitting at the same time cannot compute against half-
// replaced sets or fire the transition twice. Lock failure degrades to an
// unserialized run rather than failing the submission.
func (s *MatchingService) RunMatching(ctx context.Context, interventionID uuid.UUID) *entity.MatchingResult {
	key := fmt.Sprintf("matching:intervention:%s", interventionID)

	token, acquired, err := s.locker.AcquireWait(ctx, key, lockTTL, lockMaxWait)
	if err != nil {
		logger.Warn("MatchingService:RunMatching:LockUnavailable", "intervention_id", interventionID, "error", err)
	}
	if acquired {
		defer func() {
			if err := s.locker.Release(ctx, key, token); err != nil {
				logger.Warn("MatchingService:RunMatching:ReleaseFailed", "intervention_id", interventionID, "error", err)
			}
		}()
	}

	return s.rematch(ctx, interventionID)
}

func (s *MatchingService) rematch(ctx context.Context, interventionID uuid.UUID) *entity.MatchingResult {
	tenantRows, err := s.availRepo.ListByIntervention(ctx, interventionID, string(authentity.UserRoleTenant))
	if err != nil {
		logger.Error("MatchingService:Rematch:LoadTenant", "intervention_id", interventionID, "error", err)
		return &entity.MatchingResult{Success: false, Message: msgNoCompatibleSlot}
	}

	providerRows, err := s.availRepo.ListByIntervention(ctx, interventionID, string(authentity.UserRoleProvider))
	if err != nil {
		logger.Error("MatchingService:Rematch:LoadProvider", "intervention_id", interventionID, "error", err)
		return &entity.MatchingResult{Success: false, Message: msgNoCompatibleSlot}
	}

	result := s.engine.Match(toSlots(tenantRows), toSlots(providerRows))

	// Persist the computed candidate set for later reference. Best-effort:
	// a failed write must not invalidate the submission that triggered us.
	if err := s.repo.ReplaceMatches(ctx, interventionID, toStoredMatches(interventionID, result.Suggestions)); err != nil {
		logger.Error("MatchingService:Rematch:Persist", "intervention_id", interventionID, "error", err)
	}

	if result.PerfectMatch != nil {
		s.transitionToScheduled(ctx, interventionID, result.PerfectMatch)
	}

	logger.Info("MatchingService:Rematch:Done",
		"intervention_id", interventionID,
		"success", result.Success,
		"perfect", result.PerfectMatch != nil,
		"partial", len(result.PartialMatches),
		"suggestions", len(result.Suggestions),
	)

	return result
}

// transitionToScheduled advances the intervention to planifiee and records
// the chosen slot. Fires at most once: an already scheduled (or closed)
// intervention is left untouched.
func (s *MatchingService) transitionToScheduled(ctx context.Context, interventionID uuid.UUID, match *entity.CandidateMatch) {
	iv, err := s.interventionRepo.GetByID(ctx, interventionID)
	if err != nil || iv == nil {
		logger.Error("MatchingService:Transition:Load", "intervention_id", interventionID, "error", err)
		return
	}

	switch iv.Status {
	case interventionentity.StatusPlanifiee, interventionentity.StatusTerminee, interventionentity.StatusAnnulee:
		return
	}

	startTime := utils.FormatMinuteOfDay(match.OverlapStart)
	if err := s.interventionRepo.UpdateSchedule(ctx, interventionID, interventionentity.StatusPlanifiee, match.Date, startTime); err != nil {
		logger.Error("MatchingService:Transition:UpdateSchedule", "intervention_id", interventionID, "error", err)
		return
	}

	logger.Info("MatchingService:Transition:Scheduled",
		"intervention_id", interventionID,
		"date", match.Date.Format(utils.DateLayout),
		"time", startTime,
	)

	userIDs := []uuid.UUID{match.TenantID, match.ProviderID}
	if iv.ManagerID != nil {
		userIDs = append(userIDs, *iv.ManagerID)
	}

	payload := tasks.MatchNotificationPayload{
		InterventionID: interventionID,
		UserIDs:        userIDs,
		Date:           match.Date.Format(utils.DateLayout),
		StartTime:      startTime,
		EndTime:        utils.FormatMinuteOfDay(match.OverlapEnd),
	}
	if err := s.enqueuer.EnqueueMatchNotification(ctx, payload); err != nil {
		logger.Error("MatchingService:Transition:Enqueue", "intervention_id", interventionID, "error", err)
	}
}

// ComputeMatches recomputes matches on demand for a participant. It runs the
// same pipeline as a submission trigger, including persistence, but an
// already scheduled intervention is never re-transitioned.
func (s *MatchingService) ComputeMatches(ctx context.Context, claims *utils.TokenClaims, interventionID uuid.UUID) (*dto.MatchingResultResponse, *errors.AppError) {
	if appErr := s.checkParticipant(ctx, claims, interventionID); appErr != nil {
		return nil, appErr
	}

	result := s.RunMatching(ctx, interventionID)
	return dto.ToMatchingResultResponse(result), nil
}

// GetStoredMatches returns the persisted candidate set.
func (s *MatchingService) GetStoredMatches(ctx context.Context, claims *utils.TokenClaims, interventionID uuid.UUID) ([]dto.StoredMatchResponse, *errors.AppError) {
	if appErr := s.checkParticipant(ctx, claims, interventionID); appErr != nil {
		return nil, appErr
	}

	rows, err := s.repo.GetMatchesByInterventionID(ctx, interventionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load matches", err)
	}

	result := make([]dto.StoredMatchResponse, 0, len(rows))
	for i := range rows {
		result = append(result, *dto.ToStoredMatchResponse(&rows[i]))
	}
	return result, nil
}

func (s *MatchingService) checkParticipant(ctx context.Context, claims *utils.TokenClaims, interventionID uuid.UUID) *errors.AppError {
	iv, err := s.interventionRepo.GetByID(ctx, interventionID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to load intervention", err)
	}
	if iv == nil {
		return errors.NewAppError(errors.ErrNotFound, "Intervention introuvable", nil)
	}

	ok, err := s.interventionRepo.IsParticipant(ctx, interventionID, claims.UserID)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
	}
	if !ok {
		return errors.NewAppError(errors.ErrForbidden, "Vous ne participez pas à cette intervention", nil)
	}
	return nil
}

func toSlots(rows []availentity.Availability) []entity.AvailabilitySlot {
	slots := make([]entity.AvailabilitySlot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, entity.AvailabilitySlot{
			UserID:      row.UserID,
			Date:        row.Date,
			StartMinute: row.StartMinute,
			EndMinute:   row.EndMinute,
		})
	}
	return slots
}

func toStoredMatches(interventionID uuid.UUID, matches []entity.CandidateMatch) []entity.InterventionMatch {
	rows := make([]entity.InterventionMatch, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, entity.InterventionMatch{
			InterventionID:  interventionID,
			MatchDate:       m.Date,
			StartMinute:     m.OverlapStart,
			EndMinute:       m.OverlapEnd,
			DurationMinutes: m.DurationMinutes,
			TenantID:        m.TenantID,
			ProviderID:      m.ProviderID,
			Score:           m.Score,
		})
	}
	return rows
}
