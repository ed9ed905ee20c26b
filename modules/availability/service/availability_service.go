package service

import (
	"context"
	"fmt"

	"gestimmo-api/core/errors"
	"gestimmo-api/core/logger"
	"gestimmo-api/core/utils"
	authentity "gestimmo-api/modules/auth/entity"
	"gestimmo-api/modules/availability/dto"
	"gestimmo-api/modules/availability/entity"
	"gestimmo-api/modules/availability/repository"
	interventionentity "gestimmo-api/modules/intervention/entity"
	interventionrepository "gestimmo-api/modules/intervention/repository"
	matchingservice "gestimmo-api/modules/matching/service"

	"github.com/google/uuid"
)

// AvailabilityService handles availability submissions and triggers the
// matching pipeline after each one.
type AvailabilityService struct {
	repo             repository.AvailabilityRepositoryInterface
	interventionRepo interventionrepository.InterventionRepositoryInterface
	matchingSvc      matchingservice.MatchingServiceInterface
}

// AvailabilityServiceInterface defines the service contract.
type AvailabilityServiceInterface interface {
	Submit(ctx context.Context, claims *utils.TokenClaims, interventionID uuid.UUID, req *dto.SubmitAvailabilitiesRequest) (*dto.SubmitAvailabilitiesResponse, *errors.AppError)
	List(ctx context.Context, claims *utils.TokenClaims, interventionID uuid.UUID, roleFilter string) ([]dto.AvailabilityResponse, *errors.AppError)
}

func NewAvailabilityService(
	repo repository.AvailabilityRepositoryInterface,
	interventionRepo interventionrepository.InterventionRepositoryInterface,
	matchingSvc matchingservice.MatchingServiceInterface,
) AvailabilityServiceInterface {
	return &AvailabilityService{
		repo:             repo,
		interventionRepo: interventionRepo,
		matchingSvc:      matchingSvc,
	}
}

// Submit replaces the caller's full availability set for the intervention,
// then triggers rematching. The rematch and any status transition it causes
// are best-effort: once the slots are stored, the submission has succeeded.
func (s *AvailabilityService) Submit(ctx context.Context, claims *utils.TokenClaims, interventionID uuid.UUID, req *dto.SubmitAvailabilitiesRequest) (*dto.SubmitAvailabilitiesResponse, *errors.AppError) {
	role := authentity.UserRole(claims.Role)
	if role != authentity.UserRoleTenant && role != authentity.UserRoleProvider {
		return nil, errors.NewAppError(errors.ErrForbidden, "Seuls le locataire et le prestataire déclarent des disponibilités", nil)
	}

	iv, appErr := s.loadForParticipant(ctx, claims, interventionID)
	if appErr != nil {
		return nil, appErr
	}
	if iv.Status == interventionentity.StatusAnnulee || iv.Status == interventionentity.StatusTerminee {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Cette intervention n'accepte plus de disponibilités", nil)
	}

	slots, appErr := s.parseSlots(claims, interventionID, req.Slots)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.repo.ReplaceForUser(ctx, interventionID, claims.UserID, slots); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to save availabilities", err)
	}

	logger.Info("AvailabilityService:Submit:Stored",
		"intervention_id", interventionID,
		"user_id", claims.UserID,
		"role", claims.Role,
		"slots", len(slots),
	)

	if iv.Status == interventionentity.StatusEnAttente {
		if err := s.interventionRepo.UpdateStatus(ctx, interventionID, interventionentity.StatusDisponibilitesSoumises); err != nil {
			logger.Warn("AvailabilityService:Submit:StatusUpdate", "intervention_id", interventionID, "error", err)
		}
	}

	// In-process trigger; never fails the submission.
	result := s.matchingSvc.RunMatching(ctx, interventionID)

	stored, err := s.repo.ListByIntervention(ctx, interventionID, "")
	if err != nil {
		logger.Warn("AvailabilityService:Submit:Reload", "intervention_id", interventionID, "error", err)
	}

	resp := &dto.SubmitAvailabilitiesResponse{
		Slots: filterByUser(stored, claims.UserID),
	}
	if result != nil {
		resp.MatchingMessage = result.Message
	}
	return resp, nil
}

// List returns availabilities for an intervention, optionally filtered by
// role, to any participant.
func (s *AvailabilityService) List(ctx context.Context, claims *utils.TokenClaims, interventionID uuid.UUID, roleFilter string) ([]dto.AvailabilityResponse, *errors.AppError) {
	if _, appErr := s.loadForParticipant(ctx, claims, interventionID); appErr != nil {
		return nil, appErr
	}

	if roleFilter != "" &&
		roleFilter != string(authentity.UserRoleTenant) &&
		roleFilter != string(authentity.UserRoleProvider) {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Filtre de rôle invalide", nil)
	}

	items, err := s.repo.ListByIntervention(ctx, interventionID, roleFilter)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list availabilities", err)
	}

	return dto.ToAvailabilityResponses(items), nil
}

// parseSlots validates and converts the submitted windows. Input-shape errors
// are rejected here; the engine downstream assumes well-formed rows.
func (s *AvailabilityService) parseSlots(claims *utils.TokenClaims, interventionID uuid.UUID, inputs []dto.AvailabilitySlotInput) ([]entity.Availability, *errors.AppError) {
	slots := make([]entity.Availability, 0, len(inputs))

	for i, in := range inputs {
		date, err := utils.ParseDate(in.Date)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("Créneau %d: date invalide (attendu YYYY-MM-DD)", i+1), err)
		}

		start, err := utils.ParseMinuteOfDay(in.StartTime)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("Créneau %d: heure de début invalide (attendu HH:MM)", i+1), err)
		}

		end, err := utils.ParseMinuteOfDay(in.EndTime)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("Créneau %d: heure de fin invalide (attendu HH:MM)", i+1), err)
		}

		if start >= end {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("Créneau %d: l'heure de début doit précéder l'heure de fin", i+1), nil)
		}

		slots = append(slots, entity.Availability{
			InterventionID: interventionID,
			UserID:         claims.UserID,
			Role:           claims.Role,
			Date:           date,
			StartMinute:    start,
			EndMinute:      end,
		})
	}

	return slots, nil
}

func (s *AvailabilityService) loadForParticipant(ctx context.Context, claims *utils.TokenClaims, interventionID uuid.UUID) (*interventionentity.Intervention, *errors.AppError) {
	iv, err := s.interventionRepo.GetByID(ctx, interventionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load intervention", err)
	}
	if iv == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Intervention introuvable", nil)
	}

	ok, err := s.interventionRepo.IsParticipant(ctx, interventionID, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrForbidden, "Vous ne participez pas à cette intervention", nil)
	}

	return iv, nil
}

func filterByUser(items []entity.Availability, userID uuid.UUID) []dto.AvailabilityResponse {
	result := make([]dto.AvailabilityResponse, 0, len(items))
	for i := range items {
		if items[i].UserID == userID {
			result = append(result, dto.ToAvailabilityResponse(&items[i]))
		}
	}
	return result
}
