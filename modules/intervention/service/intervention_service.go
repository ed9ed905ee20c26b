package service

import (
	"context"
	"fmt"

	"gestimmo-api/core/errors"
	"gestimmo-api/core/logger"
	"gestimmo-api/core/utils"
	authentity "gestimmo-api/modules/auth/entity"
	authrepository "gestimmo-api/modules/auth/repository"
	"gestimmo-api/modules/intervention/dto"
	"gestimmo-api/modules/intervention/entity"
	"gestimmo-api/modules/intervention/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// InterventionService handles intervention business logic.
type InterventionService struct {
	repo     repository.InterventionRepositoryInterface
	userRepo authrepository.UserRepositoryInterface
}

// InterventionServiceInterface defines the service contract.
type InterventionServiceInterface interface {
	Create(ctx context.Context, claims *utils.TokenClaims, req *dto.CreateInterventionRequest) (*dto.InterventionResponse, *errors.AppError)
	GetByID(ctx context.Context, claims *utils.TokenClaims, id uuid.UUID) (*dto.InterventionResponse, *errors.AppError)
	ListMine(ctx context.Context, claims *utils.TokenClaims) ([]dto.InterventionResponse, *errors.AppError)
	Update(ctx context.Context, claims *utils.TokenClaims, id uuid.UUID, req *dto.UpdateInterventionRequest) (*dto.InterventionResponse, *errors.AppError)
	Cancel(ctx context.Context, claims *utils.TokenClaims, id uuid.UUID) *errors.AppError
	AssignProvider(ctx context.Context, claims *utils.TokenClaims, id uuid.UUID, req *dto.AssignProviderRequest) (*dto.InterventionResponse, *errors.AppError)
	UnassignProvider(ctx context.Context, claims *utils.TokenClaims, id, providerID uuid.UUID) *errors.AppError
}

func NewInterventionService(repo repository.InterventionRepositoryInterface, userRepo authrepository.UserRepositoryInterface) InterventionServiceInterface {
	return &InterventionService{repo: repo, userRepo: userRepo}
}

// Create opens a new intervention. A tenant creates it for themselves; a
// manager creates it on behalf of a tenant.
func (s *InterventionService) Create(ctx context.Context, claims *utils.TokenClaims, req *dto.CreateInterventionRequest) (*dto.InterventionResponse, *errors.AppError) {
	var tenantID uuid.UUID
	var managerID *uuid.UUID

	switch authentity.UserRole(claims.Role) {
	case authentity.UserRoleTenant:
		tenantID = claims.UserID
	case authentity.UserRoleManager:
		parsed, err := uuid.Parse(req.TenantID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "tenant_id est requis pour un gestionnaire", err)
		}
		tenant, err := s.userRepo.GetUserByID(ctx, parsed)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load tenant", err)
		}
		if tenant == nil || tenant.Role != authentity.UserRoleTenant {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "Le compte indiqué n'est pas un locataire", nil)
		}
		tenantID = parsed
		id := claims.UserID
		managerID = &id
	default:
		return nil, errors.NewAppError(errors.ErrForbidden, "Seuls un locataire ou un gestionnaire peuvent créer une intervention", nil)
	}

	iv := &entity.Intervention{
		Reference: fmt.Sprintf("%s-%s", utils.GenerateID(), slug.Make(req.Title)),
		Title:     req.Title,
		Address:   req.Address,
		TenantID:  tenantID,
		ManagerID: managerID,
		Status:    entity.StatusEnAttente,
	}
	if req.Description != "" {
		iv.Description = &req.Description
	}

	created, err := s.repo.Create(ctx, iv)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create intervention", err)
	}

	logger.Info("InterventionService:Create:Success", "intervention_id", created.ID, "reference", created.Reference)
	return dto.ToInterventionResponse(created, nil), nil
}

// GetByID returns an intervention visible to the caller.
func (s *InterventionService) GetByID(ctx context.Context, claims *utils.TokenClaims, id uuid.UUID) (*dto.InterventionResponse, *errors.AppError) {
	iv, appErr := s.loadForParticipant(ctx, claims, id)
	if appErr != nil {
		return nil, appErr
	}

	assignments, _ := s.repo.GetAssignments(ctx, id)
	return dto.ToInterventionResponse(iv, assignments), nil
}

// ListMine returns the caller's interventions.
func (s *InterventionService) ListMine(ctx context.Context, claims *utils.TokenClaims) ([]dto.InterventionResponse, *errors.AppError) {
	items, err := s.repo.ListByUser(ctx, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to list interventions", err)
	}

	result := make([]dto.InterventionResponse, 0, len(items))
	for _, iv := range items {
		assignments, _ := s.repo.GetAssignments(ctx, iv.ID)
		result = append(result, *dto.ToInterventionResponse(&iv, assignments))
	}

	return result, nil
}

// Update edits intervention details. Tenant owner or manager only.
func (s *InterventionService) Update(ctx context.Context, claims *utils.TokenClaims, id uuid.UUID, req *dto.UpdateInterventionRequest) (*dto.InterventionResponse, *errors.AppError) {
	iv, appErr := s.loadForOwner(ctx, claims, id)
	if appErr != nil {
		return nil, appErr
	}

	if req.Title != "" {
		iv.Title = req.Title
	}
	if req.Description != "" {
		iv.Description = &req.Description
	}
	if req.Address != "" {
		iv.Address = req.Address
	}

	if err := s.repo.Update(ctx, iv); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to update intervention", err)
	}

	return s.GetByID(ctx, claims, id)
}

// Cancel marks an intervention as cancelled.
func (s *InterventionService) Cancel(ctx context.Context, claims *utils.TokenClaims, id uuid.UUID) *errors.AppError {
	iv, appErr := s.loadForOwner(ctx, claims, id)
	if appErr != nil {
		return appErr
	}

	if iv.Status == entity.StatusTerminee {
		return errors.NewAppError(errors.ErrInvalidInput, "Une intervention terminée ne peut pas être annulée", nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, entity.StatusAnnulee); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to cancel intervention", err)
	}
	return nil
}

// AssignProvider attaches a provider to the intervention. Manager only.
func (s *InterventionService) AssignProvider(ctx context.Context, claims *utils.TokenClaims, id uuid.UUID, req *dto.AssignProviderRequest) (*dto.InterventionResponse, *errors.AppError) {
	if authentity.UserRole(claims.Role) != authentity.UserRoleManager {
		return nil, errors.NewAppError(errors.ErrForbidden, "Seul un gestionnaire peut affecter un prestataire", nil)
	}

	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load intervention", err)
	}
	if iv == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Intervention introuvable", nil)
	}

	providerID, parseErr := uuid.Parse(req.ProviderID)
	if parseErr != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "provider_id invalide", parseErr)
	}

	provider, err := s.userRepo.GetUserByID(ctx, providerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load provider", err)
	}
	if provider == nil || provider.Role != authentity.UserRoleProvider {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Le compte indiqué n'est pas un prestataire", nil)
	}

	assignment := &entity.Assignment{
		InterventionID: id,
		UserID:         providerID,
		Role:           string(authentity.UserRoleProvider),
	}
	if err := s.repo.AddAssignment(ctx, assignment); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to assign provider", err)
	}

	logger.Info("InterventionService:AssignProvider:Success", "intervention_id", id, "provider_id", providerID)
	return s.GetByID(ctx, claims, id)
}

// UnassignProvider removes a provider from the intervention. Manager only.
func (s *InterventionService) UnassignProvider(ctx context.Context, claims *utils.TokenClaims, id, providerID uuid.UUID) *errors.AppError {
	if authentity.UserRole(claims.Role) != authentity.UserRoleManager {
		return errors.NewAppError(errors.ErrForbidden, "Seul un gestionnaire peut retirer un prestataire", nil)
	}

	if err := s.repo.RemoveAssignment(ctx, id, providerID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "Failed to unassign provider", err)
	}
	return nil
}

// loadForParticipant fetches the intervention and checks membership.
func (s *InterventionService) loadForParticipant(ctx context.Context, claims *utils.TokenClaims, id uuid.UUID) (*entity.Intervention, *errors.AppError) {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load intervention", err)
	}
	if iv == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Intervention introuvable", nil)
	}

	ok, err := s.repo.IsParticipant(ctx, id, claims.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check membership", err)
	}
	if !ok {
		return nil, errors.NewAppError(errors.ErrForbidden, "Vous ne participez pas à cette intervention", nil)
	}

	return iv, nil
}

// loadForOwner restricts edits to the tenant who opened the intervention or
// its manager.
func (s *InterventionService) loadForOwner(ctx context.Context, claims *utils.TokenClaims, id uuid.UUID) (*entity.Intervention, *errors.AppError) {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load intervention", err)
	}
	if iv == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Intervention introuvable", nil)
	}

	isTenantOwner := iv.TenantID == claims.UserID
	isManager := iv.ManagerID != nil && *iv.ManagerID == claims.UserID ||
		authentity.UserRole(claims.Role) == authentity.UserRoleManager
	if !isTenantOwner && !isManager {
		return nil, errors.NewAppError(errors.ErrForbidden, "Vous ne pouvez pas modifier cette intervention", nil)
	}

	return iv, nil
}
