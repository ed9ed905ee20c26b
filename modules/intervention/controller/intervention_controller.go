package controller

import (
	"gestimmo-api/core/constants"
	"gestimmo-api/core/controller"
	"gestimmo-api/core/errors"
	"gestimmo-api/core/utils"
	"gestimmo-api/modules/intervention/dto"
	"gestimmo-api/modules/intervention/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// InterventionController handles intervention HTTP requests.
type InterventionController struct {
	controller.BaseController
	InterventionService service.InterventionServiceInterface
}

func NewInterventionController(svc service.InterventionServiceInterface) *InterventionController {
	return &InterventionController{
		BaseController:      controller.NewBaseController(),
		InterventionService: svc,
	}
}

func (c *InterventionController) claimsFromContext(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}
	return claims, nil
}

// Create handles POST /interventions
// @Summary Create an intervention
// @Tags Intervention
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateInterventionRequest true "Intervention details"
// @Success 200 {object} dto.InterventionResponse
// @Router /private/interventions [post]
func (c *InterventionController) Create(ctx echo.Context) error {
	claims, err := c.claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateInterventionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.InterventionService.Create(ctx.Request().Context(), claims, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Intervention created successfully")
}

// Get handles GET /interventions/:id
// @Summary Get an intervention
// @Tags Intervention
// @Security BearerAuth
// @Produce json
// @Param id path string true "Intervention ID"
// @Success 200 {object} dto.InterventionResponse
// @Router /private/interventions/{id} [get]
func (c *InterventionController) Get(ctx echo.Context) error {
	claims, err := c.claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	result, appErr := c.InterventionService.GetByID(ctx.Request().Context(), claims, id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListMine handles GET /interventions
// @Summary List my interventions
// @Tags Intervention
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.InterventionResponse
// @Router /private/interventions [get]
func (c *InterventionController) ListMine(ctx echo.Context) error {
	claims, err := c.claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.InterventionService.ListMine(ctx.Request().Context(), claims)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// Update handles PUT /interventions/:id
// @Summary Update an intervention
// @Tags Intervention
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Intervention ID"
// @Param request body dto.UpdateInterventionRequest true "Fields to update"
// @Success 200 {object} dto.InterventionResponse
// @Router /private/interventions/{id} [put]
func (c *InterventionController) Update(ctx echo.Context) error {
	claims, err := c.claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	var req dto.UpdateInterventionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.InterventionService.Update(ctx.Request().Context(), claims, id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Intervention updated successfully")
}

// Cancel handles DELETE /interventions/:id
// @Summary Cancel an intervention
// @Tags Intervention
// @Security BearerAuth
// @Param id path string true "Intervention ID"
// @Success 200
// @Router /private/interventions/{id} [delete]
func (c *InterventionController) Cancel(ctx echo.Context) error {
	claims, err := c.claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	if appErr := c.InterventionService.Cancel(ctx.Request().Context(), claims, id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Intervention cancelled")
}

// AssignProvider handles POST /interventions/:id/assign
// @Summary Assign a provider
// @Tags Intervention
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Intervention ID"
// @Param request body dto.AssignProviderRequest true "Provider"
// @Success 200 {object} dto.InterventionResponse
// @Router /private/interventions/{id}/assign [post]
func (c *InterventionController) AssignProvider(ctx echo.Context) error {
	claims, err := c.claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	var req dto.AssignProviderRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.InterventionService.AssignProvider(ctx.Request().Context(), claims, id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Provider assigned")
}

// UnassignProvider handles DELETE /interventions/:id/assign/:userId
// @Summary Unassign a provider
// @Tags Intervention
// @Security BearerAuth
// @Param id path string true "Intervention ID"
// @Param userId path string true "Provider ID"
// @Success 200
// @Router /private/interventions/{id}/assign/{userId} [delete]
func (c *InterventionController) UnassignProvider(ctx echo.Context) error {
	claims, err := c.claimsFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	providerID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid provider ID")
	}

	if appErr := c.InterventionService.UnassignProvider(ctx.Request().Context(), claims, id, providerID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Provider unassigned")
}
