package controller

import (
	"gestimmo-api/core/constants"
	"gestimmo-api/core/controller"
	"gestimmo-api/core/errors"
	"gestimmo-api/core/utils"
	"gestimmo-api/modules/availability/dto"
	"gestimmo-api/modules/availability/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AvailabilityController handles availability HTTP requests.
type AvailabilityController struct {
	controller.BaseController
	AvailabilityService service.AvailabilityServiceInterface
}

func NewAvailabilityController(svc service.AvailabilityServiceInterface) *AvailabilityController {
	return &AvailabilityController{
		BaseController:      controller.NewBaseController(),
		AvailabilityService: svc,
	}
}

func (c *AvailabilityController) claimsFromContext(ctx echo.Context) (*utils.TokenClaims, bool) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	return claims, ok
}

// Submit handles PUT /interventions/:id/availabilities
// @Summary Submit availabilities
// @Description Replaces the caller's full availability set for the intervention and triggers matching
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Intervention ID"
// @Param request body dto.SubmitAvailabilitiesRequest true "Availability windows"
// @Success 200 {object} dto.SubmitAvailabilitiesResponse
// @Router /private/interventions/{id}/availabilities [put]
func (c *AvailabilityController) Submit(ctx echo.Context) error {
	claims, ok := c.claimsFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	var req dto.SubmitAvailabilitiesRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, err.Error())
	}

	result, appErr := c.AvailabilityService.Submit(ctx.Request().Context(), claims, id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Availabilities saved")
}

// List handles GET /interventions/:id/availabilities
// @Summary List availabilities
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Intervention ID"
// @Param role query string false "Filter by role (tenant|provider)"
// @Success 200 {array} dto.AvailabilityResponse
// @Router /private/interventions/{id}/availabilities [get]
func (c *AvailabilityController) List(ctx echo.Context) error {
	claims, ok := c.claimsFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	result, appErr := c.AvailabilityService.List(ctx.Request().Context(), claims, id, ctx.QueryParam("role"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
