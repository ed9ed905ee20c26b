package controller

import (
	"gestimmo-api/core/constants"
	"gestimmo-api/core/controller"
	"gestimmo-api/core/errors"
	"gestimmo-api/core/utils"
	"gestimmo-api/modules/matching/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MatchingController handles matching HTTP requests.
type MatchingController struct {
	controller.BaseController
	MatchingService service.MatchingServiceInterface
}

func NewMatchingController(svc service.MatchingServiceInterface) *MatchingController {
	return &MatchingController{
		BaseController:  controller.NewBaseController(),
		MatchingService: svc,
	}
}

func (c *MatchingController) claimsFromContext(ctx echo.Context) (*utils.TokenClaims, bool) {
	claims, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenClaims)
	return claims, ok
}

// ComputeMatches handles POST /interventions/:id/match
// @Summary Recompute availability matches
// @Description Runs the matching engine on the current tenant and provider availabilities
// @Tags Matching
// @Security BearerAuth
// @Produce json
// @Param id path string true "Intervention ID"
// @Success 200 {object} dto.MatchingResultResponse
// @Router /private/interventions/{id}/match [post]
func (c *MatchingController) ComputeMatches(ctx echo.Context) error {
	claims, ok := c.claimsFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	result, appErr := c.MatchingService.ComputeMatches(ctx.Request().Context(), claims, id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Matching computed")
}

// GetMatches handles GET /interventions/:id/matches
// @Summary List stored candidate matches
// @Tags Matching
// @Security BearerAuth
// @Produce json
// @Param id path string true "Intervention ID"
// @Success 200 {array} dto.StoredMatchResponse
// @Router /private/interventions/{id}/matches [get]
func (c *MatchingController) GetMatches(ctx echo.Context) error {
	claims, ok := c.claimsFromContext(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid intervention ID")
	}

	result, appErr := c.MatchingService.GetStoredMatches(ctx.Request().Context(), claims, id)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
