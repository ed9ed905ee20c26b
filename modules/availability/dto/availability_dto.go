package dto

import (
	"gestimmo-api/core/utils"
	"gestimmo-api/modules/availability/entity"
)

// ===================== Request DTOs =====================

// AvailabilitySlotInput is one declared window in a submission.
type AvailabilitySlotInput struct {
	Date      string `json:"date" validate:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" validate:"required"` // HH:MM
	EndTime   string `json:"end_time" validate:"required"`   // HH:MM
}

// SubmitAvailabilitiesRequest replaces the caller's full availability set for
// an intervention.
type SubmitAvailabilitiesRequest struct {
	Slots []AvailabilitySlotInput `json:"slots" validate:"required,min=1,dive"`
}

// ===================== Response DTOs =====================

type AvailabilityResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// SubmitAvailabilitiesResponse echoes the stored set plus the matching
// outcome message computed from it.
type SubmitAvailabilitiesResponse struct {
	Slots           []AvailabilityResponse `json:"slots"`
	MatchingMessage string                 `json:"matching_message,omitempty"`
}

// ===================== Mapper Functions =====================

func ToAvailabilityResponse(a *entity.Availability) AvailabilityResponse {
	return AvailabilityResponse{
		ID:        a.ID.String(),
		UserID:    a.UserID.String(),
		Role:      a.Role,
		Date:      a.Date.Format(utils.DateLayout),
		StartTime: utils.FormatMinuteOfDay(a.StartMinute),
		EndTime:   utils.FormatMinuteOfDay(a.EndMinute),
	}
}

func ToAvailabilityResponses(items []entity.Availability) []AvailabilityResponse {
	result := make([]AvailabilityResponse, 0, len(items))
	for i := range items {
		result = append(result, ToAvailabilityResponse(&items[i]))
	}
	return result
}
