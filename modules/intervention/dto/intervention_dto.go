package dto

import (
	"time"

	"gestimmo-api/core/utils"
	"gestimmo-api/modules/intervention/entity"
)

// ===================== Request DTOs =====================

type CreateInterventionRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Address     string `json:"address" validate:"required,max=500"`
	TenantID    string `json:"tenant_id"` // required when a manager creates on behalf of a tenant
}

type UpdateInterventionRequest struct {
	Title       string `json:"title" validate:"omitempty,max=255"`
	Description string `json:"description"`
	Address     string `json:"address" validate:"omitempty,max=500"`
}

type AssignProviderRequest struct {
	ProviderID string `json:"provider_id" validate:"required,uuid"`
}

// ===================== Response DTOs =====================

type InterventionResponse struct {
	ID            string               `json:"id"`
	Reference     string               `json:"reference"`
	Title         string               `json:"title"`
	Description   string               `json:"description,omitempty"`
	Address       string               `json:"address"`
	TenantID      string               `json:"tenant_id"`
	ManagerID     string               `json:"manager_id,omitempty"`
	Status        string               `json:"status"`
	ScheduledDate string               `json:"scheduled_date,omitempty"`
	ScheduledTime string               `json:"scheduled_time,omitempty"`
	Providers     []AssignmentResponse `json:"providers,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

type AssignmentResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// ===================== Mapper Functions =====================

func ToInterventionResponse(iv *entity.Intervention, assignments []entity.Assignment) *InterventionResponse {
	resp := &InterventionResponse{
		ID:        iv.ID.String(),
		Reference: iv.Reference,
		Title:     iv.Title,
		Address:   iv.Address,
		TenantID:  iv.TenantID.String(),
		Status:    string(iv.Status),
		CreatedAt: iv.CreatedAt,
	}

	if iv.Description != nil {
		resp.Description = *iv.Description
	}
	if iv.ManagerID != nil {
		resp.ManagerID = iv.ManagerID.String()
	}
	if iv.ScheduledDate != nil {
		resp.ScheduledDate = iv.ScheduledDate.Format(utils.DateLayout)
	}
	if iv.ScheduledTime != nil {
		resp.ScheduledTime = *iv.ScheduledTime
	}

	for _, a := range assignments {
		resp.Providers = append(resp.Providers, AssignmentResponse{
			UserID: a.UserID.String(),
			Role:   a.Role,
		})
	}

	return resp
}
