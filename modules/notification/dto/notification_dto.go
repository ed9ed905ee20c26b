package dto

// ===================== Request DTOs =====================

type MarkAsReadRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// ===================== Response DTOs =====================

type UnreadCountResponse struct {
	Count int `json:"count"`
}
