package dto

import (
	"time"

	"gestimmo-api/core/utils"
	"gestimmo-api/modules/matching/entity"
)

// ===================== Response DTOs =====================

// CandidateMatchDTO is the wire form of one computed overlap.
type CandidateMatchDTO struct {
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	Participants    []string `json:"participants"` // [tenant, provider]
	OverlapDuration int      `json:"overlap_duration"`
	Score           int      `json:"score"`
}

// MatchingResultResponse is the engine output for one invocation.
type MatchingResultResponse struct {
	Success        bool                `json:"success"`
	PerfectMatch   *CandidateMatchDTO  `json:"perfect_match,omitempty"`
	PartialMatches []CandidateMatchDTO `json:"partial_matches"`
	Suggestions    []CandidateMatchDTO `json:"suggestions"`
	Message        string              `json:"message"`
}

// StoredMatchResponse is a previously persisted candidate match.
type StoredMatchResponse struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Participants    []string  `json:"participants"`
	OverlapDuration int       `json:"overlap_duration"`
	Score           int       `json:"score"`
	CreatedAt       time.Time `json:"created_at"`
}

// ===================== Mapper Functions =====================

func ToCandidateMatchDTO(m *entity.CandidateMatch) *CandidateMatchDTO {
	return &CandidateMatchDTO{
		Date:            m.Date.Format(utils.DateLayout),
		StartTime:       utils.FormatMinuteOfDay(m.OverlapStart),
		EndTime:         utils.FormatMinuteOfDay(m.OverlapEnd),
		Participants:    []string{m.TenantID.String(), m.ProviderID.String()},
		OverlapDuration: m.DurationMinutes,
		Score:           m.Score,
	}
}

func toCandidateMatchDTOs(matches []entity.CandidateMatch) []CandidateMatchDTO {
	result := make([]CandidateMatchDTO, 0, len(matches))
	for i := range matches {
		result = append(result, *ToCandidateMatchDTO(&matches[i]))
	}
	return result
}

func ToMatchingResultResponse(r *entity.MatchingResult) *MatchingResultResponse {
	resp := &MatchingResultResponse{
		Success:        r.Success,
		PartialMatches: toCandidateMatchDTOs(r.PartialMatches),
		Suggestions:    toCandidateMatchDTOs(r.Suggestions),
		Message:        r.Message,
	}
	if r.PerfectMatch != nil {
		resp.PerfectMatch = ToCandidateMatchDTO(r.PerfectMatch)
	}
	return resp
}

func ToStoredMatchResponse(m *entity.InterventionMatch) *StoredMatchResponse {
	return &StoredMatchResponse{
		ID:              m.ID.String(),
		Date:            m.MatchDate.Format(utils.DateLayout),
		StartTime:       utils.FormatMinuteOfDay(m.StartMinute),
		EndTime:         utils.FormatMinuteOfDay(m.EndMinute),
		Participants:    []string{m.TenantID.String(), m.ProviderID.String()},
		OverlapDuration: m.DurationMinutes,
		Score:           m.Score,
		CreatedAt:       m.CreatedAt,
	}
}
