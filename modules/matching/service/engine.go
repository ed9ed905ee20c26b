package service

import (
	"fmt"
	"sort"
	"time"

	"gestimmo-api/core/utils"
	"gestimmo-api/modules/matching/entity"
)

// Engine result messages, surfaced directly to clients.
const (
	msgNoTenantAvailability   = "Aucune disponibilité renseignée par le locataire. Veuillez saisir vos créneaux."
	msgNoProviderAvailability = "Aucune disponibilité renseignée par le prestataire pour cette intervention."
	msgNoCompatibleSlot       = "Aucun créneau compatible. Ajustez vos disponibilités."
)

// MatchingEngine computes, scores and classifies overlaps between tenant and
// provider availability declarations. Pure computation: no I/O, no clock
// reads beyond the injected now func.
type MatchingEngine struct {
	scorer     *MatchScorer
	classifier *MatchClassifier
	now        func() time.Time
}

func NewMatchingEngine() *MatchingEngine {
	return &MatchingEngine{
		scorer:     NewMatchScorer(),
		classifier: NewMatchClassifier(),
		now:        time.Now,
	}
}

// Match pairs every tenant slot with every provider slot on the same date,
// scores the resulting overlaps and classifies them into confidence tiers.
// The pairwise scan is O(T×P); both sets are human-entered windows for a
// single intervention, so they stay small.
func (e *MatchingEngine) Match(tenantSlots, providerSlots []entity.AvailabilitySlot) *entity.MatchingResult {
	if len(tenantSlots) == 0 {
		return &entity.MatchingResult{
			Success: false,
			Message: msgNoTenantAvailability,
		}
	}
	if len(providerSlots) == 0 {
		return &entity.MatchingResult{
			Success: false,
			Message: msgNoProviderAvailability,
		}
	}

	reference := e.now()

	var candidates []entity.CandidateMatch
	for _, tenant := range tenantSlots {
		for _, provider := range providerSlots {
			if !sameDate(tenant.Date, provider.Date) {
				continue
			}

			overlap := tenant.Interval().Overlap(provider.Interval())
			duration := overlap.Duration()
			if duration <= 0 {
				continue
			}

			score := e.scorer.Score(duration, tenant.Date, reference, overlap.StartMinute)
			candidates = append(candidates, entity.CandidateMatch{
				Date:            tenant.Date,
				OverlapStart:    overlap.StartMinute,
				OverlapEnd:      overlap.EndMinute,
				DurationMinutes: duration,
				TenantID:        tenant.UserID,
				ProviderID:      provider.UserID,
				Score:           score,
			})
		}
	}

	sortCandidates(candidates)

	perfect, partial, suggestions := e.classifier.Classify(candidates)

	result := &entity.MatchingResult{
		Success:        len(candidates) > 0,
		PerfectMatch:   perfect,
		PartialMatches: partial,
		Suggestions:    suggestions,
	}
	result.Message = buildMessage(result)

	return result
}

// sortCandidates orders by score descending with a deterministic secondary
// key so equal scores always come out in the same order.
func sortCandidates(candidates []entity.CandidateMatch) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.OverlapStart != b.OverlapStart {
			return a.OverlapStart < b.OverlapStart
		}
		if a.TenantID != b.TenantID {
			return a.TenantID.String() < b.TenantID.String()
		}
		return a.ProviderID.String() < b.ProviderID.String()
	})
}

// buildMessage picks the summary by tier precedence.
func buildMessage(r *entity.MatchingResult) string {
	switch {
	case r.PerfectMatch != nil:
		m := r.PerfectMatch
		return fmt.Sprintf("Créneau idéal trouvé le %s de %s à %s (%d minutes).",
			m.Date.Format("02/01/2006"),
			utils.FormatMinuteOfDay(m.OverlapStart),
			utils.FormatMinuteOfDay(m.OverlapEnd),
			m.DurationMinutes,
		)
	case len(r.PartialMatches) > 0:
		return fmt.Sprintf("%d créneau(x) compatible(s) trouvé(s). Une validation manuelle est recommandée.",
			len(r.PartialMatches))
	case len(r.Suggestions) > 0:
		return fmt.Sprintf("%d créneau(x) proche(s) trouvé(s). Une négociation entre les parties est nécessaire.",
			len(r.Suggestions))
	default:
		return msgNoCompatibleSlot
	}
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
