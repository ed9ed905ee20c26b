package service

import (
	"gestimmo-api/modules/matching/entity"
)

// Classification thresholds. The tiers deliberately overlap: a perfect match
// also satisfies the partial and suggestion criteria, and callers pick by
// tier precedence rather than exclusivity.
const (
	perfectScoreMin    = 85
	perfectDurationMin = 120

	partialScoreMin    = 60
	partialDurationMin = 60
	partialLimit       = 5

	suggestionDurationMin = 30
	suggestionLimit       = 10
)

// MatchClassifier partitions scored candidates into confidence tiers.
type MatchClassifier struct{}

func NewMatchClassifier() *MatchClassifier {
	return &MatchClassifier{}
}

// Classify expects candidates sorted by score descending. It returns at most
// one perfect match, the top partial matches and the top suggestions.
func (c *MatchClassifier) Classify(sorted []entity.CandidateMatch) (perfect *entity.CandidateMatch, partial, suggestions []entity.CandidateMatch) {
	for i := range sorted {
		m := sorted[i]

		if perfect == nil && m.Score >= perfectScoreMin && m.DurationMinutes >= perfectDurationMin {
			picked := m
			perfect = &picked
		}

		if len(partial) < partialLimit && m.Score >= partialScoreMin && m.DurationMinutes >= partialDurationMin {
			partial = append(partial, m)
		}

		if len(suggestions) < suggestionLimit && m.DurationMinutes >= suggestionDurationMin {
			suggestions = append(suggestions, m)
		}
	}

	return perfect, partial, suggestions
}
