package service

import (
	"time"
)

// Scoring weights. The three components are additive so a weak dimension
// cannot zero out an otherwise good slot; duration dominates because longer
// windows carry less risk of running over.
const (
	maxScore = 100

	businessHoursStart = 9
	businessHoursEnd   = 17
	extendedHoursStart = 8
	extendedHoursEnd   = 18
)

// MatchScorer converts a candidate overlap into a 0-100 confidence score.
type MatchScorer struct{}

func NewMatchScorer() *MatchScorer {
	return &MatchScorer{}
}

// Score combines duration, date proximity and time-of-day into a single
// confidence value. referenceDate is "now" for proximity purposes;
// startMinute is the overlap's start, used for the time-of-day component.
func (s *MatchScorer) Score(durationMinutes int, candidateDate, referenceDate time.Time, startMinute int) int {
	score := s.durationComponent(durationMinutes) +
		s.proximityComponent(candidateDate, referenceDate) +
		s.timeOfDayComponent(startMinute)

	if score > maxScore {
		score = maxScore
	}
	return score
}

// durationComponent rewards longer overlaps, 0-60 points.
func (s *MatchScorer) durationComponent(durationMinutes int) int {
	switch {
	case durationMinutes >= 240:
		return 60
	case durationMinutes >= 180:
		return 50
	case durationMinutes >= 120:
		return 40
	case durationMinutes >= 60:
		return 25
	default:
		return 10
	}
}

// proximityComponent rewards slots close to the reference date, 0-25 points.
func (s *MatchScorer) proximityComponent(candidateDate, referenceDate time.Time) int {
	days := daysBetween(candidateDate, referenceDate)
	switch {
	case days <= 7:
		return 25
	case days <= 14:
		return 20
	case days <= 30:
		return 15
	default:
		return 5
	}
}

// timeOfDayComponent softly penalizes unusual hours without disqualifying
// them, 0-15 points. The hour is taken from the overlap's actual start.
func (s *MatchScorer) timeOfDayComponent(startMinute int) int {
	hour := startMinute / 60
	switch {
	case hour >= businessHoursStart && hour < businessHoursEnd:
		return 15
	case hour >= extendedHoursStart && hour < extendedHoursEnd:
		return 10
	default:
		return 5
	}
}

// daysBetween returns the absolute number of calendar days between two dates,
// ignoring time-of-day.
func daysBetween(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)

	diff := int(ad.Sub(bd).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}
