// Package srs implements SuperMemo-2 review scheduling for the word
// study queue.
package srs

import (
	"time"

	"github.com/henryli127-lang/volca/internal/domain"
)

// Quality grades a single review on the SM-2 0-5 scale.
type Quality int

const (
	// QualityBlackout: no recall at all.
	QualityBlackout Quality = 0
	// QualityIncorrect: wrong, but recognized the answer.
	QualityIncorrect Quality = 1
	// QualityIncorrectFamiliar: wrong, answer felt familiar.
	QualityIncorrectFamiliar Quality = 2
	// QualityCorrectDifficult: correct with significant effort.
	QualityCorrectDifficult Quality = 3
	// QualityCorrectHesitation: correct after hesitation.
	QualityCorrectHesitation Quality = 4
	// QualityPerfect: immediate correct recall.
	QualityPerfect Quality = 5
)

const (
	minEasiness = 1.3
	maxInterval = 365
)

// initialIntervals is the fixed ladder (in days) used for early
// repetitions before the multiplicative schedule takes over.
var initialIntervals = []int{0, 1, 2, 3, 7, 10, 15, 20, 30}

// fastAnswerMs is the threshold below which a correct answer counts
// as effortless recall.
const fastAnswerMs = 5000

// GradeAnswer maps the app's correct/duration signal onto the SM-2
// quality scale: fast correct answers grade 5, slow ones 3, wrong
// answers 1.
func GradeAnswer(correct bool, durationMs int) Quality {
	if !correct {
		return QualityIncorrect
	}
	if durationMs > 0 && durationMs > fastAnswerMs {
		return QualityCorrectDifficult
	}
	return QualityPerfect
}

// Apply updates SM-2 state in place for one review at the given time.
//
// Invariants: easiness never drops below 1.3; an incorrect answer
// resets the interval to 1 day and the consecutive-right counter to 0
// but keeps the repetition count for analytics; the interval never
// exceeds 365 days.
func Apply(p *domain.Progress, quality Quality, now time.Time) {
	p.LastReview = now
	p.LastQuality = int(quality)

	q := float64(quality)
	p.Easiness += 0.1 - (5.0-q)*(0.08+(5.0-q)*0.02)
	if p.Easiness < minEasiness {
		p.Easiness = minEasiness
	}

	if quality >= QualityCorrectDifficult {
		p.ConsecutiveRight++

		var next int
		switch {
		case p.Repetitions == 0:
			next = initialIntervals[0]
		case p.Repetitions < len(initialIntervals):
			next = initialIntervals[p.Repetitions]
		default:
			next = int(float64(p.IntervalDays) * p.Easiness)
		}
		if next > maxInterval {
			next = maxInterval
		}

		p.IntervalDays = next
		p.Repetitions++
	} else {
		p.ConsecutiveRight = 0
		p.IntervalDays = 1
	}

	p.NextReview = now.AddDate(0, 0, p.IntervalDays)
}

// NewProgress returns fresh SM-2 state for a word the profile has not
// studied before.
func NewProgress(p *domain.Progress) {
	p.Easiness = 2.5
	p.IntervalDays = 0
	p.Repetitions = 0
	p.ConsecutiveRight = 0
}

// IsMastered reports whether a word can be treated as learned: at
// least five reviews, a recent confident answer, and a month-long
// interval.
func IsMastered(p *domain.Progress) bool {
	return p.Repetitions >= 5 &&
		p.LastQuality >= int(QualityCorrectHesitation) &&
		p.IntervalDays >= 30
}
