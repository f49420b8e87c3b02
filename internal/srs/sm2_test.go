package srs

import (
	"testing"
	"time"

	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/stretchr/testify/assert"
)

func freshProgress() *domain.Progress {
	p := &domain.Progress{}
	NewProgress(p)
	return p
}

func TestGradeAnswer(t *testing.T) {
	assert.Equal(t, QualityIncorrect, GradeAnswer(false, 1000))
	assert.Equal(t, QualityPerfect, GradeAnswer(true, 1000))
	assert.Equal(t, QualityPerfect, GradeAnswer(true, 0)) // duration unknown
	assert.Equal(t, QualityCorrectDifficult, GradeAnswer(true, 12000))
}

func TestApply_FirstCorrectReview(t *testing.T) {
	p := freshProgress()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	Apply(p, QualityPerfect, now)

	assert.Equal(t, 1, p.Repetitions)
	assert.Equal(t, 1, p.ConsecutiveRight)
	assert.Equal(t, 0, p.IntervalDays) // ladder starts at 0: review again today
	assert.Equal(t, now, p.LastReview)
	assert.Equal(t, now, p.NextReview)
	assert.Equal(t, 5, p.LastQuality)
}

func TestApply_FollowsInitialLadder(t *testing.T) {
	p := freshProgress()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	want := []int{0, 1, 2, 3, 7, 10, 15, 20, 30}
	for i, interval := range want {
		Apply(p, QualityPerfect, now)
		assert.Equal(t, interval, p.IntervalDays, "repetition %d", i)
		now = p.NextReview
	}
	assert.Equal(t, len(want), p.Repetitions)
}

func TestApply_MultiplicativeScheduleAfterLadder(t *testing.T) {
	p := freshProgress()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < len(initialIntervals); i++ {
		Apply(p, QualityPerfect, now)
		now = p.NextReview
	}

	prevInterval := p.IntervalDays
	Apply(p, QualityPerfect, now)
	assert.Greater(t, p.IntervalDays, prevInterval)
	assert.Equal(t, int(float64(prevInterval)*p.Easiness), p.IntervalDays)
}

func TestApply_IncorrectResetsIntervalNotRepetitions(t *testing.T) {
	p := freshProgress()
	now := time.Now()
	for i := 0; i < 4; i++ {
		Apply(p, QualityPerfect, now)
		now = p.NextReview
	}
	reps := p.Repetitions

	Apply(p, QualityIncorrect, now)

	assert.Equal(t, 1, p.IntervalDays)
	assert.Equal(t, 0, p.ConsecutiveRight)
	assert.Equal(t, reps, p.Repetitions)
	assert.Equal(t, now.AddDate(0, 0, 1), p.NextReview)
}

func TestApply_EasinessFloor(t *testing.T) {
	p := freshProgress()
	now := time.Now()

	for i := 0; i < 20; i++ {
		Apply(p, QualityBlackout, now)
	}
	assert.InDelta(t, 1.3, p.Easiness, 1e-9)
}

func TestApply_IntervalCap(t *testing.T) {
	p := freshProgress()
	p.Repetitions = 50
	p.IntervalDays = 300
	p.Easiness = 2.5

	Apply(p, QualityPerfect, time.Now())
	assert.Equal(t, 365, p.IntervalDays)
}

func TestIsMastered(t *testing.T) {
	p := &domain.Progress{Repetitions: 5, LastQuality: 4, IntervalDays: 30}
	assert.True(t, IsMastered(p))

	assert.False(t, IsMastered(&domain.Progress{Repetitions: 4, LastQuality: 5, IntervalDays: 30}))
	assert.False(t, IsMastered(&domain.Progress{Repetitions: 5, LastQuality: 3, IntervalDays: 30}))
	assert.False(t, IsMastered(&domain.Progress{Repetitions: 5, LastQuality: 5, IntervalDays: 20}))
}
