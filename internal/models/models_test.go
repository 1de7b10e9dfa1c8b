package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoodVocabulary(t *testing.T) {
	valid := []Mood{
		MoodHappy, MoodSad, MoodAnxious, MoodCalm,
		MoodExcited, MoodFrustrated, MoodPeaceful, MoodStressed,
	}
	for _, m := range valid {
		assert.True(t, m.Valid(), "%q should be in the vocabulary", m)
	}

	assert.False(t, MoodNeutral.Valid(), "the fallback is not a classification mood")
	assert.False(t, Mood("").Valid())
	assert.False(t, Mood("ecstatic").Valid())
}

func TestMoodScore(t *testing.T) {
	scores := map[Mood]int{
		MoodHappy:      9,
		MoodExcited:    8,
		MoodPeaceful:   7,
		MoodCalm:       6,
		MoodFrustrated: 4,
		MoodAnxious:    3,
		MoodSad:        2,
		MoodStressed:   1,
	}
	for mood, want := range scores {
		assert.Equal(t, want, mood.Score())
	}

	// Unknown moods sit at the chart midpoint.
	assert.Equal(t, 5, MoodNeutral.Score())
	assert.Equal(t, 5, Mood("something else").Score())
}
