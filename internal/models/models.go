package models

import (
	"time"
)

// Mood is the fixed classification vocabulary assigned by the analyzer.
type Mood string

const (
	MoodHappy      Mood = "happy"
	MoodSad        Mood = "sad"
	MoodAnxious    Mood = "anxious"
	MoodCalm       Mood = "calm"
	MoodExcited    Mood = "excited"
	MoodFrustrated Mood = "frustrated"
	MoodPeaceful   Mood = "peaceful"
	MoodStressed   Mood = "stressed"

	// MoodNeutral is the fallback when the analyzer returns nothing usable.
	MoodNeutral Mood = "neutral"
)

// moodScores maps each mood onto the 1-10 scale the trend chart plots.
var moodScores = map[Mood]int{
	MoodHappy:      9,
	MoodExcited:    8,
	MoodPeaceful:   7,
	MoodCalm:       6,
	MoodFrustrated: 4,
	MoodAnxious:    3,
	MoodSad:        2,
	MoodStressed:   1,
}

// Valid reports whether m is one of the eight classification moods.
// The neutral fallback is deliberately not part of the vocabulary.
func (m Mood) Valid() bool {
	_, ok := moodScores[m]
	return ok
}

// Score returns the numeric chart value for m; unknown moods (including
// neutral) sit at the midpoint.
func (m Mood) Score() int {
	if s, ok := moodScores[m]; ok {
		return s
	}
	return 5
}

// DiaryEntry is a single journal entry with its AI-derived analysis.
// Entries are append-only: there is no update or delete path, so
// UpdatedAt never moves after insertion.
type DiaryEntry struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	Content        string    `gorm:"not null" json:"content"`
	Mood           Mood      `gorm:"not null" json:"mood"`
	Stress         int       `gorm:"not null" json:"stress"`
	AIInsights     string    `gorm:"column:ai_insights" json:"ai_insights"`
	UserID         *string   `gorm:"index" json:"user_id"`
	UserMoodRating *int      `json:"user_mood_rating"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName keeps the table name stable regardless of gorm's pluralizer.
func (DiaryEntry) TableName() string {
	return "diary_entries"
}
