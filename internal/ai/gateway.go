package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/kavyamehta/mindscribe/internal/models"
)

// Fallback values substituted field-by-field when the model's reply is
// missing or unusable.
const (
	FallbackMood     = models.MoodNeutral
	FallbackStress   = 5
	FallbackInsights = "No insights available"
)

const minEntriesForInsight = 3

// Analysis is the structured result of classifying one diary entry.
type Analysis struct {
	Mood     models.Mood
	Stress   int
	Insights string
}

// Insight is the weekly pattern observation. The zero value means
// unavailable: every failure cause (no credential, too few entries,
// call error, empty reply) collapses into it.
type Insight struct {
	Text      string
	Available bool
}

// Gateway wraps the generative model behind the two analysis
// operations the app needs. A nil model means no API key was
// configured.
type Gateway struct {
	model llms.Model
}

func NewGateway(model llms.Model) *Gateway {
	return &Gateway{model: model}
}

// Configured reports whether a model credential was supplied.
func (g *Gateway) Configured() bool {
	return g != nil && g.model != nil
}

const classifyInstruction = `You are an empathetic AI journal analyst. Analyze the user's diary entry and provide:
1. A mood classification (choose one: happy, sad, anxious, calm, excited, frustrated, peaceful, stressed)
2. A stress level from 1-10 (1 being very relaxed, 10 being extremely stressed)
3. Thoughtful, compassionate insights and suggestions

Format your response as JSON with this structure:
{
  "mood": "string",
  "stress": number,
  "insights": "string"
}

Be warm, supportive, and constructive in your insights. Focus on validating their feelings while offering gentle guidance.`

// Classify sends the entry text to the model and parses the JSON
// reply. Transport failures are returned as errors; a reply that
// arrived but does not parse is recovered via the fallback values and
// never fails the request.
func (g *Gateway) Classify(ctx context.Context, content string) (Analysis, error) {
	if !g.Configured() {
		return Analysis{}, errors.New("analysis gateway not configured")
	}

	resp, err := g.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, classifyInstruction),
			llms.TextParts(llms.ChatMessageTypeHuman, content),
		},
		llms.WithJSONMode(),
		llms.WithTemperature(0.7),
	)
	if err != nil {
		return Analysis{}, fmt.Errorf("model call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Analysis{}, errors.New("no choices in model response")
	}

	return parseAnalysis(resp.Choices[0].Content), nil
}

// parseAnalysis applies the per-field fallback rules: an unparseable
// payload takes the whole fallback triple, otherwise each field is
// individually replaced when absent or out of range.
func parseAnalysis(raw string) Analysis {
	out := Analysis{
		Mood:     FallbackMood,
		Stress:   FallbackStress,
		Insights: FallbackInsights,
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &fields); err != nil {
		return out
	}

	if s, ok := fields["mood"].(string); ok {
		if mood := models.Mood(strings.ToLower(strings.TrimSpace(s))); mood.Valid() {
			out.Mood = mood
		}
	}
	if n, ok := fields["stress"].(float64); ok {
		if stress := int(n); float64(stress) == n && stress >= 1 && stress <= 10 {
			out.Stress = stress
		}
	}
	if s, ok := fields["insights"].(string); ok && strings.TrimSpace(s) != "" {
		out.Insights = s
	}

	return out
}

// stripCodeFences removes a surrounding markdown code block, which
// models emit even when asked for bare JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

const insightInstruction = `You are an empathetic AI wellness coach analyzing someone's diary entries. Look for patterns in:
- Days of the week when stress is highest/lowest
- Times of day when mood changes
- Recurring themes or situations
- Trends over time

Generate ONE concise, personalized coaching insight (2-3 sentences max) that:
1. Points out a specific pattern you noticed
2. Asks a thoughtful question to help them reflect
3. Sounds like a caring friend, not a therapist

Examples of good insights:
"I noticed your stress levels spike every Tuesday afternoon. Is there a specific meeting or class then?"
"You seem to write more positive entries on weekends. What's different about how you spend that time?"
"Your mood tends to improve later in the day. Are mornings particularly challenging for you?"

Return ONLY the insight text, no JSON, no labels, just the insight message.`

// entrySummary is the reduced per-entry view sent for pattern analysis.
type entrySummary struct {
	Date      string      `json:"date"`
	DayOfWeek string      `json:"dayOfWeek"`
	TimeOfDay string      `json:"timeOfDay"`
	Mood      models.Mood `json:"mood"`
	Stress    int         `json:"stress"`
	Content   string      `json:"content"`
}

// WeeklyInsight generates one short reflective observation from the
// caller's recent entries. Fewer than three entries is not enough
// signal for pattern detection, so no model call is made. This path is
// best-effort: it never returns an error, only an unavailable Insight.
func (g *Gateway) WeeklyInsight(ctx context.Context, entries []models.DiaryEntry) Insight {
	if !g.Configured() || len(entries) < minEntriesForInsight {
		return Insight{}
	}

	summaries := make([]entrySummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, entrySummary{
			Date:      e.CreatedAt.Format(time.RFC3339),
			DayOfWeek: e.CreatedAt.Weekday().String(),
			TimeOfDay: e.CreatedAt.Format("3 PM"),
			Mood:      e.Mood,
			Stress:    e.Stress,
			Content:   prefix(e.Content, 200),
		})
	}

	payload, err := json.Marshal(summaries)
	if err != nil {
		return Insight{}
	}

	resp, err := g.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, insightInstruction),
			llms.TextParts(llms.ChatMessageTypeHuman, string(payload)),
		},
		llms.WithTemperature(0.8),
		llms.WithMaxTokens(150),
	)
	if err != nil || len(resp.Choices) == 0 {
		return Insight{}
	}

	text := strings.TrimSpace(resp.Choices[0].Content)
	if text == "" {
		return Insight{}
	}
	return Insight{Text: text, Available: true}
}

func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
