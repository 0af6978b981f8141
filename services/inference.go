package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/R0D10Nq/AIMood-DiaryBot/config"
	"github.com/R0D10Nq/AIMood-DiaryBot/models"
	"github.com/tmc/langchaingo/llms"
)

// ChatModel is the single capability the inference engine needs from
// a provider. Satisfied by langchaingo models and by test stubs.
type ChatModel interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// InferenceService converts a mood entry into a structured emotional
// analysis. Analyze never fails outward: when the provider is
// missing, slow to the point of a context error, or returns garbage,
// it walks down a degradation ladder (remote -> heuristic mock ->
// error-tagged heuristic) and always hands back a usable result.
type InferenceService struct {
	model     ChatModel
	modelName string
}

func NewInferenceService(model ChatModel, modelName string) *InferenceService {
	return &InferenceService{
		model:     model,
		modelName: modelName,
	}
}

// Available reports whether the remote rung is usable.
func (s *InferenceService) Available() bool {
	return s != nil && s.model != nil
}

// AnalysisResult is the provider-independent analysis payload.
type AnalysisResult struct {
	SentimentScore  float64
	SentimentLabel  string
	Emotions        map[string]float64
	DominantEmotion string
	Keywords        []string
	Themes          []string
	Recommendations string
	Insights        string
	AIModel         string
	ProcessingTime  float64
	ConfidenceScore float64
}

// Analyze runs the degradation ladder for one entry.
func (s *InferenceService) Analyze(ctx context.Context, text string, score float64) *AnalysisResult {
	if !s.Available() {
		config.Logger.Warnw("AI provider not configured, using mock analysis")
		return s.mockAnalysis(score)
	}

	start := time.Now()

	raw, err := s.generate(ctx, buildAnalysisPrompt(text, score))
	elapsed := time.Since(start).Seconds()
	if err != nil {
		config.Logger.Errorw("AI analysis call failed", "error", err, "model", s.modelName)
		return s.fallbackAnalysis(score, elapsed)
	}

	result, err := parseAnalysisResponse(raw)
	if err != nil {
		config.Logger.Errorw("AI analysis response unparseable",
			"error", err,
			"model", s.modelName,
			"response", truncate(raw, 500),
		)
		return s.fallbackAnalysis(score, elapsed)
	}

	result.AIModel = s.modelName
	result.ProcessingTime = elapsed
	config.Logger.Infow("AI analysis completed", "model", s.modelName, "seconds", elapsed)
	return result
}

// SummarizeTrend produces a short narrative over recent entries.
// Unlike Analyze there is no heuristic narrative: without a provider
// (or on error) a fixed string comes back.
func (s *InferenceService) SummarizeTrend(ctx context.Context, entries []models.MoodEntry) string {
	if !s.Available() || len(entries) == 0 {
		return "Not enough data to analyze trends yet."
	}

	raw, err := s.generate(ctx, buildTrendPrompt(entries))
	if err != nil {
		config.Logger.Errorw("trend summary failed", "error", err, "model", s.modelName)
		return "Trend analysis is temporarily unavailable."
	}

	return strings.TrimSpace(raw)
}

func (s *InferenceService) generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	resp, err := s.model.GenerateContent(ctx, messages, llms.WithTemperature(0.7))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices")
	}
	return resp.Choices[0].Content, nil
}

func buildAnalysisPrompt(text string, score float64) string {
	return fmt.Sprintf(`You are an expert psychologist specializing in emotion and mood analysis.
Analyze the following mood journal text and reply STRICTLY as a JSON object.

User text: "%s"
Mood score (1-10): %g

Return JSON with these fields:
{
    "sentiment_score": number from -1 to 1 (negative/positive),
    "sentiment_label": "positive" | "negative" | "neutral",
    "emotions": {
        "joy": value from 0 to 1,
        "sadness": value from 0 to 1,
        "anxiety": value from 0 to 1,
        "calm": value from 0 to 1,
        "irritation": value from 0 to 1,
        "excitement": value from 0 to 1
    },
    "dominant_emotion": "name of the dominant emotion",
    "keywords": ["keyword1", "keyword2", "keyword3"],
    "themes": ["theme1", "theme2"],
    "recommendations": "Personal suggestions for improving the mood (2-3 sentences)",
    "insights": "A short read of the emotional state (1-2 sentences)",
    "confidence_score": number from 0 to 1
}

Reply with JSON ONLY, no surrounding text. Write recommendations and insights in English.`, text, score)
}

func buildTrendPrompt(entries []models.MoodEntry) string {
	var sb strings.Builder
	limit := len(entries)
	if limit > 7 {
		limit = 7
	}
	for _, entry := range entries[:limit] {
		sb.WriteString(fmt.Sprintf("Date: %s, Score: %g/10, Text: %s\n",
			entry.EntryDate.Format("2006-01-02"), entry.Score, truncate(entry.Text, 100)))
	}

	return fmt.Sprintf(`You are an experienced psychologist. Review the user's recent mood
journal entries and give brief insights.

User entries:
%s
Write a short analysis (3-4 sentences) covering:
1. The overall mood trend
2. Patterns you notice
3. One concrete recommendation

Keep the tone friendly and avoid jargon.`, sb.String())
}

// parseAnalysisResponse validates the provider payload. A payload
// that is not JSON at all is an error (the caller drops to the
// fallback rung); individual missing fields are filled from the
// neutral defaults table with a warning.
func parseAnalysisResponse(raw string) (*AnalysisResult, error) {
	cleaned := strings.TrimSpace(raw)

	// Gemini sometimes wraps JSON in a code fence.
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload struct {
		SentimentScore  *float64           `json:"sentiment_score"`
		SentimentLabel  *string            `json:"sentiment_label"`
		Emotions        map[string]float64 `json:"emotions"`
		DominantEmotion *string            `json:"dominant_emotion"`
		Keywords        []string           `json:"keywords"`
		Themes          []string           `json:"themes"`
		Recommendations *string            `json:"recommendations"`
		Insights        *string            `json:"insights"`
		ConfidenceScore *float64           `json:"confidence_score"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON from provider: %w", err)
	}

	result := &AnalysisResult{}

	result.SentimentScore = defaultFloat(payload.SentimentScore, "sentiment_score", 0.0)
	result.SentimentLabel = defaultString(payload.SentimentLabel, "sentiment_label", "neutral")
	if payload.Emotions != nil {
		result.Emotions = payload.Emotions
	} else {
		warnMissingField("emotions")
		result.Emotions = defaultEmotions()
	}
	result.DominantEmotion = defaultString(payload.DominantEmotion, "dominant_emotion", "calm")
	if payload.Keywords != nil {
		result.Keywords = payload.Keywords
	} else {
		warnMissingField("keywords")
		result.Keywords = []string{"mood", "day"}
	}
	if payload.Themes != nil {
		result.Themes = payload.Themes
	} else {
		warnMissingField("themes")
		result.Themes = []string{"daily life"}
	}
	result.Recommendations = defaultString(payload.Recommendations, "recommendations",
		"Try to spend more time outdoors and stay physically active.")
	result.Insights = defaultString(payload.Insights, "insights",
		"Your emotional state is within the normal range.")
	result.ConfidenceScore = defaultFloat(payload.ConfidenceScore, "confidence_score", 0.5)

	return result, nil
}

func defaultFloat(v *float64, field string, def float64) float64 {
	if v == nil {
		warnMissingField(field)
		return def
	}
	return *v
}

func defaultString(v *string, field string, def string) string {
	if v == nil {
		warnMissingField(field)
		return def
	}
	return *v
}

func warnMissingField(field string) {
	config.Logger.Warnw("provider response missing field, using default", "field", field)
}

// defaultEmotions is the constant neutral baseline, not derived from
// the score.
func defaultEmotions() map[string]float64 {
	return map[string]float64{
		"joy":        0.3,
		"sadness":    0.2,
		"anxiety":    0.2,
		"calm":       0.3,
		"irritation": 0.1,
		"excitement": 0.2,
	}
}

// mockAnalysis derives the whole analysis from the numeric score.
// Band thresholds match the aggregation bands: >=7 positive, >=4
// neutral, <4 negative.
func (s *InferenceService) mockAnalysis(score float64) *AnalysisResult {
	var sentimentScore float64
	var sentimentLabel, dominantEmotion string

	switch {
	case score >= 7:
		sentimentScore = 0.7
		sentimentLabel = "positive"
		dominantEmotion = "joy"
	case score >= 4:
		sentimentScore = 0.0
		sentimentLabel = "neutral"
		dominantEmotion = "calm"
	default:
		sentimentScore = -0.7
		sentimentLabel = "negative"
		dominantEmotion = "sadness"
	}

	var state string
	switch {
	case score >= 6:
		state = "good"
	case score >= 4:
		state = "average"
	default:
		state = "low"
	}

	return &AnalysisResult{
		SentimentScore: sentimentScore,
		SentimentLabel: sentimentLabel,
		Emotions: map[string]float64{
			"joy":        clampIntensity((score - 5) / 5),
			"sadness":    clampIntensity((5 - score) / 5),
			"anxiety":    0.2,
			"calm":       0.4,
			"irritation": 0.1,
			"excitement": clampIntensity((score - 6) / 4),
		},
		DominantEmotion: dominantEmotion,
		Keywords:        []string{"mood", "day", "emotions"},
		Themes:          []string{"daily life"},
		Recommendations: mockRecommendation(score),
		Insights:        fmt.Sprintf("A mood score of %g/10 points to a %s emotional state.", score, state),
		AIModel:         "mock",
		ProcessingTime:  0,
		ConfidenceScore: 0.6,
	}
}

func mockRecommendation(score float64) string {
	switch {
	case score >= 7:
		return "Keep doing what works for you, and share some of that energy with the people around you."
	case score >= 4:
		return "Try a short meditation or a walk in fresh air to lift your mood."
	default:
		return "Be gentle with yourself today. A short walk or a breathing exercise can help, and talking to someone you trust is worth it."
	}
}

// fallbackAnalysis is the heuristic dressed in error provenance: the
// measured latency up to the failure is kept and the recommendation
// is replaced with an apology.
func (s *InferenceService) fallbackAnalysis(score float64, elapsed float64) *AnalysisResult {
	result := s.mockAnalysis(score)
	result.AIModel = fmt.Sprintf("%s-fallback", s.modelName)
	result.ProcessingTime = elapsed
	result.Recommendations = "Sorry, AI analysis is temporarily unavailable. Please consider talking to a specialist if you need support."
	return result
}

func clampIntensity(v float64) float64 {
	if v < 0.1 {
		return 0.1
	}
	return v
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
