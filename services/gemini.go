package services

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// GeminiClient holds the chat model used for mood analysis. The
// endpoint is OpenAI-compatible, so the shared openai transport is
// pointed at it.
type GeminiClient struct {
	Chat      llms.Model
	ModelName string
}

// NewGeminiClient builds the provider client. A missing API key
// returns (nil, nil): remote inference is simply not configured and
// the engine runs on its heuristic rung. A construction error is
// reported to the caller but must not take the process down.
func NewGeminiClient(apiKey, apiEndpoint, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, nil
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
		openai.WithResponseFormat(&openai.ResponseFormat{
			Type: "json_object",
		}),
	}
	if apiEndpoint != "" {
		opts = append(opts, openai.WithBaseURL(apiEndpoint))
	}

	chat, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		Chat:      chat,
		ModelName: modelName,
	}, nil
}
