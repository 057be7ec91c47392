// Package reviews turns raw restaurant reviews into a short summary via a
// hosted chat-completion service. Failure here is a display concern, not a
// pipeline concern: every path returns a usable Summary and the degraded
// fallbacks below, never an error.
package reviews

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"

	"github.com/tablescout/tablescout/internal/models"
)

const (
	// FallbackNoReviews is returned verbatim when there is nothing to summarize.
	FallbackNoReviews = "No reviews available."
	// FallbackUnavailable is returned verbatim when summarization fails.
	FallbackUnavailable = "Review processing unavailable."

	systemPrompt = "You are a restaurant review summarizer. Highlight key positive and negative points."

	maxReviews       = 5
	temperature      = 0.3
	maxSummaryTokens = 150
)

// Summarizer produces a summary for a batch of review texts.
type Summarizer interface {
	Summarize(ctx context.Context, reviewTexts []string) models.Summary
}

// OpenAISummarizer implements Summarizer on the chat-completions API.
type OpenAISummarizer struct {
	api   openai.Client
	model string
	log   zerolog.Logger
}

func NewOpenAISummarizer(apiKey, baseURL, model string, log zerolog.Logger) *OpenAISummarizer {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAISummarizer{
		api:   openai.NewClient(opts...),
		model: model,
		log:   log.With().Str("component", "summarizer").Logger(),
	}
}

// Summarize joins up to the first five review texts and asks the model for a
// positives/negatives digest.
func (s *OpenAISummarizer) Summarize(ctx context.Context, reviewTexts []string) models.Summary {
	if len(reviewTexts) == 0 {
		return models.Summary{Text: FallbackNoReviews, Degraded: true}
	}
	if len(reviewTexts) > maxReviews {
		reviewTexts = reviewTexts[:maxReviews]
	}
	combined := strings.Join(reviewTexts, "\n\n")

	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage("Summarize these restaurant reviews:\n\n" + combined),
		},
		Temperature:         openai.Float(temperature),
		MaxCompletionTokens: openai.Int(maxSummaryTokens),
	}

	resp, err := s.api.Chat.Completions.New(ctx, req)
	if err != nil {
		s.log.Warn().Err(err).Msg("chat completion failed, using fallback summary")
		return models.Summary{Text: FallbackUnavailable, Degraded: true}
	}
	if len(resp.Choices) == 0 {
		s.log.Warn().Msg("chat completion returned no choices, using fallback summary")
		return models.Summary{Text: FallbackUnavailable, Degraded: true}
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		s.log.Warn().Msg("chat completion returned empty content, using fallback summary")
		return models.Summary{Text: FallbackUnavailable, Degraded: true}
	}
	return models.Summary{Text: text}
}
