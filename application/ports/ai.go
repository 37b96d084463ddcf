package ports

import (
	"context"

	"moji-backend/domain/journal"
)

// AIGateway wraps the upstream language-model provider. Implementations must
// degrade gracefully: AnalyzeEmotion and GenerateMatchReason always return a
// usable value, falling back to deterministic defaults when the provider is
// unreachable or returns garbage.
type AIGateway interface {
	// AnalyzeEmotion analyzes entry content (optionally with attached images)
	// and never fails: on any upstream error it returns the default analysis.
	AnalyzeEmotion(ctx context.Context, content string, imageURLs []string) *journal.EmotionAnalysis

	// GenerateMatchReason explains why a passage matches the user's text.
	// Falls back to a fixed phrase on upstream errors.
	GenerateMatchReason(ctx context.Context, userText, passageText, authorName, workTitle string) string

	// GenerateEmbedding returns a fixed-dimension embedding vector, or the
	// zero vector when the provider is unreachable.
	GenerateEmbedding(ctx context.Context, text string) []float64
}
