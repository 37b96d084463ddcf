// Package ai implements the language-model gateway over the DashScope API.
// Every public operation degrades to a deterministic fallback instead of
// failing, so a provider outage never blocks a diary submission.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"moji-backend/domain/journal"
)

// FallbackMatchReason is returned when the match-reason generation fails.
const FallbackMatchReason = "这段文字与你的心情产生了深深的共鸣。"

const analysisPromptTemplate = `你是一个专业的文本情感分析专家。请分析以下日记内容，返回JSON格式的分析结果。

日记内容：
"""
%s
"""
%s
请结合文字和图片内容（如有），返回以下JSON格式（不要包含任何其他文字，只返回JSON）：
{
  "emotions": [
    {"name": "情绪名称", "score": 0.0到1.0的强度}
  ],
  "primaryEmotion": "主要情绪",
  "emotionIntensity": 0.0到1.0,
  "keywords": ["关键词1", "关键词2"],
  "imagery": ["意象1", "意象2"],
  "scenes": ["场景1", "场景2"],
  "themes": ["主题1", "主题2"],
  "weatherType": "晴天/雨天/多云/雷暴/雾天/彩虹",
  "psychologicalInsight": "一段温暖的心理学洞察，100字以内"
}

情绪类型包括：快乐、悲伤、愤怒、恐惧、惊讶、平静、孤独、感动、困惑、期待、疲惫、充实、矛盾、释然
意象示例：月亮、雨、窗、路、海、山、花、树、风、云
场景示例：校园、咖啡馆、深夜、清晨、车站、家中、办公室`

const imagePrompt = `请描述这些图片的内容、情感氛围和可能表达的心情。用简洁的中文描述，每张图片50字以内。`

const matchReasonPromptTemplate = `你是一个文学评论专家。请解释为什么以下文学段落与用户的日记产生了共鸣。

用户日记：
"""
%s
"""

匹配的文学段落：
"""
%s
"""
作者：%s
作品：%s

请用温暖、富有诗意的语言，写一段50-100字的匹配原因说明，解释两者之间的情感共鸣点。
不要使用"你"开头，使用第三人称或直接描述共鸣点。只返回说明文字，不要有其他内容。`

// provider is the subset of Client the gateway calls, split out so tests can
// substitute a fake.
type provider interface {
	Chat(ctx context.Context, prompt string, temperature float64) (string, error)
	ChatMultimodal(ctx context.Context, prompt string, imageURLs []string) (string, error)
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Gateway implements the application's AI port on top of DashScope.
type Gateway struct {
	provider provider
	retry    Policy
	logger   *zap.Logger
}

// NewGateway wraps a client with the default retry policy.
func NewGateway(client *Client, logger *zap.Logger) *Gateway {
	return &Gateway{
		provider: client,
		retry:    DefaultPolicy(),
		logger:   logger,
	}
}

// AnalyzeEmotion analyzes entry content, optionally enriched by attached
// images. It never returns an error: any upstream or parse failure yields the
// default analysis.
func (g *Gateway) AnalyzeEmotion(ctx context.Context, content string, imageURLs []string) *journal.EmotionAnalysis {
	imageDescription := ""
	if len(imageURLs) > 0 {
		imageDescription = g.describeImages(ctx, imageURLs)
	}

	imageSection := ""
	if imageDescription != "" {
		imageSection = fmt.Sprintf("\n用户上传的图片内容描述：\n\"\"\"\n%s\n\"\"\"\n", imageDescription)
	}
	prompt := fmt.Sprintf(analysisPromptTemplate, content, imageSection)

	raw, err := g.chatWithRetry(ctx, prompt)
	if err != nil {
		g.logger.Error("emotion analysis failed, using default", zap.Error(err))
		return journal.DefaultAnalysis()
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		g.logger.Error("emotion analysis response unparseable, using default", zap.Error(err))
		return journal.DefaultAnalysis()
	}
	if imageDescription != "" && analysis.ImageAnalysis == "" {
		analysis.ImageAnalysis = imageDescription
	}
	return analysis
}

// GenerateMatchReason explains the resonance between a diary entry and a
// matched passage. Falls back to a fixed phrase on upstream errors.
func (g *Gateway) GenerateMatchReason(ctx context.Context, userText, passageText, authorName, workTitle string) string {
	prompt := fmt.Sprintf(matchReasonPromptTemplate, userText, passageText, authorName, workTitle)

	reason, err := g.chatWithRetry(ctx, prompt)
	if err != nil {
		g.logger.Error("match reason generation failed, using fallback", zap.Error(err))
		return FallbackMatchReason
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return FallbackMatchReason
	}
	return reason
}

// GenerateEmbedding returns the text's embedding, or the zero vector when the
// provider fails or returns the wrong dimension.
func (g *Gateway) GenerateEmbedding(ctx context.Context, text string) []float64 {
	var vec []float64
	err := g.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		vec, err = g.provider.Embed(ctx, text)
		return err
	})
	if err != nil {
		g.logger.Error("embedding generation failed, using zero vector", zap.Error(err))
		return make([]float64, EmbeddingDimension)
	}
	if len(vec) != EmbeddingDimension {
		g.logger.Warn("embedding has unexpected dimension, using zero vector",
			zap.Int("got", len(vec)))
		return make([]float64, EmbeddingDimension)
	}
	return vec
}

func (g *Gateway) chatWithRetry(ctx context.Context, prompt string) (string, error) {
	var out string
	err := g.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = g.provider.Chat(ctx, prompt, 0.7)
		return err
	})
	return out, err
}

// describeImages runs the vision model over attached images, retried like
// every other upstream call. Errors degrade to an empty description rather
// than failing the analysis.
func (g *Gateway) describeImages(ctx context.Context, imageURLs []string) string {
	var desc string
	err := g.retry.Do(ctx, func(ctx context.Context) error {
		var err error
		desc, err = g.provider.ChatMultimodal(ctx, imagePrompt, imageURLs)
		return err
	})
	if err != nil {
		g.logger.Error("image analysis failed", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(desc)
}

// parseAnalysis extracts and validates the model's JSON answer. A parsed
// result with no emotions is treated as unusable and replaced wholesale.
func parseAnalysis(raw string) (*journal.EmotionAnalysis, error) {
	jsonText, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var analysis journal.EmotionAnalysis
	if err := json.Unmarshal([]byte(jsonText), &analysis); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}

	if len(analysis.Emotions) == 0 {
		return journal.DefaultAnalysis(), nil
	}

	for i := range analysis.Emotions {
		analysis.Emotions[i].Score = clamp01(analysis.Emotions[i].Score)
	}
	analysis.EmotionIntensity = clamp01(analysis.EmotionIntensity)
	if analysis.PrimaryEmotion == "" {
		analysis.PrimaryEmotion = analysis.Emotions[0].Name
	}
	if analysis.WeatherType == "" {
		analysis.WeatherType = journal.FallbackWeather
	}
	if analysis.Keywords == nil {
		analysis.Keywords = []string{}
	}
	if analysis.Imagery == nil {
		analysis.Imagery = []string{}
	}
	if analysis.Scenes == nil {
		analysis.Scenes = []string{}
	}
	if analysis.Themes == nil {
		analysis.Themes = []string{}
	}
	return &analysis, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
