package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moji-backend/domain/journal"
)

type fakeProvider struct {
	chatFn       func(prompt string) (string, error)
	multimodalFn func(prompt string, imageURLs []string) (string, error)
	embedFn      func(text string) ([]float64, error)

	chatCalls int
}

func (f *fakeProvider) Chat(_ context.Context, prompt string, _ float64) (string, error) {
	f.chatCalls++
	return f.chatFn(prompt)
}

func (f *fakeProvider) ChatMultimodal(_ context.Context, prompt string, imageURLs []string) (string, error) {
	if f.multimodalFn == nil {
		return "", errors.New("unexpected multimodal call")
	}
	return f.multimodalFn(prompt, imageURLs)
}

func (f *fakeProvider) Embed(_ context.Context, text string) ([]float64, error) {
	if f.embedFn == nil {
		return nil, errors.New("unexpected embed call")
	}
	return f.embedFn(text)
}

func newTestGateway(p provider) *Gateway {
	policy := DefaultPolicy()
	policy.sleep = func(context.Context, time.Duration) error { return nil }
	return &Gateway{
		provider: p,
		retry:    policy,
		logger:   zap.NewNop(),
	}
}

func TestAnalyzeEmotion_ParsesModelResponse(t *testing.T) {
	fake := &fakeProvider{
		chatFn: func(prompt string) (string, error) {
			assert.Contains(t, prompt, "今天走了很远的路")
			return "```json\n" + `{
				"emotions": [{"name": "疲惫", "score": 0.7}, {"name": "释然", "score": 0.4}],
				"primaryEmotion": "疲惫",
				"emotionIntensity": 0.7,
				"keywords": ["远路", "黄昏"],
				"imagery": ["路", "云"],
				"scenes": ["车站"],
				"themes": ["坚持"],
				"weatherType": "多云",
				"psychologicalInsight": "疲惫之后的释然，是身体在替心做减法。"
			}` + "\n```",
				nil
		},
	}

	got := newTestGateway(fake).AnalyzeEmotion(context.Background(), "今天走了很远的路", nil)

	assert.Equal(t, "疲惫", got.PrimaryEmotion)
	assert.InDelta(t, 0.7, got.EmotionIntensity, 1e-9)
	assert.Equal(t, []string{"远路", "黄昏"}, got.Keywords)
	assert.Equal(t, []string{"路", "云"}, got.Imagery)
	assert.Equal(t, "多云", got.WeatherType)
	assert.Equal(t, 1, fake.chatCalls)
}

func TestAnalyzeEmotion_FallsBackAfterExhaustedRetries(t *testing.T) {
	fake := &fakeProvider{
		chatFn: func(string) (string, error) {
			return "", &apiError{StatusCode: http.StatusServiceUnavailable}
		},
	}

	got := newTestGateway(fake).AnalyzeEmotion(context.Background(), "随便写点什么", nil)

	assert.Equal(t, 3, fake.chatCalls)
	assert.Equal(t, journal.DefaultAnalysis(), got)
}

func TestAnalyzeEmotion_FallbackIsDeterministic(t *testing.T) {
	fake := &fakeProvider{
		chatFn: func(string) (string, error) {
			return "", &apiError{StatusCode: http.StatusInternalServerError}
		},
	}
	gw := newTestGateway(fake)

	first := gw.AnalyzeEmotion(context.Background(), "一", nil)
	second := gw.AnalyzeEmotion(context.Background(), "二", nil)

	assert.Equal(t, first, second)
	assert.Equal(t, "平静", first.PrimaryEmotion)
	assert.InDelta(t, 0.5, first.EmotionIntensity, 1e-9)
	assert.Equal(t, "多云", first.WeatherType)
	assert.Equal(t, "每一次记录都是与自己对话的机会。", first.PsychologicalInsight)
	assert.Empty(t, first.Keywords)
}

func TestAnalyzeEmotion_UnparseableResponseFallsBack(t *testing.T) {
	fake := &fakeProvider{
		chatFn: func(string) (string, error) {
			return "抱歉，我无法分析这段内容。", nil
		},
	}

	got := newTestGateway(fake).AnalyzeEmotion(context.Background(), "内容", nil)
	assert.Equal(t, journal.DefaultAnalysis(), got)
}

func TestAnalyzeEmotion_EmptyEmotionsListFallsBack(t *testing.T) {
	fake := &fakeProvider{
		chatFn: func(string) (string, error) {
			return `{"emotions": [], "primaryEmotion": "快乐", "emotionIntensity": 0.9}`, nil
		},
	}

	got := newTestGateway(fake).AnalyzeEmotion(context.Background(), "内容", nil)
	assert.Equal(t, journal.DefaultAnalysis(), got)
}

func TestAnalyzeEmotion_ClampsOutOfRangeIntensity(t *testing.T) {
	fake := &fakeProvider{
		chatFn: func(string) (string, error) {
			return `{
				"emotions": [{"name": "快乐", "score": 1.4}],
				"primaryEmotion": "快乐",
				"emotionIntensity": -0.2,
				"weatherType": "晴天"
			}`, nil
		},
	}

	got := newTestGateway(fake).AnalyzeEmotion(context.Background(), "内容", nil)

	assert.InDelta(t, 1.0, got.Emotions[0].Score, 1e-9)
	assert.InDelta(t, 0.0, got.EmotionIntensity, 1e-9)
	assert.NotNil(t, got.Keywords)
	assert.NotNil(t, got.Imagery)
}

func TestAnalyzeEmotion_IncludesImageDescription(t *testing.T) {
	fake := &fakeProvider{
		multimodalFn: func(prompt string, imageURLs []string) (string, error) {
			assert.Len(t, imageURLs, 1)
			return "一张黄昏海边的照片，氛围宁静。", nil
		},
	}
	fake.chatFn = func(prompt string) (string, error) {
		assert.Contains(t, prompt, "一张黄昏海边的照片")
		return `{"emotions":[{"name":"平静","score":0.6}],"primaryEmotion":"平静","emotionIntensity":0.6,"weatherType":"晴天","psychologicalInsight":"x"}`, nil
	}

	got := newTestGateway(fake).AnalyzeEmotion(context.Background(), "看海", []string{"data:image/png;base64,xxx"})

	assert.Equal(t, "平静", got.PrimaryEmotion)
	assert.Equal(t, "一张黄昏海边的照片，氛围宁静。", got.ImageAnalysis)
}

func TestAnalyzeEmotion_RetriesImageDescription(t *testing.T) {
	multimodalCalls := 0
	fake := &fakeProvider{
		multimodalFn: func(prompt string, imageURLs []string) (string, error) {
			multimodalCalls++
			if multimodalCalls < 3 {
				return "", errors.New("connection reset")
			}
			return "雨后的街道。", nil
		},
	}
	fake.chatFn = func(prompt string) (string, error) {
		return `{"emotions":[{"name":"平静","score":0.6}],"primaryEmotion":"平静"}`, nil
	}

	got := newTestGateway(fake).AnalyzeEmotion(context.Background(), "散步", []string{"data:image/png;base64,xxx"})

	assert.Equal(t, 3, multimodalCalls)
	assert.Equal(t, "雨后的街道。", got.ImageAnalysis)
}

func TestGenerateMatchReason_ReturnsTrimmedReason(t *testing.T) {
	fake := &fakeProvider{
		chatFn: func(prompt string) (string, error) {
			assert.Contains(t, prompt, "月光洒在院子里")
			assert.Contains(t, prompt, "朱自清")
			return "  两段文字都在夜色里寻找安放心事的角落。\n", nil
		},
	}

	got := newTestGateway(fake).GenerateMatchReason(context.Background(),
		"深夜睡不着", "月光洒在院子里", "朱自清", "荷塘月色")

	assert.Equal(t, "两段文字都在夜色里寻找安放心事的角落。", got)
}

func TestGenerateMatchReason_FallsBackOnFailure(t *testing.T) {
	fake := &fakeProvider{
		chatFn: func(string) (string, error) {
			return "", errors.New("connection reset")
		},
	}

	got := newTestGateway(fake).GenerateMatchReason(context.Background(), "a", "b", "c", "d")

	assert.Equal(t, FallbackMatchReason, got)
	assert.Equal(t, 3, fake.chatCalls)
}

func TestGenerateEmbedding_ReturnsVector(t *testing.T) {
	want := make([]float64, EmbeddingDimension)
	want[0] = 0.25
	fake := &fakeProvider{
		embedFn: func(text string) ([]float64, error) {
			assert.Equal(t, "一段文字", text)
			return want, nil
		},
	}

	got := newTestGateway(fake).GenerateEmbedding(context.Background(), "一段文字")
	assert.Equal(t, want, got)
}

func TestGenerateEmbedding_ZeroVectorOnFailure(t *testing.T) {
	fake := &fakeProvider{
		embedFn: func(string) ([]float64, error) {
			return nil, &apiError{StatusCode: http.StatusInternalServerError}
		},
	}

	got := newTestGateway(fake).GenerateEmbedding(context.Background(), "文字")

	require.Len(t, got, EmbeddingDimension)
	for _, v := range got {
		assert.Zero(t, v)
	}
}

func TestGenerateEmbedding_ZeroVectorOnWrongDimension(t *testing.T) {
	fake := &fakeProvider{
		embedFn: func(string) ([]float64, error) {
			return []float64{0.1, 0.2}, nil
		},
	}

	got := newTestGateway(fake).GenerateEmbedding(context.Background(), "文字")

	require.Len(t, got, EmbeddingDimension)
	assert.Zero(t, got[0])
}

func TestDecodeChatContent_StringAndArrayShapes(t *testing.T) {
	// The text model returns a plain string; the vision model an array of
	// text parts. Both must decode.
	gotString, err := decodeChatContentFromJSON(t, `{"output":{"choices":[{"message":{"content":"你好"}}]}}`)
	require.NoError(t, err)
	assert.Equal(t, "你好", gotString)

	gotArray, err := decodeChatContentFromJSON(t, `{"output":{"choices":[{"message":{"content":[{"text":"第一段"},{"text":"第二段"}]}}]}}`)
	require.NoError(t, err)
	assert.Equal(t, "第一段第二段", gotArray)

	_, err = decodeChatContentFromJSON(t, `{"output":{},"code":"InvalidParameter","message":"bad"}`)
	assert.Error(t, err)
}

func decodeChatContentFromJSON(t *testing.T, body string) (string, error) {
	t.Helper()
	var resp chatResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	return decodeChatContent(&resp)
}
