package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", server.URL, zap.NewNop())
}

func TestChat_SendsPromptAndDecodesReply(t *testing.T) {
	var captured textRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/aigc/text-generation/generation", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"output":{"choices":[{"message":{"content":"你好"}}]}}`))
	})

	reply, err := client.Chat(context.Background(), "写一句问候", 0.7)
	require.NoError(t, err)
	assert.Equal(t, "你好", reply)

	assert.Equal(t, "qwen-max", captured.Model)
	assert.Equal(t, "message", captured.Parameters.ResultFormat)
	require.Len(t, captured.Input.Messages, 1)
	assert.Equal(t, "写一句问候", captured.Input.Messages[0].Content)
}

func TestChat_OutputTextFallbackShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output":{"text":"直接文本"}}`))
	})

	reply, err := client.Chat(context.Background(), "p", 0.7)
	require.NoError(t, err)
	assert.Equal(t, "直接文本", reply)
}

func TestChatMultimodal_FiltersAndCapsImages(t *testing.T) {
	var captured multimodalRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/aigc/multimodal-generation/generation", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Write([]byte(`{"output":{"choices":[{"message":{"content":[{"text":"一张"},{"text":"照片"}]}}]}}`))
	})

	images := []string{
		"https://example.com/skipped.png",
		"data:image/png;base64,AAA",
		"data:image/jpeg;base64,BBB",
		"data:image/png;base64,CCC",
		"data:image/png;base64,DDD",
	}
	reply, err := client.ChatMultimodal(context.Background(), "描述这些照片", images)
	require.NoError(t, err)
	assert.Equal(t, "一张照片", reply)

	assert.Equal(t, "qwen-vl-max", captured.Model)
	require.Len(t, captured.Input.Messages, 1)
	content := captured.Input.Messages[0].Content
	// One text part plus three images: the http URL is dropped, the fourth
	// data URL exceeds the cap.
	require.Len(t, content, 4)
	assert.Equal(t, "描述这些照片", content[0].Text)
	assert.Equal(t, "data:image/png;base64,AAA", content[1].Image)
	assert.Equal(t, "data:image/png;base64,CCC", content[3].Image)
}

func TestEmbed(t *testing.T) {
	var captured embeddingRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/embeddings/text-embedding/text-embedding", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Write([]byte(`{"output":{"embeddings":[{"embedding":[0.1,0.2,0.3]}]}}`))
	})

	vector, err := client.Embed(context.Background(), "今晚的月色真美")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, vector)

	assert.Equal(t, "text-embedding-v3", captured.Model)
	assert.Equal(t, EmbeddingDimension, captured.Parameters.Dimension)
	assert.Equal(t, []string{"今晚的月色真美"}, captured.Input.Texts)
}

func TestEmbed_EmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output":{"embeddings":[]}}`))
	})

	_, err := client.Embed(context.Background(), "t")
	assert.Error(t, err)
}

func TestPost_StatusErrors(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		retryable bool
	}{
		{"rate limited", http.StatusTooManyRequests, true},
		{"server error", http.StatusInternalServerError, true},
		{"bad request", http.StatusBadRequest, false},
		{"unauthorized", http.StatusUnauthorized, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"code":"oops"}`))
			})

			_, err := client.Chat(context.Background(), "p", 0.7)
			require.Error(t, err)
			assert.Equal(t, tc.retryable, IsRetryable(err))
		})
	}
}

func TestChat_EmptyOutputIsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output":{},"code":"DataInspectionFailed","message":"blocked"}`))
	})

	_, err := client.Chat(context.Background(), "p", 0.7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DataInspectionFailed")
}
