package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the DashScope API root.
	DefaultBaseURL = "https://dashscope.aliyuncs.com/api/v1"

	textModel       = "qwen-max"
	multimodalModel = "qwen-vl-max"
	embeddingModel  = "text-embedding-v3"

	// EmbeddingDimension is the fixed embedding vector size.
	EmbeddingDimension = 1024

	// maxImages caps how many attached images are sent per request.
	maxImages = 3

	maxResponseBytes = 4 << 20

	textTimeout      = 30 * time.Second
	visionTimeout    = 60 * time.Second
	embeddingTimeout = 30 * time.Second
)

// apiError is a non-2xx provider response.
type apiError struct {
	StatusCode int
	Body       string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("dashscope: status %d: %s", e.StatusCode, e.Body)
}

// IsRetryable reports whether an upstream error is worth retrying. Rate
// limits and server-side failures are; client errors are not. Anything that
// is not an apiError (network failures, per-attempt timeouts, truncated
// bodies) is retryable; cancellation means the caller gave up.
func IsRetryable(err error) bool {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return !errors.Is(err, context.Canceled)
}

// Client is a thin DashScope HTTP client covering the three endpoints the
// gateway uses: text generation, multimodal generation, and embeddings.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient creates a DashScope client. baseURL falls back to the public API
// root when empty.
func NewClient(apiKey, baseURL string, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		logger:     logger,
	}
}

type textMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type textRequest struct {
	Model      string         `json:"model"`
	Input      textInput      `json:"input"`
	Parameters textParameters `json:"parameters"`
}

type textInput struct {
	Messages []textMessage `json:"messages"`
}

type textParameters struct {
	Temperature  float64 `json:"temperature,omitempty"`
	ResultFormat string  `json:"result_format"`
}

type chatResponse struct {
	Output struct {
		Choices []struct {
			Message struct {
				Content json.RawMessage `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Text string `json:"text"`
	} `json:"output"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Chat sends a single-turn prompt to the text model and returns the reply.
func (c *Client) Chat(ctx context.Context, prompt string, temperature float64) (string, error) {
	reqBody := textRequest{
		Model: textModel,
		Input: textInput{
			Messages: []textMessage{{Role: "user", Content: prompt}},
		},
		Parameters: textParameters{
			Temperature:  temperature,
			ResultFormat: "message",
		},
	}

	ctx, cancel := context.WithTimeout(ctx, textTimeout)
	defer cancel()

	var resp chatResponse
	if err := c.post(ctx, "/services/aigc/text-generation/generation", reqBody, &resp); err != nil {
		return "", err
	}
	return decodeChatContent(&resp)
}

type multimodalContent struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

type multimodalMessage struct {
	Role    string              `json:"role"`
	Content []multimodalContent `json:"content"`
}

type multimodalRequest struct {
	Input struct {
		Messages []multimodalMessage `json:"messages"`
	} `json:"input"`
	Model string `json:"model"`
}

// ChatMultimodal sends a prompt with attached images to the vision model.
// Only data: image URLs are forwarded, capped at maxImages.
func (c *Client) ChatMultimodal(ctx context.Context, prompt string, imageURLs []string) (string, error) {
	content := []multimodalContent{{Text: prompt}}
	sent := 0
	for _, u := range imageURLs {
		if sent >= maxImages {
			break
		}
		if !strings.HasPrefix(u, "data:image") {
			continue
		}
		content = append(content, multimodalContent{Image: u})
		sent++
	}

	var reqBody multimodalRequest
	reqBody.Model = multimodalModel
	reqBody.Input.Messages = []multimodalMessage{{Role: "user", Content: content}}

	ctx, cancel := context.WithTimeout(ctx, visionTimeout)
	defer cancel()

	var resp chatResponse
	if err := c.post(ctx, "/services/aigc/multimodal-generation/generation", reqBody, &resp); err != nil {
		return "", err
	}
	return decodeChatContent(&resp)
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input struct {
		Texts []string `json:"texts"`
	} `json:"input"`
	Parameters struct {
		Dimension int `json:"dimension"`
	} `json:"parameters"`
}

type embeddingResponse struct {
	Output struct {
		Embeddings []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"embeddings"`
	} `json:"output"`
}

// Embed returns the embedding vector for one text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	var reqBody embeddingRequest
	reqBody.Model = embeddingModel
	reqBody.Input.Texts = []string{text}
	reqBody.Parameters.Dimension = EmbeddingDimension

	ctx, cancel := context.WithTimeout(ctx, embeddingTimeout)
	defer cancel()

	var resp embeddingResponse
	if err := c.post(ctx, "/services/embeddings/text-embedding/text-embedding", reqBody, &resp); err != nil {
		return nil, err
	}
	if len(resp.Output.Embeddings) == 0 {
		return nil, errors.New("dashscope: empty embeddings response")
	}
	return resp.Output.Embeddings[0].Embedding, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, respBody interface{}) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("dashscope request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &apiError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeChatContent handles both response shapes: the text model returns a
// plain string, the vision model an array of {"text": ...} parts.
func decodeChatContent(resp *chatResponse) (string, error) {
	if len(resp.Output.Choices) == 0 {
		if resp.Output.Text != "" {
			return resp.Output.Text, nil
		}
		return "", fmt.Errorf("dashscope: empty output (code=%s message=%s)", resp.Code, resp.Message)
	}

	raw := resp.Output.Choices[0].Message.Content

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, nil
	}

	var parts []multimodalContent
	if err := json.Unmarshal(raw, &parts); err == nil {
		var sb strings.Builder
		for _, p := range parts {
			sb.WriteString(p.Text)
		}
		return sb.String(), nil
	}

	return "", errors.New("dashscope: unrecognized message content shape")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
