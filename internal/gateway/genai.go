package gateway

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/vakildesk/vakildesk-api/pkg/config"
)

// Message is one conversation turn sent to the generative model.
type Message struct {
	Role string
	Text string
}

// Client talks to a hosted generative-model REST API. Responses come either
// whole (Generate) or as server-sent events (Stream).
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
	logger     *zap.Logger
}

// NewClient constructs the client. An empty API key is allowed; callers must
// check Configured before issuing requests.
func NewClient(cfg config.AdvisorConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		logger:     logger,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type wirePart struct {
	Text string `json:"text"`
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type wireRequest struct {
	Contents []wireContent `json:"contents"`
}

type wireResponse struct {
	Candidates []struct {
		Content wireContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate performs a blocking completion and returns the concatenated text.
func (c *Client) Generate(ctx context.Context, messages []Message) (string, error) {
	body, err := c.post(ctx, ":generateContent", messages)
	if err != nil {
		return "", err
	}
	defer body.Close() //nolint:errcheck

	payload, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("read model response: %w", err)
	}

	var resp wireResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return "", fmt.Errorf("decode model response: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("model error: %s", resp.Error.Message)
	}
	return extractText(resp), nil
}

// Stream performs a streaming completion. Text chunks arrive on the returned
// channel in order; the channel closes when the stream ends. A mid-stream
// interruption closes the channel without error so whatever accumulated is
// preserved (no automatic retry).
func (c *Client) Stream(ctx context.Context, messages []Message) (<-chan string, error) {
	body, err := c.post(ctx, ":streamGenerateContent?alt=sse", messages)
	if err != nil {
		return nil, err
	}

	chunks := make(chan string)
	go func() {
		defer close(chunks)
		defer body.Close() //nolint:errcheck

		scanner := bufio.NewScanner(body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "data:") {
				continue
			}
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if data == "" || data == "[DONE]" {
				continue
			}

			var resp wireResponse
			if err := json.Unmarshal([]byte(data), &resp); err != nil {
				c.logger.Warn("skipping undecodable stream event", zap.Error(err))
				continue
			}
			if text := extractText(resp); text != "" {
				select {
				case chunks <- text:
				case <-ctx.Done():
					return
				}
			}
		}
		if err := scanner.Err(); err != nil {
			c.logger.Warn("model stream interrupted", zap.Error(err))
		}
	}()
	return chunks, nil
}

func (c *Client) post(ctx context.Context, action string, messages []Message) (io.ReadCloser, error) {
	contents := make([]wireContent, 0, len(messages))
	for _, m := range messages {
		role := m.Role
		if role == "" {
			role = "user"
		}
		contents = append(contents, wireContent{Role: role, Parts: []wirePart{{Text: m.Text}}})
	}

	payload, err := json.Marshal(wireRequest{Contents: contents})
	if err != nil {
		return nil, fmt.Errorf("encode model request: %w", err)
	}

	sep := "?"
	if strings.Contains(action, "?") {
		sep = "&"
	}
	url := fmt.Sprintf("%s/models/%s%s%skey=%s", c.baseURL, c.model, action, sep, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call model: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close() //nolint:errcheck
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("model returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return resp.Body, nil
}

func extractText(resp wireResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
