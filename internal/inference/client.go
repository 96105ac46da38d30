// Package inference talks to OpenAI-chat-completions-compatible nodes,
// both blocking and token-streamed.
package inference

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lingobridge/lingobridge/internal/config"
	"github.com/lingobridge/lingobridge/internal/logging"
	"github.com/lingobridge/lingobridge/internal/pool"
)

// Error classes for failed node calls
var (
	ErrUnavailable = errors.New("inference node unreachable")
	ErrTimeout     = errors.New("inference request timed out")
	ErrUpstream    = errors.New("inference node returned an error")
)

// Request describes one translation to run on a node. Language fields are
// display names, not codes, since they are interpolated into the prompt.
type Request struct {
	Text        string
	SourceName  string
	TargetName  string
	ContextText string
	IsDocument  bool
	MaxTokens   int
}

// Result is a completed blocking translation
type Result struct {
	Translation string
	Model       string
	Elapsed     time.Duration
}

// StreamChunk is one delivery on a token stream. Model carries the node's
// reported model name when present. Err is set on the final chunk when the
// stream failed; otherwise the channel closes after the last token.
type StreamChunk struct {
	Token string
	Model string
	Err   error
}

// Client issues chat-completions calls against pool nodes
type Client struct {
	httpClient        *http.Client
	maxTokens         int
	streamMaxTokens   int
	documentMaxTokens int
	temperature       float64
	logger            *logging.Logger
}

// NewClient creates a client from the inference config section
func NewClient(cfg config.InferenceConfig, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Global()
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		httpClient:        &http.Client{Timeout: timeout},
		maxTokens:         cfg.MaxTokens,
		streamMaxTokens:   cfg.StreamMaxTokens,
		documentMaxTokens: cfg.DocumentMaxTokens,
		temperature:       cfg.Temperature,
		logger:            logger,
	}
}

// Wire shapes for the chat-completions protocol

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatTemplateKwargs struct {
	EnableThinking bool `json:"enable_thinking"`
}

type chatRequest struct {
	MaxTokens          int                `json:"max_tokens"`
	Messages           []chatMessage      `json:"messages"`
	Stream             bool               `json:"stream"`
	Temperature        float64            `json:"temperature"`
	ChatTemplateKwargs chatTemplateKwargs `json:"chat_template_kwargs"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
	Delta   chatMessage `json:"delta"`
}

type chatResponse struct {
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

func (c *Client) buildPayload(req Request, stream bool) chatRequest {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		if stream {
			maxTokens = c.streamMaxTokens
		} else {
			maxTokens = c.maxTokens
		}
	}
	if req.IsDocument {
		maxTokens = c.documentMaxTokens
	}

	return chatRequest{
		MaxTokens: maxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt(req.TargetName)},
			{Role: "user", Content: BuildPrompt(req.SourceName, req.TargetName, req.Text, req.ContextText, req.IsDocument)},
		},
		Stream:             stream,
		Temperature:        c.temperature,
		ChatTemplateKwargs: chatTemplateKwargs{EnableThinking: false},
	}
}

func (c *Client) post(ctx context.Context, node pool.Node, payload chatRequest) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	url := node.URL + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return resp, nil
}

// classifyTransport maps transport failures to the client's error classes
func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Complete runs a blocking translation on the given node. Result.Elapsed
// is set even when an error is returned.
func (c *Client) Complete(ctx context.Context, node pool.Node, req Request) (Result, error) {
	start := time.Now()

	resp, err := c.post(ctx, node, c.buildPayload(req, false))
	if err != nil {
		return Result{Elapsed: time.Since(start)}, err
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{Elapsed: time.Since(start)}, fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}
	if len(parsed.Choices) == 0 {
		return Result{Elapsed: time.Since(start)}, fmt.Errorf("%w: response has no choices", ErrUpstream)
	}

	result := Result{
		Translation: strings.TrimSpace(parsed.Choices[0].Message.Content),
		Model:       parsed.Model,
		Elapsed:     time.Since(start),
	}

	c.logger.Info("Translation completed",
		"node_id", node.ID,
		"model", result.Model,
		"duration_ms", result.Elapsed.Milliseconds())
	return result, nil
}

// Stream runs a streaming translation and returns a channel of token
// chunks. The channel closes after the final token, or after one chunk
// with Err set if the stream breaks mid-flight. Malformed SSE payloads
// are skipped. Cancelling ctx stops consumption.
func (c *Client) Stream(ctx context.Context, node pool.Node, req Request) (<-chan StreamChunk, error) {
	resp, err := c.post(ctx, node, c.buildPayload(req, true))
	if err != nil {
		return nil, err
	}

	out := make(chan StreamChunk)
	go func() {
		defer close(out)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)

		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "data: ") {
				continue
			}

			data := strings.TrimPrefix(line, "data: ")
			if data == "[DONE]" {
				return
			}

			var chunk chatResponse
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				c.logger.Warn("Skipping malformed stream chunk",
					"node_id", node.ID, "error", err)
				continue
			}
			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}

			select {
			case out <- StreamChunk{Token: chunk.Choices[0].Delta.Content, Model: chunk.Model}:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			select {
			case out <- StreamChunk{Err: classifyTransport(err)}:
			case <-ctx.Done():
			}
		}
	}()

	return out, nil
}
