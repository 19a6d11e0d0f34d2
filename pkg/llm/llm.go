// Package llm wraps the OpenAI-compatible chat completions backend behind a
// single blocking Complete call. Transport and backend failures are converted
// into sentinel-prefixed text at this boundary so pipeline stages never have
// to branch on completion errors: a failed call becomes visible content in
// the stage's artifact and the pipeline keeps going.
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/planpilot-ai/planpilot/pkg/observability"
)

// ErrorPrefix marks completion text produced from a failed backend call.
const ErrorPrefix = "[LLM ERROR]"

// StreamErrorPrefix marks a terminal chunk produced from a failed stream.
const StreamErrorPrefix = "[STREAM ERROR]"

// ChatClient is the subset of the OpenAI client used for completions.
// Tests substitute a stub implementation.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatStreamer is implemented by clients that support streaming responses.
type ChatStreamer interface {
	CreateChatCompletionStream(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionStream, error)
}

// Request describes one completion call.
type Request struct {
	// Model is the backend model identifier.
	Model string
	// Prompt is the user message content.
	Prompt string
	// System is an optional system instruction prepended to the prompt.
	System string
	// Temperature controls randomness. Zero means the client's default
	// applies; the range is the caller's responsibility, no validation is
	// enforced here.
	Temperature float64
}

// Client performs completions against one OpenAI-compatible backend.
// The underlying transport is configured once at construction and shared
// read-only across all requests.
type Client struct {
	api                ChatClient
	defaultModel       string
	defaultTemperature float64
}

// New creates a Client for the given backend endpoint. Requests that leave
// Temperature at zero generate with defaultTemperature.
func New(baseURL, apiKey, defaultModel string, defaultTemperature float64) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}

	return &Client{
		api:                openai.NewClientWithConfig(cfg),
		defaultModel:       defaultModel,
		defaultTemperature: defaultTemperature,
	}
}

// NewWithChatClient creates a Client over a caller-supplied backend client.
// Used by tests to substitute a stub.
func NewWithChatClient(api ChatClient, defaultModel string, defaultTemperature float64) *Client {
	return &Client{api: api, defaultModel: defaultModel, defaultTemperature: defaultTemperature}
}

// DefaultModel returns the model used when a request leaves Model empty.
func (c *Client) DefaultModel() string { return c.defaultModel }

// DefaultTemperature returns the temperature used when a request leaves
// Temperature at zero.
func (c *Client) DefaultTemperature() float64 { return c.defaultTemperature }

// Complete performs one blocking completion call and returns the generated
// text. Any transport or backend error is converted into a sentinel-prefixed
// string rather than returned as an error; callers must treat such text as a
// normal, if degraded, result.
func (c *Client) Complete(ctx context.Context, req Request) string {
	built := c.buildRequest(req)

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, built)
	if err != nil {
		observability.RecordLLMRequest(built.Model, "error", time.Since(start))
		return fmt.Sprintf("%s %v", ErrorPrefix, err)
	}

	if len(resp.Choices) == 0 {
		observability.RecordLLMRequest(built.Model, "error", time.Since(start))
		return fmt.Sprintf("%s no choices in response", ErrorPrefix)
	}

	observability.RecordLLMRequest(built.Model, "ok", time.Since(start))
	return resp.Choices[0].Message.Content
}

// Stream performs a streaming completion, delivering incremental text chunks
// on the returned channel. The channel is closed when the stream ends; a
// stream failure is delivered as a final sentinel-prefixed chunk. This is an
// isolated capability: no pipeline consumes it.
func (c *Client) Stream(ctx context.Context, req Request) (<-chan string, error) {
	streamer, ok := c.api.(ChatStreamer)
	if !ok {
		return nil, fmt.Errorf("backend client does not support streaming")
	}

	stream, err := streamer.CreateChatCompletionStream(ctx, c.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("open completion stream: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		defer func() { _ = stream.Close() }()

		for {
			chunk, err := stream.Recv()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					out <- fmt.Sprintf("%s %v", StreamErrorPrefix, err)
				}
				return
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			if delta := chunk.Choices[0].Delta.Content; delta != "" {
				select {
				case out <- delta:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

func (c *Client) buildRequest(req Request) openai.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = c.defaultModel
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.defaultTemperature
	}

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(temperature),
	}
}
