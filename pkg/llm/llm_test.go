package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChatClient records the last request and returns a canned response.
type stubChatClient struct {
	lastReq openai.ChatCompletionRequest
	content string
	err     error
}

func (s *stubChatClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return openai.ChatCompletionResponse{}, s.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: s.content}},
		},
	}, nil
}

func TestComplete_ReturnsContent(t *testing.T) {
	stub := &stubChatClient{content: "generated text"}
	c := NewWithChatClient(stub, "model-a", 0.2)

	got := c.Complete(context.Background(), Request{Prompt: "hello", Temperature: 0.3})

	assert.Equal(t, "generated text", got)
	assert.Equal(t, "model-a", stub.lastReq.Model)
	assert.Equal(t, float32(0.3), stub.lastReq.Temperature)
	require.Len(t, stub.lastReq.Messages, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, stub.lastReq.Messages[0].Role)
	assert.Equal(t, "hello", stub.lastReq.Messages[0].Content)
}

func TestComplete_SystemPromptFirst(t *testing.T) {
	stub := &stubChatClient{content: "ok"}
	c := NewWithChatClient(stub, "model-a", 0.2)

	c.Complete(context.Background(), Request{Prompt: "q", System: "you are helpful"})

	require.Len(t, stub.lastReq.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, stub.lastReq.Messages[0].Role)
	assert.Equal(t, "you are helpful", stub.lastReq.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, stub.lastReq.Messages[1].Role)
}

func TestComplete_DefaultTemperatureApplied(t *testing.T) {
	stub := &stubChatClient{content: "ok"}
	c := NewWithChatClient(stub, "model-a", 0.2)

	// A compare-style call carries no temperature of its own.
	c.Complete(context.Background(), Request{Prompt: "q"})

	assert.Equal(t, float32(0.2), stub.lastReq.Temperature)
}

func TestComplete_ExplicitTemperatureWins(t *testing.T) {
	stub := &stubChatClient{content: "ok"}
	c := NewWithChatClient(stub, "model-a", 0.2)

	c.Complete(context.Background(), Request{Prompt: "q", Temperature: 0.15})

	assert.Equal(t, float32(0.15), stub.lastReq.Temperature)
}

func TestComplete_ModelOverride(t *testing.T) {
	stub := &stubChatClient{content: "ok"}
	c := NewWithChatClient(stub, "default-model", 0.2)

	c.Complete(context.Background(), Request{Model: "override", Prompt: "q"})

	assert.Equal(t, "override", stub.lastReq.Model)
}

func TestComplete_ErrorBecomesSentinel(t *testing.T) {
	stub := &stubChatClient{err: errors.New("connection refused")}
	c := NewWithChatClient(stub, "model-a", 0.2)

	got := c.Complete(context.Background(), Request{Prompt: "q"})

	assert.Contains(t, got, ErrorPrefix)
	assert.Contains(t, got, "connection refused")
}

func TestComplete_EmptyChoicesBecomesSentinel(t *testing.T) {
	// A stub that returns a response with no choices.
	empty := chatClientFunc(func(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{}, nil
	})
	c := NewWithChatClient(empty, "model-a", 0.2)

	got := c.Complete(context.Background(), Request{Prompt: "q"})

	assert.Contains(t, got, ErrorPrefix)
}

func TestStream_UnsupportedClient(t *testing.T) {
	c := NewWithChatClient(&stubChatClient{content: "ok"}, "model-a", 0.2)

	_, err := c.Stream(context.Background(), Request{Prompt: "q"})
	assert.Error(t, err)
}

type chatClientFunc func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)

func (f chatClientFunc) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return f(ctx, req)
}
