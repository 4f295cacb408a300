package llmservice

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	goopenai "github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"lesson-rag/internal/config"
	"lesson-rag/internal/models"
)

// Generator sends a prompt to a text-generation service and returns its raw output.
type Generator interface {
	Generate(ctx context.Context, prompt string, mc models.ModelConfig) (string, error)
}

// New builds the generator for the configured wire style.
func New(cfg *config.GenerationConfig) (Generator, error) {
	switch cfg.API {
	case "chat":
		return NewChatGenerator(cfg)
	case "completion", "":
		return NewCompletionGenerator(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported generation api: %s", cfg.API)
	}
}

// ChatGenerator calls an OpenAI-compatible chat-completions endpoint through langchaingo.
type ChatGenerator struct {
	llm *openai.LLM
}

func NewChatGenerator(cfg *config.GenerationConfig) (*ChatGenerator, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(token(cfg.Key)),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat client: %w", err)
	}
	return &ChatGenerator{llm: llm}, nil
}

func (g *ChatGenerator) Generate(ctx context.Context, prompt string, mc models.ModelConfig) (string, error) {
	log.Debug().Interface("model", mc).Int("prompt_len", len(prompt)).Msg("Generating content")

	msgContent := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	res, err := g.llm.GenerateContent(ctx, msgContent,
		llms.WithModel(mc.ModelID),
		llms.WithTemperature(mc.Temperature),
		llms.WithMaxTokens(mc.MaxTokens),
	)
	if err != nil {
		return "", models.NewError(models.ErrGeneration, err)
	}
	if len(res.Choices) == 0 {
		return "", models.Errorf(models.ErrGeneration, "generation service returned no choices")
	}
	return res.Choices[0].Content, nil
}

// CompletionGenerator calls the legacy text-completions endpoint, which is how
// Together serves its instruct models.
type CompletionGenerator struct {
	client *goopenai.Client
}

func NewCompletionGenerator(cfg *config.GenerationConfig) *CompletionGenerator {
	c := goopenai.DefaultConfig(token(cfg.Key))
	if cfg.BaseURL != "" {
		c.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &CompletionGenerator{client: goopenai.NewClientWithConfig(c)}
}

func (g *CompletionGenerator) Generate(ctx context.Context, prompt string, mc models.ModelConfig) (string, error) {
	log.Debug().Interface("model", mc).Int("prompt_len", len(prompt)).Msg("Generating completion")

	resp, err := g.client.CreateCompletion(ctx, goopenai.CompletionRequest{
		Model:       mc.ModelID,
		Prompt:      prompt,
		Temperature: completionTemperature(mc.Temperature),
		MaxTokens:   mc.MaxTokens,
	})
	if err != nil {
		return "", models.NewError(models.ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", models.Errorf(models.ErrGeneration, "generation service returned no choices")
	}
	return resp.Choices[0].Text, nil
}

// completionTemperature keeps a zero temperature on the wire. go-openai omits
// a zero value, which would let the service fall back to its own default.
func completionTemperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

func token(key string) string {
	return strings.TrimPrefix(key, "Bearer ")
}
