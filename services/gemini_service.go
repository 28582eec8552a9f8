package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// Chat history roles as the oracle expects them
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatTurn is one prior exchange handed to the chat oracle
type ChatTurn struct {
	Role string
	Text string
}

// ContentGenerator is the boundary to the text-generation oracle. The
// concrete client is constructed once and injected; tests substitute a
// deterministic fake.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateChat(ctx context.Context, instruction string, history []ChatTurn, message string, maxOutputTokens int32) (string, error)
}

// GeminiService wraps the Google GenAI client behind ContentGenerator
type GeminiService struct {
	client    *genai.Client
	modelName string
}

func NewGeminiService(ctx context.Context, apiKey, model string) (*GeminiService, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}

	return &GeminiService{client: client, modelName: model}, nil
}

// GenerateContent sends a single prompt and returns the first textual response
func (g *GeminiService) GenerateContent(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return collectText(resp)
}

// GenerateChat continues a conversation: prior turns become the content
// history, instruction grounds the persona, and the output length is
// capped by maxOutputTokens.
func (g *GeminiService) GenerateChat(ctx context.Context, instruction string, history []ChatTurn, message string, maxOutputTokens int32) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.RoleUser
		if turn.Role == ChatRoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: message}},
	})

	cfg := &genai.GenerateContentConfig{}
	if maxOutputTokens > 0 {
		cfg.MaxOutputTokens = maxOutputTokens
	}
	if instruction = strings.TrimSpace(instruction); instruction != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: instruction}},
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate chat: %w", err)
	}
	return collectText(resp)
}

func (g *GeminiService) Model() string {
	return g.modelName
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}
