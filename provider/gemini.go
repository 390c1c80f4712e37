package provider

import (
	"context"
	"fmt"

	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"google.golang.org/genai"

	"asistente/config"
	"asistente/model"
)

// GeminiProvider implements model.Provider against the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, modelName string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not set (set ASISTENTE_GEMINI_API_KEY or gemini.api_key in config)")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: modelName}, nil
}

func (p *GeminiProvider) GetModel() string {
	return p.model
}

func (p *GeminiProvider) SetModel(modelName string) {
	p.model = modelName
}

// Ping verifies credentials and model availability with a cheap
// token-count request.
func (p *GeminiProvider) Ping(ctx context.Context) error {
	contents := []*genai.Content{
		genai.NewContentFromText("ping", genai.RoleUser),
	}
	if _, err := p.client.Models.CountTokens(ctx, p.model, contents, nil); err != nil {
		return fmt.Errorf("gemini unreachable: %w", err)
	}
	return nil
}

// StreamTurn streams one model response, classifying each part as it
// arrives. Thought parts become reasoning fragments, plain text
// becomes reply fragments and function calls are surfaced as tool
// invocations. The caller drives the continuation loop.
func (p *GeminiProvider) StreamTurn(ctx context.Context, turns []model.Turn, tools []mcptypes.Tool, systemPrompt string, callback model.StreamCallback) error {
	contents := ConvertTurns(turns)

	cfg := &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{IncludeThoughts: true},
	}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}
	if decls := ConvertTools(tools); len(decls) > 0 {
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	for result, err := range p.client.Models.GenerateContentStream(ctx, p.model, contents, cfg) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return fmt.Errorf("gemini stream: %w", err)
		}
		if len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			continue
		}
		for _, part := range result.Candidates[0].Content.Parts {
			frag, ok := classifyPart(part)
			if !ok {
				continue
			}
			if err := callback(frag); err != nil {
				return err
			}
		}
	}
	return nil
}

// classifyPart maps a genai part onto exactly one fragment kind.
// Unknown part types are dropped.
func classifyPart(part *genai.Part) (model.Fragment, bool) {
	switch {
	case part.FunctionCall != nil:
		fc := part.FunctionCall
		if config.DebugLog != nil {
			config.DebugLog.Printf("function call: %s %v", fc.Name, fc.Args)
		}
		args := fc.Args
		if args == nil {
			args = map[string]any{}
		}
		return model.Fragment{Call: &model.ToolCall{Name: fc.Name, Arguments: args}}, true
	case part.Text != "" && part.Thought:
		return model.Fragment{Thought: part.Text}, true
	case part.Text != "":
		return model.Fragment{Text: part.Text}, true
	default:
		return model.Fragment{}, false
	}
}
