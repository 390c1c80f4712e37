package provider

import (
	mcptypes "github.com/mark3labs/mcp-go/mcp"
	"google.golang.org/genai"

	"asistente/model"
)

// ConvertTurns maps application turns onto genai contents. Tool turns
// are sent back as user-role function responses, which is how the
// Gemini API expects invocation results.
func ConvertTurns(turns []model.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case "user":
			contents = append(contents, genai.NewContentFromText(turn.Text, genai.RoleUser))
		case "model":
			content := &genai.Content{Role: genai.RoleModel}
			if turn.Text != "" {
				content.Parts = append(content.Parts, genai.NewPartFromText(turn.Text))
			}
			for _, call := range turn.Calls {
				content.Parts = append(content.Parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{
						Name: call.Name,
						Args: call.Arguments,
					},
				})
			}
			if len(content.Parts) == 0 {
				continue
			}
			contents = append(contents, content)
		case "tool":
			parts := make([]*genai.Part, 0, len(turn.Results))
			for _, res := range turn.Results {
				parts = append(parts, &genai.Part{
					FunctionResponse: &genai.FunctionResponse{
						Name:     res.Call.Name,
						Response: responsePayload(res),
					},
				})
			}
			if len(parts) == 0 {
				continue
			}
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
		}
	}
	return contents
}

func responsePayload(res model.ToolResult) map[string]any {
	if res.IsError {
		return map[string]any{"error": res.Text}
	}
	return map[string]any{"result": res.Text}
}

// ConvertTools maps declared wire tools onto genai function
// declarations, translating each JSON schema property.
func ConvertTools(tools []mcptypes.Tool) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decl := &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
		}
		if len(tool.InputSchema.Properties) > 0 {
			schema := &genai.Schema{
				Type:       genai.TypeObject,
				Properties: make(map[string]*genai.Schema, len(tool.InputSchema.Properties)),
			}
			for name, raw := range tool.InputSchema.Properties {
				prop, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				schema.Properties[name] = convertProperty(prop)
			}
			schema.Required = append(schema.Required, tool.InputSchema.Required...)
			decl.Parameters = schema
		}
		decls = append(decls, decl)
	}
	return decls
}

func convertProperty(prop map[string]any) *genai.Schema {
	s := &genai.Schema{Type: genai.TypeString}
	if t, ok := prop["type"].(string); ok {
		switch t {
		case "integer":
			s.Type = genai.TypeInteger
		case "number":
			s.Type = genai.TypeNumber
		case "boolean":
			s.Type = genai.TypeBoolean
		case "array":
			s.Type = genai.TypeArray
		case "object":
			s.Type = genai.TypeObject
		}
	}
	if d, ok := prop["description"].(string); ok {
		s.Description = d
	}
	return s
}
