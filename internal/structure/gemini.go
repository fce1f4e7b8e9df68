package structure

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const promptTemplate = `Extract structured academic opportunity details.

Return JSON only:

{
  "domain": "",
  "sub_domain": "",
  "deadline": "",
  "eligibility": "",
  "skills_required": []
}

Title: %s
Description: %s
Link: %s
University: %s

If this is NOT an academic opportunity, return null.
If not enough information, return empty fields.
Return ONLY valid JSON.`

// Gemini asks Google's text-generation service to extract the structured
// fields from one entry.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGemini(ctx context.Context, apiKey, modelName string) (*Gemini, error) {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	m := client.GenerativeModel(modelName)
	m.ResponseMIMEType = "application/json"
	return &Gemini{client: client, model: m}, nil
}

func (g *Gemini) Close() error { return g.client.Close() }

func (g *Gemini) Structure(ctx context.Context, in Input) (*Result, error) {
	prompt := fmt.Sprintf(promptTemplate, in.Title, in.Description, in.Link, in.University)

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	var raw strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				raw.WriteString(string(t))
			}
		}
	}

	return ParseResponse(raw.String())
}

// ParseResponse decodes the model's raw text. The literal token "null" means
// the model rejected the entry; anything that fails to decode is an error the
// caller treats as recoverable (fallback fields, short backoff).
func ParseResponse(raw string) (*Result, error) {
	text := strings.TrimSpace(raw)

	// Models wrap JSON in markdown fences more often than not.
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	if text == "" || strings.EqualFold(text, "null") {
		return nil, nil
	}

	var res Result
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		return nil, fmt.Errorf("parse model response: %w", err)
	}
	return &res, nil
}
