package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AIService holds the Gemini client used for copy and SEO generation.
type AIService struct {
	Client *genai.Client
}

// NewAIService initializes the Gemini client.
func NewAIService(apiKey string) (*AIService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &AIService{Client: client}, nil
}

// OpGenerateCopy is the listing-copy operation accepted by Invoke.
const OpGenerateCopy = "generate_copy"

// CopyRequest describes the draft context the model writes copy for.
type CopyRequest struct {
	ArchetypeName string   `json:"archetypeName"`
	IdentityName  string   `json:"identityName"`
	MascotID      string   `json:"mascotId,omitempty"`
	Material      string   `json:"material,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	ExtraPrompt   string   `json:"extraPrompt,omitempty"`
	Model         string   `json:"model,omitempty"`
}

// CopyResult is the structured content the model fills in. Only populated
// fields are applied to the draft; everything else stays as the user wrote
// it.
type CopyResult struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	SEOTitle       string   `json:"seoTitle"`
	SEODescription string   `json:"seoDescription"`
	Tags           []string `json:"tags"`
}

// GenerateProductCopy asks Gemini for listing copy and parses the JSON it
// returns. The caller decides whether the result is still wanted (stale
// drafts discard it).
func (s *AIService) GenerateProductCopy(ctx context.Context, req CopyRequest, modelName string) (*CopyResult, error) {
	if modelName == "" {
		modelName = "gemini-1.5-flash" // Fallback default
	}
	model := s.Client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(`
			You write product listing copy for a streetwear brand admin tool.
			Respond with ONLY a JSON object with keys:
			title, description, seoTitle, seoDescription, tags (array of strings).
			Keep titles under 70 characters and descriptions under 400.
		`)},
	}

	prompt := fmt.Sprintf(
		"Product type: %s\nBrand line: %s\nMascot: %s\nMaterial: %s\nKeywords: %s\n%s",
		req.ArchetypeName, req.IdentityName, req.MascotID, req.Material,
		strings.Join(req.Keywords, ", "), req.ExtraPrompt,
	)

	res, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("error generating copy: %w", err)
	}
	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	text, ok := res.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response part type")
	}

	var out CopyResult
	if err := json.Unmarshal([]byte(stripFences(string(text))), &out); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}
	return &out, nil
}

// Invoke is the generic collaborator surface: an opaque operation name plus
// a JSON-ish payload in, structured fields out. Callers consume only the
// fields the operation populated.
func (s *AIService) Invoke(ctx context.Context, operation string, payload map[string]interface{}) (map[string]interface{}, error) {
	switch operation {
	case OpGenerateCopy:
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		var req CopyRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, fmt.Errorf("invalid %s payload: %w", operation, err)
		}
		result, err := s.GenerateProductCopy(ctx, req, req.Model)
		if err != nil {
			return nil, err
		}
		out := map[string]interface{}{}
		b, _ := json.Marshal(result)
		_ = json.Unmarshal(b, &out)
		return out, nil
	default:
		return nil, fmt.Errorf("unknown operation: %s", operation)
	}
}

// stripFences removes a ```json ... ``` wrapper if the model added one.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
