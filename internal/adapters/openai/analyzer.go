package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"github.com/example/pawlog/internal/core/stool"
	"github.com/example/pawlog/internal/models"
	"github.com/example/pawlog/internal/ports/secondary"
)

// Ensure Analyzer implements the interface
var _ secondary.StoolAnalyzer = (*Analyzer)(nil)

const systemPrompt = `You are a veterinary AI expert specializing in canine digestive health. Analyze the dog poo image and provided metadata.
Return ONLY valid JSON matching the requested structure. Do not include markdown formatting.`

const userPromptTemplate = `Analyze this dog poo.
Context:
- User Consistency Score (1-5): %d
- User Color Selection: %s
- User Notes: %s

Return a JSON object with this EXACT structure:
{
  "poo_analysis": {
    "classification": "string (e.g. Healthy, Well-Formed)",
    "score": number (0-10, 10 being perfect),
    "gut_health_summary": "string (2-3 sentences)",
    "details": {
      "shape": { "description": "string", "signals": ["string"] },
      "texture": { "description": "string", "possible_interpretations": ["string"] },
      "color": { "description": "string", "possible_interpretations": ["string"] },
      "moisture": { "description": "string", "signals": ["string"] },
      "parasite_check": { "visible_signs": "string", "notes": "string" }
    },
    "hydration_estimate": { "percent": number (0-100), "interpretation": "string" },
    "potential_flags": {
      "none_major": boolean,
      "minor_observations": ["string"]
    },
    "recommendations": ["string"],
    "confidence_score": number (0-1)
  }
}`

// Analyzer implements secondary.StoolAnalyzer against the chat completions
// vision API. One request per call, no internal retries; the save pipeline
// treats every failure here as terminal for the attempt.
type Analyzer struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewAnalyzer creates an analyzer for the given API key and model.
func NewAnalyzer(apiKey, model string, logger zerolog.Logger) (*Analyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return &Analyzer{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    logger,
	}, nil
}

// Analyze sends the uploaded photo plus the user's manual inputs and maps the
// model's reply into an AnalysisResult.
func (a *Analyzer) Analyze(ctx context.Context, photoURL string, draft models.LogDraft) (*models.AnalysisResult, error) {
	userPrompt := fmt.Sprintf(userPromptTemplate, draft.ConsistencyScore, draft.Color, draft.Notes)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: userPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: photoURL,
						},
					},
				},
			},
		},
		MaxTokens: 1000,
	})
	if err != nil {
		return nil, &secondary.AnalysisError{Message: err.Error(), Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &secondary.AnalysisError{Message: "no completion choices returned"}
	}

	result, err := parseCompletion(resp.Choices[0].Message.Content)
	if err != nil {
		a.log.Warn().Err(err).Msg("analysis reply did not match the expected shape")
		return nil, err
	}
	return result, nil
}

// wireAnalysis mirrors the model's reply shape. The score rides on a 0-10
// scale and the flags on a none_major boolean; both get remapped before the
// result leaves this package.
type wireAnalysis struct {
	Classification   string  `json:"classification"`
	Score            float64 `json:"score"`
	GutHealthSummary string  `json:"gut_health_summary"`
	Details          struct {
		Shape         models.TraitAnalysis `json:"shape"`
		Texture       models.TraitAnalysis `json:"texture"`
		Color         models.TraitAnalysis `json:"color"`
		Moisture      models.TraitAnalysis `json:"moisture"`
		ParasiteCheck models.ParasiteCheck `json:"parasite_check"`
	} `json:"details"`
	Hydration      models.HydrationEstimate `json:"hydration_estimate"`
	PotentialFlags struct {
		NoneMajor         bool     `json:"none_major"`
		MinorObservations []string `json:"minor_observations"`
	} `json:"potential_flags"`
	Recommendations []string `json:"recommendations"`
	ConfidenceScore float64  `json:"confidence_score"`
}

// parseCompletion turns the raw reply text into an AnalysisResult. Returns
// *secondary.AnalysisError on any shape mismatch.
func parseCompletion(content string) (*models.AnalysisResult, error) {
	// Models sometimes wrap the JSON in markdown code fences despite the
	// instructions; strip them before parsing.
	clean := strings.ReplaceAll(content, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var payload struct {
		PooAnalysis *wireAnalysis `json:"poo_analysis"`
	}
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil, &secondary.AnalysisError{Message: "reply is not valid JSON", Err: err}
	}
	if payload.PooAnalysis == nil {
		return nil, &secondary.AnalysisError{Message: "reply is missing the poo_analysis object"}
	}

	w := payload.PooAnalysis
	return &models.AnalysisResult{
		Classification:            w.Classification,
		HealthScore:               stool.HealthScoreFromRaw(w.Score),
		GutHealthSummary:          w.GutHealthSummary,
		Shape:                     w.Details.Shape,
		Texture:                   w.Details.Texture,
		Color:                     w.Details.Color,
		Moisture:                  w.Details.Moisture,
		ParasiteCheck:             w.Details.ParasiteCheck,
		FlagsAndObservations:      w.PotentialFlags.MinorObservations,
		ActionableRecommendations: w.Recommendations,
		VetFlag:                   !w.PotentialFlags.NoneMajor,
		ConfidenceScore:           stool.ClampConfidence(w.ConfidenceScore),
		Hydration:                 w.Hydration,
	}, nil
}
