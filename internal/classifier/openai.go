package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/meridareporta/backend/internal/config"
	"github.com/meridareporta/backend/internal/models"
)

// Classifier produces structured content verdicts from text and images.
// Implementations make blocking network calls; callers own the permissive
// fallback on error.
type Classifier interface {
	CheckText(ctx context.Context, description string) (*TextVerdict, error)
	AnalyzeReport(ctx context.Context, category, description, imageURL string) (*ReportVerdict, error)
}

// OpenAIClient talks to an OpenAI-compatible chat-completions API.
type OpenAIClient struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	model       string
	visionModel string
	enabled     bool
	logger      *slog.Logger
}

func NewOpenAIClient(cfg *config.ClassifierConfig, logger *slog.Logger) *OpenAIClient {
	return &OpenAIClient{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		visionModel: cfg.VisionModel,
		enabled:     cfg.Enabled,
		logger:      logger,
	}
}

// chat-completions request/response shapes, limited to what we consume.

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat map[string]any `json:"response_format"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// rawTextVerdict mirrors the JSON schema the moderation prompt requests.
type rawTextVerdict struct {
	IsOffensive     bool     `json:"is_offensive"`
	IsInappropriate bool     `json:"is_inappropriate"`
	IsSpam          bool     `json:"is_spam"`
	IsTest          bool     `json:"is_test"`
	IsNonsense      bool     `json:"is_nonsense"`
	OffenseType     string   `json:"offense_type"`
	DetectedWords   []string `json:"detected_words"`
	Severity        string   `json:"severity"`
	RequiresStrike  bool     `json:"requires_strike"`
	RejectionReason string   `json:"rejection_reason"`
	Feedback        string   `json:"professional_feedback"`
}

// rawReportVerdict mirrors the JSON schema the analysis prompts request.
type rawReportVerdict struct {
	IsValid           *bool    `json:"is_valid"`
	Confidence        *float64 `json:"confidence"`
	SuggestedCategory string   `json:"suggested_category"`
	SuggestedPriority *int     `json:"suggested_priority"`
	Reasoning         string   `json:"reasoning"`
	UrgencyLevel      string   `json:"urgency_level"`

	ImageValid      *bool  `json:"image_valid"`
	MatchesCategory *bool  `json:"matches_category"`
	SeverityScore   *int   `json:"severity_score"`
	ObservedDetails string `json:"observed_details"`
	IsJokeOrFake    bool   `json:"is_joke_or_fake"`
	IsOffensive     bool   `json:"is_offensive"`
	IsInappropriate bool   `json:"is_inappropriate"`
	OffenseType     string `json:"offense_type"`
	RejectionReason string `json:"rejection_reason"`
	Feedback        string `json:"professional_feedback"`
	RequiresStrike  bool   `json:"requires_strike"`
	StrikeSeverity  string `json:"strike_severity"`
}

// CheckText runs the text-only offensiveness pre-check. It is called before
// any image analysis so that users rejectable on text alone never cost a
// vision call.
func (c *OpenAIClient) CheckText(ctx context.Context, description string) (*TextVerdict, error) {
	if !c.enabled {
		return DefaultTextVerdict(), nil
	}

	content, err := c.complete(ctx, c.model, textCheckSystemPrompt, textCheckPrompt(description), 500, 0.2)
	if err != nil {
		return nil, err
	}

	var raw rawTextVerdict
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("malformed text verdict: %w", err)
	}

	verdict := &TextVerdict{
		IsOffensive:     raw.IsOffensive,
		IsInappropriate: raw.IsInappropriate,
		IsSpam:          raw.IsSpam,
		IsTest:          raw.IsTest,
		IsNonsense:      raw.IsNonsense,
		OffenseType:     raw.OffenseType,
		DetectedWords:   raw.DetectedWords,
		RequiresStrike:  raw.RequiresStrike,
		RejectionReason: raw.RejectionReason,
		Feedback:        raw.Feedback,
	}
	// Flagged content with an unrecognized severity escalates to high rather
	// than silently dropping to a lenient tier.
	verdict.Severity = normalizeSeverity(raw.Severity, models.SeverityHigh)

	return verdict, nil
}

// AnalyzeReport runs the combined text+image analysis. imageURL may be empty,
// in which case only the text model is consulted.
func (c *OpenAIClient) AnalyzeReport(ctx context.Context, category, description, imageURL string) (*ReportVerdict, error) {
	if !c.enabled {
		return DefaultReportVerdict(category), nil
	}

	model := c.model
	var userContent any = analysisPrompt(category, description, imageURL != "")
	system := analysisSystemPrompt
	if imageURL != "" {
		model = c.visionModel
		system = visionSystemPrompt
		img := imageURLRef(imageURL)
		userContent = []contentPart{
			{Type: "text", Text: visionPrompt(category, description)},
			{Type: "image_url", ImageURL: &img},
		}
	}

	content, err := c.completeWith(ctx, model, system, userContent, 1000, 0.3)
	if err != nil {
		return nil, err
	}

	var raw rawReportVerdict
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("malformed report verdict: %w", err)
	}

	return normalizeReportVerdict(&raw, category, imageURL != ""), nil
}

func imageURLRef(url string) imageURL {
	return imageURL{URL: url}
}

// normalizeReportVerdict coerces every classifier-reported field onto the
// documented enumerations and ranges.
func normalizeReportVerdict(raw *rawReportVerdict, category string, hasImage bool) *ReportVerdict {
	v := &ReportVerdict{
		IsValid:           boolOr(raw.IsValid, true),
		Confidence:        clampFloat(floatOr(raw.Confidence, 0.7), 0, 1),
		SuggestedCategory: normalizeCategory(raw.SuggestedCategory),
		SuggestedPriority: clampInt(intOr(raw.SuggestedPriority, DefaultPriority), 1, 5),
		Reasoning:         raw.Reasoning,
		UrgencyLevel:      normalizeUrgency(raw.UrgencyLevel),
		ImageValid:        true,
		MatchesCategory:   true,
		SeverityScore:     5,
		AIValidated:       true,
	}

	if hasImage {
		v.ImageValid = boolOr(raw.ImageValid, true)
		v.MatchesCategory = boolOr(raw.MatchesCategory, true)
		v.SeverityScore = clampInt(intOr(raw.SeverityScore, 5), 1, 10)
		v.ObservedDetails = raw.ObservedDetails
		v.IsJokeOrFake = raw.IsJokeOrFake
		v.IsOffensive = raw.IsOffensive
		v.IsInappropriate = raw.IsInappropriate
		v.OffenseType = raw.OffenseType
		v.RejectionReason = raw.RejectionReason
		v.Feedback = raw.Feedback
		v.RequiresStrike = raw.RequiresStrike
		v.StrikeSeverity = normalizeSeverity(raw.StrikeSeverity, "")

		if v.ImageRejected() {
			v.IsValid = false
			v.Confidence = 0.2
			if v.RejectionReason != "" {
				v.Reasoning = "Imagen rechazada: " + v.RejectionReason
			}
		} else {
			// Image severity steers priority and urgency on valid images.
			switch {
			case v.SeverityScore >= 9:
				v.SuggestedPriority, v.UrgencyLevel = 5, "critical"
			case v.SeverityScore >= 7:
				v.SuggestedPriority, v.UrgencyLevel = 4, "high"
			case v.SeverityScore >= 5:
				v.SuggestedPriority, v.UrgencyLevel = 3, "medium"
			default:
				v.SuggestedPriority, v.UrgencyLevel = 2, "low"
			}
		}
	}

	return v
}

func (c *OpenAIClient) complete(ctx context.Context, model, system, user string, maxTokens int, temperature float64) (string, error) {
	return c.completeWith(ctx, model, system, user, maxTokens, temperature)
}

func (c *OpenAIClient) completeWith(ctx context.Context, model, system string, user any, maxTokens int, temperature float64) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: map[string]any{"type": "json_object"},
		Temperature:    temperature,
		MaxTokens:      maxTokens,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("classifier API returned status %d: %s", resp.StatusCode, string(respBytes))
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("classifier API returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
