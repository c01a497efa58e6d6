// Package analysis wraps the multimodal vision service that estimates
// nutrition facts from a food photo.
//
// Every failure mode of the call (missing credential, timeout, transport
// error, unparseable reply) is converted into a classified Outcome at
// this boundary. Nothing propagates to callers as a raw error, and a
// response that parses but is missing fields is a success with zeroed
// defaults, not a failure.
package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/intake/internal/constants"
	"github.com/julianstephens/intake/internal/keyring"
	"github.com/julianstephens/intake/internal/logger"
	"github.com/julianstephens/intake/internal/models"
)

const prompt = `You are a professional nutrition analyst. Analyze the food in this image:
1. Identify the main dish by name.
2. Estimate calories (kcal) and the three macronutrients (protein, carbs, fat, in grams).
3. Give one short professional remark (under 20 words).

Return exactly this JSON object and nothing else, no Markdown formatting:
{
  "name": "dish name",
  "calories": 100,
  "macros": { "protein": 10, "carbs": 20, "fat": 5 },
  "confidence": 95,
  "evaluation": "remark"
}`

// Config holds analysis client configuration. Zero fields fall back to
// the application defaults.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
	// Credentials supplies the API key; defaults to the OS keyring with
	// environment fallback.
	Credentials func() (string, error)
}

// Client performs one external vision call per Analyze invocation. It
// never retries; retrying is a deliberate user action upstream.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	model       string
	timeout     time.Duration
	credentials func() (string, error)
}

// NewClient creates an analysis client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.AnalysisBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = constants.AnalysisModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.AnalysisTimeout
	}
	if cfg.Credentials == nil {
		cfg.Credentials = keyring.GetAPIKey
	}
	return &Client{
		httpClient:  &http.Client{},
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		credentials: cfg.Credentials,
	}
}

// generateContent request/response envelopes, trimmed to the fields used.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze submits a JPEG image (already bounded in size by the capture
// preprocessor) and returns a classified outcome. The call is raced
// against the configured timeout; cancelling ctx cancels the request.
func (c *Client) Analyze(ctx context.Context, imageJPEG []byte) Outcome {
	key, err := c.credentials()
	if err != nil || key == "" {
		// Short-circuit: never attempt the call with an empty credential.
		return Failure(ErrMissingCredential, "no analysis API key configured; run 'intake key set'")
	}

	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(imageJPEG),
				}},
				{Text: prompt},
			},
		}},
		// Ask for forced-JSON output; the defensive extraction below
		// still runs because the service may ignore this.
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Failure(ErrUnknown, fmt.Sprintf("failed to encode request: %v", err))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Failure(ErrUnknown, fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", key)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Warn("Analysis timed out", "timeout", c.timeout)
			return Failure(ErrTimeout, fmt.Sprintf("analysis did not finish within %s", c.timeout))
		}
		return Failure(ErrNetwork, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Failure(ErrTimeout, fmt.Sprintf("analysis did not finish within %s", c.timeout))
		}
		return Failure(ErrNetwork, fmt.Sprintf("failed to read response: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		return Failure(ErrNetwork, fmt.Sprintf("service error (status %d): %s", resp.StatusCode, truncate(string(body), 200)))
	}

	var envelope generateResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return Failure(ErrMalformedResponse, fmt.Sprintf("unparseable service envelope: %v", err))
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return Failure(ErrMalformedResponse, "service returned no content")
	}

	text := envelope.Candidates[0].Content.Parts[0].Text
	estimate, err := parseEstimate(text)
	if err != nil {
		return Failure(ErrMalformedResponse, err.Error())
	}

	logger.Debug("Analysis complete", "food", estimate.Name, "calories", estimate.Calories, "elapsed", time.Since(start))
	return Success(estimate)
}

// parseEstimate recovers one JSON object from free-form model output and
// coerces it into an estimate. Missing or non-numeric fields default to
// zero; missing strings default to placeholders. Only a total parse
// failure is an error.
func parseEstimate(text string) (models.Estimate, error) {
	text = stripFences(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return models.Estimate{}, fmt.Errorf("no JSON object in reply: %q", truncate(text, 100))
	}

	var raw struct {
		Name     any `json:"name"`
		Calories any `json:"calories"`
		Macros   struct {
			Protein any `json:"protein"`
			Carbs   any `json:"carbs"`
			Fat     any `json:"fat"`
		} `json:"macros"`
		Confidence any `json:"confidence"`
		Evaluation any `json:"evaluation"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return models.Estimate{}, fmt.Errorf("invalid JSON in reply: %v", err)
	}

	name := asString(raw.Name)
	if name == "" {
		name = constants.PlaceholderFoodName
	}

	// The service reports confidence on a 0-100 scale; estimates carry 0-1.
	confidence := asNumber(raw.Confidence) / 100
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return models.Estimate{
		Name:     name,
		Calories: int(asNumber(raw.Calories)),
		Macros: models.Macros{
			Protein: int(asNumber(raw.Macros.Protein)),
			Carbs:   int(asNumber(raw.Macros.Carbs)),
			Fat:     int(asNumber(raw.Macros.Fat)),
		},
		Confidence: confidence,
		Evaluation: asString(raw.Evaluation),
		CapturedAt: time.Now(),
	}, nil
}

// stripFences removes a Markdown code fence wrapper if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// asNumber coerces a decoded JSON value to float64, defaulting to 0. The
// service's output schema is not contractually guaranteed.
func asNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return 0
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
