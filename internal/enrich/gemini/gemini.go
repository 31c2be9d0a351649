// Package gemini implements port.EnrichmentProvider on top of Google's
// Gemini API. Each request asks the model for a strict-JSON record and
// decodes the first JSON object or array found in the reply.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"expodocs/internal/config"
	"expodocs/internal/domain"
	"expodocs/internal/enrich"
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// Provider calls the Gemini generateContent endpoint for enrichment data.
type Provider struct {
	name     string
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewProvider creates a Gemini-backed enrichment provider.
func NewProvider(name string, cfg *config.EnrichProviderConfig) *Provider {
	return newProvider(name, cfg, "")
}

// NewProviderWithEndpoint creates a provider pointing at a custom API
// endpoint (for testing).
func NewProviderWithEndpoint(name string, cfg *config.EnrichProviderConfig, endpoint string) *Provider {
	return newProvider(name, cfg, endpoint)
}

func newProvider(name string, cfg *config.EnrichProviderConfig, endpoint string) *Provider {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Provider{
		name:     name,
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *Provider) Name() string { return p.name }

func (p *Provider) SafetyData(ctx context.Context, productName string) (*domain.ProductSafetyData, error) {
	prompt := safetyDataPrompt(productName)
	raw, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var data domain.ProductSafetyData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing safety data JSON: %w (raw: %s)", err, truncate(string(raw), 500))
	}
	if data.ProductName == "" {
		data.ProductName = productName
	}
	return &data, nil
}

func (p *Provider) RestrictedComponents(ctx context.Context, productName string) ([]domain.RestrictedComponent, error) {
	prompt := restrictedComponentsPrompt(productName)
	raw, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var comps []domain.RestrictedComponent
	if err := json.Unmarshal(raw, &comps); err != nil {
		return nil, fmt.Errorf("parsing restricted components JSON: %w (raw: %s)", err, truncate(string(raw), 500))
	}
	if len(comps) == 0 {
		return nil, fmt.Errorf("empty restricted components list")
	}
	return comps, nil
}

func (p *Provider) ItemData(ctx context.Context, productName string) (*domain.ItemEnrichment, error) {
	prompt := itemDataPrompt(productName)
	raw, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	var item domain.ItemEnrichment
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("parsing item data JSON: %w (raw: %s)", err, truncate(string(raw), 500))
	}
	return &item, nil
}

// generate posts a text prompt and returns the JSON payload embedded in the
// model's reply.
func (p *Provider) generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"maxOutputTokens":  8192,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &enrich.RateLimitError{Provider: p.name, StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var gr geminiResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	payload := extractJSON(text)
	if payload == "" {
		return nil, fmt.Errorf("no JSON found in model reply: %s", truncate(text, 500))
	}
	return json.RawMessage(payload), nil
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// extractJSON pulls the outermost JSON object or array out of model text,
// tolerating markdown fences and prose around the payload. Whichever opening
// delimiter appears first wins, so an array of objects stays an array.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	objStart := strings.IndexByte(text, '{')
	arrStart := strings.IndexByte(text, '[')

	start, closer := objStart, byte('}')
	if objStart < 0 || (arrStart >= 0 && arrStart < objStart) {
		start, closer = arrStart, byte(']')
	}
	if start < 0 {
		return ""
	}
	end := strings.LastIndexByte(text, closer)
	if end <= start {
		return ""
	}
	return text[start : end+1]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func safetyDataPrompt(productName string) string {
	return fmt.Sprintf(`You are a regulatory documentation assistant for an essential oil exporter.
Generate a complete safety data record for the product %q.

Return ONLY a JSON object with exactly these string fields:
"productName", "biologicalDefinition", "inciName", "casNo", "ecNo",
"einecsNo", "appearance", "colour", "odour", "relativeDensity",
"flashPointC", "refractiveIndex", "meltingPointC", "boilingPointC",
"vapourPressure", "solubilityInWater20C", "autoIgnitionTempC",
"solubility", "specificGravity", "opticalRotation", "extractionMethod",
"activeConstituents"
plus "constituents": an array of objects with string fields
"percentage", "name", "casNo", "ecNo", "classification" (CLP classification
per EC 1272/2008, e.g. "Flam. Liq. 3, H226; Skin Irrit. 2, H315").

Use real published values where they exist. Do not include any text outside
the JSON object.`, productName)
}

func restrictedComponentsPrompt(productName string) string {
	return fmt.Sprintf(`List the IFRA 51st Amendment restricted components typically present in %q.

Return ONLY a JSON array of objects with exactly these string fields:
"componentName", "casNo", "percentageLevel" (e.g. "0.40%%"),
"ifraStandard" (e.g. "Restriction Std (QRA cat)" or "Not currently restricted").

Include 3 to 6 entries. Do not include any text outside the JSON array.`, productName)
}

func itemDataPrompt(productName string) string {
	return fmt.Sprintf(`Provide manufacturing metadata for an export batch of %q.

Return ONLY a JSON object with exactly these string fields:
"batchNumber" (format YYYY-MM-NNNNN),
"mfgDate" (format "DD MON YYYY", roughly two months in the past),
"expDate" (format "DD MON YYYY", two years after mfgDate),
"botanicalName" (Latin binomial of the source plant).

Do not include any text outside the JSON object.`, productName)
}
