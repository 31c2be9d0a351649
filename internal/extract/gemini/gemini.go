// Package gemini implements port.ExtractionProvider using Google's Gemini
// API. It sends the source document's plain text with a structured prompt
// and decodes the candidate invoice the model returns.
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
)

const (
	apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
)

// Provider calls the Gemini generateContent endpoint for invoice extraction.
type Provider struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewProvider creates a Gemini-based extraction provider.
func NewProvider(cfg *config.ExtractProviderConfig) *Provider {
	return newProvider(cfg, "")
}

// NewProviderWithEndpoint creates a provider pointing at a custom API
// endpoint (for testing).
func NewProviderWithEndpoint(cfg *config.ExtractProviderConfig, endpoint string) *Provider {
	return newProvider(cfg, endpoint)
}

func newProvider(cfg *config.ExtractProviderConfig, endpoint string) *Provider {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Provider{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (p *Provider) ExtractInvoice(ctx context.Context, text string) (*domain.ExtractedInvoice, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrExtractionFailed
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": extractionPrompt(text)},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"maxOutputTokens":  16384,
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
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	return parseResponse(respBody)
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

func parseResponse(body []byte) (*domain.ExtractedInvoice, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON found in model reply: %s", truncate(text, 500))
	}

	var extracted domain.ExtractedInvoice
	if err := json.Unmarshal([]byte(text[start:end+1]), &extracted); err != nil {
		return nil, fmt.Errorf("parsing extracted invoice JSON: %w (raw: %s)", err, truncate(text, 500))
	}
	return &extracted, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func extractionPrompt(text string) string {
	return fmt.Sprintf(`You are an export-documentation assistant. The text below was extracted
from a trade invoice. Pull out every field you can find.

Return ONLY a JSON object with these string fields (omit or leave empty any
field the document does not show):
"invoiceNumber", "invoiceDate", "buyerOrderNo", "buyerOrderDate",
"invoiceType" ("IGST" or "LUT"),
"exporterName", "exporterAddress", "exporterPhone", "exporterFax",
"exporterGstin", "exporterIec", "exporterBank", "exporterAccount",
"exporterArnNo",
"consigneeName", "consigneeAddress", "consigneePhone",
"buyerName", "buyerAddress", "buyerPhone",
"countryOfOrigin", "countryOfDestination", "portOfLoading",
"portOfDischarge", "termsOfDelivery", "productDescription",
"currency", "exchangeRate", "totalBoxes", "shippingCost"
plus "items": an array of objects with string fields
"description", "hsnCode", "qty" (weight with unit as written, e.g. "500 ml"
or "2 kgs"), "pcs", "rate", "batchNumber", "mfgDate", "expDate",
"botanicalName", "boxNumber".

Copy values as written in the document. Do not calculate or invent values.
Do not include any text outside the JSON object.

Document text:
%s`, text)
}
