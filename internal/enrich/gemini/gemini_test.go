package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expodocs/internal/config"
	"expodocs/internal/enrich"
)

func geminiReply(t *testing.T, text string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	})
	require.NoError(t, err)
	return body
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProviderWithEndpoint("gemini", &config.EnrichProviderConfig{APIKey: "test-key"}, srv.URL)
}

func TestSafetyDataParsesFencedJSON(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		_, _ = w.Write(geminiReply(t, "```json\n{\"productName\":\"Vetiver Oil\",\"casNo\":\"8016-96-4\"}\n```"))
	})

	data, err := p.SafetyData(context.Background(), "Vetiver Oil")
	require.NoError(t, err)
	assert.Equal(t, "Vetiver Oil", data.ProductName)
	assert.Equal(t, "8016-96-4", data.CASNo)
}

func TestRestrictedComponentsParsesArray(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(geminiReply(t, `[{"componentName":"Linalool","casNo":"78-70-6","percentageLevel":"3.50%","ifraStandard":"Restriction Std (QRA cat)"}]`))
	})

	comps, err := p.RestrictedComponents(context.Background(), "Lavender Oil")
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, "Linalool", comps[0].ComponentName)
}

func TestRateLimitErrorType(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := p.SafetyData(context.Background(), "Lime Oil")
	var rle *enrich.RateLimitError
	require.True(t, errors.As(err, &rle))
	assert.Equal(t, "gemini", rle.Provider)
}

func TestNoJSONInReply(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(geminiReply(t, "I cannot answer that."))
	})

	_, err := p.ItemData(context.Background(), "Lime Oil")
	assert.Error(t, err)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("prefix {\"a\":1} suffix"))
	assert.Equal(t, `[1,2]`, extractJSON("```json\n[1,2]\n```"))
	assert.Equal(t, `[{"a":1},{"b":2}]`, extractJSON("here you go: [{\"a\":1},{\"b\":2}]"))
	assert.Equal(t, `{"list":[1,2]}`, extractJSON("{\"list\":[1,2]} trailing"))
	assert.Equal(t, "", extractJSON("nothing here"))
	assert.Equal(t, "", extractJSON("unbalanced ["))
}
