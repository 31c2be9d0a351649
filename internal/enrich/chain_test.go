package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expodocs/internal/domain"
)

type fakeProvider struct {
	name  string
	calls int
	data  *domain.ProductSafetyData
	err   error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) SafetyData(_ context.Context, _ string) (*domain.ProductSafetyData, error) {
	f.calls++
	return f.data, f.err
}

func (f *fakeProvider) RestrictedComponents(_ context.Context, _ string) ([]domain.RestrictedComponent, error) {
	f.calls++
	return nil, f.err
}

func (f *fakeProvider) ItemData(_ context.Context, _ string) (*domain.ItemEnrichment, error) {
	f.calls++
	return nil, f.err
}

func newTestChain(primary, fallback *fakeProvider) *Chain {
	var c *Chain
	switch {
	case primary == nil && fallback == nil:
		c = NewChain(nil, nil)
	case fallback == nil:
		c = NewChain(primary, nil)
	case primary == nil:
		c = NewChain(nil, fallback)
	default:
		c = NewChain(primary, fallback)
	}
	c.backoff = 0
	return c
}

func TestChainReturnsPrimaryResult(t *testing.T) {
	primary := &fakeProvider{name: "primary", data: &domain.ProductSafetyData{ProductName: "Vetiver Oil"}}
	fallback := &fakeProvider{name: "fallback", err: errors.New("should not be called")}

	got, err := newTestChain(primary, fallback).SafetyData(context.Background(), "Vetiver Oil")
	require.NoError(t, err)
	assert.Equal(t, "Vetiver Oil", got.ProductName)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls)
}

func TestChainRetriesPrimaryThenFallback(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("quota")}
	fallback := &fakeProvider{name: "fallback", data: &domain.ProductSafetyData{ProductName: "Palmarosa Oil"}}

	got, err := newTestChain(primary, fallback).SafetyData(context.Background(), "Palmarosa Oil")
	require.NoError(t, err)
	assert.Equal(t, "Palmarosa Oil", got.ProductName)
	assert.Equal(t, 3, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestChainSkipsFallbackWithSameName(t *testing.T) {
	primary := &fakeProvider{name: "gemini", err: errors.New("down")}
	fallback := &fakeProvider{name: "gemini", err: errors.New("down")}

	got, err := newTestChain(primary, fallback).SafetyData(context.Background(), "Lime Oil")
	require.NoError(t, err)
	assert.Equal(t, 3, primary.calls)
	assert.Equal(t, 0, fallback.calls)
	// Chain falls through to the static record.
	assert.Equal(t, "Lime Oil", got.ProductName)
	assert.Equal(t, "5989-27-5", got.CASNo)
}

func TestChainStaticTailNeverFails(t *testing.T) {
	c := newTestChain(nil, nil)

	data, err := c.SafetyData(context.Background(), "Ginger Oil")
	require.NoError(t, err)
	assert.Equal(t, "Ginger Oil", data.ProductName)
	assert.Len(t, data.Constituents, 4)
	assert.Equal(t, "d-Limonene", data.Constituents[0].Name)

	comps, err := c.RestrictedComponents(context.Background(), "Ginger Oil")
	require.NoError(t, err)
	require.Len(t, comps, 4)
	assert.Equal(t, "Eugenol", comps[0].ComponentName)
	assert.Equal(t, "Not currently restricted", comps[3].IFRAStandard)

	item, err := c.ItemData(context.Background(), "Ginger Oil")
	require.NoError(t, err)
	assert.Equal(t, "Ginger Oil", item.BotanicalName)
	assert.NotEmpty(t, item.BatchNumber)
	assert.NotEmpty(t, item.MfgDate)
	assert.NotEmpty(t, item.ExpDate)
}

func TestChainHonorsCancelledContext(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("down")}
	fallback := &fakeProvider{name: "fallback", err: errors.New("down")}
	c := NewChain(primary, fallback)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The first retry sleep observes cancellation, and the chain still
	// serves the static record rather than failing the caller.
	got, err := c.SafetyData(ctx, "Citronella Oil")
	require.NoError(t, err)
	assert.Equal(t, "Citronella Oil", got.ProductName)
	assert.Equal(t, 1, primary.calls)
}
