// Package enrich produces compliance metadata for invoice line items. A
// Chain tries a primary provider with retries, then a fallback provider,
// and finally a static record that can never fail.
package enrich

import (
	"context"
	"fmt"
	"log"
	"time"

	"expodocs/internal/domain"
	"expodocs/internal/port"
)

const (
	primaryAttempts  = 3
	fallbackAttempts = 2
)

// Chain runs enrichment requests through primary, fallback and static
// providers in order. The fallback is only consulted when it is a distinct
// provider; passing the same provider twice (or a nil fallback) skips it.
type Chain struct {
	primary  port.EnrichmentProvider
	fallback port.EnrichmentProvider
	static   *Static
	backoff  time.Duration
}

// NewChain builds a chain over the given providers. Either provider may be
// nil; the static tail always answers.
func NewChain(primary, fallback port.EnrichmentProvider) *Chain {
	return &Chain{
		primary:  primary,
		fallback: fallback,
		static:   NewStatic(),
		backoff:  time.Second,
	}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) SafetyData(ctx context.Context, productName string) (*domain.ProductSafetyData, error) {
	data, err := attemptChain(ctx, c, productName, "safety data",
		func(ctx context.Context, p port.EnrichmentProvider) (*domain.ProductSafetyData, error) {
			return p.SafetyData(ctx, productName)
		})
	if err != nil {
		return c.static.SafetyData(ctx, productName)
	}
	return data, nil
}

func (c *Chain) RestrictedComponents(ctx context.Context, productName string) ([]domain.RestrictedComponent, error) {
	data, err := attemptChain(ctx, c, productName, "restricted components",
		func(ctx context.Context, p port.EnrichmentProvider) ([]domain.RestrictedComponent, error) {
			return p.RestrictedComponents(ctx, productName)
		})
	if err != nil {
		return c.static.RestrictedComponents(ctx, productName)
	}
	return data, nil
}

func (c *Chain) ItemData(ctx context.Context, productName string) (*domain.ItemEnrichment, error) {
	data, err := attemptChain(ctx, c, productName, "item data",
		func(ctx context.Context, p port.EnrichmentProvider) (*domain.ItemEnrichment, error) {
			return p.ItemData(ctx, productName)
		})
	if err != nil {
		return c.static.ItemData(ctx, productName)
	}
	return data, nil
}

// attemptChain tries the primary provider with linear backoff, then the
// fallback if it is a different provider. It returns the last error when
// every attempt fails; callers fall through to the static tail.
func attemptChain[T any](ctx context.Context, c *Chain, productName, what string,
	call func(context.Context, port.EnrichmentProvider) (T, error)) (T, error) {
	var zero T
	var lastErr error

	if c.primary != nil {
		for i := 0; i < primaryAttempts; i++ {
			out, err := call(ctx, c.primary)
			if err == nil {
				return out, nil
			}
			lastErr = err
			log.Printf("enrich.Chain: %s attempt %d/%d via %s failed for %q: %v",
				what, i+1, primaryAttempts, c.primary.Name(), productName, err)
			if i < primaryAttempts-1 {
				if err := sleep(ctx, c.backoff*time.Duration(i+1)); err != nil {
					return zero, err
				}
			}
		}
	}

	if c.fallback != nil && (c.primary == nil || c.fallback.Name() != c.primary.Name()) {
		for i := 0; i < fallbackAttempts; i++ {
			out, err := call(ctx, c.fallback)
			if err == nil {
				return out, nil
			}
			lastErr = err
			log.Printf("enrich.Chain: %s fallback attempt %d/%d via %s failed for %q: %v",
				what, i+1, fallbackAttempts, c.fallback.Name(), productName, err)
			if i < fallbackAttempts-1 {
				if err := sleep(ctx, c.backoff*time.Duration(i+1)); err != nil {
					return zero, err
				}
			}
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no enrichment provider configured")
	}
	return zero, lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
