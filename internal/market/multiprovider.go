package market

import (
	"context"
	"fmt"
)

// MultiProvider tries each provider in order and returns the first
// successful quote.
type MultiProvider struct {
	providers []Provider
}

func NewMultiProvider(providers ...Provider) *MultiProvider {
	return &MultiProvider{providers: providers}
}

func (m *MultiProvider) Name() string { return "auto" }

func (m *MultiProvider) Fetch(ctx context.Context, code string) (*Quote, error) {
	if len(m.providers) == 0 {
		return nil, fmt.Errorf("no market providers configured")
	}
	var lastErr error
	for _, p := range m.providers {
		q, err := p.Fetch(ctx, code)
		if err == nil {
			return q, nil
		}
		lastErr = err
	}
	return nil, lastErr
}
