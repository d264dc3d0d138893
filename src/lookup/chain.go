package lookup

import (
	"context"
	"strings"
	"time"
)

// ChainSource serves the option chain.
type ChainSource interface {
	Expirations(ctx context.Context, symbol string) ([]string, error)
	Strikes(ctx context.Context, symbol, expiration string) ([]float64, error)
}

type strikesKey struct {
	Symbol     string
	Expiration string
}

// ChainLookup debounces expiration lookups per symbol and strike lookups per
// symbol and expiration.
type ChainLookup struct {
	expirations *Debouncer[string, []string]
	strikes     *Debouncer[strikesKey, []float64]
}

func NewChainLookup(src ChainSource, delay time.Duration) *ChainLookup {
	return &ChainLookup{
		expirations: NewDebouncer(delay, func(ctx context.Context, symbol string) ([]string, error) {
			return src.Expirations(ctx, symbol)
		}, nil),
		strikes: NewDebouncer(delay, func(ctx context.Context, k strikesKey) ([]float64, error) {
			return src.Strikes(ctx, k.Symbol, k.Expiration)
		}, nil),
	}
}

// Expirations resolves the expirations for symbol. An empty symbol resolves
// to nothing without a lookup.
func (l *ChainLookup) Expirations(ctx context.Context, symbol string) ([]string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		l.expirations.Stop()
		return nil, nil
	}
	return l.expirations.Resolve(ctx, symbol)
}

func (l *ChainLookup) Strikes(ctx context.Context, symbol, expiration string) ([]float64, error) {
	k := strikesKey{
		Symbol:     strings.ToUpper(strings.TrimSpace(symbol)),
		Expiration: strings.TrimSpace(expiration),
	}
	if k.Symbol == "" || k.Expiration == "" {
		l.strikes.Stop()
		return nil, nil
	}
	return l.strikes.Resolve(ctx, k)
}

func (l *ChainLookup) Stop() {
	l.expirations.Stop()
	l.strikes.Stop()
}
