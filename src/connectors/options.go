package connectors

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"orderdesk/src/model"
)

const optionsChainPath = "/options/chain"

// Expirations lists the expiration dates listed for symbol.
func (c *Client) Expirations(ctx context.Context, symbol string) ([]string, error) {
	chain, err := c.chain(ctx, "expirations", map[string]string{
		"symbol": strings.ToUpper(strings.TrimSpace(symbol)),
	})
	if err != nil {
		return nil, err
	}
	return chain.Expirations, nil
}

// Strikes lists the strikes available for symbol at one expiration.
func (c *Client) Strikes(ctx context.Context, symbol, expiration string) ([]float64, error) {
	chain, err := c.chain(ctx, "strikes", map[string]string{
		"symbol":     strings.ToUpper(strings.TrimSpace(symbol)),
		"expiration": strings.TrimSpace(expiration),
	})
	if err != nil {
		return nil, err
	}
	return chain.Strikes, nil
}

func (c *Client) chain(ctx context.Context, op string, query map[string]string) (*model.OptionChain, error) {
	resp, err := c.reads.R().
		SetContext(ctx).
		SetQueryParams(query).
		Get(optionsChainPath)
	if err := check(op, resp, err); err != nil {
		return nil, err
	}

	var out model.OptionChain
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode(), Body: resp.String(), Err: fmt.Errorf("decode option chain: %w", err)}
	}
	return &out, nil
}
