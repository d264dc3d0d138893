package model

// TakeProfitPayload is the wire shape of a take-profit leg.
type TakeProfitPayload struct {
	LimitPrice float64 `json:"limit_price"`
}

// StopLossPayload is the wire shape of a stop-loss leg.
type StopLossPayload struct {
	StopPrice  float64  `json:"stop_price"`
	LimitPrice *float64 `json:"limit_price,omitempty"`
}

// OrderPayload is the normalized, submission-ready order sent to POST /trading/execute.
// Fields that do not apply are omitted rather than sent as null.
type OrderPayload struct {
	Symbol         string             `json:"symbol"`
	Side           Side               `json:"side"`
	Qty            int64              `json:"qty"`
	Type           OrderType          `json:"type"`
	LimitPrice     *float64           `json:"limit_price,omitempty"`
	AssetClass     AssetClass         `json:"asset_class"`
	OrderClass     OrderClass         `json:"order_class"`
	TakeProfit     *TakeProfitPayload `json:"take_profit,omitempty"`
	StopLoss       *StopLossPayload   `json:"stop_loss,omitempty"`
	TrailPrice     *float64           `json:"trail_price,omitempty"`
	TrailPercent   *float64           `json:"trail_percent,omitempty"`
	OptionType     *OptionType        `json:"option_type,omitempty"`
	StrikePrice    *float64           `json:"strike_price,omitempty"`
	ExpirationDate string             `json:"expiration_date,omitempty"`
}

// ExecutionRequest is the unit sent to the execution endpoint. RequestID is the idempotency key.
type ExecutionRequest struct {
	DryRun    bool           `json:"dryRun"`
	RequestID string         `json:"requestId"`
	Orders    []OrderPayload `json:"orders"`
}

type ExecutionResponse struct {
	Accepted  bool           `json:"accepted"`
	Duplicate bool           `json:"duplicate,omitempty"`
	DryRun    bool           `json:"dryRun,omitempty"`
	Orders    []OrderPayload `json:"orders,omitempty"`
}

// TemplatePayload is the body of POST /order-templates.
type TemplatePayload struct {
	Name           string             `json:"name"`
	Description    *string            `json:"description,omitempty"`
	Symbol         string             `json:"symbol"`
	Side           Side               `json:"side"`
	Quantity       int64              `json:"quantity"`
	OrderType      OrderType          `json:"orderType"`
	LimitPrice     *float64           `json:"limitPrice,omitempty"`
	AssetClass     AssetClass         `json:"assetClass"`
	OrderClass     OrderClass         `json:"orderClass"`
	TakeProfit     *TakeProfitPayload `json:"takeProfit,omitempty"`
	StopLoss       *StopLossPayload   `json:"stopLoss,omitempty"`
	TrailPrice     *float64           `json:"trailPrice,omitempty"`
	TrailPercent   *float64           `json:"trailPercent,omitempty"`
	OptionType     *OptionType        `json:"optionType,omitempty"`
	StrikePrice    *float64           `json:"strikePrice,omitempty"`
	ExpirationDate string             `json:"expirationDate,omitempty"`
}

// TemplateResponse is a saved template as returned by the template backend.
type TemplateResponse struct {
	ID string `json:"id"`
	TemplatePayload
}

// OptionChain is the response of GET /options/chain. Which list is filled
// depends on whether an expiration was queried.
type OptionChain struct {
	Expirations []string  `json:"expirations,omitempty"`
	Strikes     []float64 `json:"strikes,omitempty"`
}
