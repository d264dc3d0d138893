package model

import "github.com/shopspring/decimal"

type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

type AssetClass string

const (
	AssetClassStock  AssetClass = "stock"
	AssetClassOption AssetClass = "option"
)

type OrderType string

const (
	OrderTypeMarket OrderType = "market"
	OrderTypeLimit  OrderType = "limit"
)

type OrderClass string

const (
	OrderClassSimple  OrderClass = "simple"
	OrderClassBracket OrderClass = "bracket"
	OrderClassOCO     OrderClass = "oco"
)

type OptionType string

const (
	OptionTypeCall OptionType = "call"
	OptionTypePut  OptionType = "put"
)

// TakeProfit is the profit-taking exit leg.
type TakeProfit struct {
	LimitPrice decimal.Decimal
}

// StopLoss is the protective exit leg. A nil LimitPrice means a plain stop.
type StopLoss struct {
	StopPrice  decimal.Decimal
	LimitPrice *decimal.Decimal
}

// OrderDraft is the order being composed in the execution view.
// Treat it as a value: build new drafts with draft.Apply instead of mutating one in place.
type OrderDraft struct {
	Symbol     string
	Side       Side
	Quantity   int64
	AssetClass AssetClass
	OrderType  OrderType
	LimitPrice *decimal.Decimal
	OrderClass OrderClass

	TakeProfit *TakeProfit
	StopLoss   *StopLoss

	TrailPrice   *decimal.Decimal
	TrailPercent *decimal.Decimal

	// EstimatedPrice feeds the preview only and never reaches the broker.
	EstimatedPrice *decimal.Decimal

	OptionType     *OptionType
	StrikePrice    *decimal.Decimal
	ExpirationDate string
}

// IsOption reports whether the draft describes an options contract.
func (d OrderDraft) IsOption() bool {
	return d.AssetClass == AssetClassOption
}

// DraftPatch is the JSON body accepted by PATCH /draft. Absent keys leave the
// field unchanged; the Clear* flags remove optional fields.
type DraftPatch struct {
	Symbol         *string            `json:"symbol,omitempty"`
	Side           *Side              `json:"side,omitempty"`
	Quantity       *int64             `json:"quantity,omitempty"`
	AssetClass     *AssetClass        `json:"assetClass,omitempty"`
	OrderType      *OrderType         `json:"orderType,omitempty"`
	LimitPrice     *float64           `json:"limitPrice,omitempty"`
	OrderClass     *OrderClass        `json:"orderClass,omitempty"`
	TakeProfit     *TakeProfitPayload `json:"takeProfit,omitempty"`
	StopLoss       *StopLossPayload   `json:"stopLoss,omitempty"`
	TrailPrice     *float64           `json:"trailPrice,omitempty"`
	TrailPercent   *float64           `json:"trailPercent,omitempty"`
	EstimatedPrice *float64           `json:"estimatedPrice,omitempty"`
	OptionType     *OptionType        `json:"optionType,omitempty"`
	StrikePrice    *float64           `json:"strikePrice,omitempty"`
	ExpirationDate *string            `json:"expirationDate,omitempty"`

	ClearLimitPrice     bool `json:"clearLimitPrice,omitempty"`
	ClearTakeProfit     bool `json:"clearTakeProfit,omitempty"`
	ClearStopLoss       bool `json:"clearStopLoss,omitempty"`
	ClearTrail          bool `json:"clearTrail,omitempty"`
	ClearEstimatedPrice bool `json:"clearEstimatedPrice,omitempty"`
}

// DraftView is the JSON rendering of a draft for the desk API.
type DraftView struct {
	Symbol         string             `json:"symbol"`
	Side           Side               `json:"side"`
	Quantity       int64              `json:"quantity"`
	AssetClass     AssetClass         `json:"assetClass"`
	OrderType      OrderType          `json:"orderType"`
	LimitPrice     *float64           `json:"limitPrice,omitempty"`
	OrderClass     OrderClass         `json:"orderClass"`
	TakeProfit     *TakeProfitPayload `json:"takeProfit,omitempty"`
	StopLoss       *StopLossPayload   `json:"stopLoss,omitempty"`
	TrailPrice     *float64           `json:"trailPrice,omitempty"`
	TrailPercent   *float64           `json:"trailPercent,omitempty"`
	EstimatedPrice *float64           `json:"estimatedPrice,omitempty"`
	OptionType     *OptionType        `json:"optionType,omitempty"`
	StrikePrice    *float64           `json:"strikePrice,omitempty"`
	ExpirationDate string             `json:"expirationDate,omitempty"`
}
