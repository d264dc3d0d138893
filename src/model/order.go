package model

import "github.com/shopspring/decimal"

// Order is the canonical form of a draft that passed validation. Its variant
// fields make the invalid topologies (an OCO missing a leg, a stock carrying
// a strike, both trail kinds) impossible to express.
type Order struct {
	Symbol     string
	Side       Side
	Quantity   int64
	Type       OrderType
	LimitPrice *decimal.Decimal
	Instrument Instrument
	Exits      Exits
	Trail      Trail
}

// Instrument is StockInstrument or OptionContract.
type Instrument interface {
	AssetClass() AssetClass
}

type StockInstrument struct{}

func (StockInstrument) AssetClass() AssetClass { return AssetClassStock }

type OptionContract struct {
	Type       OptionType
	Strike     decimal.Decimal
	Expiration string
}

func (OptionContract) AssetClass() AssetClass { return AssetClassOption }

// Exits is SimpleExits, BracketExits or OCOExits.
type Exits interface {
	OrderClass() OrderClass
}

type SimpleExits struct{}

func (SimpleExits) OrderClass() OrderClass { return OrderClassSimple }

// BracketExits holds at least one non-nil leg.
type BracketExits struct {
	Take *TakeProfit
	Stop *StopLoss
}

func (BracketExits) OrderClass() OrderClass { return OrderClassBracket }

type OCOExits struct {
	Take TakeProfit
	Stop StopLoss
}

func (OCOExits) OrderClass() OrderClass { return OrderClassOCO }

// Trail is TrailByPrice or TrailByPercent; a nil Trail means no trailing stop.
type Trail interface {
	isTrail()
}

type TrailByPrice struct {
	Amount decimal.Decimal
}

func (TrailByPrice) isTrail() {}

type TrailByPercent struct {
	Percent decimal.Decimal
}

func (TrailByPercent) isTrail() {}

// TakeProfitLeg returns the take-profit leg of any exit topology.
func (o Order) TakeProfitLeg() *TakeProfit {
	switch e := o.Exits.(type) {
	case BracketExits:
		return e.Take
	case OCOExits:
		take := e.Take
		return &take
	}
	return nil
}

// StopLossLeg returns the stop-loss leg of any exit topology.
func (o Order) StopLossLeg() *StopLoss {
	switch e := o.Exits.(type) {
	case BracketExits:
		return e.Stop
	case OCOExits:
		stop := e.Stop
		return &stop
	}
	return nil
}
