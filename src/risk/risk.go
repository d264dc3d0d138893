package risk

import (
	"github.com/shopspring/decimal"

	"orderdesk/src/model"
)

// ----- contract multipliers -----

var (
	StockMultiplier  = decimal.NewFromInt(1)
	OptionMultiplier = decimal.NewFromInt(100)
)

// ----- public API -----

// Assessment is the money view of an order shown next to its preview. Fields
// that need a reference price are nil when none is known.
type Assessment struct {
	ReferencePrice *decimal.Decimal `json:"referencePrice,omitempty"`
	Multiplier     decimal.Decimal  `json:"multiplier"`
	Notional       *decimal.Decimal `json:"notional,omitempty"`
	MaxLoss        *decimal.Decimal `json:"maxLoss,omitempty"`
	PotentialGain  *decimal.Decimal `json:"potentialGain,omitempty"`
	RewardRisk     *decimal.Decimal `json:"rewardRisk,omitempty"`
}

// Assess prices the order against its limit price, or against estimatedPrice
// for market orders. It never touches the network.
func Assess(order model.Order, estimatedPrice *decimal.Decimal) Assessment {
	a := Assessment{Multiplier: multiplierFor(order.Instrument)}

	ref := referencePrice(order, estimatedPrice)
	if ref == nil {
		return a
	}
	a.ReferencePrice = ref

	units := decimal.NewFromInt(order.Quantity).Mul(a.Multiplier)
	notional := ref.Mul(units)
	a.Notional = &notional

	if stop := order.StopLossLeg(); stop != nil {
		loss := directional(order.Side, ref.Sub(stop.StopPrice)).Mul(units)
		a.MaxLoss = &loss
	}
	if take := order.TakeProfitLeg(); take != nil {
		gain := directional(order.Side, take.LimitPrice.Sub(*ref)).Mul(units)
		a.PotentialGain = &gain
	}

	if a.MaxLoss != nil && a.PotentialGain != nil && a.MaxLoss.GreaterThan(decimal.Zero) {
		rr := a.PotentialGain.Div(*a.MaxLoss).Round(2)
		a.RewardRisk = &rr
	}
	return a
}

// ----- helpers -----

func multiplierFor(instrument model.Instrument) decimal.Decimal {
	if _, ok := instrument.(model.OptionContract); ok {
		return OptionMultiplier
	}
	return StockMultiplier
}

func referencePrice(order model.Order, estimatedPrice *decimal.Decimal) *decimal.Decimal {
	if order.Type == model.OrderTypeLimit && order.LimitPrice != nil {
		p := *order.LimitPrice
		return &p
	}
	if estimatedPrice != nil && estimatedPrice.GreaterThan(decimal.Zero) {
		p := *estimatedPrice
		return &p
	}
	return nil
}

// directional flips a buy-side price move for sells.
func directional(side model.Side, move decimal.Decimal) decimal.Decimal {
	if side == model.SideSell {
		return move.Neg()
	}
	return move
}
