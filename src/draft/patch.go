package draft

import (
	"github.com/shopspring/decimal"

	"orderdesk/src/model"
)

// FromPatch converts a desk API patch into updates. Clears run before sets,
// and class switches run before the fields they govern, so one patch can
// both change the topology and fill in its legs.
func FromPatch(p model.DraftPatch) []Update {
	var updates []Update

	if p.ClearLimitPrice {
		updates = append(updates, ClearLimitPrice())
	}
	if p.ClearTakeProfit {
		updates = append(updates, ClearTakeProfit())
	}
	if p.ClearStopLoss {
		updates = append(updates, ClearStopLoss())
	}
	if p.ClearTrail {
		updates = append(updates, ClearTrail())
	}
	if p.ClearEstimatedPrice {
		updates = append(updates, ClearEstimatedPrice())
	}

	if p.Symbol != nil {
		updates = append(updates, WithSymbol(*p.Symbol))
	}
	if p.Side != nil {
		updates = append(updates, WithSide(*p.Side))
	}
	if p.Quantity != nil {
		updates = append(updates, WithQuantity(*p.Quantity))
	}
	if p.AssetClass != nil {
		updates = append(updates, WithAssetClass(*p.AssetClass))
	}
	if p.OrderType != nil {
		updates = append(updates, WithOrderType(*p.OrderType))
	}
	if p.LimitPrice != nil {
		updates = append(updates, WithLimitPrice(decimal.NewFromFloat(*p.LimitPrice)))
	}
	if p.OrderClass != nil {
		updates = append(updates, WithOrderClass(*p.OrderClass))
	}
	if p.TakeProfit != nil {
		updates = append(updates, WithTakeProfit(decimal.NewFromFloat(p.TakeProfit.LimitPrice)))
	}
	if p.StopLoss != nil {
		var limit *decimal.Decimal
		if p.StopLoss.LimitPrice != nil {
			l := decimal.NewFromFloat(*p.StopLoss.LimitPrice)
			limit = &l
		}
		updates = append(updates, WithStopLoss(decimal.NewFromFloat(p.StopLoss.StopPrice), limit))
	}
	if p.TrailPrice != nil {
		updates = append(updates, WithTrailPrice(decimal.NewFromFloat(*p.TrailPrice)))
	}
	if p.TrailPercent != nil {
		updates = append(updates, WithTrailPercent(decimal.NewFromFloat(*p.TrailPercent)))
	}
	if p.EstimatedPrice != nil {
		updates = append(updates, WithEstimatedPrice(decimal.NewFromFloat(*p.EstimatedPrice)))
	}
	if p.OptionType != nil {
		updates = append(updates, WithOptionType(*p.OptionType))
	}
	if p.StrikePrice != nil {
		updates = append(updates, WithStrikePrice(decimal.NewFromFloat(*p.StrikePrice)))
	}
	if p.ExpirationDate != nil {
		updates = append(updates, WithExpirationDate(*p.ExpirationDate))
	}

	return updates
}
