package validator

import (
	"fmt"

	"orderdesk/src/model"
)

// Check validates d and, on success, returns its canonical model.Order.
// Fields that do not apply to the draft's topology (limit price on a market
// order, legs on a simple order, contract fields on a stock) are dropped.
// Enum values outside the known set are rejected here as well, since a draft
// decoded from JSON can carry them.
func Check(d model.OrderDraft) (model.Order, error) {
	if err := validate(d); err != nil {
		return model.Order{}, err
	}

	o := model.Order{
		Symbol:   d.Symbol,
		Side:     d.Side,
		Quantity: d.Quantity,
		Type:     d.OrderType,
	}

	if d.Side != model.SideBuy && d.Side != model.SideSell {
		return model.Order{}, fail("side", fmt.Sprintf("Unsupported side %q", d.Side))
	}

	switch d.OrderType {
	case model.OrderTypeLimit:
		limit := *d.LimitPrice
		o.LimitPrice = &limit
	case model.OrderTypeMarket:
	default:
		return model.Order{}, fail("orderType", fmt.Sprintf("Unsupported order type %q", d.OrderType))
	}

	switch d.AssetClass {
	case model.AssetClassOption:
		if *d.OptionType != model.OptionTypeCall && *d.OptionType != model.OptionTypePut {
			return model.Order{}, fail("optionType", fmt.Sprintf("Unsupported option type %q", *d.OptionType))
		}
		o.Instrument = model.OptionContract{
			Type:       *d.OptionType,
			Strike:     *d.StrikePrice,
			Expiration: d.ExpirationDate,
		}
	case model.AssetClassStock:
		o.Instrument = model.StockInstrument{}
	default:
		return model.Order{}, fail("assetClass", fmt.Sprintf("Unsupported asset class %q", d.AssetClass))
	}

	switch d.OrderClass {
	case model.OrderClassSimple:
		o.Exits = model.SimpleExits{}
	case model.OrderClassBracket:
		o.Exits = model.BracketExits{Take: copyTake(d.TakeProfit), Stop: copyStop(d.StopLoss)}
	case model.OrderClassOCO:
		o.Exits = model.OCOExits{Take: *copyTake(d.TakeProfit), Stop: *copyStop(d.StopLoss)}
	default:
		return model.Order{}, fail("orderClass", fmt.Sprintf("Unsupported order class %q", d.OrderClass))
	}

	switch {
	case d.TrailPrice != nil:
		o.Trail = model.TrailByPrice{Amount: *d.TrailPrice}
	case d.TrailPercent != nil:
		o.Trail = model.TrailByPercent{Percent: *d.TrailPercent}
	}

	return o, nil
}

func copyTake(tp *model.TakeProfit) *model.TakeProfit {
	if tp == nil {
		return nil
	}
	c := *tp
	return &c
}

func copyStop(sl *model.StopLoss) *model.StopLoss {
	if sl == nil {
		return nil
	}
	c := model.StopLoss{StopPrice: sl.StopPrice}
	if sl.LimitPrice != nil {
		l := *sl.LimitPrice
		c.LimitPrice = &l
	}
	return &c
}
