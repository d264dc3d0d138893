package mapper

import (
	"github.com/shopspring/decimal"

	"orderdesk/src/model"
	"orderdesk/src/validator"
)

func floatPtr(v *decimal.Decimal) *float64 {
	if v == nil {
		return nil
	}
	f := v.InexactFloat64()
	return &f
}

func floatOf(v decimal.Decimal) *float64 {
	return floatPtr(&v)
}

func decimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	v := decimal.NewFromFloat(*f)
	return &v
}

// OrderToPayload flattens a canonical order into the execution wire shape.
func OrderToPayload(o model.Order) model.OrderPayload {
	p := model.OrderPayload{
		Symbol:     o.Symbol,
		Side:       o.Side,
		Qty:        o.Quantity,
		Type:       o.Type,
		LimitPrice: floatPtr(o.LimitPrice),
		AssetClass: o.Instrument.AssetClass(),
		OrderClass: o.Exits.OrderClass(),
	}

	if tp := o.TakeProfitLeg(); tp != nil {
		p.TakeProfit = &model.TakeProfitPayload{LimitPrice: tp.LimitPrice.InexactFloat64()}
	}
	if sl := o.StopLossLeg(); sl != nil {
		p.StopLoss = &model.StopLossPayload{
			StopPrice:  sl.StopPrice.InexactFloat64(),
			LimitPrice: floatPtr(sl.LimitPrice),
		}
	}

	switch t := o.Trail.(type) {
	case model.TrailByPrice:
		p.TrailPrice = floatOf(t.Amount)
	case model.TrailByPercent:
		p.TrailPercent = floatOf(t.Percent)
	}

	if c, ok := o.Instrument.(model.OptionContract); ok {
		optionType := c.Type
		p.OptionType = &optionType
		p.StrikePrice = floatOf(c.Strike)
		p.ExpirationDate = c.Expiration
	}

	return p
}

// DraftToOrderPayload validates d and maps it to the wire shape. The error is
// the validator's first violated rule.
func DraftToOrderPayload(d model.OrderDraft) (model.OrderPayload, error) {
	o, err := validator.Check(d)
	if err != nil {
		return model.OrderPayload{}, err
	}
	return OrderToPayload(o), nil
}

func takeProfitPayload(tp *model.TakeProfit) *model.TakeProfitPayload {
	if tp == nil {
		return nil
	}
	return &model.TakeProfitPayload{LimitPrice: tp.LimitPrice.InexactFloat64()}
}

func stopLossPayload(sl *model.StopLoss) *model.StopLossPayload {
	if sl == nil {
		return nil
	}
	return &model.StopLossPayload{StopPrice: sl.StopPrice.InexactFloat64(), LimitPrice: floatPtr(sl.LimitPrice)}
}

func takeProfitFrom(p *model.TakeProfitPayload) *model.TakeProfit {
	if p == nil {
		return nil
	}
	return &model.TakeProfit{LimitPrice: decimal.NewFromFloat(p.LimitPrice)}
}

func stopLossFrom(p *model.StopLossPayload) *model.StopLoss {
	if p == nil {
		return nil
	}
	return &model.StopLoss{StopPrice: decimal.NewFromFloat(p.StopPrice), LimitPrice: decimalPtr(p.LimitPrice)}
}

// DraftToView renders a draft for the desk API.
func DraftToView(d model.OrderDraft) model.DraftView {
	v := model.DraftView{
		Symbol:         d.Symbol,
		Side:           d.Side,
		Quantity:       d.Quantity,
		AssetClass:     d.AssetClass,
		OrderType:      d.OrderType,
		LimitPrice:     floatPtr(d.LimitPrice),
		OrderClass:     d.OrderClass,
		TakeProfit:     takeProfitPayload(d.TakeProfit),
		StopLoss:       stopLossPayload(d.StopLoss),
		TrailPrice:     floatPtr(d.TrailPrice),
		TrailPercent:   floatPtr(d.TrailPercent),
		EstimatedPrice: floatPtr(d.EstimatedPrice),
		StrikePrice:    floatPtr(d.StrikePrice),
		ExpirationDate: d.ExpirationDate,
	}
	if d.OptionType != nil {
		ot := *d.OptionType
		v.OptionType = &ot
	}
	return v
}
