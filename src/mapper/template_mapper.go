package mapper

import (
	"strings"

	"orderdesk/src/model"
)

// DraftToTemplatePayload maps every template-carried field of d. Templates
// may hold incomplete drafts, so no validation runs here. Option fields are
// written only for option drafts, and a nil or blank description is omitted.
func DraftToTemplatePayload(d model.OrderDraft, name string, description *string) model.TemplatePayload {
	p := model.TemplatePayload{
		Name:         strings.TrimSpace(name),
		Symbol:       d.Symbol,
		Side:         d.Side,
		Quantity:     d.Quantity,
		OrderType:    d.OrderType,
		LimitPrice:   floatPtr(d.LimitPrice),
		AssetClass:   d.AssetClass,
		OrderClass:   d.OrderClass,
		TakeProfit:   takeProfitPayload(d.TakeProfit),
		StopLoss:     stopLossPayload(d.StopLoss),
		TrailPrice:   floatPtr(d.TrailPrice),
		TrailPercent: floatPtr(d.TrailPercent),
	}
	if description != nil && strings.TrimSpace(*description) != "" {
		desc := strings.TrimSpace(*description)
		p.Description = &desc
	}
	if d.IsOption() {
		if d.OptionType != nil {
			ot := *d.OptionType
			p.OptionType = &ot
		}
		p.StrikePrice = floatPtr(d.StrikePrice)
		p.ExpirationDate = d.ExpirationDate
	}
	return p
}

// TemplateToDraft is the inverse of DraftToTemplatePayload. The estimated
// price is not part of the template format and comes back empty.
func TemplateToDraft(t model.TemplatePayload) model.OrderDraft {
	d := model.OrderDraft{
		Symbol:       t.Symbol,
		Side:         t.Side,
		Quantity:     t.Quantity,
		AssetClass:   t.AssetClass,
		OrderType:    t.OrderType,
		LimitPrice:   decimalPtr(t.LimitPrice),
		OrderClass:   t.OrderClass,
		TakeProfit:   takeProfitFrom(t.TakeProfit),
		StopLoss:     stopLossFrom(t.StopLoss),
		TrailPrice:   decimalPtr(t.TrailPrice),
		TrailPercent: decimalPtr(t.TrailPercent),
	}
	if d.Side == "" {
		d.Side = model.SideBuy
	}
	if d.AssetClass == "" {
		d.AssetClass = model.AssetClassStock
	}
	if d.OrderType == "" {
		d.OrderType = model.OrderTypeMarket
	}
	if d.OrderClass == "" {
		d.OrderClass = model.OrderClassSimple
	}
	if d.IsOption() {
		if t.OptionType != nil {
			ot := *t.OptionType
			d.OptionType = &ot
		}
		d.StrikePrice = decimalPtr(t.StrikePrice)
		d.ExpirationDate = t.ExpirationDate
	}
	return d
}
