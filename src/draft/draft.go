package draft

import (
	"strings"

	"github.com/shopspring/decimal"

	"orderdesk/src/model"
)

// Update is one field change applied to a draft. Updates receive a private
// copy, so they may assign freely without touching the caller's draft.
type Update func(*model.OrderDraft)

// New returns the default draft shown when the execution view opens,
// optionally pre-filled by the given updates (e.g. a workflow hand-off).
func New(updates ...Update) model.OrderDraft {
	d := model.OrderDraft{
		Side:       model.SideBuy,
		Quantity:   1,
		AssetClass: model.AssetClassStock,
		OrderType:  model.OrderTypeMarket,
		OrderClass: model.OrderClassSimple,
	}
	return Apply(d, updates...)
}

// Apply returns a new draft with updates applied in order. The input draft is
// never modified and the result shares no pointers with it.
func Apply(d model.OrderDraft, updates ...Update) model.OrderDraft {
	next := Clone(d)
	for _, u := range updates {
		if u != nil {
			u(&next)
		}
	}
	return next
}

// Clone deep-copies every optional field of d.
func Clone(d model.OrderDraft) model.OrderDraft {
	out := d
	out.LimitPrice = cloneDecimal(d.LimitPrice)
	out.TrailPrice = cloneDecimal(d.TrailPrice)
	out.TrailPercent = cloneDecimal(d.TrailPercent)
	out.EstimatedPrice = cloneDecimal(d.EstimatedPrice)
	out.StrikePrice = cloneDecimal(d.StrikePrice)
	if d.TakeProfit != nil {
		tp := *d.TakeProfit
		out.TakeProfit = &tp
	}
	if d.StopLoss != nil {
		sl := model.StopLoss{StopPrice: d.StopLoss.StopPrice, LimitPrice: cloneDecimal(d.StopLoss.LimitPrice)}
		out.StopLoss = &sl
	}
	if d.OptionType != nil {
		ot := *d.OptionType
		out.OptionType = &ot
	}
	return out
}

func cloneDecimal(v *decimal.Decimal) *decimal.Decimal {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func ptr(v decimal.Decimal) *decimal.Decimal {
	return &v
}

func WithSymbol(symbol string) Update {
	return func(d *model.OrderDraft) {
		d.Symbol = strings.ToUpper(strings.TrimSpace(symbol))
	}
}

func WithSide(side model.Side) Update {
	return func(d *model.OrderDraft) { d.Side = side }
}

func WithQuantity(qty int64) Update {
	return func(d *model.OrderDraft) { d.Quantity = qty }
}

// WithAssetClass switches between stock and option. Leaving options clears
// the contract fields so a stock draft never carries them.
func WithAssetClass(class model.AssetClass) Update {
	return func(d *model.OrderDraft) {
		d.AssetClass = class
		if class != model.AssetClassOption {
			d.OptionType = nil
			d.StrikePrice = nil
			d.ExpirationDate = ""
		}
	}
}

func WithOrderType(t model.OrderType) Update {
	return func(d *model.OrderDraft) { d.OrderType = t }
}

func WithLimitPrice(price decimal.Decimal) Update {
	return func(d *model.OrderDraft) { d.LimitPrice = ptr(price) }
}

func ClearLimitPrice() Update {
	return func(d *model.OrderDraft) { d.LimitPrice = nil }
}

// WithOrderClass changes the order topology. Simple orders carry no exit legs.
func WithOrderClass(class model.OrderClass) Update {
	return func(d *model.OrderDraft) {
		d.OrderClass = class
		if class == model.OrderClassSimple {
			d.TakeProfit = nil
			d.StopLoss = nil
		}
	}
}

func WithTakeProfit(limitPrice decimal.Decimal) Update {
	return func(d *model.OrderDraft) {
		d.TakeProfit = &model.TakeProfit{LimitPrice: limitPrice}
	}
}

func ClearTakeProfit() Update {
	return func(d *model.OrderDraft) { d.TakeProfit = nil }
}

// WithStopLoss sets the stop leg; a nil limitPrice makes it a plain stop.
func WithStopLoss(stopPrice decimal.Decimal, limitPrice *decimal.Decimal) Update {
	return func(d *model.OrderDraft) {
		d.StopLoss = &model.StopLoss{StopPrice: stopPrice, LimitPrice: cloneDecimal(limitPrice)}
	}
}

func ClearStopLoss() Update {
	return func(d *model.OrderDraft) { d.StopLoss = nil }
}

// WithTrailPrice and WithTrailPercent only set their own field; choosing
// between them is left to the validator so the user sees the conflict.
func WithTrailPrice(amount decimal.Decimal) Update {
	return func(d *model.OrderDraft) { d.TrailPrice = ptr(amount) }
}

func WithTrailPercent(percent decimal.Decimal) Update {
	return func(d *model.OrderDraft) { d.TrailPercent = ptr(percent) }
}

func ClearTrail() Update {
	return func(d *model.OrderDraft) {
		d.TrailPrice = nil
		d.TrailPercent = nil
	}
}

func WithEstimatedPrice(price decimal.Decimal) Update {
	return func(d *model.OrderDraft) { d.EstimatedPrice = ptr(price) }
}

func ClearEstimatedPrice() Update {
	return func(d *model.OrderDraft) { d.EstimatedPrice = nil }
}

// WithOption turns the draft into an options contract.
func WithOption(optionType model.OptionType, strike decimal.Decimal, expiration string) Update {
	return func(d *model.OrderDraft) {
		d.AssetClass = model.AssetClassOption
		d.OptionType = &optionType
		d.StrikePrice = ptr(strike)
		d.ExpirationDate = strings.TrimSpace(expiration)
	}
}

func WithOptionType(optionType model.OptionType) Update {
	return func(d *model.OrderDraft) { d.OptionType = &optionType }
}

func WithStrikePrice(strike decimal.Decimal) Update {
	return func(d *model.OrderDraft) { d.StrikePrice = ptr(strike) }
}

func WithExpirationDate(expiration string) Update {
	return func(d *model.OrderDraft) { d.ExpirationDate = strings.TrimSpace(expiration) }
}
