package validator

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"orderdesk/src/model"
)

// ErrInvalidDraft matches every *ValidationError via errors.Is.
var ErrInvalidDraft = errors.New("invalid order draft")

// Messages shown to the user, one per rule.
const (
	MsgSymbolRequired         = "Symbol is required"
	MsgQuantityPositive       = "Quantity must be greater than 0"
	MsgLimitPriceRequired     = "Limit price is required for limit orders"
	MsgLimitPricePositive     = "Limit price must be greater than 0"
	MsgOptionTypeRequired     = "Option type is required for options"
	MsgStrikePricePositive    = "Strike price must be greater than 0"
	MsgExpirationRequired     = "Expiration date is required for options"
	MsgBracketNeedsLeg        = "Bracket orders require a take-profit or stop-loss"
	MsgOCONeedsBothLegs       = "OCO orders require both take-profit and stop-loss"
	MsgTrailChooseOne         = "Choose either trail price or trail percent, not both"
	MsgTakeProfitPositive     = "Take-profit limit price must be greater than 0"
	MsgStopPricePositive      = "Stop-loss stop price must be greater than 0"
	MsgStopLimitBelowStop     = "Stop-loss limit price must be greater than or equal to stop price"
	MsgTrailPricePositive     = "Trail price must be greater than 0"
	MsgTrailPercentOutOfRange = "Trail percent must be greater than 0 and at most 100"
	MsgEstimatedPricePositive = "Estimated price must be greater than 0"
)

// ValidationError names the first rule a draft violates.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDraft
}

func fail(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

var hundred = decimal.NewFromInt(100)

func positive(v *decimal.Decimal) bool {
	return v != nil && v.IsPositive()
}

// Validate returns nil for a valid draft, or the first violated rule.
// Rules run in a fixed order and the earliest failure wins.
func Validate(d model.OrderDraft) error {
	if err := validate(d); err != nil {
		return err
	}
	return nil
}

func validate(d model.OrderDraft) *ValidationError {
	if strings.TrimSpace(d.Symbol) == "" {
		return fail("symbol", MsgSymbolRequired)
	}
	if d.Quantity <= 0 {
		return fail("quantity", MsgQuantityPositive)
	}

	if d.OrderType == model.OrderTypeLimit {
		if d.LimitPrice == nil {
			return fail("limitPrice", MsgLimitPriceRequired)
		}
		if !d.LimitPrice.IsPositive() {
			return fail("limitPrice", MsgLimitPricePositive)
		}
	}

	if d.IsOption() {
		if d.OptionType == nil || *d.OptionType == "" {
			return fail("optionType", MsgOptionTypeRequired)
		}
		if !positive(d.StrikePrice) {
			return fail("strikePrice", MsgStrikePricePositive)
		}
		if strings.TrimSpace(d.ExpirationDate) == "" {
			return fail("expirationDate", MsgExpirationRequired)
		}
	}

	switch d.OrderClass {
	case model.OrderClassBracket:
		if d.TakeProfit == nil && d.StopLoss == nil {
			return fail("orderClass", MsgBracketNeedsLeg)
		}
	case model.OrderClassOCO:
		if d.TakeProfit == nil || d.StopLoss == nil {
			return fail("orderClass", MsgOCONeedsBothLegs)
		}
	}

	if d.TrailPrice != nil && d.TrailPercent != nil {
		return fail("trail", MsgTrailChooseOne)
	}

	if d.TakeProfit != nil && !d.TakeProfit.LimitPrice.IsPositive() {
		return fail("takeProfit.limitPrice", MsgTakeProfitPositive)
	}
	if d.StopLoss != nil {
		if !d.StopLoss.StopPrice.IsPositive() {
			return fail("stopLoss.stopPrice", MsgStopPricePositive)
		}
		if d.StopLoss.LimitPrice != nil && d.StopLoss.LimitPrice.LessThan(d.StopLoss.StopPrice) {
			return fail("stopLoss.limitPrice", MsgStopLimitBelowStop)
		}
	}

	if d.TrailPrice != nil && !d.TrailPrice.IsPositive() {
		return fail("trailPrice", MsgTrailPricePositive)
	}
	if d.TrailPercent != nil && (!d.TrailPercent.IsPositive() || d.TrailPercent.GreaterThan(hundred)) {
		return fail("trailPercent", MsgTrailPercentOutOfRange)
	}

	if d.EstimatedPrice != nil && !d.EstimatedPrice.IsPositive() {
		return fail("estimatedPrice", MsgEstimatedPricePositive)
	}

	return nil
}
