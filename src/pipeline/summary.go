package pipeline

import (
	"fmt"
	"strings"

	"orderdesk/src/model"
)

// Summarize renders the confirmation line shown before an order is sent,
// e.g. "Sell 5 AAPL at limit $190.50".
func Summarize(o model.Order) string {
	var b strings.Builder

	side := "Buy"
	if o.Side == model.SideSell {
		side = "Sell"
	}
	fmt.Fprintf(&b, "%s %d %s", side, o.Quantity, o.Symbol)

	if c, ok := o.Instrument.(model.OptionContract); ok {
		fmt.Fprintf(&b, " %s %s expiring %s", c.Strike.String(), c.Type, c.Expiration)
	}

	if o.Type == model.OrderTypeLimit && o.LimitPrice != nil {
		fmt.Fprintf(&b, " at limit $%s", o.LimitPrice.StringFixed(2))
	} else {
		b.WriteString(" at market price")
	}

	if take := o.TakeProfitLeg(); take != nil {
		fmt.Fprintf(&b, ", take-profit $%s", take.LimitPrice.StringFixed(2))
	}
	if stop := o.StopLossLeg(); stop != nil {
		fmt.Fprintf(&b, ", stop $%s", stop.StopPrice.StringFixed(2))
		if stop.LimitPrice != nil {
			fmt.Fprintf(&b, " limit $%s", stop.LimitPrice.StringFixed(2))
		}
	}

	switch t := o.Trail.(type) {
	case model.TrailByPrice:
		fmt.Fprintf(&b, ", trailing $%s", t.Amount.StringFixed(2))
	case model.TrailByPercent:
		fmt.Fprintf(&b, ", trailing %s%%", t.Percent.String())
	}

	return b.String()
}
