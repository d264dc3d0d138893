package ticket

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"orderdesk/src/draft"
	"orderdesk/src/model"
	"orderdesk/src/pipeline"
)

// Options describe one order ticket entered on the command line. Zero values
// leave the draft defaults in place.
type Options struct {
	Symbol         string
	Side           string
	Quantity       int64
	OrderType      string
	LimitPrice     float64
	OrderClass     string
	TakeProfit     float64
	StopPrice      float64
	StopLimit      float64
	TrailPrice     float64
	TrailPercent   float64
	EstimatedPrice float64
	OptionType     string
	Strike         float64
	Expiration     string
	AssumeYes      bool
}

// Updates turns the options into draft updates, in the order a user would
// fill the form.
func (o Options) Updates() []draft.Update {
	updates := []draft.Update{draft.WithSymbol(o.Symbol)}
	if o.Side != "" {
		updates = append(updates, draft.WithSide(model.Side(strings.ToLower(o.Side))))
	}
	if o.Quantity != 0 {
		updates = append(updates, draft.WithQuantity(o.Quantity))
	}
	if o.OptionType != "" || o.Strike != 0 || o.Expiration != "" {
		updates = append(updates, draft.WithOption(model.OptionType(strings.ToLower(o.OptionType)), decimal.NewFromFloat(o.Strike), o.Expiration))
	}
	if o.OrderType != "" {
		updates = append(updates, draft.WithOrderType(model.OrderType(strings.ToLower(o.OrderType))))
	}
	if o.LimitPrice != 0 {
		updates = append(updates, draft.WithLimitPrice(decimal.NewFromFloat(o.LimitPrice)))
	}
	if o.OrderClass != "" {
		updates = append(updates, draft.WithOrderClass(model.OrderClass(strings.ToLower(o.OrderClass))))
	}
	if o.TakeProfit != 0 {
		updates = append(updates, draft.WithTakeProfit(decimal.NewFromFloat(o.TakeProfit)))
	}
	if o.StopPrice != 0 {
		var limit *decimal.Decimal
		if o.StopLimit != 0 {
			l := decimal.NewFromFloat(o.StopLimit)
			limit = &l
		}
		updates = append(updates, draft.WithStopLoss(decimal.NewFromFloat(o.StopPrice), limit))
	}
	if o.TrailPrice != 0 {
		updates = append(updates, draft.WithTrailPrice(decimal.NewFromFloat(o.TrailPrice)))
	}
	if o.TrailPercent != 0 {
		updates = append(updates, draft.WithTrailPercent(decimal.NewFromFloat(o.TrailPercent)))
	}
	if o.EstimatedPrice != 0 {
		updates = append(updates, draft.WithEstimatedPrice(decimal.NewFromFloat(o.EstimatedPrice)))
	}
	return updates
}

type Ticket struct {
	Pipeline *pipeline.Pipeline
	In       io.Reader
	Out      io.Writer
}

// Run drafts, previews and, once confirmed, sends the order. A declined
// confirmation cancels without sending.
func (t *Ticket) Run(ctx context.Context, o Options) (pipeline.Outcome, error) {
	t.Pipeline.Update(o.Updates()...)

	snap, err := t.Pipeline.Submit()
	if err != nil {
		return pipeline.Outcome{}, err
	}
	fmt.Fprintln(t.Out, snap.Preview.Summary)
	if a := snap.Preview.Risk; a.MaxLoss != nil && a.PotentialGain != nil && a.RewardRisk != nil {
		fmt.Fprintf(t.Out, "Max loss $%s, potential gain $%s, reward/risk %s\n",
			a.MaxLoss.StringFixed(2), a.PotentialGain.StringFixed(2), a.RewardRisk.String())
	}

	if !o.AssumeYes && !t.confirmed() {
		if _, err := t.Pipeline.Cancel(); err != nil {
			logrus.WithError(err).Warn("Cancel after declined confirmation failed")
		}
		fmt.Fprintln(t.Out, "Order cancelled before submission")
		return pipeline.Outcome{State: pipeline.StateIdle}, nil
	}

	outcome, err := t.Pipeline.Confirm(ctx)
	if err != nil {
		return outcome, err
	}
	fmt.Fprintf(t.Out, "%s [%s]\n", outcome.Message, outcome.RequestID)
	return outcome, nil
}

func (t *Ticket) confirmed() bool {
	fmt.Fprint(t.Out, "Send this order? [y/N] ")
	line, err := bufio.NewReader(t.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
