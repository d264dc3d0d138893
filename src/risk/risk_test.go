package risk

import (
	"testing"

	"github.com/shopspring/decimal"

	"orderdesk/src/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestAssess(t *testing.T) {
	tests := []struct {
		name         string
		order        model.Order
		estimated    *decimal.Decimal
		wantRef      *decimal.Decimal
		wantNotional *decimal.Decimal
		wantLoss     *decimal.Decimal
		wantGain     *decimal.Decimal
		wantRR       *decimal.Decimal
		wantMult     decimal.Decimal
	}{
		{
			name: "market order without estimate has no money figures",
			order: model.Order{
				Symbol: "SPY", Side: model.SideBuy, Quantity: 10, Type: model.OrderTypeMarket,
				Instrument: model.StockInstrument{}, Exits: model.SimpleExits{},
			},
			wantMult:     StockMultiplier,
		},
		{
			name: "market order priced from estimate",
			order: model.Order{
				Symbol: "SPY", Side: model.SideBuy, Quantity: 10, Type: model.OrderTypeMarket,
				Instrument: model.StockInstrument{}, Exits: model.SimpleExits{},
			},
			estimated:    decPtr("500"),
			wantRef:      decPtr("500"),
			wantNotional: decPtr("5000"),
			wantMult:     StockMultiplier,
		},
		{
			name: "limit price wins over estimate",
			order: model.Order{
				Symbol: "AAPL", Side: model.SideBuy, Quantity: 5, Type: model.OrderTypeLimit,
				LimitPrice: decPtr("190.50"),
				Instrument: model.StockInstrument{},
				Exits: model.OCOExits{
					Take: model.TakeProfit{LimitPrice: dec("200.50")},
					Stop: model.StopLoss{StopPrice: dec("185.50")},
				},
			},
			estimated:    decPtr("199"),
			wantRef:      decPtr("190.50"),
			wantNotional: decPtr("952.5"),
			wantLoss:     decPtr("25"),
			wantGain:     decPtr("50"),
			wantRR:       decPtr("2"),
			wantMult:     StockMultiplier,
		},
		{
			name: "sell bracket flips direction",
			order: model.Order{
				Symbol: "TSLA", Side: model.SideSell, Quantity: 2, Type: model.OrderTypeLimit,
				LimitPrice: decPtr("250"),
				Instrument: model.StockInstrument{},
				Exits: model.BracketExits{
					Stop: &model.StopLoss{StopPrice: dec("260")},
				},
			},
			wantRef:      decPtr("250"),
			wantNotional: decPtr("500"),
			wantLoss:     decPtr("20"),
			wantMult:     StockMultiplier,
		},
		{
			name: "option contract uses multiplier 100",
			order: model.Order{
				Symbol: "SPY", Side: model.SideBuy, Quantity: 1, Type: model.OrderTypeLimit,
				LimitPrice: decPtr("2.35"),
				Instrument: model.OptionContract{Type: model.OptionTypeCall, Strike: dec("590"), Expiration: "2025-01-17"},
				Exits:      model.SimpleExits{},
			},
			wantRef:      decPtr("2.35"),
			wantNotional: decPtr("235"),
			wantMult:     OptionMultiplier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assess(tt.order, tt.estimated)

			if !got.Multiplier.Equal(tt.wantMult) {
				t.Fatalf("multiplier: got %s want %s", got.Multiplier, tt.wantMult)
			}
			assertDecimal(t, "reference", got.ReferencePrice, tt.wantRef)
			assertDecimal(t, "notional", got.Notional, tt.wantNotional)
			assertDecimal(t, "max loss", got.MaxLoss, tt.wantLoss)
			assertDecimal(t, "potential gain", got.PotentialGain, tt.wantGain)
			assertDecimal(t, "reward/risk", got.RewardRisk, tt.wantRR)
		})
	}
}

func assertDecimal(t *testing.T, label string, got, want *decimal.Decimal) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Fatalf("%s: got %s want nil", label, got)
		}
		return
	}
	if got == nil {
		t.Fatalf("%s: got nil want %s", label, want)
	}
	if !got.Equal(*want) {
		t.Fatalf("%s: got %s want %s", label, got, want)
	}
}
