package validator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/src/draft"
	"orderdesk/src/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func spy() model.OrderDraft {
	return draft.New(draft.WithSymbol("SPY"), draft.WithQuantity(10))
}

func messageOf(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		return ""
	}
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "expected *ValidationError, got %T", err)
	return ve.Message
}

func TestValidateRules(t *testing.T) {
	call := model.OptionTypeCall

	tests := []struct {
		name  string
		draft model.OrderDraft
		want  string
	}{
		{name: "valid market", draft: spy(), want: ""},
		{name: "empty symbol", draft: draft.Apply(spy(), draft.WithSymbol("  ")), want: MsgSymbolRequired},
		{name: "zero quantity", draft: draft.Apply(spy(), draft.WithQuantity(0)), want: MsgQuantityPositive},
		{name: "negative quantity", draft: draft.Apply(spy(), draft.WithQuantity(-3)), want: MsgQuantityPositive},
		{
			name:  "limit without price",
			draft: draft.Apply(spy(), draft.WithOrderType(model.OrderTypeLimit)),
			want:  MsgLimitPriceRequired,
		},
		{
			name:  "limit with zero price",
			draft: draft.Apply(spy(), draft.WithOrderType(model.OrderTypeLimit), draft.WithLimitPrice(d("0"))),
			want:  MsgLimitPricePositive,
		},
		{
			name:  "market ignores missing limit price",
			draft: draft.Apply(spy(), draft.WithOrderType(model.OrderTypeMarket), draft.ClearLimitPrice()),
			want:  "",
		},
		{
			name:  "option without type",
			draft: draft.Apply(spy(), draft.WithAssetClass(model.AssetClassOption), draft.WithStrikePrice(d("590")), draft.WithExpirationDate("2025-01-17")),
			want:  MsgOptionTypeRequired,
		},
		{
			name:  "option without strike",
			draft: draft.Apply(spy(), draft.WithAssetClass(model.AssetClassOption), draft.WithOptionType(call), draft.WithExpirationDate("2025-01-17")),
			want:  MsgStrikePricePositive,
		},
		{
			name:  "option without expiration",
			draft: draft.Apply(spy(), draft.WithAssetClass(model.AssetClassOption), draft.WithOptionType(call), draft.WithStrikePrice(d("590"))),
			want:  MsgExpirationRequired,
		},
		{
			name:  "bracket without legs",
			draft: draft.Apply(spy(), draft.WithOrderClass(model.OrderClassBracket)),
			want:  MsgBracketNeedsLeg,
		},
		{
			name:  "bracket with stop only",
			draft: draft.Apply(spy(), draft.WithOrderClass(model.OrderClassBracket), draft.WithStopLoss(d("90"), nil)),
			want:  "",
		},
		{
			name:  "oco with take profit only",
			draft: draft.Apply(spy(), draft.WithOrderClass(model.OrderClassOCO), draft.WithTakeProfit(d("120"))),
			want:  MsgOCONeedsBothLegs,
		},
		{
			name:  "both trail kinds",
			draft: draft.Apply(spy(), draft.WithTrailPrice(d("1")), draft.WithTrailPercent(d("2"))),
			want:  MsgTrailChooseOne,
		},
		{
			name:  "non positive take profit",
			draft: draft.Apply(spy(), draft.WithOrderClass(model.OrderClassBracket), draft.WithTakeProfit(d("0"))),
			want:  MsgTakeProfitPositive,
		},
		{
			name:  "non positive stop price",
			draft: draft.Apply(spy(), draft.WithOrderClass(model.OrderClassBracket), draft.WithStopLoss(d("-1"), nil)),
			want:  MsgStopPricePositive,
		},
		{
			name:  "stop limit below stop",
			draft: draft.Apply(spy(), draft.WithOrderClass(model.OrderClassBracket), draft.WithStopLoss(d("90"), dp("89.99"))),
			want:  MsgStopLimitBelowStop,
		},
		{
			name:  "stop limit equal to stop",
			draft: draft.Apply(spy(), draft.WithOrderClass(model.OrderClassBracket), draft.WithStopLoss(d("90"), dp("90"))),
			want:  "",
		},
		{name: "zero trail price", draft: draft.Apply(spy(), draft.WithTrailPrice(d("0"))), want: MsgTrailPricePositive},
		{name: "zero trail percent", draft: draft.Apply(spy(), draft.WithTrailPercent(d("0"))), want: MsgTrailPercentOutOfRange},
		{name: "trail percent above 100", draft: draft.Apply(spy(), draft.WithTrailPercent(d("100.01"))), want: MsgTrailPercentOutOfRange},
		{name: "trail percent of 100", draft: draft.Apply(spy(), draft.WithTrailPercent(d("100"))), want: ""},
		{name: "zero estimated price", draft: draft.Apply(spy(), draft.WithEstimatedPrice(d("0"))), want: MsgEstimatedPricePositive},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, messageOf(t, Validate(tc.draft)))
		})
	}
}

func TestValidateErrorsMatchSentinel(t *testing.T) {
	err := Validate(draft.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDraft))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "symbol", ve.Field)
}

func TestValidateNilIsUntypedNil(t *testing.T) {
	err := Validate(spy())
	if err != nil {
		t.Fatalf("expected nil error, got %#v", err)
	}
}

// An earlier violation keeps winning no matter what later fields hold.
func TestValidatePrecedence(t *testing.T) {
	broken := draft.Apply(draft.New(),
		draft.WithQuantity(0),
		draft.WithOrderType(model.OrderTypeLimit),
		draft.WithOrderClass(model.OrderClassOCO),
	)
	require.Equal(t, MsgSymbolRequired, messageOf(t, Validate(broken)))

	laterEdits := [][]draft.Update{
		{draft.WithTrailPrice(d("1")), draft.WithTrailPercent(d("5"))},
		{draft.WithStopLoss(d("-5"), nil)},
		{draft.WithEstimatedPrice(d("0"))},
		{draft.WithLimitPrice(d("10"))},
		{draft.WithQuantity(5)},
	}
	for i, edits := range laterEdits {
		got := messageOf(t, Validate(draft.Apply(broken, edits...)))
		assert.Equal(t, MsgSymbolRequired, got, "edit %d changed the reported error", i)
	}

	// fixing the symbol surfaces the next rule in order
	fixed := draft.Apply(broken, draft.WithSymbol("SPY"))
	assert.Equal(t, MsgQuantityPositive, messageOf(t, Validate(fixed)))
	fixed = draft.Apply(fixed, draft.WithQuantity(1))
	assert.Equal(t, MsgLimitPriceRequired, messageOf(t, Validate(fixed)))
	fixed = draft.Apply(fixed, draft.WithLimitPrice(d("10")))
	assert.Equal(t, MsgOCONeedsBothLegs, messageOf(t, Validate(fixed)))
}

func TestBracketAndOCOInvariant(t *testing.T) {
	legs := []struct {
		name string
		take bool
		stop bool
	}{
		{"none", false, false},
		{"take", true, false},
		{"stop", false, true},
		{"both", true, true},
	}

	for _, class := range []model.OrderClass{model.OrderClassBracket, model.OrderClassOCO} {
		for _, leg := range legs {
			t.Run(string(class)+"/"+leg.name, func(t *testing.T) {
				updates := []draft.Update{draft.WithOrderClass(class)}
				if leg.take {
					updates = append(updates, draft.WithTakeProfit(d("120")))
				}
				if leg.stop {
					updates = append(updates, draft.WithStopLoss(d("80"), nil))
				}
				err := Validate(draft.Apply(spy(), updates...))

				var wantValid bool
				if class == model.OrderClassBracket {
					wantValid = leg.take || leg.stop
				} else {
					wantValid = leg.take && leg.stop
				}
				assert.Equal(t, wantValid, err == nil, "err=%v", err)
			})
		}
	}
}

func TestStopLimitOrdering(t *testing.T) {
	prices := []string{"0.01", "1", "49.99", "50", "50.01", "100"}
	for _, s := range prices {
		for _, l := range prices {
			dr := draft.Apply(spy(), draft.WithOrderClass(model.OrderClassBracket), draft.WithStopLoss(d(s), dp(l)))
			if Validate(dr) == nil && d(l).LessThan(d(s)) {
				t.Fatalf("stop=%s limit=%s validated with limit below stop", s, l)
			}
		}
	}
}

func TestTrailExclusivity(t *testing.T) {
	for _, price := range []string{"-1", "0", "0.5", "10"} {
		for _, pct := range []string{"-1", "0", "1", "100", "150"} {
			dr := draft.Apply(spy(), draft.WithTrailPrice(d(price)), draft.WithTrailPercent(d(pct)))
			if Validate(dr) == nil {
				t.Fatalf("draft with trail price %s and percent %s validated", price, pct)
			}
		}
	}
}

// Scenario B and C use the exact user-facing messages.
func TestScenarioMessages(t *testing.T) {
	b := draft.Apply(spy(), draft.WithOrderType(model.OrderTypeLimit))
	assert.Equal(t, "Limit price is required for limit orders", Validate(b).Error())

	c := draft.Apply(spy(), draft.WithOrderClass(model.OrderClassOCO), draft.WithTakeProfit(d("120")))
	assert.Equal(t, "OCO orders require both take-profit and stop-loss", Validate(c).Error())
}

func TestCheckBuildsVariants(t *testing.T) {
	t.Run("simple market stock", func(t *testing.T) {
		o, err := Check(draft.Apply(spy(), draft.WithLimitPrice(d("5"))))
		require.NoError(t, err)
		assert.Nil(t, o.LimitPrice, "market orders drop a stale limit price")
		assert.IsType(t, model.StockInstrument{}, o.Instrument)
		assert.IsType(t, model.SimpleExits{}, o.Exits)
		assert.Nil(t, o.Trail)
	})

	t.Run("oco option with trail", func(t *testing.T) {
		_, err := Check(draft.Apply(spy(),
			draft.WithQuantity(1),
			draft.WithOption(model.OptionTypePut, d("590"), "2025-01-17"),
			draft.WithOrderType(model.OrderTypeLimit),
			draft.WithLimitPrice(d("3.2")),
			draft.WithOrderClass(model.OrderClassOCO),
			draft.WithTakeProfit(d("5")),
			draft.WithStopLoss(d("2"), dp("1.9")),
		))
		require.Error(t, err, "stop limit below stop must fail")

		o, err := Check(draft.Apply(spy(),
			draft.WithQuantity(1),
			draft.WithOption(model.OptionTypePut, d("590"), "2025-01-17"),
			draft.WithOrderType(model.OrderTypeLimit),
			draft.WithLimitPrice(d("3.2")),
			draft.WithOrderClass(model.OrderClassOCO),
			draft.WithTakeProfit(d("5")),
			draft.WithStopLoss(d("2"), dp("2.1")),
			draft.WithTrailPercent(d("10")),
		))
		require.NoError(t, err)

		contract, ok := o.Instrument.(model.OptionContract)
		require.True(t, ok)
		assert.Equal(t, model.OptionTypePut, contract.Type)
		assert.True(t, contract.Strike.Equal(d("590")))

		exits, ok := o.Exits.(model.OCOExits)
		require.True(t, ok)
		assert.True(t, exits.Take.LimitPrice.Equal(d("5")))
		assert.True(t, exits.Stop.StopPrice.Equal(d("2")))
		assert.Equal(t, model.OrderClassOCO, o.Exits.OrderClass())

		trail, ok := o.Trail.(model.TrailByPercent)
		require.True(t, ok)
		assert.True(t, trail.Percent.Equal(d("10")))
	})

	t.Run("simple drops legs", func(t *testing.T) {
		dr := spy()
		dr.TakeProfit = &model.TakeProfit{LimitPrice: d("120")}
		o, err := Check(dr)
		require.NoError(t, err)
		assert.Nil(t, o.TakeProfitLeg())
		assert.Nil(t, o.StopLossLeg())
	})
}

func TestCheckRejectsUnknownEnums(t *testing.T) {
	cases := map[string]model.OrderDraft{
		"side":       draft.Apply(spy(), draft.WithSide("hold")),
		"orderType":  draft.Apply(spy(), draft.WithOrderType("stop")),
		"orderClass": draft.Apply(spy(), draft.WithOrderClass("oto")),
		"assetClass": draft.Apply(spy(), draft.WithAssetClass("crypto")),
	}
	for field, dr := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := Check(dr)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, field, ve.Field)
		})
	}
}
