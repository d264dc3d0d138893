package mapper

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/src/draft"
	"orderdesk/src/model"
	"orderdesk/src/validator"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func toMap(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestScenarioA_MarketPayloadHasNoLimitPrice(t *testing.T) {
	dr := draft.New(
		draft.WithSymbol("SPY"),
		draft.WithSide(model.SideBuy),
		draft.WithQuantity(10),
		draft.WithOrderType(model.OrderTypeMarket),
		draft.WithOrderClass(model.OrderClassSimple),
	)
	require.NoError(t, validator.Validate(dr))

	payload, err := DraftToOrderPayload(dr)
	require.NoError(t, err)

	wire := toMap(t, payload)
	assert.NotContains(t, wire, "limit_price")
	assert.NotContains(t, wire, "take_profit")
	assert.NotContains(t, wire, "stop_loss")
	assert.NotContains(t, wire, "option_type")
	assert.Equal(t, "SPY", wire["symbol"])
	assert.Equal(t, "buy", wire["side"])
	assert.Equal(t, float64(10), wire["qty"])
	assert.Equal(t, "market", wire["type"])
	assert.Equal(t, "stock", wire["asset_class"])
	assert.Equal(t, "simple", wire["order_class"])
}

func TestScenarioD_OptionPayload(t *testing.T) {
	dr := draft.New(
		draft.WithSymbol("SPY"),
		draft.WithQuantity(1),
		draft.WithOption(model.OptionTypeCall, d("590"), "2025-01-17"),
	)
	require.NoError(t, validator.Validate(dr))

	payload, err := DraftToOrderPayload(dr)
	require.NoError(t, err)

	wire := toMap(t, payload)
	assert.Equal(t, "call", wire["option_type"])
	assert.Equal(t, float64(590), wire["strike_price"])
	assert.Equal(t, "2025-01-17", wire["expiration_date"])
	assert.Equal(t, "option", wire["asset_class"])
	assert.Equal(t, float64(1), wire["qty"])

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"strike_price":590`)
}

func TestPayloadFlattensLegs(t *testing.T) {
	dr := draft.New(
		draft.WithSymbol("AAPL"),
		draft.WithQuantity(5),
		draft.WithOrderType(model.OrderTypeLimit),
		draft.WithLimitPrice(d("190.5")),
		draft.WithOrderClass(model.OrderClassOCO),
		draft.WithTakeProfit(d("210")),
		draft.WithStopLoss(d("180"), dp("180.25")),
	)

	payload, err := DraftToOrderPayload(dr)
	require.NoError(t, err)

	wire := toMap(t, payload)
	assert.Equal(t, 190.5, wire["limit_price"])
	assert.Equal(t, map[string]any{"limit_price": float64(210)}, wire["take_profit"])
	assert.Equal(t, map[string]any{"stop_price": float64(180), "limit_price": 180.25}, wire["stop_loss"])
	assert.Equal(t, "oco", wire["order_class"])
}

func TestPayloadOmitsStopLimitAndEstimatedPrice(t *testing.T) {
	dr := draft.New(
		draft.WithSymbol("AAPL"),
		draft.WithOrderClass(model.OrderClassBracket),
		draft.WithStopLoss(d("180"), nil),
		draft.WithTrailPrice(d("1.25")),
		draft.WithEstimatedPrice(d("190")),
	)

	payload, err := DraftToOrderPayload(dr)
	require.NoError(t, err)

	wire := toMap(t, payload)
	assert.Equal(t, map[string]any{"stop_price": float64(180)}, wire["stop_loss"])
	assert.NotContains(t, wire, "take_profit")
	assert.Equal(t, 1.25, wire["trail_price"])
	assert.NotContains(t, wire, "trail_percent")
	for key := range wire {
		assert.NotContains(t, key, "estimated")
	}
}

func TestDraftToOrderPayloadInvalid(t *testing.T) {
	_, err := DraftToOrderPayload(draft.New())
	assert.True(t, errors.Is(err, validator.ErrInvalidDraft))
}

func TestTemplateRoundTrip(t *testing.T) {
	drafts := map[string]model.OrderDraft{
		"market stock": draft.New(draft.WithSymbol("SPY"), draft.WithQuantity(10)),
		"limit bracket with trail percent": draft.New(
			draft.WithSymbol("AAPL"),
			draft.WithSide(model.SideSell),
			draft.WithQuantity(3),
			draft.WithOrderType(model.OrderTypeLimit),
			draft.WithLimitPrice(d("190.55")),
			draft.WithOrderClass(model.OrderClassBracket),
			draft.WithTakeProfit(d("175")),
			draft.WithStopLoss(d("200.1"), dp("201")),
			draft.WithTrailPercent(d("2.5")),
		),
		"oco option with trail price": draft.New(
			draft.WithSymbol("QQQ"),
			draft.WithQuantity(2),
			draft.WithOption(model.OptionTypePut, d("480.5"), "2025-03-21"),
			draft.WithOrderClass(model.OrderClassOCO),
			draft.WithTakeProfit(d("9.1")),
			draft.WithStopLoss(d("3"), nil),
			draft.WithTrailPrice(d("0.35")),
		),
		"incomplete limit": draft.New(
			draft.WithSymbol("MSFT"),
			draft.WithOrderType(model.OrderTypeLimit),
		),
	}

	for name, original := range drafts {
		t.Run(name, func(t *testing.T) {
			got := TemplateToDraft(DraftToTemplatePayload(original, "n", nil))

			assert.Equal(t, original.Symbol, got.Symbol)
			assert.Equal(t, original.Side, got.Side)
			assert.Equal(t, original.Quantity, got.Quantity)
			assert.Equal(t, original.OrderType, got.OrderType)
			assert.Equal(t, original.AssetClass, got.AssetClass)
			assert.Equal(t, original.OrderClass, got.OrderClass)
			assertDecimalPtr(t, original.LimitPrice, got.LimitPrice)
			assertDecimalPtr(t, original.TrailPrice, got.TrailPrice)
			assertDecimalPtr(t, original.TrailPercent, got.TrailPercent)
			assertDecimalPtr(t, original.StrikePrice, got.StrikePrice)
			assert.Equal(t, original.OptionType, got.OptionType)
			assert.Equal(t, original.ExpirationDate, got.ExpirationDate)

			if original.TakeProfit == nil {
				assert.Nil(t, got.TakeProfit)
			} else {
				require.NotNil(t, got.TakeProfit)
				assert.True(t, original.TakeProfit.LimitPrice.Equal(got.TakeProfit.LimitPrice))
			}
			if original.StopLoss == nil {
				assert.Nil(t, got.StopLoss)
			} else {
				require.NotNil(t, got.StopLoss)
				assert.True(t, original.StopLoss.StopPrice.Equal(got.StopLoss.StopPrice))
				assertDecimalPtr(t, original.StopLoss.LimitPrice, got.StopLoss.LimitPrice)
			}
		})
	}
}

func TestTemplateRoundTripThroughJSON(t *testing.T) {
	original := draft.New(
		draft.WithSymbol("SPY"),
		draft.WithOption(model.OptionTypeCall, d("590"), "2025-01-17"),
		draft.WithOrderType(model.OrderTypeLimit),
		draft.WithLimitPrice(d("4.15")),
	)
	desc := "weekly calls"
	raw, err := json.Marshal(model.TemplateResponse{ID: "t1", TemplatePayload: DraftToTemplatePayload(original, "calls", &desc)})
	require.NoError(t, err)

	var decoded model.TemplateResponse
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "t1", decoded.ID)
	assert.Equal(t, "calls", decoded.Name)
	require.NotNil(t, decoded.Description)
	assert.Equal(t, "weekly calls", *decoded.Description)

	got := TemplateToDraft(decoded.TemplatePayload)
	assert.True(t, got.LimitPrice.Equal(d("4.15")))
	assert.True(t, got.StrikePrice.Equal(d("590")))
	assert.Equal(t, model.OptionTypeCall, *got.OptionType)
}

func TestTemplatePayloadSkipsOptionFieldsForStocks(t *testing.T) {
	dr := draft.New(draft.WithSymbol("SPY"))
	dr.StrikePrice = dp("500")
	blank := "  "

	p := DraftToTemplatePayload(dr, " mine ", &blank)

	assert.Equal(t, "mine", p.Name)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.StrikePrice)
}

func TestDraftToView(t *testing.T) {
	dr := draft.New(draft.WithSymbol("SPY"), draft.WithEstimatedPrice(d("501.2")))
	v := DraftToView(dr)

	require.NotNil(t, v.EstimatedPrice)
	assert.Equal(t, 501.2, *v.EstimatedPrice)
	assert.Nil(t, v.LimitPrice)
}

func assertDecimalPtr(t *testing.T, want, got *decimal.Decimal) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got), "want %s, got %s", want, got)
}
