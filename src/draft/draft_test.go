package draft

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/src/model"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNewDefaults(t *testing.T) {
	got := New()

	assert.Equal(t, model.SideBuy, got.Side)
	assert.Equal(t, int64(1), got.Quantity)
	assert.Equal(t, model.AssetClassStock, got.AssetClass)
	assert.Equal(t, model.OrderTypeMarket, got.OrderType)
	assert.Equal(t, model.OrderClassSimple, got.OrderClass)
	assert.Empty(t, got.Symbol)
	assert.Nil(t, got.LimitPrice)
}

func TestNewWithHandoff(t *testing.T) {
	got := New(WithSymbol(" spy "), WithQuantity(10), WithSide(model.SideSell))

	assert.Equal(t, "SPY", got.Symbol)
	assert.Equal(t, int64(10), got.Quantity)
	assert.Equal(t, model.SideSell, got.Side)
}

func TestApplyDoesNotTouchInput(t *testing.T) {
	base := New(
		WithLimitPrice(d("100")),
		WithOrderClass(model.OrderClassBracket),
		WithStopLoss(d("90"), ptr(d("89"))),
	)

	next := Apply(base, WithLimitPrice(d("101")), WithStopLoss(d("95"), nil))

	require.NotNil(t, base.LimitPrice)
	assert.True(t, base.LimitPrice.Equal(d("100")))
	assert.True(t, base.StopLoss.StopPrice.Equal(d("90")))
	require.NotNil(t, base.StopLoss.LimitPrice)
	assert.True(t, next.LimitPrice.Equal(d("101")))
	assert.Nil(t, next.StopLoss.LimitPrice)
}

func TestCloneSharesNoPointers(t *testing.T) {
	call := model.OptionTypeCall
	base := model.OrderDraft{
		LimitPrice: ptr(d("1")),
		StopLoss:   &model.StopLoss{StopPrice: d("2"), LimitPrice: ptr(d("3"))},
		TakeProfit: &model.TakeProfit{LimitPrice: d("4")},
		OptionType: &call,
	}

	c := Clone(base)

	assert.NotSame(t, base.LimitPrice, c.LimitPrice)
	assert.NotSame(t, base.StopLoss, c.StopLoss)
	assert.NotSame(t, base.StopLoss.LimitPrice, c.StopLoss.LimitPrice)
	assert.NotSame(t, base.TakeProfit, c.TakeProfit)
	assert.NotSame(t, base.OptionType, c.OptionType)
}

func TestWithAssetClassStockClearsOptionFields(t *testing.T) {
	opt := New(WithOption(model.OptionTypePut, d("590"), "2025-01-17"))
	require.True(t, opt.IsOption())

	stock := Apply(opt, WithAssetClass(model.AssetClassStock))

	assert.Nil(t, stock.OptionType)
	assert.Nil(t, stock.StrikePrice)
	assert.Empty(t, stock.ExpirationDate)
	assert.NotNil(t, opt.OptionType, "original draft must keep its contract")
}

func TestWithOrderClassSimpleClearsLegs(t *testing.T) {
	bracket := New(
		WithOrderClass(model.OrderClassOCO),
		WithTakeProfit(d("120")),
		WithStopLoss(d("80"), nil),
	)

	simple := Apply(bracket, WithOrderClass(model.OrderClassSimple))

	assert.Nil(t, simple.TakeProfit)
	assert.Nil(t, simple.StopLoss)

	// switching between exit topologies keeps the legs for re-use
	bracketAgain := Apply(bracket, WithOrderClass(model.OrderClassBracket))
	assert.NotNil(t, bracketAgain.TakeProfit)
	assert.NotNil(t, bracketAgain.StopLoss)
}

func TestFromPatch(t *testing.T) {
	symbol := "aapl"
	orderType := model.OrderTypeLimit
	limit := 190.5
	class := model.OrderClassBracket
	stopLimit := 179.0

	base := New(WithTrailPrice(d("1")))
	got := Apply(base, FromPatch(model.DraftPatch{
		Symbol:     &symbol,
		OrderType:  &orderType,
		LimitPrice: &limit,
		OrderClass: &class,
		StopLoss:   &model.StopLossPayload{StopPrice: 180, LimitPrice: &stopLimit},
		ClearTrail: true,
	})...)

	assert.Equal(t, "AAPL", got.Symbol)
	assert.Equal(t, model.OrderTypeLimit, got.OrderType)
	require.NotNil(t, got.LimitPrice)
	assert.True(t, got.LimitPrice.Equal(d("190.5")))
	assert.Equal(t, model.OrderClassBracket, got.OrderClass)
	require.NotNil(t, got.StopLoss)
	assert.True(t, got.StopLoss.StopPrice.Equal(d("180")))
	assert.True(t, got.StopLoss.LimitPrice.Equal(d("179")))
	assert.Nil(t, got.TrailPrice)
}

func TestFromPatchEmpty(t *testing.T) {
	assert.Empty(t, FromPatch(model.DraftPatch{}))
}
