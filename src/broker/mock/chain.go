package mock

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"orderdesk/src/model"
)

// underlying is a static listing: a reference price and strike step per symbol.
type underlying struct {
	price decimal.Decimal
	step  decimal.Decimal
}

var listings = map[string]underlying{
	"SPY":  {price: decimal.NewFromInt(590), step: decimal.NewFromInt(5)},
	"QQQ":  {price: decimal.NewFromInt(510), step: decimal.NewFromInt(5)},
	"AAPL": {price: decimal.NewFromInt(190), step: decimal.NewFromFloat(2.5)},
	"TSLA": {price: decimal.NewFromInt(250), step: decimal.NewFromInt(5)},
}

var expirations = []string{"2025-01-17", "2025-01-24", "2025-01-31", "2025-02-21", "2025-03-21"}

const strikesEachSide = 4

func (b *Broker) optionChain(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("symbol")))
	expiration := strings.TrimSpace(r.URL.Query().Get("expiration"))

	if symbol == "" {
		writeMessage(w, http.StatusBadRequest, "symbol is required")
		return
	}

	u, listed := listings[symbol]
	if expiration == "" {
		chain := model.OptionChain{Expirations: []string{}}
		if listed {
			chain.Expirations = append(chain.Expirations, expirations...)
		}
		writeJSON(w, http.StatusOK, chain)
		return
	}

	chain := model.OptionChain{Strikes: []float64{}}
	if listed && knownExpiration(expiration) {
		chain.Strikes = strikesAround(u)
	}
	writeJSON(w, http.StatusOK, chain)
}

func knownExpiration(exp string) bool {
	for _, e := range expirations {
		if e == exp {
			return true
		}
	}
	return false
}

func strikesAround(u underlying) []float64 {
	out := make([]float64, 0, 2*strikesEachSide+1)
	for i := -strikesEachSide; i <= strikesEachSide; i++ {
		strike := u.price.Add(u.step.Mul(decimal.NewFromInt(int64(i))))
		f, _ := strike.Float64()
		out = append(out, f)
	}
	return out
}
