package collector

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"sync"
)

// SymbolPrecision holds the rounding metadata for one symbol.
type SymbolPrecision struct {
	PricePrecision int
	QtyStep        float64
	MinNotional    float64
}

// ExchangeInfo is a lightweight cache of precision and step-size
// metadata per symbol, used when formatting levels for display.
type ExchangeInfo struct {
	fetcher *BinanceFetcher

	mu    sync.Mutex
	cache map[string]SymbolPrecision
}

// NewExchangeInfo creates an empty cache backed by the given fetcher.
func NewExchangeInfo(fetcher *BinanceFetcher) *ExchangeInfo {
	return &ExchangeInfo{
		fetcher: fetcher,
		cache:   map[string]SymbolPrecision{},
	}
}

type exchangeInfoResponse struct {
	Symbols []struct {
		Symbol         string `json:"symbol"`
		QuotePrecision int    `json:"quotePrecision"`
		Filters        []struct {
			FilterType  string `json:"filterType"`
			StepSize    string `json:"stepSize"`
			MinNotional string `json:"minNotional"`
		} `json:"filters"`
	} `json:"symbols"`
}

// Lookup returns the precision metadata for a symbol, fetching and
// caching it on first use.
func (e *ExchangeInfo) Lookup(symbol string) (SymbolPrecision, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p, ok := e.cache[symbol]; ok {
		return p, nil
	}

	q := url.Values{}
	q.Set("symbol", symbol)
	body, err := e.fetcher.get("/api/v3/exchangeInfo", q)
	if err != nil {
		return SymbolPrecision{}, err
	}

	var resp exchangeInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return SymbolPrecision{}, fmt.Errorf("decode exchangeInfo: %w", err)
	}

	for _, item := range resp.Symbols {
		if item.Symbol != symbol {
			continue
		}
		p := SymbolPrecision{
			PricePrecision: item.QuotePrecision,
			QtyStep:        1e-8,
		}
		if p.PricePrecision == 0 {
			p.PricePrecision = 8
		}
		for _, f := range item.Filters {
			switch f.FilterType {
			case "LOT_SIZE":
				if v, err := strconv.ParseFloat(f.StepSize, 64); err == nil && v > 0 {
					p.QtyStep = v
				}
			case "MIN_NOTIONAL":
				if v, err := strconv.ParseFloat(f.MinNotional, 64); err == nil {
					p.MinNotional = v
				}
			}
		}
		e.cache[symbol] = p
		return p, nil
	}
	return SymbolPrecision{}, fmt.Errorf("symbol %s not found in exchangeInfo", symbol)
}

// RoundPrice rounds a price to the symbol's quote precision.
func (e *ExchangeInfo) RoundPrice(symbol string, price float64) (float64, error) {
	p, err := e.Lookup(symbol)
	if err != nil {
		return 0, err
	}
	pow := math.Pow10(p.PricePrecision)
	return math.Round(price*pow) / pow, nil
}
