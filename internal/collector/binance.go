package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"LevelSentinel/internal/model"
)

// BinanceFetcher implements Fetcher against the Binance public spot API.
// No API key is required for klines or ticker data.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a fetcher with optional proxy support.
func NewBinanceFetcher(baseURL, proxyURL string) *BinanceFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BinanceFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

func (f *BinanceFetcher) get(path string, query url.Values) ([]byte, error) {
	u := f.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	resp, err := f.Client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("binance fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("binance read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// FetchKlines returns up to limit candles for the symbol and interval,
// ordered oldest to newest.
func (f *BinanceFetcher) FetchKlines(symbol, interval string, limit int) ([]model.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("limit", strconv.Itoa(limit))

	body, err := f.get("/api/v3/klines", q)
	if err != nil {
		return nil, err
	}

	// Kline rows mix numbers and strings:
	// [openTime, "open", "high", "low", "close", "volume", closeTime, ...]
	var raw [][]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("binance decode klines: %w", err)
	}

	candles := make([]model.Candle, 0, len(raw))
	for _, row := range raw {
		if len(row) < 6 {
			continue
		}
		openTime, ok := row[0].(float64)
		if !ok {
			continue
		}
		c := model.Candle{Time: time.UnixMilli(int64(openTime)).UTC()}
		fields := []*float64{&c.Open, &c.High, &c.Low, &c.Close, &c.Volume}
		parsed := true
		for i, dst := range fields {
			s, ok := row[i+1].(string)
			if !ok {
				parsed = false
				break
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				parsed = false
				break
			}
			*dst = v
		}
		if parsed {
			candles = append(candles, c)
		}
	}
	return candles, nil
}

// tickerEntry is one row of the 24h ticker response.
type tickerEntry struct {
	Symbol             string `json:"symbol"`
	PriceChangePercent string `json:"priceChangePercent"`
	QuoteVolume        string `json:"quoteVolume"`
}

// Quote assets and leveraged-token markers excluded from the universe.
var excludedMarkers = []string{"DOWN", "UP", "BUSD", "FDUSD", "TUSD", "USDC", "DAI"}

// FetchTopSymbols returns the most liquid USDT pairs by 24h quote
// volume, leveraged tokens and stable-stable pairs excluded.
func (f *BinanceFetcher) FetchTopSymbols(limit int) ([]string, error) {
	body, err := f.get("/api/v3/ticker/24hr", nil)
	if err != nil {
		return nil, err
	}

	var entries []tickerEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("binance decode ticker: %w", err)
	}

	type scored struct {
		symbol string
		volume float64
	}
	var filtered []scored
	for _, e := range entries {
		if !strings.HasSuffix(e.Symbol, "USDT") {
			continue
		}
		base := strings.TrimSuffix(e.Symbol, "USDT")
		excluded := false
		for _, marker := range excludedMarkers {
			if strings.Contains(base, marker) {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		vol, err := strconv.ParseFloat(e.QuoteVolume, 64)
		if err != nil {
			continue
		}
		filtered = append(filtered, scored{symbol: e.Symbol, volume: vol})
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].volume > filtered[j].volume
	})

	if limit > len(filtered) {
		limit = len(filtered)
	}
	symbols := make([]string, limit)
	for i := 0; i < limit; i++ {
		symbols[i] = filtered[i].symbol
	}
	return symbols, nil
}
