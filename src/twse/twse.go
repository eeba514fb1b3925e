// Package twse is a thin client for the Taiwan Stock Exchange realtime
// quote endpoint (MIS). It is the system's external price-quote provider;
// storage and caching stay with the caller.
package twse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultBaseURL = "https://mis.twse.com.tw"

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Quote is one realtime quote. Success is false when the exchange had no
// data for the symbol; the other fields are zero in that case.
type Quote struct {
	Symbol  string          `json:"symbol"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Change  decimal.Decimal `json:"change"`
	Volume  int64           `json:"volume"`
	High    decimal.Decimal `json:"high"`
	Low     decimal.Decimal `json:"low"`
	Open    decimal.Decimal `json:"open"`
	Time    string          `json:"time"`
	Success bool            `json:"success"`
}

type misResponse struct {
	MsgArray []misQuote `json:"msgArray"`
	RTCode   string     `json:"rtcode"`
}

type misQuote struct {
	Code   string `json:"c"`
	Name   string `json:"n"`
	Latest string `json:"z"` // latest trade price, "-" before the first trade
	Prev   string `json:"y"` // previous close
	Volume string `json:"v"`
	High   string `json:"h"`
	Low    string `json:"l"`
	Open   string `json:"o"`
	Time   string `json:"t"`
}

// GetQuote fetches a realtime quote for one symbol.
func (c *Client) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	quotes, err := c.GetQuotes(ctx, []string{symbol})
	if err != nil {
		return Quote{}, err
	}
	return quotes[0], nil
}

// GetQuotes fetches realtime quotes for several symbols in one request.
// Each symbol is queried on both the listed (tse) and over-the-counter
// (otc) channels; whichever answers wins. The result keeps the input order,
// with Success false for symbols the exchange did not answer.
func (c *Client) GetQuotes(ctx context.Context, symbols []string) ([]Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	channels := make([]string, 0, len(symbols)*2)
	for _, s := range symbols {
		channels = append(channels, "tse_"+s+".tw", "otc_"+s+".tw")
	}

	endpoint := fmt.Sprintf("%s/stock/api/getStockInfo.jsp?ex_ch=%s&json=1&delay=0",
		c.baseURL, url.QueryEscape(strings.Join(channels, "|")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote request failed: status %d", resp.StatusCode)
	}

	var payload misResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode quote response: %w", err)
	}

	bySymbol := make(map[string]misQuote, len(payload.MsgArray))
	for _, q := range payload.MsgArray {
		if _, ok := bySymbol[q.Code]; !ok {
			bySymbol[q.Code] = q
		}
	}

	quotes := make([]Quote, 0, len(symbols))
	for _, s := range symbols {
		raw, ok := bySymbol[s]
		if !ok {
			quotes = append(quotes, Quote{Symbol: s})
			continue
		}
		quotes = append(quotes, raw.toQuote(s))
	}
	return quotes, nil
}

func (q misQuote) toQuote(symbol string) Quote {
	price := parseDec(q.Latest)
	prev := parseDec(q.Prev)
	change := decimal.Zero
	if !price.IsZero() && !prev.IsZero() {
		change = price.Sub(prev)
	}
	return Quote{
		Symbol:  symbol,
		Name:    q.Name,
		Price:   price,
		Change:  change,
		Volume:  parseInt(q.Volume),
		High:    parseDec(q.High),
		Low:     parseDec(q.Low),
		Open:    parseDec(q.Open),
		Time:    q.Time,
		Success: true,
	}
}

// parseDec handles the exchange's habit of sending "-" for fields that have
// no value yet.
func parseDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
