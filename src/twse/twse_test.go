package twse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const misPayload = `{
	"msgArray": [
		{"c": "2330", "n": "台積電", "z": "600.00", "y": "595.00", "v": "25123", "h": "602.00", "l": "594.00", "o": "596.00", "t": "13:30:00"},
		{"c": "0050", "n": "元大台灣50", "z": "-", "y": "130.00", "v": "0", "h": "-", "l": "-", "o": "-", "t": "09:00:00"}
	],
	"rtcode": "0000"
}`

func TestGetQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stock/api/getStockInfo.jsp", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("ex_ch"), "tse_2330.tw")
		assert.Contains(t, r.URL.Query().Get("ex_ch"), "otc_2330.tw")
		w.Write([]byte(misPayload))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	quotes, err := client.GetQuotes(context.Background(), []string{"2330", "0050", "9999"})
	require.NoError(t, err)
	require.Len(t, quotes, 3)

	tsmc := quotes[0]
	assert.True(t, tsmc.Success)
	assert.Equal(t, "台積電", tsmc.Name)
	assert.True(t, tsmc.Price.Equal(decimal.RequireFromString("600")))
	assert.True(t, tsmc.Change.Equal(decimal.RequireFromString("5")))
	assert.Equal(t, int64(25123), tsmc.Volume)

	// No trade yet: "-" fields parse to zero, change stays zero.
	etf := quotes[1]
	assert.True(t, etf.Success)
	assert.True(t, etf.Price.IsZero())
	assert.True(t, etf.Change.IsZero())

	// Unanswered symbol comes back unsuccessful, order preserved.
	assert.Equal(t, "9999", quotes[2].Symbol)
	assert.False(t, quotes[2].Success)
}

func TestGetQuotesEmptyInput(t *testing.T) {
	client := NewClient("http://localhost:0")
	quotes, err := client.GetQuotes(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, quotes)
}

func TestGetQuotesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetQuotes(context.Background(), []string{"2330"})
	assert.Error(t, err)
}
