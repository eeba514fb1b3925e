package handlers

import (
	db "bookkeeping-server/src/db/sql"
	"bookkeeping-server/src/finance"
	"bookkeeping-server/src/models"
	"bookkeeping-server/src/twse"
	"bookkeeping-server/src/util"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func CreateInvestmentAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name        string  `json:"name"`
			AccountType string  `json:"account_type"`
			Broker      *string `json:"broker"`
			Currency    string  `json:"currency"`
			Description *string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create investment account request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}
		if req.AccountType == "" {
			req.AccountType = "general"
		}
		if req.Currency == "" {
			req.Currency = "TWD"
		}
		account := &models.InvestmentAccount{
			Name:        req.Name,
			AccountType: req.AccountType,
			Broker:      req.Broker,
			Currency:    req.Currency,
			Description: req.Description,
		}
		created, err := db.CreateInvestmentAccount(r.Context(), pool, account)
		if err != nil {
			log.Printf("ERROR: Failed to create investment account: %v", err)
			http.Error(w, "failed to create investment account", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Created investment account id %d (%s)", created.ID, created.Name)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func GetAllInvestmentAccounts(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := db.GetAllInvestmentAccounts(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get investment accounts: %v", err)
			http.Error(w, "failed to get investment accounts", http.StatusInternalServerError)
			return
		}
		if accounts == nil {
			accounts = []models.InvestmentAccount{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(accounts)
	}
}

func GetHoldings(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID := 0
		if s := r.URL.Query().Get("account_id"); s != "" {
			id, err := strconv.Atoi(s)
			if err != nil {
				http.Error(w, "invalid account_id filter", http.StatusBadRequest)
				return
			}
			accountID = id
		}
		holdings, err := db.GetHoldings(r.Context(), pool, accountID)
		if err != nil {
			log.Printf("ERROR: Failed to get holdings: %v", err)
			http.Error(w, "failed to get holdings", http.StatusInternalServerError)
			return
		}
		if holdings == nil {
			holdings = []models.Holding{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(holdings)
	}
}

func BuyHolding(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AccountID int              `json:"account_id"`
			Symbol    string           `json:"symbol"`
			Name      string           `json:"name"`
			Quantity  decimal.Decimal  `json:"quantity"`
			Price     decimal.Decimal  `json:"price"`
			Fee       *decimal.Decimal `json:"fee"`
			Tax       *decimal.Decimal `json:"tax"`
			AssetType string           `json:"asset_type"`
			Market    string           `json:"market"`
			Date      string           `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode buy request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if req.AccountID == 0 || req.Symbol == "" || !req.Quantity.IsPositive() || !req.Price.IsPositive() {
			http.Error(w, "account_id, symbol, positive quantity and price are required", http.StatusBadRequest)
			return
		}
		if req.AssetType == "" {
			req.AssetType = "stock"
		}
		if !util.ValidAssetType(req.AssetType) {
			http.Error(w, "invalid asset_type", http.StatusBadRequest)
			return
		}
		if req.Market == "" {
			req.Market = "TW"
		}
		fee := decimal.Zero
		if req.Fee != nil {
			fee = *req.Fee
		}
		tax := decimal.Zero
		if req.Tax != nil {
			tax = *req.Tax
		}
		date := models.NewDate(time.Now().UTC())
		if req.Date != "" {
			parsed, err := models.ParseDate(req.Date)
			if err != nil {
				http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = parsed
		}

		holding := &models.Holding{
			AccountID: req.AccountID,
			Symbol:    req.Symbol,
			Name:      req.Name,
			Quantity:  req.Quantity,
			AssetType: req.AssetType,
			Market:    req.Market,
		}
		holdingID, err := db.BuyHolding(r.Context(), pool, holding, req.Price, fee, tax, date)
		if err != nil {
			log.Printf("ERROR: Failed to record buy for %s: %v", req.Symbol, err)
			http.Error(w, "failed to record buy", http.StatusInternalServerError)
			return
		}
		log.Printf("INFO: Recorded buy of %s %s @ %s (holding id %d)", req.Quantity, req.Symbol, req.Price, holdingID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"holding_id": holdingID})
	}
}

func SellHolding(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		holdingIDStr := chi.URLParam(r, "holding_id")
		holdingID, err := strconv.Atoi(holdingIDStr)
		if err != nil {
			log.Printf("ERROR: Invalid holding id param: %s", holdingIDStr)
			http.Error(w, "invalid holding id", http.StatusBadRequest)
			return
		}
		var req struct {
			Quantity decimal.Decimal  `json:"quantity"`
			Price    decimal.Decimal  `json:"price"`
			Fee      *decimal.Decimal `json:"fee"`
			Tax      *decimal.Decimal `json:"tax"`
			Date     string           `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode sell request body: %v", err)
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if !req.Quantity.IsPositive() || !req.Price.IsPositive() {
			http.Error(w, "positive quantity and price are required", http.StatusBadRequest)
			return
		}
		fee := decimal.Zero
		if req.Fee != nil {
			fee = *req.Fee
		}
		tax := decimal.Zero
		if req.Tax != nil {
			tax = *req.Tax
		}
		date := models.NewDate(time.Now().UTC())
		if req.Date != "" {
			parsed, err := models.ParseDate(req.Date)
			if err != nil {
				http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			date = parsed
		}

		remaining, err := db.SellHolding(r.Context(), pool, holdingID, req.Quantity, req.Price, fee, tax, date)
		if err != nil {
			log.Printf("ERROR: Failed to record sell for holding id %d: %v", holdingID, err)
			http.Error(w, "failed to record sell", http.StatusBadRequest)
			return
		}
		log.Printf("INFO: Recorded sell of %s from holding id %d, %s remaining", req.Quantity, holdingID, remaining)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"holding_id": holdingID, "remaining_quantity": remaining})
	}
}

type holdingValuation struct {
	models.Holding
	CurrentPrice     decimal.Decimal  `json:"current_price"`
	MarketValue      decimal.Decimal  `json:"market_value"`
	Cost             decimal.Decimal  `json:"cost"`
	Profit           decimal.Decimal  `json:"profit"`
	ROI              decimal.Decimal  `json:"roi"`
	AnnualizedReturn *decimal.Decimal `json:"annualized_return"`
	PriceStale       bool             `json:"price_stale"`
}

// GetPortfolioSummary values every open position at the latest exchange
// quote and aggregates totals and an allocation breakdown by asset type.
// Cash positions are valued at their book price. When the exchange has no
// quote for a symbol the average cost is used and the valuation is flagged
// stale.
func GetPortfolioSummary(pool *pgxpool.Pool, quotes *twse.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		holdings, err := db.GetActiveHoldings(r.Context(), pool)
		if err != nil {
			log.Printf("ERROR: Failed to get holdings for summary: %v", err)
			http.Error(w, "failed to get portfolio summary", http.StatusInternalServerError)
			return
		}

		var symbols []string
		for _, h := range holdings {
			if h.AssetType != "cash" {
				symbols = append(symbols, h.Symbol)
			}
		}
		prices := fetchQuotes(r.Context(), quotes, symbols)

		one := decimal.NewFromInt(1)
		totalValue := decimal.Zero
		totalCost := decimal.Zero
		allocation := make(map[string]decimal.Decimal)
		valuations := make([]holdingValuation, 0, len(holdings))

		for _, h := range holdings {
			price := h.AverageCost
			stale := true
			if h.AssetType == "cash" {
				price = one
				stale = false
			} else if q, ok := prices[h.Symbol]; ok && q.Success && !q.Price.IsZero() {
				price = q.Price
				stale = false
			}

			marketValue := h.Quantity.Mul(price).Round(2)
			cost := h.Quantity.Mul(h.AverageCost).Round(2)

			var annualized *decimal.Decimal
			if holdingDays := int(time.Since(h.CreatedAt).Hours() / 24); holdingDays > 0 {
				if a, err := finance.AnnualizedReturn(marketValue, cost, holdingDays); err == nil {
					annualized = &a
				}
			}

			valuations = append(valuations, holdingValuation{
				Holding:          h,
				CurrentPrice:     price,
				MarketValue:      marketValue,
				Cost:             cost,
				Profit:           marketValue.Sub(cost),
				ROI:              finance.ROI(marketValue, cost),
				AnnualizedReturn: annualized,
				PriceStale:       stale,
			})
			totalValue = totalValue.Add(marketValue)
			totalCost = totalCost.Add(cost)
			allocation[h.AssetType] = allocation[h.AssetType].Add(marketValue)
		}

		allocationPct := make(map[string]decimal.Decimal, len(allocation))
		for assetType, value := range allocation {
			allocationPct[assetType] = finance.UsagePercent(value, totalValue)
		}

		resp := struct {
			TotalValue    decimal.Decimal            `json:"total_value"`
			TotalCost     decimal.Decimal            `json:"total_cost"`
			TotalProfit   decimal.Decimal            `json:"total_profit"`
			ROI           decimal.Decimal            `json:"roi"`
			Allocation    map[string]decimal.Decimal `json:"allocation"`
			AllocationPct map[string]decimal.Decimal `json:"allocation_pct"`
			Holdings      []holdingValuation         `json:"holdings"`
		}{
			TotalValue:    totalValue,
			TotalCost:     totalCost,
			TotalProfit:   totalValue.Sub(totalCost),
			ROI:           finance.ROI(totalValue, totalCost),
			Allocation:    allocation,
			AllocationPct: allocationPct,
			Holdings:      valuations,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// GetMonthlyInvestmentStats reports this month's buy cost, sell proceeds,
// dividends, transaction count and the most recent activity.
func GetMonthlyInvestmentStats(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		monthStart := models.NewDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))

		bought, err := db.SumInvestmentFlowSince(r.Context(), pool, "buy", monthStart)
		if err != nil {
			log.Printf("ERROR: Failed to sum monthly buys: %v", err)
			http.Error(w, "failed to get monthly stats", http.StatusInternalServerError)
			return
		}
		sold, err := db.SumInvestmentFlowSince(r.Context(), pool, "sell", monthStart)
		if err != nil {
			log.Printf("ERROR: Failed to sum monthly sells: %v", err)
			http.Error(w, "failed to get monthly stats", http.StatusInternalServerError)
			return
		}
		dividends, err := db.SumInvestmentFlowSince(r.Context(), pool, "dividend", monthStart)
		if err != nil {
			log.Printf("ERROR: Failed to sum monthly dividends: %v", err)
			http.Error(w, "failed to get monthly stats", http.StatusInternalServerError)
			return
		}
		count, err := db.CountInvestmentTransactionsSince(r.Context(), pool, monthStart)
		if err != nil {
			log.Printf("ERROR: Failed to count monthly investment transactions: %v", err)
			http.Error(w, "failed to get monthly stats", http.StatusInternalServerError)
			return
		}
		recent, err := db.RecentInvestmentTransactions(r.Context(), pool, 10)
		if err != nil {
			log.Printf("ERROR: Failed to load recent investment transactions: %v", err)
			http.Error(w, "failed to get monthly stats", http.StatusInternalServerError)
			return
		}
		if recent == nil {
			recent = []models.InvestmentTransaction{}
		}

		resp := struct {
			Month            string                         `json:"month"`
			TotalBought      decimal.Decimal                `json:"total_bought"`
			TotalSold        decimal.Decimal                `json:"total_sold"`
			TotalDividends   decimal.Decimal                `json:"total_dividends"`
			NetInvested      decimal.Decimal                `json:"net_invested"`
			TransactionCount int                            `json:"transaction_count"`
			Recent           []models.InvestmentTransaction `json:"recent_transactions"`
		}{
			Month:            now.Format("2006-01"),
			TotalBought:      bought,
			TotalSold:        sold,
			TotalDividends:   dividends,
			NetInvested:      bought.Sub(sold).Sub(dividends),
			TransactionCount: count,
			Recent:           recent,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
