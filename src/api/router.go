package api

import (
	"bookkeeping-server/src/finance"
	"bookkeeping-server/src/handlers"
	"bookkeeping-server/src/middleware"
	"bookkeeping-server/src/twse"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRouter(pool *pgxpool.Pool, quotes *twse.Client, rules *finance.RuleTable, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(allowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		// Accounts
		r.Post("/accounts", handlers.CreateAccount(pool))
		r.Get("/accounts", handlers.GetAllAccounts(pool))
		r.Get("/accounts/{account_id}", handlers.GetAccountByID(pool))
		r.Put("/accounts/{account_id}", handlers.UpdateAccount(pool))
		r.Delete("/accounts/{account_id}", handlers.DeleteAccount(pool))

		// Categories
		r.Post("/categories", handlers.CreateCategory(pool))
		r.Get("/categories", handlers.GetAllCategories(pool))
		r.Get("/categories/{category_id}", handlers.GetCategoryByID(pool))
		r.Put("/categories/{category_id}", handlers.UpdateCategory(pool))
		r.Delete("/categories/{category_id}", handlers.DeleteCategory(pool))

		// Transactions
		r.Post("/transactions", handlers.CreateTransaction(pool, rules))
		r.Get("/transactions", handlers.ListTransactions(pool))
		r.Get("/transactions/summary", handlers.GetTransactionSummary(pool))
		r.Get("/transactions/{transaction_id}", handlers.GetTransactionByID(pool))
		r.Put("/transactions/{transaction_id}", handlers.UpdateTransaction(pool))
		r.Delete("/transactions/{transaction_id}", handlers.DeleteTransaction(pool))

		// Budgets
		r.Post("/budgets", handlers.CreateBudget(pool))
		r.Get("/budgets", handlers.GetAllBudgets(pool))
		r.Get("/budgets/{budget_id}", handlers.GetBudgetByID(pool))
		r.Put("/budgets/{budget_id}", handlers.UpdateBudget(pool))
		r.Delete("/budgets/{budget_id}", handlers.DeleteBudget(pool))

		// Financial goals
		r.Post("/goals", handlers.CreateGoal(pool))
		r.Get("/goals", handlers.GetAllGoals(pool))
		r.Get("/goals/{goal_id}", handlers.GetGoalByID(pool))
		r.Put("/goals/{goal_id}", handlers.UpdateGoal(pool))
		r.Post("/goals/{goal_id}/add-money", handlers.AddGoalMoney(pool))
		r.Delete("/goals/{goal_id}", handlers.DeleteGoal(pool))

		// Advice
		r.Get("/advice", handlers.GetSuggestions(pool))
		r.Post("/risk-assessment", handlers.AssessRisk(pool))

		// Portfolio
		r.Post("/investment-accounts", handlers.CreateInvestmentAccount(pool))
		r.Get("/investment-accounts", handlers.GetAllInvestmentAccounts(pool))
		r.Get("/holdings", handlers.GetHoldings(pool))
		r.Post("/holdings/buy", handlers.BuyHolding(pool))
		r.Post("/holdings/{holding_id}/sell", handlers.SellHolding(pool))
		r.Get("/portfolio/summary", handlers.GetPortfolioSummary(pool, quotes))
		r.Get("/portfolio/monthly-stats", handlers.GetMonthlyInvestmentStats(pool))

		// Watchlist
		r.Get("/watchlist", handlers.GetWatchlist(pool, quotes))
		r.Post("/watchlist", handlers.AddToWatchlist(pool))
		r.Delete("/watchlist/{watchlist_id}", handlers.RemoveFromWatchlist(pool))

		// Stocks
		r.Get("/stocks/search", handlers.SearchStocks(pool))
		r.Get("/stocks/quote/{symbol}", handlers.GetStockQuote(quotes))
		r.Post("/cache/clear", handlers.ClearQuoteCache())
	})

	return r
}
