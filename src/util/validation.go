package util

var transactionTypes = map[string]bool{
	"income":  true,
	"expense": true,
}

var budgetPeriods = map[string]bool{
	"daily":   true,
	"weekly":  true,
	"monthly": true,
	"yearly":  true,
}

var goalStatuses = map[string]bool{
	"in_progress": true,
	"completed":   true,
	"cancelled":   true,
}

var assetTypes = map[string]bool{
	"stock": true,
	"etf":   true,
	"bond":  true,
	"fund":  true,
	"cash":  true,
}

func ValidTransactionType(t string) bool {
	return transactionTypes[t]
}

func ValidBudgetPeriod(p string) bool {
	return budgetPeriods[p]
}

func ValidGoalStatus(s string) bool {
	return goalStatuses[s]
}

func ValidAssetType(t string) bool {
	return assetTypes[t]
}

func ValidPriority(p int) bool {
	return p >= 1 && p <= 5
}
