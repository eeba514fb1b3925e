package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransactionType(t *testing.T) {
	assert.True(t, ValidTransactionType("income"))
	assert.True(t, ValidTransactionType("expense"))
	assert.False(t, ValidTransactionType("transfer"))
	assert.False(t, ValidTransactionType(""))
}

func TestValidBudgetPeriod(t *testing.T) {
	for _, p := range []string{"daily", "weekly", "monthly", "yearly"} {
		assert.True(t, ValidBudgetPeriod(p), p)
	}
	assert.False(t, ValidBudgetPeriod("quarterly"))
}

func TestValidGoalStatus(t *testing.T) {
	assert.True(t, ValidGoalStatus("in_progress"))
	assert.False(t, ValidGoalStatus("done"))
}

func TestValidPriority(t *testing.T) {
	assert.False(t, ValidPriority(0))
	assert.True(t, ValidPriority(1))
	assert.True(t, ValidPriority(5))
	assert.False(t, ValidPriority(6))
}
