package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFillMonths(t *testing.T) {
	got := FillMonths([]MonthlyIncome{
		{Month: 3, Income: decimal.NewFromInt(100)},
		{Month: 12, Income: decimal.NewFromInt(50)},
		{Month: 13, Income: decimal.NewFromInt(999)},
	})

	assert.Len(t, got, 12)
	assert.Equal(t, 1, got[0].Month)
	assert.True(t, got[0].Income.IsZero())
	assert.True(t, got[2].Income.Equal(decimal.NewFromInt(100)))
	assert.True(t, got[11].Income.Equal(decimal.NewFromInt(50)))
}
