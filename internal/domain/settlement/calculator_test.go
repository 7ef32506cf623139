package settlement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPaymentDeadline(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		want  time.Time
	}{
		{"monday start falls three days later", date(2025, 1, 6), date(2025, 1, 9)},
		{"thursday start is its own deadline", date(2025, 1, 9), date(2025, 1, 9)},
		{"friday start rolls to next thursday", date(2025, 1, 10), date(2025, 1, 16)},
		{"sunday start", date(2025, 1, 12), date(2025, 1, 16)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PaymentDeadline(tt.start))
		})
	}
}

func TestHasDebt(t *testing.T) {
	deadline := date(2025, 1, 9)
	assert.False(t, HasDebt(date(2025, 1, 8), deadline))
	assert.False(t, HasDebt(time.Date(2025, 1, 9, 23, 59, 0, 0, time.UTC), deadline))
	assert.True(t, HasDebt(date(2025, 1, 10), deadline))
}

func TestCalculateOnCreate(t *testing.T) {
	a := CalculateOnCreate(decimal.NewFromInt(350), 7, decimal.NewFromInt(15))

	assert.True(t, a.Income.Equal(decimal.NewFromInt(2450)), "income %s", a.Income)
	assert.True(t, a.CompanyCut.Equal(decimal.RequireFromString("367.50")), "cut %s", a.CompanyCut)
	assert.True(t, a.FinalPayout.Equal(a.Income))
}

func TestRecalculateOnEdit(t *testing.T) {
	t.Run("prorates by daily rate and ignores percentage", func(t *testing.T) {
		a := RecalculateOnEdit(decimal.NewFromInt(350), 3)

		assert.True(t, a.Income.Equal(decimal.NewFromInt(150)))
		assert.True(t, a.CompanyCut.Equal(a.Income))
		assert.True(t, a.FinalPayout.Equal(a.Income))
	})

	t.Run("rounds to cents", func(t *testing.T) {
		a := RecalculateOnEdit(decimal.NewFromInt(100), 1)
		assert.Equal(t, "14.29", a.Income.StringFixed(2))
	})
}

func TestRecalculateOnFullEdit(t *testing.T) {
	a := RecalculateOnFullEdit(decimal.NewFromInt(350), 7, decimal.NewFromInt(15), decimal.NewFromInt(100))

	assert.True(t, a.Income.Equal(decimal.NewFromInt(2450)))
	assert.True(t, a.CompanyCut.Equal(decimal.RequireFromString("367.5")))
	assert.True(t, a.FinalPayout.Equal(decimal.NewFromInt(2550)))
}

func TestWeekStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, WeekStatusOpen.CanTransitionTo(WeekStatusClosed))
	assert.False(t, WeekStatusClosed.CanTransitionTo(WeekStatusOpen))
	assert.False(t, WeekStatusOpen.CanTransitionTo(WeekStatusCancelled))
	assert.False(t, WeekStatusCancelled.CanTransitionTo(WeekStatusClosed))
	assert.True(t, WeekStatusCancelled.IsValid())
	assert.False(t, WeekStatus("reabierta").IsValid())
}
