package settlement

import (
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DaysPerWeek is the divisor used to derive a daily rate from a weekly price
const DaysPerWeek = 7

var hundred = decimal.NewFromInt(100)

// Amounts is the money breakdown of a single line item
type Amounts struct {
	Income      decimal.Decimal
	CompanyCut  decimal.Decimal
	FinalPayout decimal.Decimal
}

// PaymentDeadline returns the first Thursday on or after start
func PaymentDeadline(start time.Time) time.Time {
	return PaymentDeadlineFor(start, time.Thursday)
}

// PaymentDeadlineFor returns the first given weekday on or after start
func PaymentDeadlineFor(start time.Time, cutoff time.Weekday) time.Time {
	s := valueobject.TruncateDay(start)
	offset := (int(cutoff) - int(s.Weekday()) + 7) % 7
	return s.AddDate(0, 0, offset)
}

// HasDebt reports whether today is already past the deadline
func HasDebt(now, deadline time.Time) bool {
	return valueobject.TruncateDay(now).After(valueobject.TruncateDay(deadline))
}

// CalculateOnCreate is the formula used when a line item is first derived,
// both at week creation and when a rental is added to a week:
// income = price * days, cut = income * pct / 100, payout = income.
func CalculateOnCreate(weeklyPrice decimal.Decimal, days int, percentage decimal.Decimal) Amounts {
	income := weeklyPrice.Mul(decimal.NewFromInt(int64(days))).Round(2)
	return Amounts{
		Income:      income,
		CompanyCut:  income.Mul(percentage).Div(hundred).Round(2),
		FinalPayout: income,
	}
}

// RecalculateOnEdit is the formula applied by the batch line item save:
// daily = price / 7, income = daily * days, and both the company cut and
// the payout equal the income. The percentage and the debt are not applied.
func RecalculateOnEdit(weeklyPrice decimal.Decimal, days int) Amounts {
	daily := weeklyPrice.Div(decimal.NewFromInt(DaysPerWeek))
	income := daily.Mul(decimal.NewFromInt(int64(days))).Round(2)
	return Amounts{
		Income:      income,
		CompanyCut:  income,
		FinalPayout: income,
	}
}

// RecalculateOnFullEdit is the formula applied when an item's vehicle or
// tenant is replaced: income = price * days, cut = income * pct / 100,
// payout = income + debt.
func RecalculateOnFullEdit(weeklyPrice decimal.Decimal, days int, percentage, debt decimal.Decimal) Amounts {
	income := weeklyPrice.Mul(decimal.NewFromInt(int64(days))).Round(2)
	return Amounts{
		Income:      income,
		CompanyCut:  income.Mul(percentage).Div(hundred).Round(2),
		FinalPayout: income.Add(debt).Round(2),
	}
}
