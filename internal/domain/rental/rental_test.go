package rental

import (
	"testing"
	"time"

	"github.com/alexrentacar/backoffice/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewWeekRental(t *testing.T) {
	period := valueobject.MustNewDateRange(day(2025, 1, 6), day(2025, 1, 12))
	r, err := NewWeekRental(uuid.New(), uuid.New(), uuid.New(), period, decimal.NewFromInt(350), 7, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, 2, r.WeekNumber)
	assert.Equal(t, 7, r.DaysWorked)
	assert.True(t, r.Income.Equal(decimal.NewFromInt(2450)))
	assert.True(t, r.DiscountAmount.IsZero())
}

func TestNewRental_InvalidRange(t *testing.T) {
	_, err := NewRental(RentalInput{
		VehicleID: uuid.New(),
		TenantID:  uuid.New(),
		StatusID:  uuid.New(),
		StartDate: day(2025, 1, 12),
		EndDate:   day(2025, 1, 6),
	}, uuid.Nil)
	assert.Error(t, err)
}

func TestNewPayment(t *testing.T) {
	p, err := NewPayment(PaymentInput{
		RentalID:        uuid.New(),
		PaymentMethodID: uuid.New(),
		Amount:          decimal.NewFromInt(350),
		Deductions:      decimal.NewFromInt(50),
		PaymentDate:     day(2025, 1, 9),
	}, uuid.Nil)

	require.NoError(t, err)
	assert.True(t, p.Net.Equal(decimal.NewFromInt(300)))

	_, err = NewPayment(PaymentInput{
		RentalID:        uuid.New(),
		PaymentMethodID: uuid.New(),
		Amount:          decimal.NewFromInt(10),
		Deductions:      decimal.NewFromInt(50),
		PaymentDate:     day(2025, 1, 9),
	}, uuid.Nil)
	assert.Error(t, err)
}

func TestDebt_ChangeStatus(t *testing.T) {
	d, err := NewDebt(DebtInput{
		VehicleID:    uuid.New(),
		TenantID:     uuid.New(),
		Amount:       decimal.NewFromInt(100),
		DaysLate:     3,
		DailyPenalty: decimal.NewFromInt(5),
		DueDate:      day(2025, 1, 9),
	}, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, DebtPending, d.Status)
	assert.True(t, d.Total().Equal(decimal.NewFromInt(115)))

	require.NoError(t, d.ChangeStatus(DebtPaid, uuid.Nil))
	assert.Equal(t, DebtPaid, d.Status)
	assert.Error(t, d.ChangeStatus(DebtForgiven, uuid.Nil))
	assert.Error(t, d.ChangeStatus(DebtStatus("other"), uuid.Nil))
}
