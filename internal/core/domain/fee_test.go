package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recurrencePtr(rt domain.RecurrenceType) *domain.RecurrenceType {
	return &rt
}

func TestRecurrenceType_NextDueDate(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		rt   domain.RecurrenceType
		want time.Time
	}{
		{name: "weekly adds seven days", rt: domain.RecurrenceWeekly, want: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)},
		{name: "monthly adds thirty days", rt: domain.RecurrenceMonthly, want: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
		{name: "yearly adds 365 days in a leap year", rt: domain.RecurrenceYearly, want: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rt.NextDueDate(base))
		})
	}
}

func TestParseRecurrenceType(t *testing.T) {
	rt, err := domain.ParseRecurrenceType("monthly")
	require.NoError(t, err)
	assert.Equal(t, domain.RecurrenceMonthly, rt)

	_, err = domain.ParseRecurrenceType("daily")
	assert.Error(t, err)
}

func TestFee_NextPeriod(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	fee := domain.Fee{
		ID:             1,
		Name:           "Service",
		Amount:         100000,
		IsRequired:     true,
		DueDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsRecurring:    true,
		RecurrenceType: recurrencePtr(domain.RecurrenceMonthly),
	}

	next, err := fee.NextPeriod(now)
	require.NoError(t, err)
	assert.Zero(t, next.ID)
	assert.Equal(t, "Service", next.Name)
	assert.Equal(t, int64(100000), next.Amount)
	assert.True(t, next.IsRequired)
	assert.True(t, next.IsRecurring)
	assert.Equal(t, domain.RecurrenceMonthly, *next.RecurrenceType)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), next.DueDate)
	assert.Equal(t, now, next.CreatedAt)

	// the clone must not share the recurrence pointer with the source
	*next.RecurrenceType = domain.RecurrenceWeekly
	assert.Equal(t, domain.RecurrenceMonthly, *fee.RecurrenceType)
}

func TestFee_NextPeriod_NotRecurring(t *testing.T) {
	_, err := domain.Fee{ID: 3, Name: "Repair"}.NextPeriod(time.Now())
	assert.Error(t, err)
}

func TestFeeRecurrence_IsSeed(t *testing.T) {
	assert.True(t, domain.FeeRecurrence{FeeID: 5, PreviousFeeID: 5}.IsSeed())
	assert.False(t, domain.FeeRecurrence{FeeID: 6, PreviousFeeID: 5}.IsSeed())
}

func TestNewFeeStatistics(t *testing.T) {
	fee := domain.Fee{ID: 9, Name: "Parking", Amount: 50000}

	stats := domain.NewFeeStatistics(fee, 3, 1, 50000)
	assert.Equal(t, 3, stats.AssignedRooms)
	assert.Equal(t, 1, stats.PaidRooms)
	assert.Equal(t, "50000", stats.Collected.String())
	assert.Equal(t, "100000", stats.Outstanding.String())
	assert.Equal(t, "33.33", stats.CollectionRate.String())

	empty := domain.NewFeeStatistics(fee, 0, 0, 0)
	assert.True(t, empty.CollectionRate.IsZero())
	assert.True(t, empty.Outstanding.IsZero())
}
