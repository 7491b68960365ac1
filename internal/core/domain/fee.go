package domain

import (
	"fmt"
	"time"
)

// RecurrenceType is the billing period of a recurring fee.
type RecurrenceType string

const (
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

// ParseRecurrenceType converts user input into a RecurrenceType.
func ParseRecurrenceType(s string) (RecurrenceType, error) {
	switch rt := RecurrenceType(s); rt {
	case RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return rt, nil
	}
	return "", fmt.Errorf("unknown recurrence type %q", s)
}

// Interval returns the fixed period length. Months are 30 days and years 365
// days; calendar arithmetic is deliberately not used.
func (rt RecurrenceType) Interval() time.Duration {
	const day = 24 * time.Hour
	switch rt {
	case RecurrenceWeekly:
		return 7 * day
	case RecurrenceMonthly:
		return 30 * day
	case RecurrenceYearly:
		return 365 * day
	}
	return 0
}

// NextDueDate returns the due date of the period following due.
func (rt RecurrenceType) NextDueDate(due time.Time) time.Time {
	return due.Add(rt.Interval())
}

// Fee is a charge defined by a manager. Amounts are whole currency units.
type Fee struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Amount         int64           `json:"amount"`
	IsRequired     bool            `json:"is_required"`
	CreatedAt      time.Time       `json:"created_at"`
	DueDate        time.Time       `json:"due_date"`
	IsRecurring    bool            `json:"is_recurring"`
	RecurrenceType *RecurrenceType `json:"recurrence_type,omitempty"`
}

// Recurs reports whether the fee has a usable recurrence period.
func (f Fee) Recurs() bool {
	return f.IsRecurring && f.RecurrenceType != nil && f.RecurrenceType.Interval() > 0
}

// NextPeriod clones the fee into the instance for the following period.
// The returned fee has no ID yet.
func (f Fee) NextPeriod(createdAt time.Time) (Fee, error) {
	if f.RecurrenceType == nil || f.RecurrenceType.Interval() == 0 {
		return Fee{}, fmt.Errorf("fee %d has no recurrence type", f.ID)
	}
	rt := *f.RecurrenceType
	return Fee{
		Name:           f.Name,
		Amount:         f.Amount,
		IsRequired:     f.IsRequired,
		CreatedAt:      createdAt,
		DueDate:        rt.NextDueDate(f.DueDate),
		IsRecurring:    true,
		RecurrenceType: &rt,
	}, nil
}

// FeeDetail is a fee together with every room it is assigned to.
type FeeDetail struct {
	Fee
	Assignments []FeeAssignment `json:"assignments"`
}
