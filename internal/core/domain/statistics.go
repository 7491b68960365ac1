package domain

import "github.com/shopspring/decimal"

// FeeStatistics summarizes collection progress for one fee.
type FeeStatistics struct {
	FeeID          int64           `json:"fee_id"`
	FeeName        string          `json:"fee_name"`
	AssignedRooms  int             `json:"assigned_rooms"`
	PaidRooms      int             `json:"paid_rooms"`
	Collected      decimal.Decimal `json:"collected"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	CollectionRate decimal.Decimal `json:"collection_rate"`
}

// NewFeeStatistics computes totals from raw counts. The rate is a percentage
// rounded to two places and is zero when nothing is assigned.
func NewFeeStatistics(fee Fee, assigned, paid int, collected int64) FeeStatistics {
	amount := decimal.NewFromInt(fee.Amount)
	got := decimal.NewFromInt(collected)
	outstanding := amount.Mul(decimal.NewFromInt(int64(assigned - paid)))

	rate := decimal.Zero
	if assigned > 0 {
		rate = decimal.NewFromInt(int64(paid)).
			Div(decimal.NewFromInt(int64(assigned))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}

	return FeeStatistics{
		FeeID:          fee.ID,
		FeeName:        fee.Name,
		AssignedRooms:  assigned,
		PaidRooms:      paid,
		Collected:      got,
		Outstanding:    outstanding,
		CollectionRate: rate,
	}
}
