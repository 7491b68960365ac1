package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/apperrors"
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/SscSPs/apartment_fee_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecurrence_FindNext(t *testing.T) {
	fees := new(MockFeeRepository)
	svc := services.NewRecurrenceService(fees, fees, services.BaseService{})
	ctx := context.Background()

	fees.On("FindNextRecurrence", mock.Anything, int64(1)).Return(nil, apperrors.ErrNotFound).Once()
	next, err := svc.FindNext(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, next)

	link := &domain.FeeRecurrence{ID: 5, FeeID: 2, PreviousFeeID: 1}
	fees.On("FindNextRecurrence", mock.Anything, int64(1)).Return(link, nil).Once()
	next, err = svc.FindNext(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, link, next)

	fees.On("FindNextRecurrence", mock.Anything, int64(3)).Return(nil, errors.New("connection reset")).Once()
	_, err = svc.FindNext(ctx, 3)
	assert.Error(t, err)
}

func TestRecurrence_MintIntervals(t *testing.T) {
	tests := []struct {
		name string
		rt   domain.RecurrenceType
		due  time.Time
		want time.Time
	}{
		{name: "weekly", rt: domain.RecurrenceWeekly, due: date(2024, 1, 1), want: date(2024, 1, 8)},
		{name: "monthly", rt: domain.RecurrenceMonthly, due: date(2024, 1, 1), want: date(2024, 1, 31)},
		{name: "yearly", rt: domain.RecurrenceYearly, due: date(2024, 1, 1), want: date(2024, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fees := new(MockFeeRepository)
			created := date(2024, 1, 5)
			svc := services.NewRecurrenceService(fees, fees, services.BaseService{Now: func() time.Time { return created }})

			fee := domain.Fee{ID: 1, Name: "Parking", Amount: 300000, DueDate: tt.due, IsRecurring: true, RecurrenceType: ptr(tt.rt)}
			fees.On("FindNextRecurrence", mock.Anything, int64(1)).Return(nil, apperrors.ErrNotFound)
			fees.On("FindRecurrenceByFeeID", mock.Anything, int64(1)).
				Return(&domain.FeeRecurrence{FeeID: 1, PreviousFeeID: 1, DueDate: tt.due}, nil)
			fees.On("SaveFee", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Fee).ID = 2
			}).Return(nil)
			fees.On("SaveRecurrence", mock.Anything, mock.Anything).Return(nil)

			next, err := svc.FindOrCreateNextPeriod(context.Background(), fee)
			require.NoError(t, err)
			require.NotNil(t, next)
			assert.True(t, next.Minted)
			assert.Equal(t, int64(2), next.Fee.ID)
			assert.True(t, tt.want.Equal(next.DueDate), "due %s", next.DueDate)
			assert.True(t, created.Equal(next.Fee.CreatedAt))
			assert.Equal(t, tt.rt, *next.Fee.RecurrenceType)
			fees.AssertCalled(t, "SaveRecurrence", mock.Anything, mock.MatchedBy(func(l *domain.FeeRecurrence) bool {
				return l.FeeID == 2 && l.PreviousFeeID == 1 && l.DueDate.Equal(tt.want)
			}))
		})
	}
}

func TestRecurrence_NotInChain(t *testing.T) {
	fees := new(MockFeeRepository)
	svc := services.NewRecurrenceService(fees, fees, services.BaseService{})

	fee := domain.Fee{ID: 9, IsRecurring: true, RecurrenceType: ptr(domain.RecurrenceMonthly)}
	fees.On("FindNextRecurrence", mock.Anything, int64(9)).Return(nil, apperrors.ErrNotFound)
	fees.On("FindRecurrenceByFeeID", mock.Anything, int64(9)).Return(nil, apperrors.ErrNotFound)

	next, err := svc.FindOrCreateNextPeriod(context.Background(), fee)
	require.NoError(t, err)
	assert.Nil(t, next)
	fees.AssertNotCalled(t, "SaveFee", mock.Anything, mock.Anything)
}

func TestRecurrence_ChainedFeeWithoutType(t *testing.T) {
	fees := new(MockFeeRepository)
	svc := services.NewRecurrenceService(fees, fees, services.BaseService{})

	fee := domain.Fee{ID: 4, IsRecurring: true}
	fees.On("FindNextRecurrence", mock.Anything, int64(4)).Return(nil, apperrors.ErrNotFound)
	fees.On("FindRecurrenceByFeeID", mock.Anything, int64(4)).Return(&domain.FeeRecurrence{FeeID: 4, PreviousFeeID: 4}, nil)

	next, err := svc.FindOrCreateNextPeriod(context.Background(), fee)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestRecurrence_LinkConflictSurfaces(t *testing.T) {
	fees := new(MockFeeRepository)
	svc := services.NewRecurrenceService(fees, fees, services.BaseService{})

	fee := domain.Fee{ID: 1, DueDate: date(2024, 1, 1), IsRecurring: true, RecurrenceType: ptr(domain.RecurrenceWeekly)}
	fees.On("FindNextRecurrence", mock.Anything, int64(1)).Return(nil, apperrors.ErrNotFound)
	fees.On("FindRecurrenceByFeeID", mock.Anything, int64(1)).Return(&domain.FeeRecurrence{FeeID: 1, PreviousFeeID: 1}, nil)
	fees.On("SaveFee", mock.Anything, mock.Anything).Return(nil)
	fees.On("SaveRecurrence", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate)

	_, err := svc.FindOrCreateNextPeriod(context.Background(), fee)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestRecurrence_SuccessorAdvancesAfterHeadStopsRecurring(t *testing.T) {
	fees := new(MockFeeRepository)
	svc := services.NewRecurrenceService(fees, fees, services.BaseService{Now: func() time.Time { return date(2024, 2, 1) }})
	ctx := context.Background()

	// F1 was made one-off; F2 keeps the link that points back at F1
	f2 := domain.Fee{ID: 2, Name: "Cleaning", Amount: 100000, DueDate: date(2024, 1, 31), IsRecurring: true, RecurrenceType: ptr(domain.RecurrenceMonthly)}
	fees.On("FindNextRecurrence", mock.Anything, int64(2)).Return(nil, apperrors.ErrNotFound).Once()
	fees.On("FindRecurrenceByFeeID", mock.Anything, int64(2)).
		Return(&domain.FeeRecurrence{ID: 2, FeeID: 2, PreviousFeeID: 1, DueDate: date(2024, 1, 31)}, nil).Once()
	fees.On("SaveFee", mock.Anything, mock.MatchedBy(func(f *domain.Fee) bool {
		return f.DueDate.Equal(date(2024, 3, 1))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Fee).ID = 3
	}).Return(nil).Once()
	fees.On("SaveRecurrence", mock.Anything, mock.MatchedBy(func(l *domain.FeeRecurrence) bool {
		return l.FeeID == 3 && l.PreviousFeeID == 2
	})).Return(nil).Once()

	next, err := svc.FindOrCreateNextPeriod(ctx, f2)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.True(t, next.Minted)
	assert.Equal(t, int64(3), next.Fee.ID)
	fees.AssertExpectations(t)
}
