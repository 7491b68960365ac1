package mapping

import (
	"database/sql"
	"testing"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/SscSPs/apartment_fee_app/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestToDomainFee_NullRecurrence(t *testing.T) {
	d := ToDomainFee(models.Fee{ID: 1, Name: "Repair", Amount: 300})
	assert.Nil(t, d.RecurrenceType)
	assert.False(t, d.Recurs())
}

func TestToModelFee_Recurrence(t *testing.T) {
	rt := domain.RecurrenceYearly
	m := ToModelFee(domain.Fee{ID: 2, IsRecurring: true, RecurrenceType: &rt})
	assert.Equal(t, sql.NullString{String: "yearly", Valid: true}, m.RecurrenceType)
}

func TestToDomainAssignment_PaymentDate(t *testing.T) {
	paid := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	unpaid := ToDomainAssignment(models.FeeRoomAssignment{AssignmentID: 1})
	assert.Nil(t, unpaid.PaymentDate)

	settled := ToDomainAssignment(models.FeeRoomAssignment{
		AssignmentID: 2,
		IsPaid:       true,
		PaymentDate:  sql.NullTime{Time: paid, Valid: true},
	})
	if assert.NotNil(t, settled.PaymentDate) {
		assert.Equal(t, paid, *settled.PaymentDate)
	}
}

func TestToDomainRoom_VacantAndOccupied(t *testing.T) {
	vacant := ToDomainRoom(models.Room{RoomNumber: 101})
	assert.Nil(t, vacant.TenantID)

	occupied := ToDomainRoom(models.Room{RoomNumber: 102, Tenant: sql.NullInt64{Int64: 7, Valid: true}})
	if assert.NotNil(t, occupied.TenantID) {
		assert.Equal(t, int64(7), *occupied.TenantID)
	}
	assert.True(t, ToModelRoom(occupied).Tenant.Valid)
}
