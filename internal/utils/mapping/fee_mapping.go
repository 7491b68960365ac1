package mapping

import (
	"database/sql"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/SscSPs/apartment_fee_app/internal/models"
)

// ToModelFee converts a domain Fee to a model Fee
func ToModelFee(d domain.Fee) models.Fee {
	m := models.Fee{
		ID:          d.ID,
		Name:        d.Name,
		Amount:      d.Amount,
		IsRequired:  d.IsRequired,
		CreatedAt:   d.CreatedAt,
		DueDate:     d.DueDate,
		IsRecurring: d.IsRecurring,
	}
	if d.RecurrenceType != nil {
		m.RecurrenceType = sql.NullString{String: string(*d.RecurrenceType), Valid: true}
	}
	return m
}

// ToDomainFee converts a model Fee to a domain Fee
func ToDomainFee(m models.Fee) domain.Fee {
	d := domain.Fee{
		ID:          m.ID,
		Name:        m.Name,
		Amount:      m.Amount,
		IsRequired:  m.IsRequired,
		CreatedAt:   m.CreatedAt,
		DueDate:     m.DueDate,
		IsRecurring: m.IsRecurring,
	}
	if m.RecurrenceType.Valid {
		rt := domain.RecurrenceType(m.RecurrenceType.String)
		d.RecurrenceType = &rt
	}
	return d
}

// ToDomainFeeRecurrence converts a model FeeRecurrence to a domain FeeRecurrence
func ToDomainFeeRecurrence(m models.FeeRecurrence) domain.FeeRecurrence {
	return domain.FeeRecurrence{
		ID:            m.RecurrenceID,
		FeeID:         m.FeeID,
		PreviousFeeID: m.PreviousFeeID,
		DueDate:       m.DueDate,
	}
}

// ToModelAssignment converts a domain FeeAssignment to a model row
func ToModelAssignment(d domain.FeeAssignment) models.FeeRoomAssignment {
	m := models.FeeRoomAssignment{
		AssignmentID: d.ID,
		RoomNumber:   sql.NullInt32{Int32: int32(d.RoomNumber), Valid: d.RoomNumber != 0},
		FeeID:        d.FeeID,
		DueDate:      d.DueDate,
		IsPaid:       d.IsPaid,
	}
	if d.PaymentDate != nil {
		m.PaymentDate = sql.NullTime{Time: *d.PaymentDate, Valid: true}
	}
	return m
}

// ToDomainAssignment converts a model row to a domain FeeAssignment
func ToDomainAssignment(m models.FeeRoomAssignment) domain.FeeAssignment {
	d := domain.FeeAssignment{
		ID:         m.AssignmentID,
		RoomNumber: int(m.RoomNumber.Int32),
		FeeID:      m.FeeID,
		DueDate:    m.DueDate,
		IsPaid:     m.IsPaid,
	}
	if m.PaymentDate.Valid {
		paid := m.PaymentDate.Time
		d.PaymentDate = &paid
	}
	return d
}

// ToDomainTransaction converts a model Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:           m.ID,
		Amount:       m.Amount,
		CreatedAt:    m.CreatedAt,
		AssignmentID: m.AssignmentID,
	}
}

// ToModelTransactionLog converts a gateway notification for storage
func ToModelTransactionLog(d domain.TransactionLog) models.TransactionLog {
	return models.TransactionLog{
		ID:              d.ID,
		Gateway:         d.Gateway,
		TransactionDate: d.TransactionDate,
		AccountNumber:   d.AccountNumber,
		SubAccount:      ptrNullString(d.SubAccount),
		TransferAmount:  d.TransferAmount,
		Accumulated:     d.Accumulated,
		Code:            ptrNullString(d.Code),
		Content:         d.Content,
		ReferenceCode:   d.ReferenceCode,
		Description:     d.Description,
	}
}
