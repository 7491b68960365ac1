package mapping

import (
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/SscSPs/apartment_fee_app/internal/models"
)

// ToModelNotification converts a domain Notification to a model Notification
func ToModelNotification(d domain.Notification) models.Notification {
	return models.Notification{
		ID:        d.ID,
		Title:     d.Title,
		Message:   d.Message,
		CreatedAt: d.CreatedAt,
		FromUser:  d.FromUser,
		ToUser:    d.ToUser,
	}
}

// ToDomainNotification converts a model Notification to a domain Notification
func ToDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		ID:        m.ID,
		Title:     m.Title,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
		FromUser:  m.FromUser,
		ToUser:    m.ToUser,
	}
}

// ToDomainFamilyMember converts a model FamilyMember
func ToDomainFamilyMember(m models.FamilyMember) domain.FamilyMember {
	return domain.FamilyMember{
		ID:        m.ID,
		Name:      m.Name,
		Birthday:  m.Birthday,
		AccountID: m.AccountID,
	}
}

// ToDomainPasswordRecovery converts a model PasswordRecoveryRequest
func ToDomainPasswordRecovery(m models.PasswordRecoveryRequest) domain.PasswordRecovery {
	return domain.PasswordRecovery{
		ID:           m.ID,
		UserID:       m.UserID,
		RecoveryTime: m.RecoveryTime,
		ExpiresAt:    m.ExpiresAt,
	}
}
