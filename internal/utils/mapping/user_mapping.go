package mapping

import (
	"database/sql"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/SscSPs/apartment_fee_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		ID:                  d.ID,
		Name:                d.Name,
		Username:            d.Username,
		Email:               d.Email,
		PasswordHash:        d.PasswordHash,
		Phone:               sql.NullString{String: d.Phone, Valid: d.Phone != ""},
		Role:                models.UserRole(d.Role),
		Status:              models.UserStatus(d.Status),
		RefreshTokenVersion: d.RefreshTokenVersion,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		ID:                  m.ID,
		Name:                m.Name,
		Username:            m.Username,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		Phone:               m.Phone.String,
		Role:                domain.UserRole(m.Role),
		Status:              domain.UserStatus(m.Status),
		RefreshTokenVersion: m.RefreshTokenVersion,
	}
}

// ToDomainUserSlice converts a slice of model Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

// ToModelRoom converts a domain Room to a model Room
func ToModelRoom(d domain.Room) models.Room {
	m := models.Room{RoomNumber: d.RoomNumber}
	if d.TenantID != nil {
		m.Tenant = sql.NullInt64{Int64: *d.TenantID, Valid: true}
	}
	return m
}

// ToDomainRoom converts a model Room to a domain Room
func ToDomainRoom(m models.Room) domain.Room {
	d := domain.Room{RoomNumber: m.RoomNumber}
	if m.Tenant.Valid {
		tenant := m.Tenant.Int64
		d.TenantID = &tenant
	}
	return d
}

// ToDomainRoomDetail converts a joined room row
func ToDomainRoomDetail(m models.RoomDetail) domain.RoomDetail {
	return domain.RoomDetail{
		Room:        ToDomainRoom(m.Room),
		TenantName:  nullStringPtr(m.TenantName),
		TenantEmail: nullStringPtr(m.TenantEmail),
		TenantPhone: nullStringPtr(m.TenantPhone),
	}
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func ptrNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
