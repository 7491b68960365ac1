package services

import (
	"context"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/utils/pagination"
)

// HouseholdSvc shows tenants their room and fees.
type HouseholdSvc interface {
	GetHousehold(ctx context.Context, userID int64) (*domain.Household, error)
}

// RoomSvc lists apartment rooms for managers.
type RoomSvc interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
	ListRoomDetails(ctx context.Context) ([]domain.RoomDetail, error)
}

// NotificationSvc sends and lists in-app notifications.
type NotificationSvc interface {
	// SendNotification stores a notification for one recipient or for every
	// account and returns how many were stored.
	SendNotification(ctx context.Context, senderID int64, req dto.SendNotificationRequest) (int, error)

	// ListNotifications returns up to limit notifications older than cursor
	// and the cursor of the next page, if any.
	ListNotifications(ctx context.Context, userID int64, cursor *pagination.Cursor, limit int) ([]domain.NotificationView, *pagination.Cursor, error)
}

// FamilySvc manages family members of an account.
type FamilySvc interface {
	AddFamilyMember(ctx context.Context, userID int64, req dto.CreateFamilyMemberRequest) (*domain.FamilyMember, error)
	ListFamilyMembers(ctx context.Context, userID int64) ([]domain.FamilyMember, error)
}
