package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
)

// RoomRepository defines data access for apartment rooms
type RoomRepository interface {
	FindRoomByNumber(ctx context.Context, roomNumber int) (*domain.Room, error)

	// FindRoomByTenant returns the room whose tenant is userID.
	FindRoomByTenant(ctx context.Context, userID int64) (*domain.Room, error)

	// FindRoomsByNumbers returns the subset of roomNumbers that exist.
	FindRoomsByNumbers(ctx context.Context, roomNumbers []int) ([]domain.Room, error)

	FindRooms(ctx context.Context) ([]domain.Room, error)
	FindRoomDetails(ctx context.Context) ([]domain.RoomDetail, error)

	// SaveRoom inserts the room or binds the tenant to an existing vacant room.
	// An occupied room fails with apperrors.ErrDuplicate.
	SaveRoom(ctx context.Context, room domain.Room) error
}

// NotificationRepository stores in-app notifications
type NotificationRepository interface {
	// SaveNotifications inserts all notifications in one round trip.
	SaveNotifications(ctx context.Context, notifications []domain.Notification) error

	// FindNotificationsForUser lists notifications sent to or by userID,
	// newest first, strictly before the (before, beforeID) cursor when set.
	FindNotificationsForUser(ctx context.Context, userID int64, before *time.Time, beforeID int64, limit int) ([]domain.NotificationView, error)
}

// FamilyRepository stores family members of an account
type FamilyRepository interface {
	SaveFamilyMember(ctx context.Context, member *domain.FamilyMember) error
	FindFamilyMembers(ctx context.Context, accountID int64) ([]domain.FamilyMember, error)
}

// PasswordRecoveryRepository stores outstanding password reset tokens
type PasswordRecoveryRepository interface {
	SavePasswordRecovery(ctx context.Context, recovery domain.PasswordRecovery) error
	FindPasswordRecovery(ctx context.Context, id string) (*domain.PasswordRecovery, error)
	// DeletePasswordRecoveries removes every token issued to the user.
	DeletePasswordRecoveries(ctx context.Context, userID int64) error
}
