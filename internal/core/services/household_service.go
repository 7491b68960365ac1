package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/apperrors"
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/utils/pagination"
)

// --- household ---

type householdService struct {
	BaseService
	userRepo       portsrepo.UserReader
	roomRepo       portsrepo.RoomRepository
	assignmentRepo portsrepo.AssignmentReader
}

func NewHouseholdService(repos portsrepo.RepositoryProvider) portssvc.HouseholdSvc {
	return &householdService{
		userRepo:       repos.UserRepo,
		roomRepo:       repos.RoomRepo,
		assignmentRepo: repos.AssignmentRepo,
	}
}

func (s *householdService) GetHousehold(ctx context.Context, userID int64) (*domain.Household, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	room, err := s.roomRepo.FindRoomByTenant(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no room for user %d: %w", userID, err)
		}
		s.LogError(ctx, err, "Failed to find room of user", slog.Int64("user_id", userID))
		return nil, err
	}
	fees, err := s.assignmentRepo.FindHouseholdFees(ctx, room.RoomNumber)
	if err != nil {
		s.LogError(ctx, err, "Failed to list household fees", slog.Int("room_number", room.RoomNumber))
		return nil, err
	}
	return &domain.Household{RoomNumber: room.RoomNumber, Tenant: *user, Fees: fees}, nil
}

// --- rooms ---

type roomService struct {
	BaseService
	roomRepo portsrepo.RoomRepository
}

func NewRoomService(roomRepo portsrepo.RoomRepository) portssvc.RoomSvc {
	return &roomService{roomRepo: roomRepo}
}

func (s *roomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.roomRepo.FindRooms(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rooms")
		return nil, err
	}
	return rooms, nil
}

func (s *roomService) ListRoomDetails(ctx context.Context) ([]domain.RoomDetail, error) {
	rooms, err := s.roomRepo.FindRoomDetails(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list room details")
		return nil, err
	}
	return rooms, nil
}

// --- notifications ---

type notificationService struct {
	BaseService
	userRepo         portsrepo.UserReader
	notificationRepo portsrepo.NotificationRepository
}

func NewNotificationService(repos portsrepo.RepositoryProvider, base BaseService) portssvc.NotificationSvc {
	return &notificationService{
		BaseService:      base,
		userRepo:         repos.UserRepo,
		notificationRepo: repos.NotificationRepo,
	}
}

const defaultNotificationPage = 50

var allRoles = []domain.UserRole{domain.RoleAdmin, domain.RoleManager, domain.RoleTenant}

func (s *notificationService) recipients(ctx context.Context, req dto.SendNotificationRequest) ([]int64, error) {
	if req.SendAll {
		var ids []int64
		for _, role := range allRoles {
			roleIDs, err := s.userRepo.FindUserIDsByRole(ctx, role)
			if err != nil {
				return nil, err
			}
			ids = append(ids, roleIDs...)
		}
		return ids, nil
	}
	if req.Recipient == nil || strings.TrimSpace(*req.Recipient) == "" {
		return nil, fmt.Errorf("%w: to_user is required unless send_all is set", apperrors.ErrValidation)
	}
	user, err := s.userRepo.FindUserByContact(ctx, strings.TrimSpace(*req.Recipient))
	if err != nil {
		return nil, err
	}
	return []int64{user.ID}, nil
}

func (s *notificationService) SendNotification(ctx context.Context, senderID int64, req dto.SendNotificationRequest) (int, error) {
	ids, err := s.recipients(ctx, req)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to resolve notification recipients")
		}
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	now := s.now()
	notifications := make([]domain.Notification, len(ids))
	for i, id := range ids {
		notifications[i] = domain.Notification{
			Title:     req.Title,
			Message:   req.Message,
			CreatedAt: now,
			FromUser:  senderID,
			ToUser:    id,
		}
	}
	if err := s.notificationRepo.SaveNotifications(ctx, notifications); err != nil {
		s.LogError(ctx, err, "Failed to store notifications", slog.Int("count", len(notifications)))
		return 0, err
	}
	s.LogInfo(ctx, "Notifications sent", slog.Int("count", len(notifications)))
	return len(notifications), nil
}

func (s *notificationService) ListNotifications(ctx context.Context, userID int64, cursor *pagination.Cursor, limit int) ([]domain.NotificationView, *pagination.Cursor, error) {
	var (
		before   *time.Time
		beforeID int64
	)
	if cursor != nil {
		before = &cursor.CreatedAt
		beforeID = cursor.ID
	}
	if limit <= 0 {
		limit = defaultNotificationPage
	}
	// one extra row tells whether another page exists
	views, err := s.notificationRepo.FindNotificationsForUser(ctx, userID, before, beforeID, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.Int64("user_id", userID))
		return nil, nil, err
	}
	if len(views) <= limit {
		return views, nil, nil
	}
	views = views[:limit]
	last := views[limit-1]
	return views, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
}

// --- family ---

type familyService struct {
	BaseService
	familyRepo portsrepo.FamilyRepository
}

func NewFamilyService(familyRepo portsrepo.FamilyRepository) portssvc.FamilySvc {
	return &familyService{familyRepo: familyRepo}
}

const birthdayLayout = "2006-01-02"

func (s *familyService) AddFamilyMember(ctx context.Context, userID int64, req dto.CreateFamilyMemberRequest) (*domain.FamilyMember, error) {
	birthday, err := time.Parse(birthdayLayout, req.Birthday)
	if err != nil {
		return nil, fmt.Errorf("%w: birthday must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	member := domain.FamilyMember{Name: strings.TrimSpace(req.Name), Birthday: birthday, AccountID: userID}
	if member.Name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
	}
	if err := s.familyRepo.SaveFamilyMember(ctx, &member); err != nil {
		s.LogError(ctx, err, "Failed to add family member", slog.Int64("user_id", userID))
		return nil, err
	}
	return &member, nil
}

func (s *familyService) ListFamilyMembers(ctx context.Context, userID int64) ([]domain.FamilyMember, error) {
	members, err := s.familyRepo.FindFamilyMembers(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list family members", slog.Int64("user_id", userID))
		return nil, err
	}
	return members, nil
}
