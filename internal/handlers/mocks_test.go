package handlers_test

import (
	"context"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}
func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RefreshTokenResponse), args.Error(1)
}
func (m *MockAuthService) Logout(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock PasswordRecoveryService ---
type MockRecoveryService struct {
	mock.Mock
}

func (m *MockRecoveryService) RequestRecovery(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockRecoveryService) ConfirmRecovery(ctx context.Context, req dto.ConfirmRecoveryRequest) error {
	return m.Called(ctx, req).Error(0)
}

var _ portssvc.PasswordRecoverySvc = (*MockRecoveryService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterRequest, status domain.UserStatus) (*domain.User, error) {
	args := m.Called(ctx, req, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUserInfo(ctx context.Context, userID int64, req dto.UpdateUserInfoRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ChangePassword(ctx context.Context, userID int64, req dto.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}
func (m *MockUserService) UpdateUserStatus(ctx context.Context, userID int64, status domain.UserStatus) (*domain.User, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock FeeService ---
type MockFeeService struct {
	mock.Mock
}

func (m *MockFeeService) ListFees(ctx context.Context) ([]domain.Fee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fee), args.Error(1)
}
func (m *MockFeeService) GetFeeDetail(ctx context.Context, feeID int64) (*domain.FeeDetail, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeDetail), args.Error(1)
}
func (m *MockFeeService) GetFeeStatistics(ctx context.Context, feeID int64) (*domain.FeeStatistics, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStatistics), args.Error(1)
}
func (m *MockFeeService) CreateFee(ctx context.Context, req dto.CreateFeeRequest) (*domain.Fee, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fee), args.Error(1)
}
func (m *MockFeeService) UpdateFee(ctx context.Context, feeID int64, req dto.UpdateFeeRequest) (*domain.Fee, error) {
	args := m.Called(ctx, feeID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fee), args.Error(1)
}
func (m *MockFeeService) DeleteFee(ctx context.Context, feeID int64) error {
	return m.Called(ctx, feeID).Error(0)
}
func (m *MockFeeService) AssignFee(ctx context.Context, feeID int64, roomNumbers []int, managerID int64) (*domain.AssignResult, error) {
	args := m.Called(ctx, feeID, roomNumbers, managerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssignResult), args.Error(1)
}

var _ portssvc.FeeSvcFacade = (*MockFeeService)(nil)

// --- Mock SettlementService ---
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) PayFee(ctx context.Context, userID int64, feeID int64) (*domain.SettlementResult, error) {
	args := m.Called(ctx, userID, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementResult), args.Error(1)
}
func (m *MockSettlementService) SettleTransfer(ctx context.Context, log domain.TransactionLog) (*domain.SettlementResult, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementResult), args.Error(1)
}
func (m *MockSettlementService) GetPaymentStatus(ctx context.Context, assignmentID int64) (*domain.FeeAssignment, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeAssignment), args.Error(1)
}

var _ portssvc.SettlementSvc = (*MockSettlementService)(nil)

// --- Mock household-side services ---
type MockHouseholdService struct {
	mock.Mock
}

func (m *MockHouseholdService) GetHousehold(ctx context.Context, userID int64) (*domain.Household, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Household), args.Error(1)
}

func (m *MockHouseholdService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}
func (m *MockHouseholdService) ListRoomDetails(ctx context.Context) ([]domain.RoomDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoomDetail), args.Error(1)
}

func (m *MockHouseholdService) SendNotification(ctx context.Context, senderID int64, req dto.SendNotificationRequest) (int, error) {
	args := m.Called(ctx, senderID, req)
	return args.Int(0), args.Error(1)
}
func (m *MockHouseholdService) ListNotifications(ctx context.Context, userID int64, cursor *pagination.Cursor, limit int) ([]domain.NotificationView, *pagination.Cursor, error) {
	args := m.Called(ctx, userID, cursor, limit)
	var views []domain.NotificationView
	if v := args.Get(0); v != nil {
		views = v.([]domain.NotificationView)
	}
	var next *pagination.Cursor
	if v := args.Get(1); v != nil {
		next = v.(*pagination.Cursor)
	}
	return views, next, args.Error(2)
}

func (m *MockHouseholdService) AddFamilyMember(ctx context.Context, userID int64, req dto.CreateFamilyMemberRequest) (*domain.FamilyMember, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FamilyMember), args.Error(1)
}
func (m *MockHouseholdService) ListFamilyMembers(ctx context.Context, userID int64) ([]domain.FamilyMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FamilyMember), args.Error(1)
}

var (
	_ portssvc.HouseholdSvc    = (*MockHouseholdService)(nil)
	_ portssvc.RoomSvc         = (*MockHouseholdService)(nil)
	_ portssvc.NotificationSvc = (*MockHouseholdService)(nil)
	_ portssvc.FamilySvc       = (*MockHouseholdService)(nil)
)
