package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	"github.com/SscSPs/apartment_fee_app/internal/platform/mail"
	"github.com/stretchr/testify/mock"
)

// inlineTxRunner runs the unit of work directly and counts invocations.
type inlineTxRunner struct {
	calls int
}

func (r *inlineTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	return fn(ctx)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByContact(ctx context.Context, contact string) (*domain.User, error) {
	args := m.Called(ctx, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserIDsByRole(ctx context.Context, role domain.UserRole) ([]int64, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserInfo(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	args := m.Called(ctx, userID, status)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementRefreshTokenVersion(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Mock RoomRepository ---
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) FindRoomByNumber(ctx context.Context, roomNumber int) (*domain.Room, error) {
	args := m.Called(ctx, roomNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) FindRoomByTenant(ctx context.Context, userID int64) (*domain.Room, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) FindRoomsByNumbers(ctx context.Context, roomNumbers []int) ([]domain.Room, error) {
	args := m.Called(ctx, roomNumbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) FindRooms(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) FindRoomDetails(ctx context.Context) ([]domain.RoomDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoomDetail), args.Error(1)
}

func (m *MockRoomRepository) SaveRoom(ctx context.Context, room domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

var _ portsrepo.RoomRepository = (*MockRoomRepository)(nil)

// --- Mock FeeRepository (fees and fee_recurrence) ---
type MockFeeRepository struct {
	mock.Mock
}

func (m *MockFeeRepository) FindFeeByID(ctx context.Context, feeID int64) (*domain.Fee, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Fee), args.Error(1)
}

func (m *MockFeeRepository) FindFees(ctx context.Context) ([]domain.Fee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Fee), args.Error(1)
}

func (m *MockFeeRepository) FindFeeCollection(ctx context.Context, feeID int64) (int, int, int64, error) {
	args := m.Called(ctx, feeID)
	return args.Int(0), args.Int(1), args.Get(2).(int64), args.Error(3)
}

func (m *MockFeeRepository) SaveFee(ctx context.Context, fee *domain.Fee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *MockFeeRepository) UpdateFee(ctx context.Context, fee domain.Fee) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}

func (m *MockFeeRepository) DeleteFee(ctx context.Context, feeID int64) error {
	args := m.Called(ctx, feeID)
	return args.Error(0)
}

func (m *MockFeeRepository) FindRecurrenceByFeeID(ctx context.Context, feeID int64) (*domain.FeeRecurrence, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeRecurrence), args.Error(1)
}

func (m *MockFeeRepository) FindNextRecurrence(ctx context.Context, feeID int64) (*domain.FeeRecurrence, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeRecurrence), args.Error(1)
}

func (m *MockFeeRepository) SaveRecurrence(ctx context.Context, link *domain.FeeRecurrence) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockFeeRepository) UpdateRecurrenceDueDate(ctx context.Context, feeID int64, dueDate time.Time) error {
	args := m.Called(ctx, feeID, dueDate)
	return args.Error(0)
}

func (m *MockFeeRepository) DeleteRecurrence(ctx context.Context, feeID int64) error {
	args := m.Called(ctx, feeID)
	return args.Error(0)
}

var (
	_ portsrepo.FeeRepositoryFacade     = (*MockFeeRepository)(nil)
	_ portsrepo.FeeRecurrenceRepository = (*MockFeeRepository)(nil)
)

// --- Mock AssignmentRepository (assignments, transactions, transaction logs) ---
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindAssignmentByID(ctx context.Context, assignmentID int64) (*domain.FeeAssignment, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindAssignmentForUpdate(ctx context.Context, assignmentID int64) (*domain.FeeAssignment, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindAssignmentByFeeAndRoom(ctx context.Context, feeID int64, roomNumber int) (*domain.FeeAssignment, error) {
	args := m.Called(ctx, feeID, roomNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindAssignmentsByFee(ctx context.Context, feeID int64) ([]domain.FeeAssignment, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindHouseholdFees(ctx context.Context, roomNumber int) ([]domain.HouseholdFee, error) {
	args := m.Called(ctx, roomNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HouseholdFee), args.Error(1)
}

func (m *MockAssignmentRepository) SaveAssignment(ctx context.Context, assignment *domain.FeeAssignment) (bool, error) {
	args := m.Called(ctx, assignment)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) MarkAssignmentPaid(ctx context.Context, assignmentID int64, paidAt time.Time) error {
	args := m.Called(ctx, assignmentID, paidAt)
	return args.Error(0)
}

func (m *MockAssignmentRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockAssignmentRepository) FindTransactionsByAssignment(ctx context.Context, assignmentID int64) ([]domain.Transaction, error) {
	args := m.Called(ctx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockAssignmentRepository) SaveTransactionLog(ctx context.Context, log domain.TransactionLog) (bool, error) {
	args := m.Called(ctx, log)
	return args.Bool(0), args.Error(1)
}

var (
	_ portsrepo.AssignmentRepositoryFacade = (*MockAssignmentRepository)(nil)
	_ portsrepo.TransactionRepository      = (*MockAssignmentRepository)(nil)
	_ portsrepo.TransactionLogRepository   = (*MockAssignmentRepository)(nil)
)

// --- Mock NotificationRepository ---
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	args := m.Called(ctx, notifications)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindNotificationsForUser(ctx context.Context, userID int64, before *time.Time, beforeID int64, limit int) ([]domain.NotificationView, error) {
	args := m.Called(ctx, userID, before, beforeID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.NotificationView), args.Error(1)
}

// --- Mock FamilyRepository ---
type MockFamilyRepository struct {
	mock.Mock
}

func (m *MockFamilyRepository) SaveFamilyMember(ctx context.Context, member *domain.FamilyMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockFamilyRepository) FindFamilyMembers(ctx context.Context, accountID int64) ([]domain.FamilyMember, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FamilyMember), args.Error(1)
}

// --- Mock PasswordRecoveryRepository ---
type MockPasswordRecoveryRepository struct {
	mock.Mock
}

func (m *MockPasswordRecoveryRepository) SavePasswordRecovery(ctx context.Context, recovery domain.PasswordRecovery) error {
	args := m.Called(ctx, recovery)
	return args.Error(0)
}

func (m *MockPasswordRecoveryRepository) FindPasswordRecovery(ctx context.Context, id string) (*domain.PasswordRecovery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordRecovery), args.Error(1)
}

func (m *MockPasswordRecoveryRepository) DeletePasswordRecoveries(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock Mailer ---
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendFeeAssignedMail(ctx context.Context, to string, notice mail.FeeNotice) error {
	args := m.Called(ctx, to, notice)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordRecoveryMail(ctx context.Context, to string, resetLink string) error {
	args := m.Called(ctx, to, resetLink)
	return args.Error(0)
}

// recordingSink captures analytics events.
type recordingSink struct {
	events []recordedEvent
}

type recordedEvent struct {
	distinctID string
	name       string
	props      map[string]any
}

func (r *recordingSink) Enqueue(distinctID string, event string, properties map[string]any) {
	r.events = append(r.events, recordedEvent{distinctID: distinctID, name: event, props: properties})
}

// testRepos assembles a provider from the mocks.
func testRepos(tx *inlineTxRunner, users *MockUserRepository, rooms *MockRoomRepository, fees *MockFeeRepository,
	assignments *MockAssignmentRepository, notifications *MockNotificationRepository) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxRunner:           tx,
		UserRepo:           users,
		RoomRepo:           rooms,
		FeeRepo:            fees,
		RecurrenceRepo:     fees,
		AssignmentRepo:     assignments,
		TransactionRepo:    assignments,
		TransactionLogRepo: assignments,
		NotificationRepo:   notifications,
	}
}

func ptr[T any](v T) *T {
	return &v
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
