package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/apartment_fee_app/internal/apperrors"
	"github.com/SscSPs/apartment_fee_app/internal/core/domain"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/core/services"
	"github.com/SscSPs/apartment_fee_app/internal/dto"
	"github.com/SscSPs/apartment_fee_app/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AuthServiceTestSuite struct {
	suite.Suite
	users    *MockUserRepository
	rooms    *MockRoomRepository
	tx       *inlineTxRunner
	tokens   services.TokenSettings
	now      time.Time
	svc      portssvc.AuthSvcFacade
	hash     string
	ctx      context.Context
	activeID int64
}

func (s *AuthServiceTestSuite) SetupSuite() {
	hash, err := utils.HashPassword("secret123")
	s.Require().NoError(err)
	s.hash = hash
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.users = new(MockUserRepository)
	s.rooms = new(MockRoomRepository)
	s.tx = &inlineTxRunner{}
	s.now = time.Now()
	s.ctx = context.Background()
	s.activeID = 42
	s.tokens = services.TokenSettings{
		AccessSecret:  "access-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshSecret: "refresh-secret",
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "apartment-fee-app",
	}

	repos := testRepos(s.tx, s.users, s.rooms, new(MockFeeRepository), new(MockAssignmentRepository), new(MockNotificationRepository))
	userSvc := services.NewUserService(repos)
	s.svc = services.NewAuthService(s.tokens, s.users, userSvc, services.BaseService{Now: func() time.Time { return s.now }})
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) user(status domain.UserStatus, version int) *domain.User {
	return &domain.User{
		ID: s.activeID, Username: "alice", Name: "Alice", PasswordHash: s.hash,
		Role: domain.RoleTenant, Status: status, RefreshTokenVersion: version,
	}
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	s.users.On("FindUserByUsername", mock.Anything, "alice").Return(s.user(domain.StatusActive, 0), nil).Once()

	resp, err := s.svc.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "secret123"})
	s.Require().NoError(err)
	s.Equal(dto.TokenTypeBearer, resp.TokenType)
	s.Equal(int64(900), resp.ExpiresIn)

	claims, err := utils.ParseAccessToken(resp.AccessToken, s.tokens.AccessSecret)
	s.Require().NoError(err)
	id, err := claims.UserID()
	s.Require().NoError(err)
	s.Equal(s.activeID, id)
	s.Equal(domain.RoleTenant, claims.Role)

	_, err = utils.ParseAccessToken(resp.RefreshToken, s.tokens.AccessSecret)
	s.Error(err, "refresh token must not verify with the access secret")
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	s.users.On("FindUserByUsername", mock.Anything, "alice").Return(s.user(domain.StatusActive, 0), nil).Once()

	_, err := s.svc.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "nope-nope"})
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownUser() {
	s.users.On("FindUserByUsername", mock.Anything, "bob").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.svc.Login(s.ctx, dto.LoginRequest{Username: "bob", Password: "secret123"})
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestLogin_Inactive() {
	s.users.On("FindUserByUsername", mock.Anything, "alice").Return(s.user(domain.StatusInactive, 0), nil).Once()

	_, err := s.svc.Login(s.ctx, dto.LoginRequest{Username: "alice", Password: "secret123"})
	s.ErrorIs(err, apperrors.ErrInactiveAccount)
}

func (s *AuthServiceTestSuite) TestRefresh() {
	refresh, err := utils.GenerateRefreshToken(*s.user(domain.StatusActive, 3), s.tokens.RefreshSecret, s.tokens.RefreshExpiry, s.tokens.Issuer, s.now)
	s.Require().NoError(err)

	s.users.On("FindUserByID", mock.Anything, s.activeID).Return(s.user(domain.StatusActive, 3), nil).Once()
	resp, err := s.svc.Refresh(s.ctx, refresh)
	s.Require().NoError(err)
	s.NotEmpty(resp.AccessToken)

	// logout elsewhere bumped the version
	s.users.On("FindUserByID", mock.Anything, s.activeID).Return(s.user(domain.StatusActive, 4), nil).Once()
	_, err = s.svc.Refresh(s.ctx, refresh)
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestRefresh_Expired() {
	issued := s.now.Add(-48 * time.Hour)
	refresh, err := utils.GenerateRefreshToken(*s.user(domain.StatusActive, 0), s.tokens.RefreshSecret, s.tokens.RefreshExpiry, s.tokens.Issuer, issued)
	s.Require().NoError(err)

	_, err = s.svc.Refresh(s.ctx, refresh)
	s.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (s *AuthServiceTestSuite) TestRefresh_Garbage() {
	_, err := s.svc.Refresh(s.ctx, "not-a-jwt")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestLogout() {
	s.users.On("IncrementRefreshTokenVersion", mock.Anything, s.activeID).Return(1, nil).Once()

	s.NoError(s.svc.Logout(s.ctx, s.activeID))
	s.users.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestRegister_StartsInactiveAndBindsRoom() {
	room := 101
	s.users.On("SaveUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Status == domain.StatusInactive && u.Email == "alice@example.com" && utils.CheckPasswordHash("secret123", u.PasswordHash)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 42
	}).Return(nil).Once()
	s.rooms.On("SaveRoom", mock.Anything, mock.MatchedBy(func(r domain.Room) bool {
		return r.RoomNumber == 101 && r.TenantID != nil && *r.TenantID == 42
	})).Return(nil).Once()

	user, err := s.svc.Register(s.ctx, dto.RegisterRequest{
		Name: "Alice", Username: "alice", Email: "Alice@Example.com", Password: "secret123",
		Role: domain.RoleTenant, RoomNumber: &room,
	})
	s.Require().NoError(err)
	s.Equal(int64(42), user.ID)
	s.False(user.IsActive())
	s.rooms.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestRegister_OccupiedRoom() {
	room := 101
	s.users.On("SaveUser", mock.Anything, mock.Anything).Return(nil).Once()
	s.rooms.On("SaveRoom", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := s.svc.Register(s.ctx, dto.RegisterRequest{
		Name: "Eve", Username: "eve", Email: "eve@example.com", Password: "secret123",
		Role: domain.RoleTenant, RoomNumber: &room,
	})
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *AuthServiceTestSuite) TestRegister_RoomOnlyForTenants() {
	room := 101
	_, err := s.svc.Register(s.ctx, dto.RegisterRequest{
		Name: "Mia", Username: "mia", Email: "mia@example.com", Password: "secret123",
		Role: domain.RoleManager, RoomNumber: &room,
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(0, s.tx.calls)
}
