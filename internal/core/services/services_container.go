package services

import (
	portsrepo "github.com/SscSPs/apartment_fee_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/apartment_fee_app/internal/core/ports/services"
	"github.com/SscSPs/apartment_fee_app/internal/platform/config"
	"github.com/SscSPs/apartment_fee_app/internal/platform/mail"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, mailer mail.Mailer, events EventSink) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	base := BaseService{}

	container.User = NewUserService(repos)
	container.Auth = NewAuthService(TokenSettingsFromConfig(cfg), repos.UserRepo, container.User, base)
	container.PasswordRecovery = NewPasswordRecoveryService(repos, mailer, cfg.PasswordRecoveryTTL, cfg.FrontendBaseURL, base)

	// Settlement depends on the recurrence chain, so create it first
	container.Recurrence = NewRecurrenceService(repos.FeeRepo, repos.RecurrenceRepo, base)
	settlementOpts := []SettlementOption{WithPaymentCodePrefix(cfg.PaymentCodePrefix)}
	if events != nil {
		settlementOpts = append(settlementOpts, WithEventSink(events))
	}
	container.Settlement = NewSettlementService(repos, container.Recurrence, settlementOpts...)

	container.Fee = NewFeeService(repos,
		WithFeeMailer(mailer),
		WithFeePaymentCodePrefix(cfg.PaymentCodePrefix),
	)

	container.Household = NewHouseholdService(repos)
	container.Room = NewRoomService(repos.RoomRepo)
	container.Notification = NewNotificationService(repos, base)
	container.Family = NewFamilyService(repos.FamilyRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade       = (*userService)(nil)
	_ portssvc.HouseholdSvc        = (*householdService)(nil)
	_ portssvc.RoomSvc             = (*roomService)(nil)
	_ portssvc.NotificationSvc     = (*notificationService)(nil)
	_ portssvc.FamilySvc           = (*familyService)(nil)
	_ portssvc.PasswordRecoverySvc = (*passwordRecoveryService)(nil)
)
