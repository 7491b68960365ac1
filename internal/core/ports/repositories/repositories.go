package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxRunner             TxRunner
	UserRepo             UserRepositoryFacade
	RoomRepo             RoomRepository
	FeeRepo              FeeRepositoryFacade
	RecurrenceRepo       FeeRecurrenceRepository
	AssignmentRepo       AssignmentRepositoryFacade
	TransactionRepo      TransactionRepository
	TransactionLogRepo   TransactionLogRepository
	NotificationRepo     NotificationRepository
	FamilyRepo           FamilyRepository
	PasswordRecoveryRepo PasswordRecoveryRepository
}
