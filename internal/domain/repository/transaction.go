package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so every operation inside one fixture step shares the same
// database connection.
type RepositoryFactory interface {
	// ProfileRepo returns a ProfileRepository bound to the current transaction.
	ProfileRepo() ProfileRepository

	// WaitlistRepo returns a WaitlistRepository bound to the current transaction.
	WaitlistRepo() WaitlistRepository

	// InvitationRepo returns an InvitationRepository bound to the current transaction.
	InvitationRepo() InvitationRepository

	// RoleRepo returns a RoleRepository bound to the current transaction.
	RoleRepo() RoleRepository

	// WorkshopRepo returns a WorkshopRepository bound to the current transaction.
	WorkshopRepo() WorkshopRepository

	// RegistrationRepo returns a RegistrationRepository bound to the current transaction.
	RegistrationRepo() RegistrationRepository

	// ContainerRepo returns a ContainerRepository bound to the current transaction.
	ContainerRepo() ContainerRepository

	// CategoryRepo returns a CategoryRepository bound to the current transaction.
	CategoryRepo() CategoryRepository

	// ItemRepo returns an ItemRepository bound to the current transaction.
	ItemRepo() ItemRepository
}
