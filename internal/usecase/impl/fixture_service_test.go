package impl

import (
	"context"
	"testing"

	"clubharness/internal/domain/entity"
	"clubharness/internal/domain/lifecycle"
	"clubharness/internal/domain/repository"
	"clubharness/internal/infra/persona"
	"clubharness/internal/infra/qrcode"
	"clubharness/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureServiceFixtures holds all test dependencies for fixture service tests.
type fixtureServiceFixtures struct {
	service   usecase.FixtureUsecase
	txManager *memTxManager
	store     *fakeObjectStore
	registry  *lifecycle.Registry
}

func createTestFixtureService(t *testing.T) fixtureServiceFixtures {
	t.Helper()

	cfg := newTestConfig("http://localhost:54321", "service-key")
	logger := newDiscardLogger()

	txManager := newMemTxManager()
	store := newFakeObjectStore()
	registry := lifecycle.NewRegistry(logger)

	service := NewFixtureService(FixtureServiceParams{
		TxManager: txManager,
		QRService: qrcode.NewQRCodeService(256, "M"),
		Store:     store,
		Persona:   persona.NewGenerator(cfg),
		Registry:  registry,
		Config:    cfg,
		Logger:    logger,
	})

	return fixtureServiceFixtures{
		service:   service,
		txManager: txManager,
		store:     store,
		registry:  registry,
	}
}

func TestFixtureService_CreateWorkshop_FillsDefaults(t *testing.T) {
	fixtures := createTestFixtureService(t)
	ctx := context.Background()

	workshop, err := fixtures.service.CreateWorkshop(ctx, usecase.WorkshopInput{})
	require.NoError(t, err)

	assert.NotEmpty(t, workshop.ID)
	assert.NotEmpty(t, workshop.Title)
	assert.Equal(t, defaultWorkshopCapacity, workshop.Capacity)
	assert.True(t, workshop.EndsAt.After(workshop.StartsAt))
	assert.Equal(t, 1, fixtures.registry.Len())

	// The registry removes what was created.
	require.NoError(t, fixtures.registry.Run(ctx))
	_, err = fixtures.txManager.WorkshopRepo().FindByID(ctx, workshop.ID)
	assert.ErrorIs(t, err, repository.ErrWorkshopNotFound)
}

func TestFixtureService_CreateRegistration_ProducesScannableQR(t *testing.T) {
	fixtures := createTestFixtureService(t)
	ctx := context.Background()

	workshop, err := fixtures.service.CreateWorkshop(ctx, usecase.WorkshopInput{Title: "QR Workshop"})
	require.NoError(t, err)

	output, err := fixtures.service.CreateRegistration(ctx, usecase.RegistrationInput{
		WorkshopID: workshop.ID,
		MemberID:   workshop.ID, // any UUID serves as the member in the fake
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RegistrationStatusRegistered, output.Registration.Status)
	assert.NotEmpty(t, output.Registration.CheckInCode)

	// PNG magic number.
	require.GreaterOrEqual(t, len(output.CheckInQR), 4)
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, output.CheckInQR[:4])
}

func TestFixtureService_ParentDeletionBlockedByChildren(t *testing.T) {
	fixtures := createTestFixtureService(t)
	ctx := context.Background()

	container, err := fixtures.service.CreateContainer(ctx, "Shelf B3", "Basement")
	require.NoError(t, err)
	category, err := fixtures.service.CreateCategory(ctx, "Power tools", []byte(`{"voltage":"number"}`))
	require.NoError(t, err)
	item, err := fixtures.service.CreateItem(ctx, usecase.ItemInput{
		ContainerID: container.ID,
		CategoryID:  category.ID,
		Name:        "Cordless drill",
	})
	require.NoError(t, err)

	// Deleting the container while the item lives must surface the
	// backend's identifying message unchanged.
	err = fixtures.txManager.ContainerRepo().Delete(ctx, container.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains items")

	err = fixtures.txManager.CategoryRepo().Delete(ctx, category.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has items")

	// After the child is gone both parents delete cleanly.
	require.NoError(t, fixtures.txManager.ItemRepo().Delete(ctx, item.ID))
	require.NoError(t, fixtures.txManager.ContainerRepo().Delete(ctx, container.ID))
	require.NoError(t, fixtures.txManager.CategoryRepo().Delete(ctx, category.ID))
}

func TestFixtureService_RegistryTearsDownInReverseOrder(t *testing.T) {
	fixtures := createTestFixtureService(t)
	ctx := context.Background()

	container, err := fixtures.service.CreateContainer(ctx, "Shelf A1", "Attic")
	require.NoError(t, err)
	category, err := fixtures.service.CreateCategory(ctx, "Climbing gear", nil)
	require.NoError(t, err)
	_, err = fixtures.service.CreateItem(ctx, usecase.ItemInput{
		ContainerID: container.ID,
		CategoryID:  category.ID,
	})
	require.NoError(t, err)

	// Reverse order deletes the item before its parents, so the RESTRICT
	// rules never fire.
	require.NoError(t, fixtures.registry.Run(ctx))
	assert.Equal(t, 0, fixtures.registry.Len())
}

func TestFixtureService_CreateItem_UploadsPhoto(t *testing.T) {
	fixtures := createTestFixtureService(t)
	ctx := context.Background()

	container, err := fixtures.service.CreateContainer(ctx, "", "")
	require.NoError(t, err)
	category, err := fixtures.service.CreateCategory(ctx, "", nil)
	require.NoError(t, err)

	item, err := fixtures.service.CreateItem(ctx, usecase.ItemInput{
		ContainerID: container.ID,
		CategoryID:  category.ID,
		Photo:       []byte{0x89, 0x50, 0x4E, 0x47},
	})
	require.NoError(t, err)
	assert.Contains(t, item.PhotoURL, "https://assets.test.com/items/")

	// Teardown removes the blob along with the row.
	require.NoError(t, fixtures.registry.Run(ctx))
	assert.Empty(t, fixtures.store.objects)
}

func TestFixtureService_CreateInvitation_Defaults(t *testing.T) {
	fixtures := createTestFixtureService(t)
	ctx := context.Background()

	invitation, err := fixtures.service.CreateInvitation(ctx, usecase.InvitationInput{})
	require.NoError(t, err)

	assert.NotEmpty(t, invitation.Token)
	assert.NotEmpty(t, invitation.Email)
	assert.Equal(t, entity.WaitlistStatusPending, invitation.Status)
	assert.False(t, invitation.ExpiresAt.IsZero())
}

func TestFixtureService_SeedWaitlist_UniqueEntriesUnderConcurrency(t *testing.T) {
	fixtures := createTestFixtureService(t)
	ctx := context.Background()

	const n = 40
	entries, err := fixtures.service.SeedWaitlist(ctx, n)
	require.NoError(t, err)
	require.Len(t, entries, n)

	seen := make(map[string]bool, n)
	for _, entry := range entries {
		assert.False(t, seen[entry.Email], "duplicate email %s", entry.Email)
		seen[entry.Email] = true
		assert.Equal(t, entity.WaitlistStatusPending, entry.Status)
	}

	// One teardown step per entry; the run removes every profile.
	assert.Equal(t, n, fixtures.registry.Len())
	require.NoError(t, fixtures.registry.Run(ctx))
	for _, entry := range entries {
		exists, err := fixtures.txManager.ProfileRepo().ProfileExists(ctx, entry.ProfileID)
		require.NoError(t, err)
		assert.False(t, exists)
	}
}

func TestFixtureService_SeedWaitlist_RejectsNonPositiveCount(t *testing.T) {
	fixtures := createTestFixtureService(t)

	_, err := fixtures.service.SeedWaitlist(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed count must be positive")
}
