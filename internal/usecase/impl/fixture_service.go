package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"clubharness/config"
	"clubharness/internal/domain/entity"
	domainerrors "clubharness/internal/domain/errors"
	"clubharness/internal/domain/lifecycle"
	"clubharness/internal/domain/repository"
	"clubharness/internal/domain/service"
	"clubharness/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

const (
	defaultWorkshopCapacity = 12
	defaultSeedWorkers      = 8
	defaultInviteTTL        = 7 * 24 * time.Hour
)

// fixtureService implements the FixtureUsecase interface.
type fixtureService struct {
	txManager repository.TransactionManager
	qrService service.QRCodeService
	store     service.ObjectStore
	persona   service.PersonaGenerator
	registry  *lifecycle.Registry
	cfg       *config.Config
	logger    *slog.Logger
}

// FixtureServiceParams holds dependencies for fixtureService, injected by Fx.
type FixtureServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	QRService service.QRCodeService
	Store     service.ObjectStore `optional:"true"`
	Persona   service.PersonaGenerator
	Registry  *lifecycle.Registry
	Config    *config.Config
	Logger    *slog.Logger
}

// NewFixtureService is the constructor for fixtureService.
func NewFixtureService(params FixtureServiceParams) usecase.FixtureUsecase {
	return &fixtureService{
		txManager: params.TxManager,
		qrService: params.QRService,
		store:     params.Store,
		persona:   params.Persona,
		registry:  params.Registry,
		cfg:       params.Config,
		logger:    params.Logger,
	}
}

// CreateWorkshop persists a workshop fixture, filling defaults for omitted
// fields, and registers its deletion.
func (srv *fixtureService) CreateWorkshop(ctx context.Context, input usecase.WorkshopInput) (*entity.Workshop, error) {
	workshop := &entity.Workshop{
		Title:      input.Title,
		Location:   input.Location,
		StartsAt:   input.StartsAt,
		EndsAt:     input.EndsAt,
		Capacity:   input.Capacity,
		PriceCents: input.PriceCents,
	}
	if workshop.Title == "" {
		workshop.Title = "Workshop " + shortID()
	}
	if workshop.Location == "" {
		workshop.Location = "Main hall"
	}
	if workshop.StartsAt.IsZero() {
		workshop.StartsAt = time.Now().Add(24 * time.Hour).Truncate(time.Minute)
	}
	if workshop.EndsAt.IsZero() {
		workshop.EndsAt = workshop.StartsAt.Add(2 * time.Hour)
	}
	if workshop.Capacity == 0 {
		workshop.Capacity = defaultWorkshopCapacity
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.WorkshopRepo().Create(ctx, workshop)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create workshop")
	}

	srv.registry.Register("workshop "+workshop.Title, func(ctx context.Context) error {
		return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return repoFactory.WorkshopRepo().Delete(ctx, workshop.ID)
		})
	})

	return workshop, nil
}

// CreateRegistration persists a workshop registration with a fresh check-in
// code and returns the registration alongside its check-in QR PNG.
func (srv *fixtureService) CreateRegistration(ctx context.Context, input usecase.RegistrationInput) (*usecase.RegistrationOutput, error) {
	registration := &entity.Registration{
		WorkshopID:  input.WorkshopID,
		MemberID:    input.MemberID,
		Status:      entity.RegistrationStatusRegistered,
		CheckInCode: "CHK-" + shortID(),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.RegistrationRepo().Create(ctx, registration)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create registration")
	}

	srv.registry.Register("registration "+registration.ID.String(), func(ctx context.Context) error {
		return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return repoFactory.RegistrationRepo().Delete(ctx, registration.ID)
		})
	})

	qrPNG, err := srv.qrService.GenerateCheckInQR(registration.ID, registration.CheckInCode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate check-in QR")
	}

	return &usecase.RegistrationOutput{
		Registration: registration,
		CheckInQR:    qrPNG,
	}, nil
}

// CreateContainer persists an inventory container fixture.
func (srv *fixtureService) CreateContainer(ctx context.Context, name, location string) (*entity.Container, error) {
	container := &entity.Container{Name: name, Location: location}
	if container.Name == "" {
		container.Name = "Container " + shortID()
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ContainerRepo().Create(ctx, container)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create container")
	}

	srv.registry.Register("container "+container.Name, func(ctx context.Context) error {
		return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return repoFactory.ContainerRepo().Delete(ctx, container.ID)
		})
	})

	return container, nil
}

// CreateCategory persists an inventory category fixture with its opaque
// attribute schema.
func (srv *fixtureService) CreateCategory(ctx context.Context, name string, attributeSchema []byte) (*entity.Category, error) {
	category := &entity.Category{Name: name, AttributeSchema: attributeSchema}
	if category.Name == "" {
		category.Name = "Category " + shortID()
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.CategoryRepo().Create(ctx, category)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	srv.registry.Register("category "+category.Name, func(ctx context.Context) error {
		return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return repoFactory.CategoryRepo().Delete(ctx, category.ID)
		})
	})

	return category, nil
}

// CreateItem persists an inventory item fixture. When a photo is supplied it
// is uploaded to object storage first and its URL recorded on the row.
func (srv *fixtureService) CreateItem(ctx context.Context, input usecase.ItemInput) (*entity.Item, error) {
	item := &entity.Item{
		ContainerID: input.ContainerID,
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Attributes:  input.Attributes,
	}
	if item.Name == "" {
		item.Name = "Item " + shortID()
	}

	var photoKey string
	if len(input.Photo) > 0 {
		if srv.store == nil {
			return nil, errors.New("item photo supplied but no object store is configured")
		}

		contentType := input.PhotoContentType
		if contentType == "" {
			contentType = "image/png"
		}
		photoKey = fmt.Sprintf("items/%s/photo", shortID())

		photoURL, err := srv.store.Upload(ctx, photoKey, input.Photo, contentType)
		if err != nil {
			return nil, errors.Wrap(err, "failed to upload item photo")
		}
		item.PhotoURL = photoURL
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ItemRepo().Create(ctx, item)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create item")
	}

	srv.registry.Register("item "+item.Name, func(ctx context.Context) error {
		err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return repoFactory.ItemRepo().Delete(ctx, item.ID)
		})
		if err != nil {
			return err
		}
		if photoKey != "" && srv.store != nil {
			return srv.store.Delete(ctx, photoKey)
		}

		return nil
	})

	return item, nil
}

// CreateInvitation persists a direct-invite precursor with a fresh token.
func (srv *fixtureService) CreateInvitation(ctx context.Context, input usecase.InvitationInput) (*entity.Invitation, error) {
	invitation := &entity.Invitation{
		ProfileID: input.ProfileID,
		Email:     input.Email,
		Token:     uuid.NewString(),
		Status:    entity.WaitlistStatusPending,
		ExpiresAt: input.ExpiresAt,
	}
	if invitation.Email == "" {
		invitation.Email = srv.persona.UniqueEmail("invite")
	}
	if invitation.ExpiresAt.IsZero() {
		invitation.ExpiresAt = time.Now().Add(defaultInviteTTL)
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.InvitationRepo().Create(ctx, invitation)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create invitation")
	}

	srv.registry.Register("invitation "+invitation.Email, func(ctx context.Context) error {
		return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			return repoFactory.InvitationRepo().Delete(ctx, invitation.ID)
		})
	})

	return invitation, nil
}

// SeedWaitlist creates n waitlist entries with unique addresses, fanning out
// across the configured worker count. Each entry's profile and waitlist row
// are registered for deletion.
func (srv *fixtureService) SeedWaitlist(ctx context.Context, n int) ([]*entity.WaitlistEntry, error) {
	if n <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("seed count must be positive")
	}

	workers := srv.cfg.Harness.SeedWorkers
	if workers <= 0 {
		workers = defaultSeedWorkers
	}

	var mu sync.Mutex
	entries := make([]*entity.WaitlistEntry, 0, n)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for range n {
		group.Go(func() error {
			email := srv.persona.UniqueEmail("waitlist")

			var entry *entity.WaitlistEntry
			err := srv.txManager.Execute(groupCtx, func(repoFactory repository.RepositoryFactory) error {
				profileID, waitlistID, err := repoFactory.ProfileRepo().CreateWaitlistProfile(groupCtx, email)
				if err != nil {
					return err
				}
				entry = &entity.WaitlistEntry{
					ID:        waitlistID,
					ProfileID: profileID,
					Email:     email,
					Status:    entity.WaitlistStatusPending,
				}

				return nil
			})
			if err != nil {
				return errors.Wrapf(err, "failed to seed waitlist entry for %s", email)
			}

			srv.registry.Register("waitlist "+email, func(ctx context.Context) error {
				return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
					if err := repoFactory.WaitlistRepo().Delete(ctx, entry.ID); err != nil {
						return err
					}

					return repoFactory.ProfileRepo().DeleteProfile(ctx, entry.ProfileID)
				})
			})

			mu.Lock()
			entries = append(entries, entry)
			mu.Unlock()

			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	srv.logger.Info("Seeded waitlist entries", slog.Int("count", len(entries)))

	return entries, nil
}

// shortID returns a short random suffix for fixture names and keys.
func shortID() string {
	return strings.Split(uuid.NewString(), "-")[0]
}
