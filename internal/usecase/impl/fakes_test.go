package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"clubharness/config"
	"clubharness/internal/domain/entity"
	domainerrors "clubharness/internal/domain/errors"
	"clubharness/internal/domain/repository"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(backendURL, serviceKey string) *config.Config {
	cfg := &config.Config{}
	cfg.Backend = config.BackendConfig{
		URL:        backendURL,
		ServiceKey: serviceKey,
	}
	cfg.Harness = config.HarnessConfig{
		AppBaseURL:  "http://localhost:3000",
		EmailDomain: "test.com",
		SeedWorkers: 4,
	}

	return cfg
}

// memStore is the shared state behind the in-memory repositories. All access
// goes through one mutex; SeedWaitlist exercises it concurrently.
type memStore struct {
	mu sync.Mutex

	profiles      map[uuid.UUID]*memProfile
	members       map[uuid.UUID]uuid.UUID // profileID -> memberID
	waitlist      map[uuid.UUID]*entity.WaitlistEntry
	invitations   map[uuid.UUID]*entity.Invitation
	roles         map[uuid.UUID]entity.Roles
	workshops     map[uuid.UUID]*entity.Workshop
	registrations map[uuid.UUID]*entity.Registration
	containers    map[uuid.UUID]*entity.Container
	categories    map[uuid.UUID]*entity.Category
	items         map[uuid.UUID]*entity.Item
}

type memProfile struct {
	id                uuid.UUID
	email             string
	authUserID        uuid.UUID
	waitlistID        uuid.UUID
	paymentCustomerID string
}

func newMemStore() *memStore {
	return &memStore{
		profiles:      make(map[uuid.UUID]*memProfile),
		members:       make(map[uuid.UUID]uuid.UUID),
		waitlist:      make(map[uuid.UUID]*entity.WaitlistEntry),
		invitations:   make(map[uuid.UUID]*entity.Invitation),
		roles:         make(map[uuid.UUID]entity.Roles),
		workshops:     make(map[uuid.UUID]*entity.Workshop),
		registrations: make(map[uuid.UUID]*entity.Registration),
		containers:    make(map[uuid.UUID]*entity.Container),
		categories:    make(map[uuid.UUID]*entity.Category),
		items:         make(map[uuid.UUID]*entity.Item),
	}
}

// memTxManager satisfies TransactionManager and RepositoryFactory over the
// in-memory store. There is no real transactionality; the fixtures only need
// the repository semantics.
type memTxManager struct {
	store *memStore
}

func newMemTxManager() *memTxManager {
	return &memTxManager{store: newMemStore()}
}

func (m *memTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *memTxManager) ProfileRepo() repository.ProfileRepository           { return &memProfileRepo{m.store} }
func (m *memTxManager) WaitlistRepo() repository.WaitlistRepository         { return &memWaitlistRepo{m.store} }
func (m *memTxManager) InvitationRepo() repository.InvitationRepository     { return &memInvitationRepo{m.store} }
func (m *memTxManager) RoleRepo() repository.RoleRepository                 { return &memRoleRepo{m.store} }
func (m *memTxManager) WorkshopRepo() repository.WorkshopRepository         { return &memWorkshopRepo{m.store} }
func (m *memTxManager) RegistrationRepo() repository.RegistrationRepository { return &memRegistrationRepo{m.store} }
func (m *memTxManager) ContainerRepo() repository.ContainerRepository       { return &memContainerRepo{m.store} }
func (m *memTxManager) CategoryRepo() repository.CategoryRepository         { return &memCategoryRepo{m.store} }
func (m *memTxManager) ItemRepo() repository.ItemRepository                 { return &memItemRepo{m.store} }

type memProfileRepo struct{ s *memStore }

func (r *memProfileRepo) CreateWaitlistProfile(_ context.Context, email string) (uuid.UUID, uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.profiles {
		if p.email == email {
			return uuid.Nil, uuid.Nil, domainerrors.ErrIdentityExists.WrapMessage("email already on waitlist")
		}
	}

	profile := &memProfile{id: uuid.New(), email: email, waitlistID: uuid.New()}
	r.s.profiles[profile.id] = profile
	r.s.waitlist[profile.waitlistID] = &entity.WaitlistEntry{
		ID:        profile.waitlistID,
		ProfileID: profile.id,
		Email:     email,
		Status:    entity.WaitlistStatusPending,
	}

	return profile.id, profile.waitlistID, nil
}

func (r *memProfileRepo) LinkAuthAccount(_ context.Context, profileID, authUserID, waitlistID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	profile, ok := r.s.profiles[profileID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	profile.authUserID = authUserID
	profile.waitlistID = waitlistID

	return nil
}

func (r *memProfileRepo) SetPaymentCustomer(_ context.Context, profileID uuid.UUID, customerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	profile, ok := r.s.profiles[profileID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	profile.paymentCustomerID = customerID

	return nil
}

func (r *memProfileRepo) CompleteRegistration(_ context.Context, profileID uuid.UUID, persona entity.Persona) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	profile, ok := r.s.profiles[profileID]
	if !ok {
		return uuid.Nil, repository.ErrProfileNotFound
	}
	if persona.EmergencyContactName == "" || persona.EmergencyContactPhone == "" {
		return uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("missing required registration fields")
	}

	memberID := uuid.New()
	r.s.members[profileID] = memberID
	if entry, ok := r.s.waitlist[profile.waitlistID]; ok {
		entry.Status = entity.WaitlistStatusCompleted
	}

	return memberID, nil
}

func (r *memProfileRepo) ProfileExists(_ context.Context, profileID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.profiles[profileID]

	return ok, nil
}

func (r *memProfileRepo) DeleteMember(_ context.Context, profileID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.members, profileID)

	return nil
}

func (r *memProfileRepo) DeleteProfile(_ context.Context, profileID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.profiles, profileID)

	return nil
}

type memWaitlistRepo struct{ s *memStore }

func (r *memWaitlistRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.WaitlistEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry, ok := r.s.waitlist[id]
	if !ok {
		return nil, repository.ErrWaitlistEntryNotFound
	}
	copied := *entry

	return &copied, nil
}

func (r *memWaitlistRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.WaitlistStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	entry, ok := r.s.waitlist[id]
	if !ok {
		return repository.ErrWaitlistEntryNotFound
	}
	entry.Status = status

	return nil
}

func (r *memWaitlistRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.waitlist, id)

	return nil
}

type memInvitationRepo struct{ s *memStore }

func (r *memInvitationRepo) Create(_ context.Context, invitation *entity.Invitation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if invitation.ID == uuid.Nil {
		invitation.ID = uuid.New()
	}
	copied := *invitation
	r.s.invitations[invitation.ID] = &copied

	return nil
}

func (r *memInvitationRepo) FindByProfileID(_ context.Context, profileID uuid.UUID) (*entity.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, invitation := range r.s.invitations {
		if invitation.ProfileID == profileID {
			copied := *invitation

			return &copied, nil
		}
	}

	return nil, repository.ErrInvitationNotFound
}

func (r *memInvitationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.WaitlistStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	invitation, ok := r.s.invitations[id]
	if !ok {
		return repository.ErrInvitationNotFound
	}
	invitation.Status = status

	return nil
}

func (r *memInvitationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invitations, id)

	return nil
}

type memRoleRepo struct{ s *memStore }

func (r *memRoleRepo) GrantRoles(_ context.Context, profileID uuid.UUID, roles entity.Roles) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing := r.s.roles[profileID]
	for _, role := range roles {
		if !existing.Contains(role) {
			existing = append(existing, role)
		}
	}
	r.s.roles[profileID] = existing

	return nil
}

func (r *memRoleRepo) RolesOf(_ context.Context, profileID uuid.UUID) (entity.Roles, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return append(entity.Roles(nil), r.s.roles[profileID]...), nil
}

func (r *memRoleRepo) DeleteByProfileID(_ context.Context, profileID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.roles, profileID)

	return nil
}

type memWorkshopRepo struct{ s *memStore }

func (r *memWorkshopRepo) Create(_ context.Context, workshop *entity.Workshop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if workshop.ID == uuid.Nil {
		workshop.ID = uuid.New()
	}
	copied := *workshop
	r.s.workshops[workshop.ID] = &copied

	return nil
}

func (r *memWorkshopRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Workshop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	workshop, ok := r.s.workshops[id]
	if !ok {
		return nil, repository.ErrWorkshopNotFound
	}
	copied := *workshop

	return &copied, nil
}

func (r *memWorkshopRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Cascade, matching the backend's FK.
	for regID, reg := range r.s.registrations {
		if reg.WorkshopID == id {
			delete(r.s.registrations, regID)
		}
	}
	delete(r.s.workshops, id)

	return nil
}

type memRegistrationRepo struct{ s *memStore }

func (r *memRegistrationRepo) Create(_ context.Context, registration *entity.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if registration.ID == uuid.Nil {
		registration.ID = uuid.New()
	}
	copied := *registration
	r.s.registrations[registration.ID] = &copied

	return nil
}

func (r *memRegistrationRepo) FindByWorkshopID(_ context.Context, workshopID uuid.UUID) ([]*entity.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*entity.Registration
	for _, reg := range r.s.registrations {
		if reg.WorkshopID == workshopID {
			copied := *reg
			result = append(result, &copied)
		}
	}

	return result, nil
}

func (r *memRegistrationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.registrations, id)

	return nil
}

type memContainerRepo struct{ s *memStore }

func (r *memContainerRepo) Create(_ context.Context, container *entity.Container) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if container.ID == uuid.Nil {
		container.ID = uuid.New()
	}
	copied := *container
	r.s.containers[container.ID] = &copied

	return nil
}

func (r *memContainerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, item := range r.s.items {
		if item.ContainerID == id {
			return domainerrors.ErrDependentRowsExist.WrapMessage("container still contains items")
		}
	}
	delete(r.s.containers, id)

	return nil
}

type memCategoryRepo struct{ s *memStore }

func (r *memCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	copied := *category
	r.s.categories[category.ID] = &copied

	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, item := range r.s.items {
		if item.CategoryID == id {
			return domainerrors.ErrDependentRowsExist.WrapMessage("category still has items")
		}
	}
	delete(r.s.categories, id)

	return nil
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	copied := *item
	r.s.items[item.ID] = &copied

	return nil
}

func (r *memItemRepo) SetPhotoURL(_ context.Context, id uuid.UUID, photoURL string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.items[id]
	if !ok {
		return repository.ErrItemNotFound
	}
	item.PhotoURL = photoURL

	return nil
}

func (r *memItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, id)

	return nil
}

// fakePaymentService records payment objects in memory.
type fakePaymentService struct {
	mu            sync.Mutex
	customers     map[string]bool
	subscriptions map[string][]string // customerID -> subscription ids
}

func newFakePaymentService() *fakePaymentService {
	return &fakePaymentService{
		customers:     make(map[string]bool),
		subscriptions: make(map[string][]string),
	}
}

func (f *fakePaymentService) CreateCustomer(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := "cus_test_" + uuid.NewString()[:8]
	f.customers[id] = true

	return id, nil
}

func (f *fakePaymentService) AttachBankDebitPaymentMethod(_ context.Context, customerID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.customers[customerID] {
		return "", domainerrors.ErrNotFound
	}

	return "pm_test_" + uuid.NewString()[:8], nil
}

func (f *fakePaymentService) CreateSubscription(_ context.Context, customerID, priceLookupKey string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.customers[customerID] {
		return "", domainerrors.ErrNotFound
	}
	id := "sub_test_" + uuid.NewString()[:8]
	f.subscriptions[customerID] = append(f.subscriptions[customerID], id)

	return id, nil
}

func (f *fakePaymentService) FindPromotionCode(_ context.Context, code string) (string, error) {
	if code == "" {
		return "", domainerrors.ErrNotFound
	}

	return "promo_test_" + code, nil
}

func (f *fakePaymentService) LatestInvoiceStatus(_ context.Context, customerID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.subscriptions[customerID]) == 0 {
		return "", domainerrors.ErrNotFound
	}

	return "paid", nil
}

func (f *fakePaymentService) DeleteCustomer(_ context.Context, customerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.customers, customerID)
	delete(f.subscriptions, customerID)

	return nil
}

func (f *fakePaymentService) hasCustomer(customerID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.customers[customerID]
}

// fakeCookieTarget records installed cookies.
type fakeCookieTarget struct {
	cookies []entity.SessionCookie
}

func (f *fakeCookieTarget) AddSessionCookie(_ context.Context, cookie entity.SessionCookie) error {
	f.cookies = append(f.cookies, cookie)

	return nil
}

// fakeObjectStore records uploads in memory.
type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string][]byte)}
}

func (f *fakeObjectStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data

	return "https://assets.test.com/" + key, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)

	return nil
}
