package postgres

import (
	"context"

	"clubharness/internal/domain/entity"
	"clubharness/internal/domain/repository"
	"clubharness/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// workshopRepository implements the domain.WorkshopRepository interface using GORM.
type workshopRepository struct {
	db *gorm.DB
}

// NewWorkshopRepository is the constructor for workshopRepository.
func NewWorkshopRepository(db *gorm.DB) repository.WorkshopRepository {
	return &workshopRepository{db: db}
}

// Create persists a new workshop row.
func (repo *workshopRepository) Create(ctx context.Context, workshop *entity.Workshop) error {
	workshopM := fromWorkshopDomain(workshop)
	if err := repo.db.WithContext(ctx).Create(workshopM).Error; err != nil {
		return errors.Wrap(err, "failed to create workshop")
	}

	workshop.ID = workshopM.ID
	workshop.CreatedAt = workshopM.CreatedAt

	return nil
}

// FindByID retrieves a workshop by its unique id.
func (repo *workshopRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Workshop, error) {
	var workshopM model.WorkshopModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&workshopM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWorkshopNotFound
		}

		return nil, errors.Wrap(err, "failed to find workshop by id")
	}

	return toWorkshopDomain(&workshopM), nil
}

// Delete removes a workshop. The registrations FK cascades, so dependent
// registrations go with it in the same statement.
func (repo *workshopRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.WorkshopModel{}).Error

	return errors.Wrap(err, "failed to delete workshop")
}

// registrationRepository implements the domain.RegistrationRepository interface using GORM.
type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository is the constructor for registrationRepository.
func NewRegistrationRepository(db *gorm.DB) repository.RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create persists a new registration row.
func (repo *registrationRepository) Create(ctx context.Context, registration *entity.Registration) error {
	registrationM := fromRegistrationDomain(registration)
	if err := repo.db.WithContext(ctx).Create(registrationM).Error; err != nil {
		return errors.Wrap(err, "failed to create registration")
	}

	registration.ID = registrationM.ID
	registration.CreatedAt = registrationM.CreatedAt

	return nil
}

// FindByWorkshopID retrieves all registrations for a workshop.
func (repo *registrationRepository) FindByWorkshopID(ctx context.Context, workshopID uuid.UUID) ([]*entity.Registration, error) {
	var registrationMs []model.RegistrationModel
	err := repo.db.WithContext(ctx).
		Where("workshop_id = ?", workshopID).
		Order("created_at").
		Find(&registrationMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list registrations")
	}

	registrations := make([]*entity.Registration, 0, len(registrationMs))
	for i := range registrationMs {
		registrations = append(registrations, toRegistrationDomain(&registrationMs[i]))
	}

	return registrations, nil
}

// Delete removes a registration by its unique id.
func (repo *registrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RegistrationModel{}).Error

	return errors.Wrap(err, "failed to delete registration")
}

// --- Mapper Functions ---

// toWorkshopDomain converts a GORM WorkshopModel to a domain Workshop entity.
func toWorkshopDomain(data *model.WorkshopModel) *entity.Workshop {
	if data == nil {
		return nil
	}

	return &entity.Workshop{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Location:    data.Location,
		StartsAt:    data.StartsAt,
		EndsAt:      data.EndsAt,
		Capacity:    data.Capacity,
		PriceCents:  data.PriceCents,
		CreatedAt:   data.CreatedAt,
	}
}

// fromWorkshopDomain converts a domain Workshop entity to a GORM WorkshopModel.
func fromWorkshopDomain(data *entity.Workshop) *model.WorkshopModel {
	if data == nil {
		return nil
	}

	return &model.WorkshopModel{
		ID:          data.ID,
		Title:       data.Title,
		Description: data.Description,
		Location:    data.Location,
		StartsAt:    data.StartsAt,
		EndsAt:      data.EndsAt,
		Capacity:    data.Capacity,
		PriceCents:  data.PriceCents,
	}
}

// toRegistrationDomain converts a GORM RegistrationModel to a domain Registration entity.
func toRegistrationDomain(data *model.RegistrationModel) *entity.Registration {
	if data == nil {
		return nil
	}

	return &entity.Registration{
		ID:          data.ID,
		WorkshopID:  data.WorkshopID,
		MemberID:    data.MemberID,
		Status:      entity.RegistrationStatus(data.Status),
		CheckInCode: data.CheckInCode,
		CreatedAt:   data.CreatedAt,
	}
}

// fromRegistrationDomain converts a domain Registration entity to a GORM RegistrationModel.
func fromRegistrationDomain(data *entity.Registration) *model.RegistrationModel {
	if data == nil {
		return nil
	}

	return &model.RegistrationModel{
		ID:          data.ID,
		WorkshopID:  data.WorkshopID,
		MemberID:    data.MemberID,
		Status:      string(data.Status),
		CheckInCode: data.CheckInCode,
	}
}
