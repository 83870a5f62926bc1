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

// waitlistRepository implements the domain.WaitlistRepository interface using GORM.
type waitlistRepository struct {
	db *gorm.DB
}

// NewWaitlistRepository is the constructor for waitlistRepository.
func NewWaitlistRepository(db *gorm.DB) repository.WaitlistRepository {
	return &waitlistRepository{db: db}
}

// FindByID retrieves a waitlist entry by its unique id.
func (repo *waitlistRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.WaitlistEntry, error) {
	var entryM model.WaitlistModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entryM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWaitlistEntryNotFound
		}

		return nil, errors.Wrap(err, "failed to find waitlist entry by id")
	}

	return toWaitlistDomain(&entryM), nil
}

// UpdateStatus moves a waitlist entry to the given status.
func (repo *waitlistRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.WaitlistStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.WaitlistModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update waitlist status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrWaitlistEntryNotFound
	}

	return nil
}

// Delete removes a waitlist entry by its unique id.
func (repo *waitlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.WaitlistModel{}).Error

	return errors.Wrap(err, "failed to delete waitlist entry")
}

// invitationRepository implements the domain.InvitationRepository interface using GORM.
type invitationRepository struct {
	db *gorm.DB
}

// NewInvitationRepository is the constructor for invitationRepository.
func NewInvitationRepository(db *gorm.DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

// Create persists a new invitation row.
func (repo *invitationRepository) Create(ctx context.Context, invitation *entity.Invitation) error {
	invitationM := fromInvitationDomain(invitation)
	if err := repo.db.WithContext(ctx).Create(invitationM).Error; err != nil {
		return errors.Wrap(err, "failed to create invitation")
	}

	invitation.ID = invitationM.ID
	invitation.CreatedAt = invitationM.CreatedAt

	return nil
}

// FindByProfileID retrieves the invitation linked to a profile, if any.
func (repo *invitationRepository) FindByProfileID(ctx context.Context, profileID uuid.UUID) (*entity.Invitation, error) {
	var invitationM model.InvitationModel
	err := repo.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&invitationM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrInvitationNotFound
		}

		return nil, errors.Wrap(err, "failed to find invitation by profile id")
	}

	return toInvitationDomain(&invitationM), nil
}

// UpdateStatus moves an invitation to the given status.
func (repo *invitationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.WaitlistStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.InvitationModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update invitation status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInvitationNotFound
	}

	return nil
}

// Delete removes an invitation by its unique id.
func (repo *invitationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.InvitationModel{}).Error

	return errors.Wrap(err, "failed to delete invitation")
}

// --- Mapper Functions ---

// toWaitlistDomain converts a GORM WaitlistModel to a domain WaitlistEntry entity.
func toWaitlistDomain(data *model.WaitlistModel) *entity.WaitlistEntry {
	if data == nil {
		return nil
	}

	return &entity.WaitlistEntry{
		ID:        data.ID,
		ProfileID: data.ProfileID,
		Email:     data.Email,
		Status:    entity.WaitlistStatus(data.Status),
		CreatedAt: data.CreatedAt,
	}
}

// toInvitationDomain converts a GORM InvitationModel to a domain Invitation entity.
func toInvitationDomain(data *model.InvitationModel) *entity.Invitation {
	if data == nil {
		return nil
	}

	return &entity.Invitation{
		ID:        data.ID,
		ProfileID: data.ProfileID,
		Email:     data.Email,
		Token:     data.Token,
		Status:    entity.WaitlistStatus(data.Status),
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

// fromInvitationDomain converts a domain Invitation entity to a GORM InvitationModel.
func fromInvitationDomain(data *entity.Invitation) *model.InvitationModel {
	if data == nil {
		return nil
	}

	return &model.InvitationModel{
		ID:        data.ID,
		ProfileID: data.ProfileID,
		Email:     data.Email,
		Token:     data.Token,
		Status:    string(data.Status),
		ExpiresAt: data.ExpiresAt,
	}
}
