package postgres

import (
	"context"

	"clubharness/internal/domain/entity"
	domainerrors "clubharness/internal/domain/errors"
	"clubharness/internal/domain/repository"
	"clubharness/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// profileRepository implements the domain.ProfileRepository interface using GORM.
// Onboarding writes go through the backend's stored procedures so the rows the
// harness creates are indistinguishable from rows the application creates.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// waitlistProcedureRow mirrors the result set of create_waitlist_entry.
type waitlistProcedureRow struct {
	ProfileID  uuid.UUID `gorm:"column:profile_id"`
	WaitlistID uuid.UUID `gorm:"column:waitlist_id"`
}

// CreateWaitlistProfile invokes the create_waitlist_entry stored procedure,
// which inserts the precursor profile plus its waitlist row atomically.
func (repo *profileRepository) CreateWaitlistProfile(ctx context.Context, email string) (uuid.UUID, uuid.UUID, error) {
	var row waitlistProcedureRow
	err := repo.db.WithContext(ctx).
		Raw("SELECT profile_id, waitlist_id FROM create_waitlist_entry(?)", email).
		Scan(&row).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return uuid.Nil, uuid.Nil, domainerrors.ErrIdentityExists.WrapMessage("email already on waitlist")
		}

		return uuid.Nil, uuid.Nil, errors.Wrap(err, "failed to create waitlist profile")
	}

	return row.ProfileID, row.WaitlistID, nil
}

// LinkAuthAccount records the auth account and waitlist ids on the profile row.
func (repo *profileRepository) LinkAuthAccount(ctx context.Context, profileID, authUserID, waitlistID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("id = ?", profileID).
		Updates(map[string]any{
			"auth_user_id": authUserID,
			"waitlist_id":  waitlistID,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to link auth account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// SetPaymentCustomer records the external payment customer id on the profile.
func (repo *profileRepository) SetPaymentCustomer(ctx context.Context, profileID uuid.UUID, customerID string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("id = ?", profileID).
		Update("payment_customer_id", customerID)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set payment customer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// CompleteRegistration invokes the complete_member_registration stored
// procedure, which validates the waitlist gate, writes the member row with
// the emergency-contact fields, and marks the waitlist entry completed.
func (repo *profileRepository) CompleteRegistration(ctx context.Context, profileID uuid.UUID, persona entity.Persona) (uuid.UUID, error) {
	var memberID uuid.UUID
	err := repo.db.WithContext(ctx).
		Raw("SELECT complete_member_registration(?, ?, ?, ?, ?, ?, ?)",
			profileID,
			persona.FirstName,
			persona.LastName,
			persona.Phone,
			persona.DateOfBirth,
			persona.EmergencyContactName,
			persona.EmergencyContactPhone,
		).
		Scan(&memberID).Error
	if err != nil {
		if isNotNullConstraintViolation(err) {
			return uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("missing required registration fields")
		}

		return uuid.Nil, errors.Wrap(err, "failed to complete member registration")
	}

	return memberID, nil
}

// ProfileExists reports whether the profile row still resolves by id.
func (repo *profileRepository) ProfileExists(ctx context.Context, profileID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("id = ?", profileID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check profile existence")
	}

	return count > 0, nil
}

// DeleteMember removes the member row derived from the profile. Deleting an
// already-deleted member is not an error; teardown must be repeatable.
func (repo *profileRepository) DeleteMember(ctx context.Context, profileID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&model.MemberModel{}).Error
	if err != nil {
		if isRestrictViolation(err) {
			return domainerrors.ErrDependentRowsExist.WrapMessage("member still has registrations")
		}

		return errors.Wrap(err, "failed to delete member")
	}

	return nil
}

// DeleteProfile removes the profile row itself.
func (repo *profileRepository) DeleteProfile(ctx context.Context, profileID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", profileID).
		Delete(&model.ProfileModel{}).Error
	if err != nil {
		if isRestrictViolation(err) {
			return domainerrors.ErrDependentRowsExist.WrapMessage("profile still has dependent rows")
		}

		return errors.Wrap(err, "failed to delete profile")
	}

	return nil
}
