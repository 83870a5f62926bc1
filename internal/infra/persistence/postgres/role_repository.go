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
	"gorm.io/gorm/clause"
)

// roleRepository implements the domain.RoleRepository interface using GORM.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

// GrantRoles inserts one grant row per role. Re-granting an existing role is
// a no-op rather than an error, so fixture setup stays idempotent.
func (repo *roleRepository) GrantRoles(ctx context.Context, profileID uuid.UUID, roles entity.Roles) error {
	if len(roles) == 0 {
		return nil
	}

	grants := make([]model.RoleGrantModel, 0, len(roles))
	for _, role := range roles {
		grants = append(grants, model.RoleGrantModel{
			ProfileID: profileID,
			Role:      string(role),
		})
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&grants).Error
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("profile does not exist")
		}

		return errors.Wrap(err, "failed to grant roles")
	}

	return nil
}

// RolesOf returns the explicitly granted roles for the given profile.
func (repo *roleRepository) RolesOf(ctx context.Context, profileID uuid.UUID) (entity.Roles, error) {
	var grants []model.RoleGrantModel
	err := repo.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("role").
		Find(&grants).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roles")
	}

	names := make([]string, 0, len(grants))
	for _, grant := range grants {
		names = append(names, grant.Role)
	}

	return entity.RolesFromStrings(names), nil
}

// DeleteByProfileID removes all grant rows for the given profile.
func (repo *roleRepository) DeleteByProfileID(ctx context.Context, profileID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&model.RoleGrantModel{}).Error

	return errors.Wrap(err, "failed to delete role grants")
}
