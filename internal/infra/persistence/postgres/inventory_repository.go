package postgres

import (
	"context"

	"clubharness/internal/domain/entity"
	domainerrors "clubharness/internal/domain/errors"
	"clubharness/internal/domain/repository"
	"clubharness/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// containerRepository implements the domain.ContainerRepository interface using GORM.
type containerRepository struct {
	db *gorm.DB
}

// NewContainerRepository is the constructor for containerRepository.
func NewContainerRepository(db *gorm.DB) repository.ContainerRepository {
	return &containerRepository{db: db}
}

// Create persists a new container row.
func (repo *containerRepository) Create(ctx context.Context, container *entity.Container) error {
	containerM := &model.ContainerModel{
		ID:       container.ID,
		Name:     container.Name,
		Location: container.Location,
	}
	if err := repo.db.WithContext(ctx).Create(containerM).Error; err != nil {
		return errors.Wrap(err, "failed to create container")
	}

	container.ID = containerM.ID
	container.CreatedAt = containerM.CreatedAt

	return nil
}

// Delete removes a container. The items FK is RESTRICT; a non-empty
// container surfaces ErrDependentRowsExist instead of disappearing.
func (repo *containerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ContainerModel{}).Error
	if err != nil {
		if isRestrictViolation(err) {
			return domainerrors.ErrDependentRowsExist.WrapMessage("container still contains items")
		}

		return errors.Wrap(err, "failed to delete container")
	}

	return nil
}

// categoryRepository implements the domain.CategoryRepository interface using GORM.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

// Create persists a new category row.
func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := &model.CategoryModel{
		ID:              category.ID,
		Name:            category.Name,
		AttributeSchema: datatypes.JSON(category.AttributeSchema),
	}
	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrIdentityExists.WrapMessage("category name already exists")
		}

		return errors.Wrap(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt

	return nil
}

// Delete removes a category. Like containers, categories with items are
// protected by a RESTRICT FK.
func (repo *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.CategoryModel{}).Error
	if err != nil {
		if isRestrictViolation(err) {
			return domainerrors.ErrDependentRowsExist.WrapMessage("category still has items")
		}

		return errors.Wrap(err, "failed to delete category")
	}

	return nil
}

// itemRepository implements the domain.ItemRepository interface using GORM.
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository is the constructor for itemRepository.
func NewItemRepository(db *gorm.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

// Create persists a new item row.
func (repo *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	itemM := &model.ItemModel{
		ID:          item.ID,
		ContainerID: item.ContainerID,
		CategoryID:  item.CategoryID,
		Name:        item.Name,
		Attributes:  datatypes.JSON(item.Attributes),
		PhotoURL:    item.PhotoURL,
	}
	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("container or category does not exist")
		}

		return errors.Wrap(err, "failed to create item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt

	return nil
}

// SetPhotoURL records the object-storage location of the item's photo.
func (repo *itemRepository) SetPhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ?", id).
		Update("photo_url", photoURL)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set item photo url")
	}
	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// Delete removes an item by its unique id.
func (repo *itemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ItemModel{}).Error

	return errors.Wrap(err, "failed to delete item")
}
