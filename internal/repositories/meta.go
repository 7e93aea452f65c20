package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seguimiento/metas-api/internal/models"
)

type MetaRepository interface {
	Create(meta *models.Meta) error
	Update(meta *models.Meta) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*models.Meta, error)
	ListForQuarter(areaID uuid.UUID, trimestre int) ([]models.Meta, error)
}

type metaRepository struct {
	db *gorm.DB
}

func NewMetaRepository(db *gorm.DB) MetaRepository {
	return &metaRepository{db: db}
}

func (r *metaRepository) Create(meta *models.Meta) error {
	if err := r.db.Create(meta).Error; err != nil {
		return fmt.Errorf("failed to create meta: %w", err)
	}
	return nil
}

func (r *metaRepository) Update(meta *models.Meta) error {
	if err := r.db.Save(meta).Error; err != nil {
		return fmt.Errorf("failed to update meta: %w", err)
	}
	return nil
}

func (r *metaRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Meta{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete meta: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *metaRepository) FindByID(id uuid.UUID) (*models.Meta, error) {
	var meta models.Meta
	if err := r.db.Where("id = ?", id).First(&meta).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find meta: %w", err)
	}
	return &meta, nil
}

// ListForQuarter returns the area's goals flagged for the given quarter.
// An unknown area or a quarter with no flagged goals yields an empty slice.
func (r *metaRepository) ListForQuarter(areaID uuid.UUID, trimestre int) ([]models.Meta, error) {
	column, ok := trimestreColumn(trimestre)
	if !ok {
		return nil, fmt.Errorf("invalid trimestre: %d", trimestre)
	}

	var metas []models.Meta
	err := r.db.
		Where("area_id = ?", areaID).
		Where(column+" = ?", true).
		Order("created_at ASC").
		Find(&metas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list metas: %w", err)
	}
	return metas, nil
}

func trimestreColumn(trimestre int) (string, bool) {
	switch trimestre {
	case 1:
		return "t1", true
	case 2:
		return "t2", true
	case 3:
		return "t3", true
	case 4:
		return "t4", true
	}
	return "", false
}
