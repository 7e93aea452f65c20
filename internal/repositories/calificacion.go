package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seguimiento/metas-api/internal/models"
)

type CalificacionRepository interface {
	Upsert(calificacion *models.CalificacionTrimestre) error
	Find(usuarioID, areaID uuid.UUID, trimestre int) (*models.CalificacionTrimestre, error)
	ListByUsuarioArea(usuarioID, areaID uuid.UUID) ([]models.CalificacionTrimestre, error)
}

type calificacionRepository struct {
	db *gorm.DB
}

func NewCalificacionRepository(db *gorm.DB) CalificacionRepository {
	return &calificacionRepository{db: db}
}

func (r *calificacionRepository) Upsert(calificacion *models.CalificacionTrimestre) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "usuario_id"},
			{Name: "area_id"},
			{Name: "trimestre"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"calificacion_general",
			"comentario_general",
			"calcular_automatico",
			"calificado_por",
			"fecha_calificacion",
		}),
	}).Create(calificacion).Error
	if err != nil {
		return fmt.Errorf("failed to upsert calificacion: %w", err)
	}
	return nil
}

// Find returns nil, nil when the quarter has not been scored.
func (r *calificacionRepository) Find(usuarioID, areaID uuid.UUID, trimestre int) (*models.CalificacionTrimestre, error) {
	var calificacion models.CalificacionTrimestre
	err := r.db.
		Where("usuario_id = ? AND area_id = ? AND trimestre = ?", usuarioID, areaID, trimestre).
		First(&calificacion).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find calificacion: %w", err)
	}
	return &calificacion, nil
}

func (r *calificacionRepository) ListByUsuarioArea(usuarioID, areaID uuid.UUID) ([]models.CalificacionTrimestre, error) {
	var calificaciones []models.CalificacionTrimestre
	err := r.db.
		Where("usuario_id = ? AND area_id = ?", usuarioID, areaID).
		Order("trimestre ASC").
		Find(&calificaciones).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list calificaciones: %w", err)
	}
	return calificaciones, nil
}
