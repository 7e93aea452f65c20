package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seguimiento/metas-api/internal/models"
)

type EvidenciaRepository interface {
	Create(ev *models.Evidencia) error
	Save(ev *models.Evidencia) error
	FindByID(id uuid.UUID) (*models.Evidencia, error)
	FindByMetaAndTrimestre(metaID uuid.UUID, trimestre int) (*models.Evidencia, error)
	ListByQuarter(usuarioID, areaID uuid.UUID, trimestre int) ([]models.Evidencia, error)
	ListByFilter(areaID *uuid.UUID, trimestre *int, estado *models.EstadoEvidencia) ([]models.Evidencia, error)
	ListAprobadas(areaID *uuid.UUID, search string) ([]models.EvidenciaAprobada, error)
	CountByMeta(metaID uuid.UUID) (int64, error)
	// ApplyRevision updates the review fields guarded by the current estado,
	// so a concurrent delete or state change makes the loser fail instead of
	// resurrecting the row. Returns gorm.ErrRecordNotFound when no row
	// matched the guard.
	ApplyRevision(id uuid.UUID, desde models.EstadoEvidencia, cambios RevisionUpdate) error
	Delete(id uuid.UUID) error
}

type RevisionUpdate struct {
	Estado        models.EstadoEvidencia
	Calificacion  int
	Comentario    *string
	FechaRevision time.Time
}

type evidenciaRepository struct {
	db *gorm.DB
}

func NewEvidenciaRepository(db *gorm.DB) EvidenciaRepository {
	return &evidenciaRepository{db: db}
}

func (r *evidenciaRepository) Create(ev *models.Evidencia) error {
	if err := r.db.Create(ev).Error; err != nil {
		return fmt.Errorf("failed to create evidencia: %w", err)
	}
	return nil
}

func (r *evidenciaRepository) Save(ev *models.Evidencia) error {
	if err := r.db.Save(ev).Error; err != nil {
		return fmt.Errorf("failed to save evidencia: %w", err)
	}
	return nil
}

func (r *evidenciaRepository) FindByID(id uuid.UUID) (*models.Evidencia, error) {
	var ev models.Evidencia
	if err := r.db.Where("id = ?", id).First(&ev).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find evidencia: %w", err)
	}
	return &ev, nil
}

// FindByMetaAndTrimestre returns nil, nil when no row exists: the caller
// reads that as the unsent state.
func (r *evidenciaRepository) FindByMetaAndTrimestre(metaID uuid.UUID, trimestre int) (*models.Evidencia, error) {
	var ev models.Evidencia
	err := r.db.
		Where("meta_id = ? AND trimestre = ?", metaID, trimestre).
		First(&ev).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find evidencia: %w", err)
	}
	return &ev, nil
}

func (r *evidenciaRepository) ListByQuarter(usuarioID, areaID uuid.UUID, trimestre int) ([]models.Evidencia, error) {
	var evs []models.Evidencia
	err := r.db.
		Where("usuario_id = ? AND area_id = ? AND trimestre = ?", usuarioID, areaID, trimestre).
		Order("created_at ASC").
		Find(&evs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list evidencias: %w", err)
	}
	return evs, nil
}

func (r *evidenciaRepository) ListByFilter(areaID *uuid.UUID, trimestre *int, estado *models.EstadoEvidencia) ([]models.Evidencia, error) {
	query := r.db.Model(&models.Evidencia{})
	if areaID != nil {
		query = query.Where("area_id = ?", *areaID)
	}
	if trimestre != nil {
		query = query.Where("trimestre = ?", *trimestre)
	}
	if estado != nil {
		query = query.Where("estado = ?", *estado)
	}

	var evs []models.Evidencia
	if err := query.Order("fecha_envio ASC").Find(&evs).Error; err != nil {
		return nil, fmt.Errorf("failed to filter evidencias: %w", err)
	}
	return evs, nil
}

func (r *evidenciaRepository) ListAprobadas(areaID *uuid.UUID, search string) ([]models.EvidenciaAprobada, error) {
	query := r.db.Table("evidencias").
		Select(`evidencias.id AS evidencia_id,
			metas.meta AS meta,
			metas.indicador AS indicador,
			evidencias.trimestre,
			evidencias.descripcion,
			evidencias.archivo_url,
			evidencias.archivo_nombre,
			evidencias.calificacion,
			areas.nombre AS area_nombre,
			usuarios.nombre AS usuario_nombre,
			evidencias.fecha_revision`).
		Joins("JOIN metas ON metas.id = evidencias.meta_id").
		Joins("JOIN areas ON areas.id = evidencias.area_id").
		Joins("JOIN usuarios ON usuarios.id = evidencias.usuario_id").
		Where("evidencias.estado = ?", models.EstadoAprobado)

	if areaID != nil {
		query = query.Where("evidencias.area_id = ?", *areaID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("metas.meta ILIKE ? OR usuarios.nombre ILIKE ?", pattern, pattern)
	}

	var rows []models.EvidenciaAprobada
	if err := query.Order("evidencias.fecha_revision DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list approved evidencias: %w", err)
	}
	return rows, nil
}

func (r *evidenciaRepository) CountByMeta(metaID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Evidencia{}).
		Where("meta_id = ?", metaID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count evidencias: %w", err)
	}
	return count, nil
}

func (r *evidenciaRepository) ApplyRevision(id uuid.UUID, desde models.EstadoEvidencia, cambios RevisionUpdate) error {
	result := r.db.Model(&models.Evidencia{}).
		Where("id = ? AND estado = ?", id, desde).
		Updates(map[string]interface{}{
			"estado":           cambios.Estado,
			"calificacion":     cambios.Calificacion,
			"comentario_admin": cambios.Comentario,
			"fecha_revision":   cambios.FechaRevision,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to apply revision: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *evidenciaRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.Evidencia{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete evidencia: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
