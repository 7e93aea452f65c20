package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seguimiento/metas-api/internal/models"
)

type EnvioRepository interface {
	Find(usuarioID, areaID uuid.UUID, trimestre int) (*models.EnvioTrimestre, error)
	// CreateAndMarcarPendientes runs the one multi-row transition in the
	// system: insert the EnvioTrimestre row and flip every covered draft to
	// pendiente in a single transaction. Returns gorm.ErrDuplicatedKey when
	// the quarter was already submitted (unique constraint loser).
	CreateAndMarcarPendientes(envio *models.EnvioTrimestre, metaIDs []uuid.UUID) error
}

type envioRepository struct {
	db *gorm.DB
}

func NewEnvioRepository(db *gorm.DB) EnvioRepository {
	return &envioRepository{db: db}
}

// Find returns nil, nil when the quarter has not been submitted.
func (r *envioRepository) Find(usuarioID, areaID uuid.UUID, trimestre int) (*models.EnvioTrimestre, error) {
	var envio models.EnvioTrimestre
	err := r.db.
		Where("usuario_id = ? AND area_id = ? AND trimestre = ?", usuarioID, areaID, trimestre).
		First(&envio).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find envio: %w", err)
	}
	return &envio, nil
}

func (r *envioRepository) CreateAndMarcarPendientes(envio *models.EnvioTrimestre, metaIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(envio).Error; err != nil {
			// Surface the duplicated-key sentinel untouched so the caller
			// can turn it into AlreadySubmittedError.
			if err == gorm.ErrDuplicatedKey {
				return err
			}
			return fmt.Errorf("failed to create envio: %w", err)
		}

		result := tx.Model(&models.Evidencia{}).
			Where("meta_id IN ? AND trimestre = ? AND estado = ?",
				metaIDs, envio.Trimestre, models.EstadoNoEnviada).
			Updates(map[string]interface{}{
				"estado":      models.EstadoPendiente,
				"fecha_envio": envio.FechaEnvio,
				"updated_at":  envio.FechaEnvio,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to mark evidencias pendientes: %w", result.Error)
		}

		// A draft deleted or flipped between validation and commit means the
		// submission no longer covers the full goal set; roll everything back.
		if result.RowsAffected != int64(len(metaIDs)) {
			return fmt.Errorf("expected %d drafts to transition, got %d", len(metaIDs), result.RowsAffected)
		}

		return nil
	})
}
