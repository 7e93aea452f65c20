package models

import (
	"time"

	"github.com/google/uuid"
)

// CalificacionTrimestre is the reviewer-level score for a whole quarter,
// independent from the per-goal grades. It is the number the annual rollup
// reads, keyed by user and area together.
type CalificacionTrimestre struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UsuarioID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_calificacion_usuario_area_trimestre" json:"usuario_id"`
	AreaID              uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_calificacion_usuario_area_trimestre" json:"area_id"`
	Trimestre           int        `gorm:"not null;uniqueIndex:idx_calificacion_usuario_area_trimestre" json:"trimestre"`
	CalificacionGeneral int        `gorm:"not null" json:"calificacion_general"`
	ComentarioGeneral   *string    `gorm:"type:text" json:"comentario_general,omitempty"`
	CalcularAutomatico  bool       `gorm:"not null;default:false" json:"calcular_automatico"`
	CalificadoPor       uuid.UUID  `gorm:"type:uuid" json:"calificado_por"`
	FechaCalificacion   time.Time  `gorm:"type:timestamp;not null" json:"fecha_calificacion"`
}

func (CalificacionTrimestre) TableName() string {
	return "calificaciones_trimestre"
}
