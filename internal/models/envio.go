package models

import (
	"time"

	"github.com/google/uuid"
)

// EnvioTrimestre marks the one allowed batch submission of a quarter's
// evidence. Its existence is what decides "already submitted" versus "still
// composing"; it is created exactly once and never mutated.
type EnvioTrimestre struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UsuarioID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_envio_usuario_area_trimestre" json:"usuario_id"`
	AreaID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_envio_usuario_area_trimestre" json:"area_id"`
	Trimestre  int       `gorm:"not null;uniqueIndex:idx_envio_usuario_area_trimestre" json:"trimestre"`
	FechaEnvio time.Time `gorm:"type:timestamp;not null" json:"fecha_envio"`
}

func (EnvioTrimestre) TableName() string {
	return "envios_trimestre"
}
