package models

import (
	"time"

	"github.com/google/uuid"
)

type EstadoEvidencia string

const (
	// EstadoNoEnviada marks a draft that has not gone through the quarter
	// submission yet. A missing row reads as this state too.
	EstadoNoEnviada EstadoEvidencia = "no_enviada"
	EstadoPendiente EstadoEvidencia = "pendiente"
	EstadoAprobado  EstadoEvidencia = "aprobado"
	EstadoRechazado EstadoEvidencia = "rechazado"
)

// Valida reports whether the value is one of the known states.
func (e EstadoEvidencia) Valida() bool {
	switch e {
	case EstadoNoEnviada, EstadoPendiente, EstadoAprobado, EstadoRechazado:
		return true
	}
	return false
}

// Evidencia is the proof-of-completion record for one goal in one quarter.
// One row per (meta_id, trimestre); a row only exists once the user has
// completed both the description and the file reference.
type Evidencia struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MetaID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_evidencia_meta_trimestre" json:"meta_id"`
	Trimestre        int             `gorm:"not null;uniqueIndex:idx_evidencia_meta_trimestre" json:"trimestre"`
	UsuarioID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"usuario_id"`
	AreaID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"area_id"`
	Descripcion      string          `gorm:"type:text;not null" json:"descripcion"`
	ArchivoURL       string          `gorm:"type:text;not null" json:"archivo_url"`
	ArchivoNombre    string          `gorm:"type:text;not null" json:"archivo_nombre"`
	ArchivoTipo      string          `gorm:"type:text" json:"archivo_tipo"`
	ArchivoTamano    int64           `gorm:"not null;default:0" json:"archivo_tamano"`
	Estado           EstadoEvidencia `gorm:"type:text;not null;default:'no_enviada'" json:"estado"`
	Calificacion     *int            `gorm:"type:int" json:"calificacion,omitempty"`
	ComentarioAdmin  *string         `gorm:"type:text" json:"comentario_admin,omitempty"`
	FechaEnvio       *time.Time      `gorm:"type:timestamp" json:"fecha_envio,omitempty"`
	FechaRevision    *time.Time      `gorm:"type:timestamp" json:"fecha_revision,omitempty"`
	CreatedAt        time.Time       `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"type:timestamp;default:now()" json:"updated_at"`

	Meta Meta `gorm:"foreignKey:MetaID" json:"-"`
}

func (Evidencia) TableName() string {
	return "evidencias"
}

// Revisada reports whether the row has been through review at least once.
func (e *Evidencia) Revisada() bool {
	return e.Estado == EstadoAprobado || e.Estado == EstadoRechazado
}
