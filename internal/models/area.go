package models

import (
	"time"

	"github.com/google/uuid"
)

// Area is the organizational unit a goal plan belongs to. Managed by the
// surrounding admin forms; the engine only reads it for display joins.
type Area struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Nombre    string    `gorm:"type:text;not null" json:"nombre"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Area) TableName() string {
	return "areas"
}

// Usuario is the submitting or reviewing account. Authentication lives
// outside this service; the row exists for ownership and display joins.
type Usuario struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Nombre    string    `gorm:"type:text;not null" json:"nombre"`
	Email     string    `gorm:"type:text;uniqueIndex" json:"email"`
	Rol       string    `gorm:"type:text;not null;default:'usuario'" json:"rol"`
	AreaID    uuid.UUID `gorm:"type:uuid;index" json:"area_id"`
	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Usuario) TableName() string {
	return "usuarios"
}
