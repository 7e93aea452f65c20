package models

import (
	"time"

	"github.com/google/uuid"
)

// Meta is a yearly goal assigned to an area. The four trimestre flags are
// independent: a goal may require evidence in any subset of quarters.
type Meta struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AreaID      uuid.UUID `gorm:"type:uuid;not null;index" json:"area_id"`
	Anio        int       `gorm:"not null" json:"anio"`
	Meta        string    `gorm:"type:text;not null" json:"meta"`
	Indicador   string    `gorm:"type:text" json:"indicador"`
	Accion      string    `gorm:"type:text" json:"accion"`
	Presupuesto string    `gorm:"type:text" json:"presupuesto"`
	T1          bool      `gorm:"not null;default:false" json:"t1"`
	T2          bool      `gorm:"not null;default:false" json:"t2"`
	T3          bool      `gorm:"not null;default:false" json:"t3"`
	T4          bool      `gorm:"not null;default:false" json:"t4"`
	CreatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Meta) TableName() string {
	return "metas"
}

// ParticipaEnTrimestre reports whether the goal requires evidence in the
// given quarter (1-4).
func (m *Meta) ParticipaEnTrimestre(trimestre int) bool {
	switch trimestre {
	case 1:
		return m.T1
	case 2:
		return m.T2
	case 3:
		return m.T3
	case 4:
		return m.T4
	}
	return false
}
