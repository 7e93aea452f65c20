package services

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"seguimiento/metas-api/internal/models"
	"seguimiento/metas-api/internal/repositories"
)

type CalificacionService interface {
	// SetQuarterScore upserts the quarter-level score for a user/area. In
	// automatic mode the value is the rounded mean over the quarter's
	// reviewed evidence grades (ungraded rows excluded, zero reviewed rows
	// score 0); otherwise the reviewer-supplied value is stored as-is.
	SetQuarterScore(revisorID, usuarioID, areaID uuid.UUID, trimestre int, req *models.CalificacionTrimestreRequest) (*models.CalificacionTrimestre, error)
}

type calificacionService struct {
	calificacionRepo repositories.CalificacionRepository
	evidenciaRepo    repositories.EvidenciaRepository
	now              func() time.Time
}

func NewCalificacionService(
	calificacionRepo repositories.CalificacionRepository,
	evidenciaRepo repositories.EvidenciaRepository,
) CalificacionService {
	return &calificacionService{
		calificacionRepo: calificacionRepo,
		evidenciaRepo:    evidenciaRepo,
		now:              time.Now,
	}
}

func (s *calificacionService) SetQuarterScore(revisorID, usuarioID, areaID uuid.UUID, trimestre int, req *models.CalificacionTrimestreRequest) (*models.CalificacionTrimestre, error) {
	if trimestre < 1 || trimestre > 4 {
		return nil, fmt.Errorf("trimestre inválido: %d", trimestre)
	}

	var general int
	if req.CalcularAutomatico {
		promedio, err := s.promedioEvidencias(usuarioID, areaID, trimestre)
		if err != nil {
			return nil, err
		}
		general = promedio
	} else {
		if req.CalificacionGeneral == nil {
			return nil, fmt.Errorf("calificación general requerida en modo manual")
		}
		if err := validarCalificacion(*req.CalificacionGeneral); err != nil {
			return nil, err
		}
		general = *req.CalificacionGeneral
	}

	calificacion := &models.CalificacionTrimestre{
		ID:                  uuid.New(),
		UsuarioID:           usuarioID,
		AreaID:              areaID,
		Trimestre:           trimestre,
		CalificacionGeneral: general,
		ComentarioGeneral:   req.ComentarioGeneral,
		CalcularAutomatico:  req.CalcularAutomatico,
		CalificadoPor:       revisorID,
		FechaCalificacion:   s.now(),
	}
	if err := s.calificacionRepo.Upsert(calificacion); err != nil {
		return nil, err
	}
	return calificacion, nil
}

// promedioEvidencias averages the quarter's reviewed grades. Rows still
// pendiente carry no grade and stay out of both sum and denominator; a
// quarter with nothing reviewed yet scores 0.
func (s *calificacionService) promedioEvidencias(usuarioID, areaID uuid.UUID, trimestre int) (int, error) {
	evidencias, err := s.evidenciaRepo.ListByQuarter(usuarioID, areaID, trimestre)
	if err != nil {
		return 0, err
	}

	suma, revisadas := 0, 0
	for _, ev := range evidencias {
		if !ev.Revisada() || ev.Calificacion == nil {
			continue
		}
		suma += *ev.Calificacion
		revisadas++
	}
	if revisadas == 0 {
		return 0, nil
	}
	return int(math.Round(float64(suma) / float64(revisadas))), nil
}
