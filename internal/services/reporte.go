package services

import (
	"math"

	"github.com/google/uuid"

	"seguimiento/metas-api/internal/models"
	"seguimiento/metas-api/internal/repositories"
)

type ReporteService interface {
	// ComputeAnnualAverage returns one slot per quarter (0 when never
	// scored) and the general average over scored quarters only: two scored
	// quarters divide by two, never by four.
	ComputeAnnualAverage(usuarioID, areaID uuid.UUID) (*models.PromedioAnual, error)
	ListApprovedEvidence(areaID *uuid.UUID, search string) ([]models.EvidenciaAprobada, error)
}

type reporteService struct {
	calificacionRepo repositories.CalificacionRepository
	evidenciaRepo    repositories.EvidenciaRepository
}

func NewReporteService(
	calificacionRepo repositories.CalificacionRepository,
	evidenciaRepo repositories.EvidenciaRepository,
) ReporteService {
	return &reporteService{
		calificacionRepo: calificacionRepo,
		evidenciaRepo:    evidenciaRepo,
	}
}

func (s *reporteService) ComputeAnnualAverage(usuarioID, areaID uuid.UUID) (*models.PromedioAnual, error) {
	calificaciones, err := s.calificacionRepo.ListByUsuarioArea(usuarioID, areaID)
	if err != nil {
		return nil, err
	}

	promedio := &models.PromedioAnual{}
	suma, calificados := 0, 0
	for _, c := range calificaciones {
		switch c.Trimestre {
		case 1:
			promedio.T1 = c.CalificacionGeneral
		case 2:
			promedio.T2 = c.CalificacionGeneral
		case 3:
			promedio.T3 = c.CalificacionGeneral
		case 4:
			promedio.T4 = c.CalificacionGeneral
		default:
			continue
		}
		suma += c.CalificacionGeneral
		calificados++
	}

	if calificados > 0 {
		promedio.PromedioGeneral = int(math.Round(float64(suma) / float64(calificados)))
	}
	return promedio, nil
}

func (s *reporteService) ListApprovedEvidence(areaID *uuid.UUID, search string) ([]models.EvidenciaAprobada, error) {
	return s.evidenciaRepo.ListAprobadas(areaID, search)
}
