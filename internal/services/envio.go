package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seguimiento/metas-api/internal/models"
	"seguimiento/metas-api/internal/repositories"
)

type EnvioService interface {
	// SubmitQuarter performs the one allowed batch submission for a quarter:
	// every goal flagged for the quarter must already have a completed
	// draft, and the submission row plus every draft transition commit
	// together or not at all.
	SubmitQuarter(usuarioID, areaID uuid.UUID, trimestre int) (*models.EnvioTrimestre, error)
}

type envioService struct {
	envioRepo     repositories.EnvioRepository
	metaRepo      repositories.MetaRepository
	evidenciaRepo repositories.EvidenciaRepository
	now           func() time.Time
}

func NewEnvioService(
	envioRepo repositories.EnvioRepository,
	metaRepo repositories.MetaRepository,
	evidenciaRepo repositories.EvidenciaRepository,
) EnvioService {
	return &envioService{
		envioRepo:     envioRepo,
		metaRepo:      metaRepo,
		evidenciaRepo: evidenciaRepo,
		now:           time.Now,
	}
}

func (s *envioService) SubmitQuarter(usuarioID, areaID uuid.UUID, trimestre int) (*models.EnvioTrimestre, error) {
	if trimestre < 1 || trimestre > 4 {
		return nil, fmt.Errorf("trimestre inválido: %d", trimestre)
	}

	// Defensive: the UI never offers the button twice, but a concurrent or
	// replayed request must fail here or at the unique constraint below.
	existente, err := s.envioRepo.Find(usuarioID, areaID, trimestre)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, &AlreadySubmittedError{UsuarioID: usuarioID, AreaID: areaID, Trimestre: trimestre}
	}

	metas, err := s.metaRepo.ListForQuarter(areaID, trimestre)
	if err != nil {
		return nil, err
	}
	if len(metas) == 0 {
		return nil, &NotFoundError{Recurso: "metas del trimestre"}
	}

	var faltantes []uuid.UUID
	metaIDs := make([]uuid.UUID, 0, len(metas))
	for _, meta := range metas {
		borrador, err := s.evidenciaRepo.FindByMetaAndTrimestre(meta.ID, trimestre)
		if err != nil {
			return nil, err
		}
		if borrador == nil || borrador.Descripcion == "" || borrador.ArchivoURL == "" ||
			borrador.Estado != models.EstadoNoEnviada {
			faltantes = append(faltantes, meta.ID)
			continue
		}
		metaIDs = append(metaIDs, meta.ID)
	}
	if len(faltantes) > 0 {
		return nil, &IncompleteSubmissionError{MissingMetaIDs: faltantes}
	}

	envio := &models.EnvioTrimestre{
		ID:         uuid.New(),
		UsuarioID:  usuarioID,
		AreaID:     areaID,
		Trimestre:  trimestre,
		FechaEnvio: s.now(),
	}

	if err := s.envioRepo.CreateAndMarcarPendientes(envio, metaIDs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &AlreadySubmittedError{UsuarioID: usuarioID, AreaID: areaID, Trimestre: trimestre}
		}
		return nil, err
	}

	return envio, nil
}
