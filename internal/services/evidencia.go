package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seguimiento/metas-api/internal/models"
	"seguimiento/metas-api/internal/repositories"
)

type EvidenciaService interface {
	// UpsertDraft creates or rewrites the draft for one goal/quarter. Free
	// edits are allowed only while the quarter has not been submitted; after
	// submission only a rejected row may be rewritten, which resets it to
	// pendiente and clears its grade and reviewer comment.
	UpsertDraft(usuarioID, metaID uuid.UUID, trimestre int, descripcion string, archivo models.ArchivoRef) (*models.Evidencia, error)
	Get(metaID uuid.UUID, trimestre int) (*models.Evidencia, error)
	Revisar(evidenciaID, revisorID uuid.UUID, calificacion int, comentario *string, decision models.EstadoEvidencia) (*models.Evidencia, error)
	EditarRevision(evidenciaID uuid.UUID, calificacion int, comentario *string) (*models.Evidencia, error)
	Eliminar(evidenciaID uuid.UUID) error
}

type evidenciaService struct {
	evidenciaRepo repositories.EvidenciaRepository
	metaRepo      repositories.MetaRepository
	envioRepo     repositories.EnvioRepository
	notifier      Notifier
	now           func() time.Time
}

func NewEvidenciaService(
	evidenciaRepo repositories.EvidenciaRepository,
	metaRepo repositories.MetaRepository,
	envioRepo repositories.EnvioRepository,
	notifier Notifier,
) EvidenciaService {
	return &evidenciaService{
		evidenciaRepo: evidenciaRepo,
		metaRepo:      metaRepo,
		envioRepo:     envioRepo,
		notifier:      notifier,
		now:           time.Now,
	}
}

func (s *evidenciaService) UpsertDraft(usuarioID, metaID uuid.UUID, trimestre int, descripcion string, archivo models.ArchivoRef) (*models.Evidencia, error) {
	if descripcion == "" || archivo.URL == "" || archivo.Nombre == "" {
		return nil, &InvalidStateError{
			Estado: models.EstadoNoEnviada,
			Motivo: "descripción y archivo son obligatorios",
		}
	}

	meta, err := s.metaRepo.FindByID(metaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Recurso: "meta", ID: metaID.String()}
		}
		return nil, err
	}
	if !meta.ParticipaEnTrimestre(trimestre) {
		return nil, &InvalidStateError{
			Estado: models.EstadoNoEnviada,
			Motivo: "la meta no participa en ese trimestre",
		}
	}

	envio, err := s.envioRepo.Find(usuarioID, meta.AreaID, trimestre)
	if err != nil {
		return nil, err
	}

	existente, err := s.evidenciaRepo.FindByMetaAndTrimestre(metaID, trimestre)
	if err != nil {
		return nil, err
	}

	if envio == nil {
		return s.guardarBorrador(usuarioID, meta, trimestre, descripcion, archivo, existente)
	}
	return s.reenviar(usuarioID, meta, trimestre, descripcion, archivo, existente)
}

// guardarBorrador handles the pre-submission path: drafts can be created and
// rewritten freely, always in estado no_enviada.
func (s *evidenciaService) guardarBorrador(usuarioID uuid.UUID, meta *models.Meta, trimestre int, descripcion string, archivo models.ArchivoRef, existente *models.Evidencia) (*models.Evidencia, error) {
	if existente == nil {
		ev := &models.Evidencia{
			ID:            uuid.New(),
			MetaID:        meta.ID,
			Trimestre:     trimestre,
			UsuarioID:     usuarioID,
			AreaID:        meta.AreaID,
			Descripcion:   descripcion,
			ArchivoURL:    archivo.URL,
			ArchivoNombre: archivo.Nombre,
			ArchivoTipo:   archivo.Tipo,
			ArchivoTamano: archivo.Tamano,
			Estado:        models.EstadoNoEnviada,
			CreatedAt:     s.now(),
			UpdatedAt:     s.now(),
		}
		if err := s.evidenciaRepo.Create(ev); err != nil {
			return nil, err
		}
		return ev, nil
	}

	if existente.Estado != models.EstadoNoEnviada {
		return nil, &InvalidStateError{Estado: existente.Estado}
	}

	existente.Descripcion = descripcion
	existente.ArchivoURL = archivo.URL
	existente.ArchivoNombre = archivo.Nombre
	existente.ArchivoTipo = archivo.Tipo
	existente.ArchivoTamano = archivo.Tamano
	existente.UpdatedAt = s.now()
	if err := s.evidenciaRepo.Save(existente); err != nil {
		return nil, err
	}
	return existente, nil
}

// reenviar handles the post-submission path. Only a rejected row may be
// rewritten; the rewrite is row-scoped, moves it back to pendiente and wipes
// the previous review. A row the reviewer deleted may be recomposed from
// scratch and goes straight back into the review queue.
func (s *evidenciaService) reenviar(usuarioID uuid.UUID, meta *models.Meta, trimestre int, descripcion string, archivo models.ArchivoRef, existente *models.Evidencia) (*models.Evidencia, error) {
	ahora := s.now()

	if existente == nil {
		ev := &models.Evidencia{
			ID:            uuid.New(),
			MetaID:        meta.ID,
			Trimestre:     trimestre,
			UsuarioID:     usuarioID,
			AreaID:        meta.AreaID,
			Descripcion:   descripcion,
			ArchivoURL:    archivo.URL,
			ArchivoNombre: archivo.Nombre,
			ArchivoTipo:   archivo.Tipo,
			ArchivoTamano: archivo.Tamano,
			Estado:        models.EstadoPendiente,
			FechaEnvio:    &ahora,
			CreatedAt:     ahora,
			UpdatedAt:     ahora,
		}
		if err := s.evidenciaRepo.Create(ev); err != nil {
			return nil, err
		}
		return ev, nil
	}

	if existente.Estado != models.EstadoRechazado {
		return nil, &InvalidStateError{Estado: existente.Estado}
	}

	existente.Descripcion = descripcion
	existente.ArchivoURL = archivo.URL
	existente.ArchivoNombre = archivo.Nombre
	existente.ArchivoTipo = archivo.Tipo
	existente.ArchivoTamano = archivo.Tamano
	existente.Estado = models.EstadoPendiente
	existente.Calificacion = nil
	existente.ComentarioAdmin = nil
	existente.FechaRevision = nil
	existente.FechaEnvio = &ahora
	existente.UpdatedAt = ahora
	if err := s.evidenciaRepo.Save(existente); err != nil {
		return nil, err
	}
	return existente, nil
}

// Get returns nil, nil when no row exists: the goal/quarter is still unsent.
func (s *evidenciaService) Get(metaID uuid.UUID, trimestre int) (*models.Evidencia, error) {
	return s.evidenciaRepo.FindByMetaAndTrimestre(metaID, trimestre)
}

func (s *evidenciaService) Revisar(evidenciaID, revisorID uuid.UUID, calificacion int, comentario *string, decision models.EstadoEvidencia) (*models.Evidencia, error) {
	if decision != models.EstadoAprobado && decision != models.EstadoRechazado {
		return nil, &InvalidStateError{Estado: decision, Motivo: "decisión desconocida"}
	}
	if err := validarCalificacion(calificacion); err != nil {
		return nil, err
	}

	ev, err := s.evidenciaRepo.FindByID(evidenciaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Recurso: "evidencia", ID: evidenciaID.String()}
		}
		return nil, err
	}
	if ev.Estado != models.EstadoPendiente {
		return nil, &InvalidStateError{Estado: ev.Estado, Motivo: "solo se revisan evidencias pendientes"}
	}

	ahora := s.now()
	err = s.evidenciaRepo.ApplyRevision(evidenciaID, models.EstadoPendiente, repositories.RevisionUpdate{
		Estado:        decision,
		Calificacion:  calificacion,
		Comentario:    comentario,
		FechaRevision: ahora,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lost the race against a delete or another reviewer.
			return nil, s.estadoCambiado(evidenciaID)
		}
		return nil, err
	}

	ev.Estado = decision
	ev.Calificacion = &calificacion
	ev.ComentarioAdmin = comentario
	ev.FechaRevision = &ahora

	// Fire-and-forget: delivery problems are the notifier's to log, never
	// the review's to fail on.
	s.notifier.Enqueue(Notificacion{
		UsuarioID:    ev.UsuarioID,
		EvidenciaID:  ev.ID,
		Decision:     decision,
		Calificacion: calificacion,
	})

	return ev, nil
}

func (s *evidenciaService) EditarRevision(evidenciaID uuid.UUID, calificacion int, comentario *string) (*models.Evidencia, error) {
	if err := validarCalificacion(calificacion); err != nil {
		return nil, err
	}

	ev, err := s.evidenciaRepo.FindByID(evidenciaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Recurso: "evidencia", ID: evidenciaID.String()}
		}
		return nil, err
	}
	if !ev.Revisada() {
		return nil, &InvalidStateError{Estado: ev.Estado, Motivo: "solo se corrigen revisiones ya emitidas"}
	}

	ahora := s.now()
	err = s.evidenciaRepo.ApplyRevision(evidenciaID, ev.Estado, repositories.RevisionUpdate{
		Estado:        ev.Estado,
		Calificacion:  calificacion,
		Comentario:    comentario,
		FechaRevision: ahora,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.estadoCambiado(evidenciaID)
		}
		return nil, err
	}

	ev.Calificacion = &calificacion
	ev.ComentarioAdmin = comentario
	ev.FechaRevision = &ahora
	return ev, nil
}

func (s *evidenciaService) Eliminar(evidenciaID uuid.UUID) error {
	err := s.evidenciaRepo.Delete(evidenciaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Recurso: "evidencia", ID: evidenciaID.String()}
	}
	return err
}

// estadoCambiado re-reads a row whose guarded update matched nothing and
// reports what actually happened.
func (s *evidenciaService) estadoCambiado(evidenciaID uuid.UUID) error {
	actual, err := s.evidenciaRepo.FindByID(evidenciaID)
	if err != nil {
		return &NotFoundError{Recurso: "evidencia", ID: evidenciaID.String()}
	}
	return &InvalidStateError{Estado: actual.Estado, Motivo: "el estado cambió durante la operación"}
}
