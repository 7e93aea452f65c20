package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"seguimiento/metas-api/internal/models"
)

func (e *entorno) servicioRevisiones(puedeRevisar CapabilityCheck) *revisionService {
	return &revisionService{
		evidencias:    e.svc,
		evidenciaRepo: e.evRepo,
		puedeRevisar:  puedeRevisar,
	}
}

func permitirTodo(revisorID, areaID uuid.UUID, trimestre int) bool { return true }

func negarTodo(revisorID, areaID uuid.UUID, trimestre int) bool { return false }

func TestRevisionRechazaRevisorSinCapacidad(t *testing.T) {
	e := nuevoEntorno()
	meta := e.nuevaMeta(t, 1)
	e.enviarTrimestre(t, 1, meta)
	ev, _ := e.svc.Get(meta.ID, 1)

	svc := e.servicioRevisiones(negarTodo)
	if _, err := svc.Revisar(uuid.New(), ev.ID, 80, nil, models.EstadoAprobado); !errors.Is(err, ErrNoAutorizado) {
		t.Fatalf("expected ErrNoAutorizado, got %v", err)
	}
	if err := svc.Eliminar(uuid.New(), ev.ID); !errors.Is(err, ErrNoAutorizado) {
		t.Fatalf("expected ErrNoAutorizado on delete, got %v", err)
	}

	actual, _ := e.svc.Get(meta.ID, 1)
	if actual.Estado != models.EstadoPendiente {
		t.Fatal("unauthorized calls must not mutate the row")
	}
}

func TestRevisionFlujoDelTablero(t *testing.T) {
	e := nuevoEntorno()
	metaA := e.nuevaMeta(t, 1)
	metaB := e.nuevaMeta(t, 1)
	e.enviarTrimestre(t, 1, metaA, metaB)

	svc := e.servicioRevisiones(permitirTodo)
	revisorID := uuid.New()

	evA, _ := e.svc.Get(metaA.ID, 1)
	evB, _ := e.svc.Get(metaB.ID, 1)

	if _, err := svc.Revisar(revisorID, evA.ID, 85, nil, models.EstadoAprobado); err != nil {
		t.Fatalf("approve A: %v", err)
	}
	comentario := "falta anexo"
	if _, err := svc.Revisar(revisorID, evB.ID, 40, &comentario, models.EstadoRechazado); err != nil {
		t.Fatalf("reject B: %v", err)
	}

	trimestre := 1
	pendiente := models.EstadoPendiente
	quedan, err := svc.ListByFilter(&e.areaID, &trimestre, &pendiente)
	if err != nil {
		t.Fatalf("list pendientes: %v", err)
	}
	if len(quedan) != 0 {
		t.Fatalf("expected no pendientes after review, got %d", len(quedan))
	}

	rechazado := models.EstadoRechazado
	rechazadas, err := svc.ListByFilter(&e.areaID, &trimestre, &rechazado)
	if err != nil {
		t.Fatalf("list rechazadas: %v", err)
	}
	if len(rechazadas) != 1 || rechazadas[0].MetaID != metaB.ID {
		t.Fatalf("expected only B rechazada, got %+v", rechazadas)
	}
	if rechazadas[0].ComentarioAdmin == nil || *rechazadas[0].ComentarioAdmin != "falta anexo" {
		t.Fatal("expected reviewer comment preserved")
	}
}

func TestRevisionEvidenciaDesconocida(t *testing.T) {
	e := nuevoEntorno()
	svc := e.servicioRevisiones(permitirTodo)

	var noEncontrada *NotFoundError
	if _, err := svc.Revisar(uuid.New(), uuid.New(), 80, nil, models.EstadoAprobado); !errors.As(err, &noEncontrada) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
