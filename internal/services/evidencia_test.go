package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"seguimiento/metas-api/internal/models"
)

type entorno struct {
	metaRepo  *fakeMetaRepo
	evRepo    *fakeEvidenciaRepo
	envioRepo *fakeEnvioRepo
	notifier  *fakeNotifier
	svc       *evidenciaService
	ahora     time.Time
	usuarioID uuid.UUID
	areaID    uuid.UUID
}

func nuevoEntorno() *entorno {
	metaRepo := newFakeMetaRepo()
	evRepo := newFakeEvidenciaRepo()
	envioRepo := newFakeEnvioRepo(evRepo)
	notifier := &fakeNotifier{}
	ahora := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

	svc := &evidenciaService{
		evidenciaRepo: evRepo,
		metaRepo:      metaRepo,
		envioRepo:     envioRepo,
		notifier:      notifier,
		now:           func() time.Time { return ahora },
	}

	return &entorno{
		metaRepo:  metaRepo,
		evRepo:    evRepo,
		envioRepo: envioRepo,
		notifier:  notifier,
		svc:       svc,
		ahora:     ahora,
		usuarioID: uuid.New(),
		areaID:    uuid.New(),
	}
}

func (e *entorno) nuevaMeta(t *testing.T, trimestres ...int) *models.Meta {
	t.Helper()
	meta := &models.Meta{
		ID:     uuid.New(),
		AreaID: e.areaID,
		Anio:   2026,
		Meta:   "Digitalizar expedientes",
	}
	for _, tr := range trimestres {
		switch tr {
		case 1:
			meta.T1 = true
		case 2:
			meta.T2 = true
		case 3:
			meta.T3 = true
		case 4:
			meta.T4 = true
		}
	}
	if err := e.metaRepo.Create(meta); err != nil {
		t.Fatalf("create meta: %v", err)
	}
	return meta
}

func archivoDePrueba() models.ArchivoRef {
	return models.ArchivoRef{
		URL:    "/uploads/evidencia_abc.pdf",
		Nombre: "informe_t1.pdf",
		Tipo:   "application/pdf",
		Tamano: 2048,
	}
}

func TestUpsertDraftCreaBorrador(t *testing.T) {
	e := nuevoEntorno()
	meta := e.nuevaMeta(t, 1)

	ev, err := e.svc.UpsertDraft(e.usuarioID, meta.ID, 1, "avance del 40%", archivoDePrueba())
	if err != nil {
		t.Fatalf("upsert draft: %v", err)
	}
	if ev.Estado != models.EstadoNoEnviada {
		t.Fatalf("expected estado no_enviada, got %q", ev.Estado)
	}
	if ev.Calificacion != nil {
		t.Fatal("a draft must not carry a grade")
	}
	if ev.FechaEnvio != nil {
		t.Fatal("a draft must not carry fecha_envio")
	}
}

func TestUpsertDraftReescribeBorradorAntesDelEnvio(t *testing.T) {
	e := nuevoEntorno()
	meta := e.nuevaMeta(t, 1)

	primero, err := e.svc.UpsertDraft(e.usuarioID, meta.ID, 1, "primer intento", archivoDePrueba())
	if err != nil {
		t.Fatalf("first draft: %v", err)
	}

	archivo := archivoDePrueba()
	archivo.Nombre = "informe_corregido.pdf"
	segundo, err := e.svc.UpsertDraft(e.usuarioID, meta.ID, 1, "versión corregida", archivo)
	if err != nil {
		t.Fatalf("second draft: %v", err)
	}
	if segundo.ID != primero.ID {
		t.Fatal("rewrite must reuse the existing row")
	}
	if segundo.Descripcion != "versión corregida" {
		t.Fatalf("expected rewritten descripcion, got %q", segundo.Descripcion)
	}
	if segundo.ArchivoNombre != "informe_corregido.pdf" {
		t.Fatalf("expected rewritten archivo, got %q", segundo.ArchivoNombre)
	}
}

func TestUpsertDraftRechazaMetaFueraDelTrimestre(t *testing.T) {
	e := nuevoEntorno()
	meta := e.nuevaMeta(t, 2)

	_, err := e.svc.UpsertDraft(e.usuarioID, meta.ID, 1, "avance", archivoDePrueba())
	var estadoInvalido *InvalidStateError
	if !errors.As(err, &estadoInvalido) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestUpsertDraftRechazaMetaDesconocida(t *testing.T) {
	e := nuevoEntorno()

	_, err := e.svc.UpsertDraft(e.usuarioID, uuid.New(), 1, "avance", archivoDePrueba())
	var noEncontrada *NotFoundError
	if !errors.As(err, &noEncontrada) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

// enviarTrimestre drafts every goal and performs the batch submission.
func (e *entorno) enviarTrimestre(t *testing.T, trimestre int, metas ...*models.Meta) {
	t.Helper()
	for _, meta := range metas {
		if _, err := e.svc.UpsertDraft(e.usuarioID, meta.ID, trimestre, "avance", archivoDePrueba()); err != nil {
			t.Fatalf("draft meta %s: %v", meta.ID, err)
		}
	}
	envios := &envioService{
		envioRepo:     e.envioRepo,
		metaRepo:      e.metaRepo,
		evidenciaRepo: e.evRepo,
		now:           func() time.Time { return e.ahora },
	}
	if _, err := envios.SubmitQuarter(e.usuarioID, e.areaID, trimestre); err != nil {
		t.Fatalf("submit quarter: %v", err)
	}
}

func TestUpsertDraftRechazaPendienteTrasEnvio(t *testing.T) {
	e := nuevoEntorno()
	meta := e.nuevaMeta(t, 1)
	e.enviarTrimestre(t, 1, meta)

	_, err := e.svc.UpsertDraft(e.usuarioID, meta.ID, 1, "edición tardía", archivoDePrueba())
	var estadoInvalido *InvalidStateError
	if !errors.As(err, &estadoInvalido) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
	if estadoInvalido.Estado != models.EstadoPendiente {
		t.Fatalf("expected estado pendiente in error, got %q", estadoInvalido.Estado)
	}
}

func TestRevisarApruebaYNotifica(t *testing.T) {
	e := nuevoEntorno()
	meta := e.nuevaMeta(t, 1)
	e.enviarTrimestre(t, 1, meta)

	ev, err := e.svc.Get(meta.ID, 1)
	if err != nil || ev == nil {
		t.Fatalf("get evidencia: %v", err)
	}

	comentario := "bien documentada"
	revisada, err := e.svc.Revisar(ev.ID, uuid.New(), 85, &comentario, models.EstadoAprobado)
	if err != nil {
		t.Fatalf("revisar: %v", err)
	}
	if revisada.Estado != models.EstadoAprobado {
		t.Fatalf("expected aprobado, got %q", revisada.Estado)
	}
	if revisada.Calificacion == nil || *revisada.Calificacion != 85 {
		t.Fatalf("expected calificacion 85, got %v", revisada.Calificacion)
	}
	if revisada.FechaRevision == nil {
		t.Fatal("expected fecha_revision stamped")
	}
	if len(e.notifier.enviadas) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(e.notifier.enviadas))
	}
	if e.notifier.enviadas[0].Decision != models.EstadoAprobado {
		t.Fatalf("expected aprobado notification, got %q", e.notifier.enviadas[0].Decision)
	}
}

func TestRevisarSoloAceptaPendientes(t *testing.T) {
	e := nuevoEntorno()
	meta := e.nuevaMeta(t, 1)
	e.enviarTrimestre(t, 1, meta)

	ev, _ := e.svc.Get(meta.ID, 1)
	if _, err := e.svc.Revisar(ev.ID, uuid.New(), 85, nil, models.EstadoAprobado); err != nil {
		t.Fatalf("first review: %v", err)
	}

	// A second review of the same row must be rejected: no transition skips
	// pendiente.
	_, err := e.svc.Revisar(ev.ID, uuid.New(), 10, nil, models.EstadoRechazado)
	var estadoInvalido *InvalidStateError
	if !errors.As(err, &estadoInvalido) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}

	actual, _ := e.svc.Get(meta.ID, 1)
	if actual.Estado != models.EstadoAprobado || *actual.Calificacion != 85 {
		t.Fatal("rejected second review must not mutate the row")
	}
}

func TestRevisarCalificacionFueraDeRango(t *testing.T) {
	e := nuevoEntorno()
	meta := e.nuevaMeta(t, 1)
	e.enviarTrimestre(t, 1, meta)
	ev, _ := e.svc.Get(meta.ID, 1)

	for _, valor := range []int{-1, 101} {
		_, err := e.svc.Revisar(ev.ID, uuid.New(), valor, nil, models.EstadoAprobado)
		var fueraDeRango *OutOfRangeError
		if !errors.As(err, &fueraDeRango) {
			t.Fatalf("valor %d: expected OutOfRangeError, got %v", valor, err)
		}
	}

	actual, _ := e.svc.Get(meta.ID, 1)
	if actual.Estado != models.EstadoPendiente || actual.Calificacion != nil {
		t.Fatal("rejected review must not mutate the row")
	}
}

func TestReenvioDeRechazadaLimpiaRevision(t *testing.T) {
	e := nuevoEntorno()
	metaA := e.nuevaMeta(t, 1)
	metaB := e.nuevaMeta(t, 1)
	e.enviarTrimestre(t, 1, metaA, metaB)

	evA, _ := e.svc.Get(metaA.ID, 1)
	evB, _ := e.svc.Get(metaB.ID, 1)

	comentarioA := "correcta"
	if _, err := e.svc.Revisar(evA.ID, uuid.New(), 85, &comentarioA, models.EstadoAprobado); err != nil {
		t.Fatalf("approve A: %v", err)
	}
	comentarioB := "falta anexo"
	if _, err := e.svc.Revisar(evB.ID, uuid.New(), 40, &comentarioB, models.EstadoRechazado); err != nil {
		t.Fatalf("reject B: %v", err)
	}

	// Row-scoped resubmission of B only.
	archivo := archivoDePrueba()
	archivo.Nombre = "anexo_completo.pdf"
	reenviada, err := e.svc.UpsertDraft(e.usuarioID, metaB.ID, 1, "con anexo", archivo)
	if err != nil {
		t.Fatalf("resubmit B: %v", err)
	}
	if reenviada.Estado != models.EstadoPendiente {
		t.Fatalf("expected pendiente after resubmit, got %q", reenviada.Estado)
	}
	if reenviada.Calificacion != nil || reenviada.ComentarioAdmin != nil || reenviada.FechaRevision != nil {
		t.Fatal("resubmit must clear the previous review")
	}
	if reenviada.FechaEnvio == nil || !reenviada.FechaEnvio.Equal(e.ahora) {
		t.Fatal("resubmit must restamp fecha_envio")
	}

	// A is untouched.
	actualA, _ := e.svc.Get(metaA.ID, 1)
	if actualA.Estado != models.EstadoAprobado || *actualA.Calificacion != 85 {
		t.Fatal("resubmitting B must not touch A")
	}
}

func TestEditarRevisionCorrigeSinCambiarEstado(t *testing.T) {
	e := nuevoEntorno()
	meta := e.nuevaMeta(t, 1)
	e.enviarTrimestre(t, 1, meta)
	ev, _ := e.svc.Get(meta.ID, 1)

	if _, err := e.svc.Revisar(ev.ID, uuid.New(), 40, nil, models.EstadoRechazado); err != nil {
		t.Fatalf("reject: %v", err)
	}

	comentario := "puntaje recalculado"
	corregida, err := e.svc.EditarRevision(ev.ID, 55, &comentario)
	if err != nil {
		t.Fatalf("edit review: %v", err)
	}
	if corregida.Estado != models.EstadoRechazado {
		t.Fatalf("edit must not change estado, got %q", corregida.Estado)
	}
	if *corregida.Calificacion != 55 {
		t.Fatalf("expected calificacion 55, got %d", *corregida.Calificacion)
	}
}

func TestEditarRevisionRechazaPendiente(t *testing.T) {
	e := nuevoEntorno()
	meta := e.nuevaMeta(t, 1)
	e.enviarTrimestre(t, 1, meta)
	ev, _ := e.svc.Get(meta.ID, 1)

	_, err := e.svc.EditarRevision(ev.ID, 90, nil)
	var estadoInvalido *InvalidStateError
	if !errors.As(err, &estadoInvalido) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}
}

func TestEliminarEsTerminal(t *testing.T) {
	e := nuevoEntorno()
	meta := e.nuevaMeta(t, 1)
	e.enviarTrimestre(t, 1, meta)
	ev, _ := e.svc.Get(meta.ID, 1)

	if err := e.svc.Eliminar(ev.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var noEncontrada *NotFoundError
	if err := e.svc.Eliminar(ev.ID); !errors.As(err, &noEncontrada) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
	if _, err := e.svc.Revisar(ev.ID, uuid.New(), 80, nil, models.EstadoAprobado); !errors.As(err, &noEncontrada) {
		t.Fatalf("expected NotFoundError reviewing deleted row, got %v", err)
	}

	restante, err := e.svc.Get(meta.ID, 1)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if restante != nil {
		t.Fatal("deleted row must read as unsent")
	}
}
