package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seguimiento/metas-api/internal/models"
	"seguimiento/metas-api/internal/repositories"
)

type fakeMetaRepo struct {
	metas map[uuid.UUID]*models.Meta
}

func newFakeMetaRepo() *fakeMetaRepo {
	return &fakeMetaRepo{metas: make(map[uuid.UUID]*models.Meta)}
}

func (f *fakeMetaRepo) Create(meta *models.Meta) error {
	f.metas[meta.ID] = meta
	return nil
}

func (f *fakeMetaRepo) Update(meta *models.Meta) error {
	f.metas[meta.ID] = meta
	return nil
}

func (f *fakeMetaRepo) Delete(id uuid.UUID) error {
	if _, ok := f.metas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.metas, id)
	return nil
}

func (f *fakeMetaRepo) FindByID(id uuid.UUID) (*models.Meta, error) {
	meta, ok := f.metas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return meta, nil
}

func (f *fakeMetaRepo) ListForQuarter(areaID uuid.UUID, trimestre int) ([]models.Meta, error) {
	var out []models.Meta
	for _, meta := range f.metas {
		if meta.AreaID == areaID && meta.ParticipaEnTrimestre(trimestre) {
			out = append(out, *meta)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type fakeEvidenciaRepo struct {
	evidencias map[uuid.UUID]*models.Evidencia
	aprobadas  []models.EvidenciaAprobada
}

func newFakeEvidenciaRepo() *fakeEvidenciaRepo {
	return &fakeEvidenciaRepo{evidencias: make(map[uuid.UUID]*models.Evidencia)}
}

func (f *fakeEvidenciaRepo) Create(ev *models.Evidencia) error {
	copia := *ev
	f.evidencias[ev.ID] = &copia
	return nil
}

func (f *fakeEvidenciaRepo) Save(ev *models.Evidencia) error {
	copia := *ev
	f.evidencias[ev.ID] = &copia
	return nil
}

func (f *fakeEvidenciaRepo) FindByID(id uuid.UUID) (*models.Evidencia, error) {
	ev, ok := f.evidencias[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *ev
	return &copia, nil
}

func (f *fakeEvidenciaRepo) FindByMetaAndTrimestre(metaID uuid.UUID, trimestre int) (*models.Evidencia, error) {
	for _, ev := range f.evidencias {
		if ev.MetaID == metaID && ev.Trimestre == trimestre {
			copia := *ev
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeEvidenciaRepo) ListByQuarter(usuarioID, areaID uuid.UUID, trimestre int) ([]models.Evidencia, error) {
	var out []models.Evidencia
	for _, ev := range f.evidencias {
		if ev.UsuarioID == usuarioID && ev.AreaID == areaID && ev.Trimestre == trimestre {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (f *fakeEvidenciaRepo) ListByFilter(areaID *uuid.UUID, trimestre *int, estado *models.EstadoEvidencia) ([]models.Evidencia, error) {
	var out []models.Evidencia
	for _, ev := range f.evidencias {
		if areaID != nil && ev.AreaID != *areaID {
			continue
		}
		if trimestre != nil && ev.Trimestre != *trimestre {
			continue
		}
		if estado != nil && ev.Estado != *estado {
			continue
		}
		out = append(out, *ev)
	}
	return out, nil
}

func (f *fakeEvidenciaRepo) ListAprobadas(areaID *uuid.UUID, search string) ([]models.EvidenciaAprobada, error) {
	return f.aprobadas, nil
}

func (f *fakeEvidenciaRepo) CountByMeta(metaID uuid.UUID) (int64, error) {
	var count int64
	for _, ev := range f.evidencias {
		if ev.MetaID == metaID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEvidenciaRepo) ApplyRevision(id uuid.UUID, desde models.EstadoEvidencia, cambios repositories.RevisionUpdate) error {
	ev, ok := f.evidencias[id]
	if !ok || ev.Estado != desde {
		return gorm.ErrRecordNotFound
	}
	calificacion := cambios.Calificacion
	fecha := cambios.FechaRevision
	ev.Estado = cambios.Estado
	ev.Calificacion = &calificacion
	ev.ComentarioAdmin = cambios.Comentario
	ev.FechaRevision = &fecha
	return nil
}

func (f *fakeEvidenciaRepo) Delete(id uuid.UUID) error {
	if _, ok := f.evidencias[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.evidencias, id)
	return nil
}

type envioKey struct {
	usuarioID uuid.UUID
	areaID    uuid.UUID
	trimestre int
}

type fakeEnvioRepo struct {
	envios     map[envioKey]*models.EnvioTrimestre
	evidencias *fakeEvidenciaRepo
	failCreate error
}

func newFakeEnvioRepo(evidencias *fakeEvidenciaRepo) *fakeEnvioRepo {
	return &fakeEnvioRepo{
		envios:     make(map[envioKey]*models.EnvioTrimestre),
		evidencias: evidencias,
	}
}

func (f *fakeEnvioRepo) Find(usuarioID, areaID uuid.UUID, trimestre int) (*models.EnvioTrimestre, error) {
	envio, ok := f.envios[envioKey{usuarioID, areaID, trimestre}]
	if !ok {
		return nil, nil
	}
	return envio, nil
}

func (f *fakeEnvioRepo) CreateAndMarcarPendientes(envio *models.EnvioTrimestre, metaIDs []uuid.UUID) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	key := envioKey{envio.UsuarioID, envio.AreaID, envio.Trimestre}
	if _, ok := f.envios[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.envios[key] = envio
	for _, metaID := range metaIDs {
		for _, ev := range f.evidencias.evidencias {
			if ev.MetaID == metaID && ev.Trimestre == envio.Trimestre && ev.Estado == models.EstadoNoEnviada {
				fecha := envio.FechaEnvio
				ev.Estado = models.EstadoPendiente
				ev.FechaEnvio = &fecha
			}
		}
	}
	return nil
}

type calificacionKey struct {
	usuarioID uuid.UUID
	areaID    uuid.UUID
	trimestre int
}

type fakeCalificacionRepo struct {
	calificaciones map[calificacionKey]*models.CalificacionTrimestre
}

func newFakeCalificacionRepo() *fakeCalificacionRepo {
	return &fakeCalificacionRepo{calificaciones: make(map[calificacionKey]*models.CalificacionTrimestre)}
}

func (f *fakeCalificacionRepo) Upsert(c *models.CalificacionTrimestre) error {
	copia := *c
	f.calificaciones[calificacionKey{c.UsuarioID, c.AreaID, c.Trimestre}] = &copia
	return nil
}

func (f *fakeCalificacionRepo) Find(usuarioID, areaID uuid.UUID, trimestre int) (*models.CalificacionTrimestre, error) {
	c, ok := f.calificaciones[calificacionKey{usuarioID, areaID, trimestre}]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (f *fakeCalificacionRepo) ListByUsuarioArea(usuarioID, areaID uuid.UUID) ([]models.CalificacionTrimestre, error) {
	var out []models.CalificacionTrimestre
	for _, c := range f.calificaciones {
		if c.UsuarioID == usuarioID && c.AreaID == areaID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Trimestre < out[j].Trimestre
	})
	return out, nil
}

type fakeNotifier struct {
	enviadas []Notificacion
}

func (f *fakeNotifier) Start(ctx context.Context) {}

func (f *fakeNotifier) Enqueue(n Notificacion) {
	f.enviadas = append(f.enviadas, n)
}

func (f *fakeNotifier) Stop() {}
