package models

import "time"

// ArchivoRef is the resolved pointer to an externally stored file. The
// engine stores and forwards the tuple; it never reads file contents.
type ArchivoRef struct {
	URL    string `json:"url" validate:"required"`
	Nombre string `json:"nombre" validate:"required"`
	Tipo   string `json:"tipo"`
	Tamano int64  `json:"tamano" validate:"gte=0"`
}

type CrearMetaRequest struct {
	AreaID      string `json:"area_id" validate:"required,uuid"`
	Anio        int    `json:"anio" validate:"required,gte=2000"`
	Meta        string `json:"meta" validate:"required"`
	Indicador   string `json:"indicador"`
	Accion      string `json:"accion"`
	Presupuesto string `json:"presupuesto"`
	T1          bool   `json:"t1"`
	T2          bool   `json:"t2"`
	T3          bool   `json:"t3"`
	T4          bool   `json:"t4"`
}

type DraftEvidenciaRequest struct {
	MetaID      string     `json:"meta_id" validate:"required,uuid"`
	Trimestre   int        `json:"trimestre" validate:"required,min=1,max=4"`
	Descripcion string     `json:"descripcion" validate:"required"`
	Archivo     ArchivoRef `json:"archivo" validate:"required"`
}

type EnvioTrimestreRequest struct {
	Trimestre int `json:"trimestre" validate:"required,min=1,max=4"`
}

type RevisionRequest struct {
	Calificacion int     `json:"calificacion" validate:"min=0,max=100"`
	Comentario   *string `json:"comentario"`
	Decision     string  `json:"decision" validate:"required,oneof=aprobado rechazado"`
}

type EditarRevisionRequest struct {
	Calificacion int     `json:"calificacion" validate:"min=0,max=100"`
	Comentario   *string `json:"comentario"`
}

type CalificacionTrimestreRequest struct {
	UsuarioID           string  `json:"usuario_id" validate:"required,uuid"`
	AreaID              string  `json:"area_id" validate:"required,uuid"`
	Trimestre           int     `json:"trimestre" validate:"required,min=1,max=4"`
	CalcularAutomatico  bool    `json:"calcular_automatico"`
	CalificacionGeneral *int    `json:"calificacion_general"`
	ComentarioGeneral   *string `json:"comentario_general"`
}

type ArchivoResponse struct {
	URL    string `json:"url"`
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo"`
	Tamano int64  `json:"tamano"`
}

// PromedioAnual is the annual rollup: one slot per quarter (0 when the
// quarter was never scored) and the general average over scored quarters
// only.
type PromedioAnual struct {
	T1              int `json:"t1"`
	T2              int `json:"t2"`
	T3              int `json:"t3"`
	T4              int `json:"t4"`
	PromedioGeneral int `json:"promedio_general"`
}

// EvidenciaAprobada is the reporting projection over approved evidence.
type EvidenciaAprobada struct {
	EvidenciaID   string    `json:"evidencia_id"`
	Meta          string    `json:"meta"`
	Indicador     string    `json:"indicador"`
	Trimestre     int       `json:"trimestre"`
	Descripcion   string    `json:"descripcion"`
	ArchivoURL    string    `json:"archivo_url"`
	ArchivoNombre string    `json:"archivo_nombre"`
	Calificacion  int       `json:"calificacion"`
	AreaNombre    string    `json:"area_nombre"`
	UsuarioNombre string    `json:"usuario_nombre"`
	FechaRevision time.Time `json:"fecha_revision"`
}
