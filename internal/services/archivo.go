package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"seguimiento/metas-api/internal/models"
)

// ArchivoService resolves an uploaded file into the {url, nombre, tipo,
// tamano} tuple the engine stores. The engine never reads file contents.
type ArchivoService interface {
	SaveFile(file *multipart.FileHeader) (*models.ArchivoRef, error)
	DeleteFile(nombre string) error
	EnsureUploadDir() error
}

var extensionesPermitidas = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".zip":  true,
}

type archivoService struct {
	uploadPath string
}

func NewArchivoService(uploadPath string) ArchivoService {
	return &archivoService{
		uploadPath: uploadPath,
	}
}

func (s *archivoService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

func (s *archivoService) SaveFile(file *multipart.FileHeader) (*models.ArchivoRef, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !extensionesPermitidas[ext] {
		return nil, fmt.Errorf("invalid file extension: %s", ext)
	}

	uniqueFilename := fmt.Sprintf("evidencia_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &models.ArchivoRef{
		URL:    "/uploads/" + uniqueFilename,
		Nombre: file.Filename,
		Tipo:   file.Header.Get("Content-Type"),
		Tamano: file.Size,
	}, nil
}

func (s *archivoService) DeleteFile(nombre string) error {
	filePath := filepath.Join(s.uploadPath, filepath.Base(nombre))
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
