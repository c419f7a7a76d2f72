package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"crowdfunding-service/internal/models"
	"crowdfunding-service/internal/repository"
)

// ImageService stores project images in MinIO and records the resulting
// URL on the project.
type ImageService struct {
	repo       repository.ProjectRepository
	minio      *minio.Client
	bucketName string
	useSSL     bool
}

// NewImageService creates a new ImageService with the given repository and
// storage client.
func NewImageService(repo repository.ProjectRepository, minioClient *minio.Client, bucketName string, useSSL bool) *ImageService {
	return &ImageService{
		repo:       repo,
		minio:      minioClient,
		bucketName: bucketName,
		useSSL:     useSSL,
	}
}

// isAllowedImageExtension checks if a file extension is supported for
// project images.
func isAllowedImageExtension(ext string) bool {
	allowed := map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	}
	return allowed[ext]
}

// AttachImage uploads the file to MinIO under the project's prefix, sets
// the project's image URL and persists it.
func (s *ImageService) AttachImage(id uuid.UUID, fileHeader *multipart.FileHeader) (*models.Project, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !isAllowedImageExtension(ext) {
		return nil, errors.Wrapf(ErrUnsupportedImage, "%s", ext)
	}

	project, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, errors.Wrap(err, "loading project")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "could not open uploaded file")
	}
	defer src.Close()

	objectKey := fmt.Sprintf("projects/%s/%s%s", project.ID, uuid.New().String(), ext)
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.minio.PutObject(context.Background(), s.bucketName, objectKey, src, fileHeader.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, errors.Wrap(err, "uploading image")
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	project.ImageURL = fmt.Sprintf("%s://%s/%s/%s", scheme, s.minio.EndpointURL().Host, s.bucketName, objectKey)

	if err := s.repo.Save(project); err != nil {
		return nil, errors.Wrap(err, "saving project")
	}
	return project, nil
}
