package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/atelier-nova/atelier_api/dto"
	"github.com/atelier-nova/atelier_api/shared"
)

// MediaService stores uploaded images. The default backend writes into a
// public directory served as /uploads; setting MEDIA_STORAGE=minio swaps in
// the object-storage backend without touching callers.
type MediaService struct {
	context.DefaultService

	uploadDir string
	baseURL   string
	backend   string

	minioSvc *MinIOService
}

const MEDIA_SVC = "media_svc"

const (
	mediaBackendLocal = "local"
	mediaBackendMinio = "minio"

	maxUploadBytes  = 10 * 1024 * 1024
	defaultUploads  = "public/uploads"
	presignedExpiry = 24 * time.Hour
)

var allowedImageExts = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

var unsafeFilenamePattern = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	svc.uploadDir = os.Getenv("UPLOAD_DIR")
	if svc.uploadDir == "" {
		svc.uploadDir = defaultUploads
	}

	svc.baseURL = os.Getenv("BASE_URL")
	if svc.baseURL == "" {
		svc.baseURL = "http://localhost:8000"
	}

	svc.backend = os.Getenv("MEDIA_STORAGE")
	if svc.backend == "" {
		svc.backend = mediaBackendLocal
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	if svc.backend == mediaBackendMinio {
		svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	}
	return nil
}

// UploadDir exposes the local directory for static serving.
func (svc *MediaService) UploadDir() string {
	return svc.uploadDir
}

// Upload validates and stores one image, returning its public URL. Object
// names are timestamp-prefixed sanitized originals, so repeated uploads of
// the same file never collide.
func (svc *MediaService) Upload(file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	mimeType, ok := allowedImageExts[ext]
	if !ok {
		return nil, shared.NewBadRequestError(nil, "Unsupported image format. Supported: PNG, JPG, GIF, WebP, SVG")
	}

	if file.Size > maxUploadBytes {
		return nil, shared.NewBadRequestError(nil, "Image exceeds the 10MB upload limit")
	}

	objectName := fmt.Sprintf("%d-%s", time.Now().Unix(), sanitizeFilename(file.Filename))

	var url string
	var err error
	if svc.backend == mediaBackendMinio {
		url, err = svc.uploadToMinio(objectName, file, mimeType)
	} else {
		url, err = svc.uploadToDisk(objectName, file)
	}
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"object":  objectName,
		"backend": svc.backend,
		"size":    file.Size,
	}).Info("Media uploaded")

	return &dto.MediaUploadResponse{
		FileName: objectName,
		URL:      url,
		Size:     file.Size,
		MimeType: mimeType,
	}, nil
}

// Delete removes a previously uploaded object by name.
func (svc *MediaService) Delete(name string) error {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return shared.NewBadRequestError(nil, "Invalid file name")
	}

	if svc.backend == mediaBackendMinio {
		if err := svc.minioSvc.DeleteFile(name); err != nil {
			return shared.NewInternalError(err, "Failed to delete media")
		}
		return nil
	}

	err := os.Remove(filepath.Join(svc.uploadDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return shared.NewNotFoundError(err, "File not found")
		}
		return shared.NewInternalError(err, "Failed to delete media")
	}

	return nil
}

func (svc *MediaService) uploadToDisk(objectName string, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(svc.uploadDir, 0o755); err != nil {
		return "", shared.NewInternalError(err, "Failed to prepare upload directory")
	}

	src, err := file.Open()
	if err != nil {
		return "", shared.NewInternalError(err, "Failed to read upload")
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(svc.uploadDir, objectName))
	if err != nil {
		return "", shared.NewInternalError(err, "Failed to store upload")
	}
	defer dst.Close()

	if _, err := dst.ReadFrom(src); err != nil {
		return "", shared.NewInternalError(err, "Failed to store upload")
	}

	return "/uploads/" + objectName, nil
}

func (svc *MediaService) uploadToMinio(objectName string, file *multipart.FileHeader, mimeType string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", shared.NewInternalError(err, "Failed to read upload")
	}
	defer src.Close()

	if _, err := svc.minioSvc.UploadFile(objectName, src, file.Size, mimeType); err != nil {
		return "", shared.NewInternalError(err, "Failed to store upload")
	}

	url, err := svc.minioSvc.GetFileURL(objectName, presignedExpiry)
	if err != nil {
		return "", shared.NewInternalError(err, "Failed to build media URL")
	}

	return url, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "-")
	return unsafeFilenamePattern.ReplaceAllString(base, "")
}
