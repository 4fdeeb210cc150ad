package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Alison-Albino/EccoServ88-sub000/internal/storage"
)

const (
	maxPhotoSize    = 10 << 20 // 10 MB
	maxDocumentSize = 20 << 20 // 20 MB
	thumbnailSize   = 320
)

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var documentExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// FileKind distinguishes the two upload categories of a visit.
type FileKind string

const (
	FileKindPhoto    FileKind = "photos"
	FileKindDocument FileKind = "documents"
)

// UploadService stores visit photos and documents through the configured
// storage driver.
type UploadService struct {
	driver storage.Driver
}

func NewUploadService(driver storage.Driver) *UploadService {
	return &UploadService{driver: driver}
}

// ValidateFile checks extension and size before anything touches storage.
func (s *UploadService) ValidateFile(header *multipart.FileHeader, kind FileKind) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))

	switch kind {
	case FileKindPhoto:
		if !photoExtensions[ext] {
			return fmt.Errorf("%w: unsupported photo type %q", ErrValidation, ext)
		}
		if header.Size > maxPhotoSize {
			return fmt.Errorf("%w: photo exceeds %d bytes", ErrValidation, maxPhotoSize)
		}
	case FileKindDocument:
		if !documentExtensions[ext] {
			return fmt.Errorf("%w: unsupported document type %q", ErrValidation, ext)
		}
		if header.Size > maxDocumentSize {
			return fmt.Errorf("%w: document exceeds %d bytes", ErrValidation, maxDocumentSize)
		}
	default:
		return fmt.Errorf("%w: unknown file kind %q", ErrValidation, kind)
	}

	return nil
}

// StoredVisitFile describes one uploaded file: where it landed in storage and
// the URL recorded on the visit. ThumbnailPath is set only for photos whose
// thumbnail was generated.
type StoredVisitFile struct {
	Path          string
	PublicURL     string
	ThumbnailPath string
}

// SaveVisitFile uploads one file under the visit's directory. Photos also get
// a thumbnail, generated best effort.
func (s *UploadService) SaveVisitFile(ctx context.Context, visitID uuid.UUID, kind FileKind, header *multipart.FileHeader) (*StoredVisitFile, error) {
	if err := s.ValidateFile(header, kind); err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	path := fmt.Sprintf("visits/%s/%s/%s%s", visitID, kind, uuid.New(), ext)

	storagePath, publicURL, err := s.driver.Upload(ctx, file, path)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	stored := &StoredVisitFile{Path: storagePath, PublicURL: publicURL}

	if kind == FileKindPhoto && ext != ".webp" {
		thumbPath, err := s.createThumbnail(ctx, storagePath, ext)
		if err != nil {
			logrus.WithError(err).WithField("path", storagePath).Warn("failed to generate thumbnail")
		} else {
			stored.ThumbnailPath = thumbPath
		}
	}

	return stored, nil
}

// createThumbnail stores a small variant next to the original, named with a
// _thumb suffix, and returns its storage path.
func (s *UploadService) createThumbnail(ctx context.Context, storagePath, ext string) (string, error) {
	reader, err := s.driver.GetReader(ctx, storagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read original photo: %w", err)
	}
	defer reader.Close()

	srcImage, _, err := image.Decode(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode photo: %w", err)
	}

	thumb := imaging.Fit(srcImage, thumbnailSize, thumbnailSize, imaging.Lanczos)

	buf := &bytes.Buffer{}
	switch ext {
	case ".png":
		err = png.Encode(buf, thumb)
	default:
		err = jpeg.Encode(buf, thumb, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	thumbPath := strings.TrimSuffix(storagePath, ext) + "_thumb" + ext
	if _, _, err := s.driver.Upload(ctx, buf, thumbPath); err != nil {
		return "", fmt.Errorf("failed to upload thumbnail: %w", err)
	}

	return thumbPath, nil
}

// DeleteVisitFile removes a stored file.
func (s *UploadService) DeleteVisitFile(ctx context.Context, path string) error {
	return s.driver.Delete(ctx, path)
}

// CleanupVisitFiles removes files that were uploaded for a visit whose record
// never made it to the database. Best effort: failures are logged, not
// returned.
func (s *UploadService) CleanupVisitFiles(ctx context.Context, files []StoredVisitFile) {
	for _, f := range files {
		if err := s.DeleteVisitFile(ctx, f.Path); err != nil {
			logrus.WithError(err).WithField("path", f.Path).Warn("failed to clean up uploaded file")
		}
		if f.ThumbnailPath == "" {
			continue
		}
		if err := s.DeleteVisitFile(ctx, f.ThumbnailPath); err != nil {
			logrus.WithError(err).WithField("path", f.ThumbnailPath).Warn("failed to clean up thumbnail")
		}
	}
}
