package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/breska/backoffice/internal/domain"
)

const maxUploadSize = 5 << 20 // 5 MiB

var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
	"text/plain":      true,
}

// MediaUC stores uploaded files on disk and their metadata in the database.
type MediaUC struct {
	Media   domain.MediaRepo
	Storage domain.FileStorage
}

type UploadInput struct {
	OriginalName string
	MimeType     string
	Data         []byte
	Folder       string
	Alt          string
	UploadedBy   *uuid.UUID
}

func (uc *MediaUC) List(ctx context.Context, f domain.MediaFilter) ([]domain.MediaFile, int64, error) {
	return uc.Media.List(ctx, f)
}

func (uc *MediaUC) Get(ctx context.Context, id uuid.UUID) (*domain.MediaFile, error) {
	return uc.Media.FindByID(ctx, id)
}

func (uc *MediaUC) Upload(ctx context.Context, in UploadInput) (*domain.MediaFile, error) {
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrValidation)
	}
	if len(in.Data) > maxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds 5MB limit", domain.ErrValidation)
	}
	if !allowedMimeTypes[in.MimeType] {
		return nil, fmt.Errorf("%w: file type %s not allowed", domain.ErrValidation, in.MimeType)
	}
	folder := strings.Trim(in.Folder, "/")
	if folder == "" {
		folder = "media"
	}
	filename := uniqueFilename(in.OriginalName)
	url, err := uc.Storage.Save(folder, filename, in.Data)
	if err != nil {
		return nil, err
	}
	m := &domain.MediaFile{
		Filename:     filename,
		OriginalName: in.OriginalName,
		MimeType:     in.MimeType,
		Size:         int64(len(in.Data)),
		URL:          url,
		Alt:          in.Alt,
		Folder:       "/" + folder,
		UploadedBy:   in.UploadedBy,
	}
	if err := uc.Media.Create(ctx, m); err != nil {
		if rmErr := uc.Storage.Remove(url); rmErr != nil {
			log.Warn().Err(rmErr).Str("url", url).Msg("orphan upload cleanup failed")
		}
		return nil, err
	}
	return m, nil
}

func (uc *MediaUC) UpdateMeta(ctx context.Context, id uuid.UUID, alt string, tags []string) (*domain.MediaFile, error) {
	m, err := uc.Media.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Alt = alt
	if tags != nil {
		m.Tags = tags
	}
	if err := uc.Media.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes the metadata row first; the blob removal is best effort and
// an orphan file on disk is harmless.
func (uc *MediaUC) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := uc.Media.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.Media.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.Storage.Remove(m.URL); err != nil {
		log.Warn().Err(err).Str("url", m.URL).Msg("media blob removal failed")
	}
	return nil
}

// uniqueFilename keeps a slug of the original base name for readability and
// appends a timestamp plus random suffix to avoid collisions.
func uniqueFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := Slugify(strings.TrimSuffix(filepath.Base(original), ext))
	if base == "" {
		base = "file"
	}
	if len(base) > 60 {
		base = base[:60]
	}
	return fmt.Sprintf("%s-%d-%04d%s", base, time.Now().UnixMilli(), rand.Intn(10000), ext)
}
