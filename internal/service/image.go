package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"herovault/internal/apperr"
	"herovault/internal/blob"
	"herovault/internal/model"
	"herovault/internal/repo"
)

// ImageService handles uploads: bytes go to the blob store, a row goes to
// the images table. The new image is unattached until a superhero links it.
type ImageService struct {
	repo   repo.ImageRepository
	store  blob.Store
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewImageService(r repo.ImageRepository, store blob.Store, logger *zap.SugaredLogger) *ImageService {
	return &ImageService{repo: r, store: store, logger: logger, now: time.Now}
}

func (s *ImageService) Upload(ctx context.Context, filename, contentType string, data []byte) (*model.Image, error) {
	if len(data) == 0 {
		return nil, apperr.BadRequest("File is required")
	}
	path, err := s.store.Save(ctx, filename, contentType, data)
	switch {
	case errors.Is(err, blob.ErrUnsupportedType):
		return nil, apperr.BadRequest("Invalid image type. Allowed types: jpeg, jpg, png, webp")
	case errors.Is(err, blob.ErrTooLarge):
		return nil, apperr.PayloadTooLarge("File too large")
	case err != nil:
		s.logger.Errorw("blob store save failed", "file", filename, "error", err)
		return nil, err
	}

	img := &model.Image{ID: uuid.NewString(), ImagePath: path, CreatedAt: s.now().UTC()}
	if err := s.repo.Create(ctx, img); err != nil {
		return nil, err
	}
	s.logger.Infow("image uploaded", "id", img.ID, "path", path, "size", len(data))
	return img, nil
}
