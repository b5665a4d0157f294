package repo

import (
	"context"

	"gorm.io/gorm"

	"herovault/internal/dberr"
	"herovault/internal/model"
)

// ImageRepository stores uploaded image records.
type ImageRepository interface {
	Create(ctx context.Context, img *model.Image) error
	FindByID(ctx context.Context, id string) (*model.Image, error)
}

type imageRepo struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepo{db: db}
}

func (r *imageRepo) Create(ctx context.Context, img *model.Image) error {
	return dberr.Classify(r.db.WithContext(ctx).Create(img).Error)
}

func (r *imageRepo) FindByID(ctx context.Context, id string) (*model.Image, error) {
	var img model.Image
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&img).Error; err != nil {
		return nil, dberr.Classify(err)
	}
	return &img, nil
}
