package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"herovault/internal/apperr"
	"herovault/internal/model"
	"herovault/internal/repo"
)

const (
	DefaultPage  = 1
	DefaultLimit = 5
)

// SuperheroService implements create/list/get/update/remove of superheroes
// and the image-linking rules on top of repo.SuperheroRepository.
type SuperheroService struct {
	repo   repo.SuperheroRepository
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewSuperheroService(r repo.SuperheroRepository, logger *zap.SugaredLogger) *SuperheroService {
	return &SuperheroService{repo: r, logger: logger, now: time.Now}
}

// SetClock replaces the time source used for createdAt stamps.
func (s *SuperheroService) SetClock(now func() time.Time) {
	s.now = now
}

func (s *SuperheroService) Create(ctx context.Context, in CreateSuperheroInput) (*model.Superhero, error) {
	if err := in.Validate(); err != nil {
		return nil, apperr.FromValidation(err)
	}
	now := s.now().UTC()
	hero := &model.Superhero{
		ID:                uuid.NewString(),
		Nickname:          in.Nickname,
		RealName:          in.RealName,
		OriginDescription: in.OriginDescription,
		CatchPhrase:       in.CatchPhrase,
		Superpowers:       superpowers(in.Superpowers),
		CreatedAt:         now,
	}
	created, err := s.repo.Create(ctx, hero, buildImageSet(in.Images, now))
	if err != nil {
		return nil, err
	}
	s.logger.Infow("superhero created", "id", created.ID, "images", len(created.Images))
	return created, nil
}

// FindAll returns page number page of size limit, ordered by creation time.
// A page past the end yields empty data, not an error.
func (s *SuperheroService) FindAll(ctx context.Context, page, limit int) (*model.Page[model.SuperheroPreview], error) {
	if page < 1 {
		return nil, apperr.BadRequest("page must be a positive integer")
	}
	if limit < 1 {
		return nil, apperr.BadRequest("limit must be a positive integer")
	}

	data := []model.SuperheroPreview{}
	if page-1 <= math.MaxInt32/limit {
		var err error
		data, err = s.repo.FindPreviews(ctx, (page-1)*limit, limit)
		if err != nil {
			return nil, err
		}
		if data == nil {
			data = []model.SuperheroPreview{}
		}
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Page[model.SuperheroPreview]{
		Data:     data,
		Total:    total,
		Page:     page,
		LastPage: lastPage(total, limit),
	}, nil
}

func (s *SuperheroService) FindOne(ctx context.Context, id string) (*model.Superhero, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SuperheroService) Update(ctx context.Context, id string, in UpdateSuperheroInput) (*model.Superhero, error) {
	if err := in.Validate(); err != nil {
		return nil, apperr.FromValidation(err)
	}
	var set *repo.ImageSet
	if in.Images != nil {
		set = buildImageSet(*in.Images, s.now().UTC())
	}
	updated, err := s.repo.Update(ctx, id, in.columns(), set)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("superhero updated", "id", id, "imagesReplaced", set != nil)
	return updated, nil
}

// Remove deletes the superhero and returns it as it was before deletion.
// Its images are detached, not deleted.
func (s *SuperheroService) Remove(ctx context.Context, id string) (*model.Superhero, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("superhero removed", "id", id)
	return removed, nil
}

func lastPage(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}

// buildImageSet splits refs into ids to link and rows to create. New rows get
// increasing timestamps so their order is kept.
func buildImageSet(refs []model.ImageRef, now time.Time) *repo.ImageSet {
	set := &repo.ImageSet{}
	for _, ref := range refs {
		if ref.IsLink() {
			set.Connect = append(set.Connect, ref.ID)
			continue
		}
		set.Create = append(set.Create, model.Image{
			ID:        uuid.NewString(),
			ImagePath: ref.ImagePath,
			CreatedAt: now.Add(time.Duration(len(set.Create)) * time.Microsecond),
		})
	}
	return set
}
