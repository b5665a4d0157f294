package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"herovault/internal/dberr"
	"herovault/internal/model"
)

const (
	// ConstraintHeroImages is the database foreign key images.superhero_id -> superheroes.id.
	ConstraintHeroImages = "fk_superheroes_images"
	// ConstraintImageLink is reported when a linked image id does not exist.
	ConstraintImageLink = "superhero_images_link"
	// IndexHeroNickname is the unique index on superheroes.nickname.
	IndexHeroNickname = "idx_superheroes_nickname"
)

// ConstraintFields maps constraint and index names to the request field
// a client has to fix.
var ConstraintFields = map[string]string{
	ConstraintHeroImages: "superheroId",
	ConstraintImageLink:  "images",
	IndexHeroNickname:    "nickname",
}

// ImageSet describes the images attached to a superhero in one write:
// existing images to link by id and new rows to create already linked.
type ImageSet struct {
	Connect []string
	Create  []model.Image
}

func (s *ImageSet) empty() bool {
	return s == nil || (len(s.Connect) == 0 && len(s.Create) == 0)
}

type SuperheroRepository interface {
	// Create inserts hero and applies set in one transaction and returns the
	// stored record with images.
	Create(ctx context.Context, hero *model.Superhero, set *ImageSet) (*model.Superhero, error)

	// FindPreviews returns one page of previews ordered by creation time.
	FindPreviews(ctx context.Context, skip, take int) ([]model.SuperheroPreview, error)

	// FindByID returns the full record. Missing id gives a dberr.KindNotFound error.
	FindByID(ctx context.Context, id string) (*model.Superhero, error)

	// Update applies column changes. A non-nil set replaces the image list.
	Update(ctx context.Context, id string, fields map[string]any, set *ImageSet) (*model.Superhero, error)

	// Delete removes the record and returns it as it was before removal.
	Delete(ctx context.Context, id string) (*model.Superhero, error)

	Count(ctx context.Context) (int64, error)
}

type superheroRepo struct {
	db *gorm.DB
}

func NewSuperheroRepository(db *gorm.DB) SuperheroRepository {
	return &superheroRepo{db: db}
}

func (r *superheroRepo) Create(ctx context.Context, hero *model.Superhero, set *ImageSet) (*model.Superhero, error) {
	var out *model.Superhero
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(hero).Error; err != nil {
			return err
		}
		if err := applyImageSet(tx, hero.ID, set); err != nil {
			return err
		}
		var err error
		out, err = findByID(tx, hero.ID)
		return err
	})
	if err != nil {
		return nil, dberr.Classify(err)
	}
	return out, nil
}

func (r *superheroRepo) FindPreviews(ctx context.Context, skip, take int) ([]model.SuperheroPreview, error) {
	db := r.db.WithContext(ctx)

	var heroes []model.Superhero
	err := db.Model(&model.Superhero{}).
		Select("id", "nickname", "created_at").
		Order("created_at ASC").Order("id ASC").
		Offset(skip).Limit(take).
		Find(&heroes).Error
	if err != nil {
		return nil, dberr.Classify(err)
	}

	previews := make([]model.SuperheroPreview, 0, len(heroes))
	if len(heroes) == 0 {
		return previews, nil
	}
	ids := make([]string, len(heroes))
	for i, h := range heroes {
		ids[i] = h.ID
	}

	var images []model.Image
	err = db.Where("superhero_id IN ?", ids).
		Order("created_at DESC").Order("id DESC").
		Find(&images).Error
	if err != nil {
		return nil, dberr.Classify(err)
	}
	latest := make(map[string]model.Image, len(heroes))
	for _, img := range images {
		if img.SuperheroID == nil {
			continue
		}
		if _, seen := latest[*img.SuperheroID]; !seen {
			latest[*img.SuperheroID] = img
		}
	}

	for _, h := range heroes {
		p := model.SuperheroPreview{ID: h.ID, Nickname: h.Nickname, Images: []model.Image{}}
		if img, ok := latest[h.ID]; ok {
			p.Images = append(p.Images, img)
		}
		previews = append(previews, p)
	}
	return previews, nil
}

func (r *superheroRepo) FindByID(ctx context.Context, id string) (*model.Superhero, error) {
	hero, err := findByID(r.db.WithContext(ctx), id)
	if err != nil {
		return nil, dberr.Classify(err)
	}
	return hero, nil
}

func (r *superheroRepo) Update(ctx context.Context, id string, fields map[string]any, set *ImageSet) (*model.Superhero, error) {
	var out *model.Superhero
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, id); err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&model.Superhero{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}
		if set != nil {
			if err := detachImages(tx, id); err != nil {
				return err
			}
			if err := applyImageSet(tx, id, set); err != nil {
				return err
			}
		}
		var err error
		out, err = findByID(tx, id)
		return err
	})
	if err != nil {
		return nil, dberr.Classify(err)
	}
	return out, nil
}

func (r *superheroRepo) Delete(ctx context.Context, id string) (*model.Superhero, error) {
	var out *model.Superhero
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = findByID(tx, id)
		if err != nil {
			return err
		}
		if err := detachImages(tx, id); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Superhero{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return dberr.NotFound()
		}
		return nil
	})
	if err != nil {
		return nil, dberr.Classify(err)
	}
	return out, nil
}

func (r *superheroRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Superhero{}).Count(&n).Error; err != nil {
		return 0, dberr.Classify(err)
	}
	return n, nil
}

func findByID(db *gorm.DB, id string) (*model.Superhero, error) {
	var hero model.Superhero
	err := db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("created_at ASC").Order("id ASC")
	}).Where("id = ?", id).Take(&hero).Error
	if err != nil {
		return nil, err
	}
	normalize(&hero)
	return &hero, nil
}

func ensureExists(db *gorm.DB, id string) error {
	var n int64
	if err := db.Model(&model.Superhero{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return dberr.NotFound()
	}
	return nil
}

func detachImages(db *gorm.DB, heroID string) error {
	return db.Model(&model.Image{}).
		Where("superhero_id = ?", heroID).
		Update("superhero_id", nil).Error
}

// applyImageSet links existing images and inserts new ones for heroID.
// Unknown or malformed ids fail the whole write with a foreign key error.
func applyImageSet(db *gorm.DB, heroID string, set *ImageSet) error {
	if set.empty() {
		return nil
	}

	if len(set.Connect) > 0 {
		ids, missing := splitIDs(set.Connect)
		if len(ids) > 0 {
			var found []string
			if err := db.Model(&model.Image{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
				return err
			}
			known := make(map[string]struct{}, len(found))
			for _, id := range found {
				known[id] = struct{}{}
			}
			for _, id := range ids {
				if _, ok := known[id]; !ok {
					missing = append(missing, id)
				}
			}
		}
		if len(missing) > 0 {
			return dberr.ForeignKey(ConstraintImageLink, missing)
		}
		err := db.Model(&model.Image{}).
			Where("id IN ?", ids).
			Update("superhero_id", heroID).Error
		if err != nil {
			return err
		}
	}

	if len(set.Create) > 0 {
		for i := range set.Create {
			set.Create[i].SuperheroID = &heroID
		}
		if err := db.Create(&set.Create).Error; err != nil {
			return err
		}
	}
	return nil
}

// splitIDs dedupes ids and separates the ones that are not valid UUIDs.
func splitIDs(in []string) (valid, invalid []string) {
	seen := make(map[string]struct{}, len(in))
	for _, id := range in {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, err := uuid.Parse(id); err != nil {
			invalid = append(invalid, id)
			continue
		}
		valid = append(valid, id)
	}
	return valid, invalid
}

func normalize(h *model.Superhero) {
	if h.Images == nil {
		h.Images = []model.Image{}
	}
	if h.Superpowers == nil {
		h.Superpowers = datatypes.JSONSlice[string]{}
	}
}
