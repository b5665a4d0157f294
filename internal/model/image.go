package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// Image is a stored picture, optionally linked to one superhero.
type Image struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	ImagePath   string    `gorm:"not null" json:"imagePath"`
	SuperheroID *string   `gorm:"type:uuid;index" json:"superheroId"` // weak link to superheroes.id
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}

func (Image) TableName() string { return "images" }

// ImageRef is one element of the image-linking list on create/update.
// On the wire it is either a string (id of an uploaded image) or an
// object {"id": "..."} / {"imagePath": "..."}.
type ImageRef struct {
	ID        string `json:"id,omitempty"`
	ImagePath string `json:"imagePath,omitempty"`
}

// IsLink reports whether the ref points to an existing image.
func (r ImageRef) IsLink() bool { return r.ID != "" }

func (r *ImageRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = ImageRef{ID: id}
		return nil
	}
	if len(b) == 0 || b[0] != '{' {
		return errors.New("image must be an id string or an object")
	}
	type plain ImageRef
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = ImageRef(p)
	return nil
}

func (r ImageRef) MarshalJSON() ([]byte, error) {
	if r.ID != "" && r.ImagePath == "" {
		return json.Marshal(r.ID)
	}
	type plain ImageRef
	return json.Marshal(plain(r))
}
