package model

import (
	"time"

	"gorm.io/datatypes"
)

// Superhero is a character profile that owns zero or more images.
type Superhero struct {
	ID                string                      `gorm:"primaryKey;type:uuid" json:"id"`
	Nickname          string                      `gorm:"size:100;not null;uniqueIndex:idx_superheroes_nickname" json:"nickname"`
	RealName          string                      `gorm:"not null" json:"realName"`
	OriginDescription string                      `gorm:"not null" json:"originDescription"`
	CatchPhrase       string                      `gorm:"not null" json:"catchPhrase"`
	Superpowers       datatypes.JSONSlice[string] `gorm:"not null" json:"superpowers"`

	// Relations
	Images []Image `gorm:"foreignKey:SuperheroID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"images"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}

func (Superhero) TableName() string { return "superheroes" }

// SuperheroPreview is the reduced projection used by list views.
// Images holds at most one element: the most recently created image.
type SuperheroPreview struct {
	ID       string  `json:"id"`
	Nickname string  `json:"nickname"`
	Images   []Image `json:"images"`
}

// Page is the pagination envelope.
type Page[T any] struct {
	Data     []T   `json:"data"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}
