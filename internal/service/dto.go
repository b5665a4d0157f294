package service

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/datatypes"

	"herovault/internal/model"
)

// NicknameMaxLen matches the superheroes.nickname column.
const NicknameMaxLen = 100

// CreateSuperheroInput is the body of a create request.
type CreateSuperheroInput struct {
	Nickname          string           `json:"nickname"`
	RealName          string           `json:"realName"`
	OriginDescription string           `json:"originDescription"`
	CatchPhrase       string           `json:"catchPhrase"`
	Superpowers       []string         `json:"superpowers"`
	Images            []model.ImageRef `json:"images"`
}

func (in CreateSuperheroInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Nickname, validation.Required, validation.RuneLength(1, NicknameMaxLen)),
		validation.Field(&in.RealName, validation.Required),
		validation.Field(&in.OriginDescription, validation.Required),
		validation.Field(&in.CatchPhrase, validation.Required),
		validation.Field(&in.Images, validation.Each(validation.By(validateImageRef))),
	)
}

// UpdateSuperheroInput is a partial update. Nil fields are left unchanged;
// a non-nil Images replaces the whole image set, even when empty.
type UpdateSuperheroInput struct {
	Nickname          *string           `json:"nickname,omitempty"`
	RealName          *string           `json:"realName,omitempty"`
	OriginDescription *string           `json:"originDescription,omitempty"`
	CatchPhrase       *string           `json:"catchPhrase,omitempty"`
	Superpowers       *[]string         `json:"superpowers,omitempty"`
	Images            *[]model.ImageRef `json:"images,omitempty"`
}

func (in UpdateSuperheroInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Nickname, validation.NilOrNotEmpty, validation.RuneLength(1, NicknameMaxLen)),
		validation.Field(&in.RealName, validation.NilOrNotEmpty),
		validation.Field(&in.OriginDescription, validation.NilOrNotEmpty),
		validation.Field(&in.CatchPhrase, validation.NilOrNotEmpty),
		validation.Field(&in.Images, validation.By(func(value interface{}) error {
			refs, _ := value.(*[]model.ImageRef)
			if refs == nil {
				return nil
			}
			return validation.Validate(*refs, validation.Each(validation.By(validateImageRef)))
		})),
	)
}

// columns returns the column updates for the fields present in the input.
func (in UpdateSuperheroInput) columns() map[string]any {
	fields := map[string]any{}
	if in.Nickname != nil {
		fields["nickname"] = *in.Nickname
	}
	if in.RealName != nil {
		fields["real_name"] = *in.RealName
	}
	if in.OriginDescription != nil {
		fields["origin_description"] = *in.OriginDescription
	}
	if in.CatchPhrase != nil {
		fields["catch_phrase"] = *in.CatchPhrase
	}
	if in.Superpowers != nil {
		fields["superpowers"] = superpowers(*in.Superpowers)
	}
	return fields
}

func validateImageRef(value interface{}) error {
	ref, _ := value.(model.ImageRef)
	switch {
	case ref.ID == "" && ref.ImagePath == "":
		return errors.New("must be an image id or an object with imagePath")
	case ref.ID != "" && ref.ImagePath != "":
		return errors.New("id and imagePath cannot be combined")
	}
	return nil
}

func superpowers(in []string) datatypes.JSONSlice[string] {
	if in == nil {
		return datatypes.JSONSlice[string]{}
	}
	return datatypes.JSONSlice[string](in)
}
