package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"herovault/internal/model"
	"herovault/internal/repo"
)

type mockSuperheroRepo struct{ mock.Mock }

func (m *mockSuperheroRepo) Create(ctx context.Context, hero *model.Superhero, set *repo.ImageSet) (*model.Superhero, error) {
	args := m.Called(ctx, hero, set)
	if v, ok := args.Get(0).(*model.Superhero); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSuperheroRepo) FindPreviews(ctx context.Context, skip, take int) ([]model.SuperheroPreview, error) {
	args := m.Called(ctx, skip, take)
	if v, ok := args.Get(0).([]model.SuperheroPreview); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSuperheroRepo) FindByID(ctx context.Context, id string) (*model.Superhero, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Superhero); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSuperheroRepo) Update(ctx context.Context, id string, fields map[string]any, set *repo.ImageSet) (*model.Superhero, error) {
	args := m.Called(ctx, id, fields, set)
	if v, ok := args.Get(0).(*model.Superhero); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSuperheroRepo) Delete(ctx context.Context, id string) (*model.Superhero, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Superhero); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSuperheroRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.SuperheroRepository = (*mockSuperheroRepo)(nil)

type mockImageRepo struct{ mock.Mock }

func (m *mockImageRepo) Create(ctx context.Context, img *model.Image) error {
	return m.Called(ctx, img).Error(0)
}

func (m *mockImageRepo) FindByID(ctx context.Context, id string) (*model.Image, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ImageRepository = (*mockImageRepo)(nil)
