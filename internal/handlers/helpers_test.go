package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"herovault/internal/apperr"
	"herovault/internal/blob"
	"herovault/internal/config"
	"herovault/internal/handlers"
	"herovault/internal/model"
	"herovault/internal/repo"
	"herovault/internal/service"
)

// Local light mocks
type hMockHeroRepo struct{ mock.Mock }

func (m *hMockHeroRepo) Create(ctx context.Context, hero *model.Superhero, set *repo.ImageSet) (*model.Superhero, error) {
	args := m.Called(ctx, hero, set)
	if v, ok := args.Get(0).(*model.Superhero); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockHeroRepo) FindPreviews(ctx context.Context, skip, take int) ([]model.SuperheroPreview, error) {
	args := m.Called(ctx, skip, take)
	if v, ok := args.Get(0).([]model.SuperheroPreview); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockHeroRepo) FindByID(ctx context.Context, id string) (*model.Superhero, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Superhero); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockHeroRepo) Update(ctx context.Context, id string, fields map[string]any, set *repo.ImageSet) (*model.Superhero, error) {
	args := m.Called(ctx, id, fields, set)
	if v, ok := args.Get(0).(*model.Superhero); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockHeroRepo) Delete(ctx context.Context, id string) (*model.Superhero, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Superhero); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockHeroRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.SuperheroRepository = (*hMockHeroRepo)(nil)

type hMockImageRepo struct{ mock.Mock }

func (m *hMockImageRepo) Create(ctx context.Context, img *model.Image) error {
	return m.Called(ctx, img).Error(0)
}
func (m *hMockImageRepo) FindByID(ctx context.Context, id string) (*model.Image, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ImageRepository = (*hMockImageRepo)(nil)

type testEnv struct {
	router http.Handler
	cfg    *config.Config
	heroes *hMockHeroRepo
	images *hMockImageRepo
}

func newTestEnv(t *testing.T, opts ...func(*config.Config)) *testEnv {
	t.Helper()
	cfg := &config.Config{
		BlobBackend:   config.BlobBackendLocal,
		BlobMaxSizeMB: 1,
		ImagesDir:     t.TempDir(),
	}
	for _, o := range opts {
		o(cfg)
	}
	env := &testEnv{cfg: cfg, heroes: &hMockHeroRepo{}, images: &hMockImageRepo{}}
	env.router = newRouter(t, cfg, env.heroes, env.images)
	return env
}

func newRouter(t *testing.T, cfg *config.Config, heroes repo.SuperheroRepository, images repo.ImageRepository) http.Handler {
	t.Helper()
	logger := zap.NewNop().Sugar()
	store, err := blob.NewLocalStore(cfg.ImagesDir, cfg.BlobMaxBytes())
	require.NoError(t, err)

	errs := apperr.NewChain(
		apperr.NewPersistenceTranslator(repo.ConstraintFields, cfg.HideInternalErrors),
		apperr.GenericTranslator{},
	)
	h := handlers.NewHandler(
		service.NewSuperheroService(heroes, logger),
		service.NewImageService(images, store, logger),
		logger, cfg, errs,
	)
	return h.Router
}

func (e *testEnv) do(method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// multipartImage builds an upload body with the file under field.
func multipartImage(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}
