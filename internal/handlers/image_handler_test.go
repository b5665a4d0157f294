package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"herovault/internal/model"
)

func (e *testEnv) upload(t *testing.T, field, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartImage(t, field, filename, contentType, data)
	req := httptest.NewRequest(http.MethodPost, "/api/images/upload", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestImages_UploadAndServe(t *testing.T) {
	env := newTestEnv(t)
	env.images.On("Create", mock.Anything, mock.AnythingOfType("*model.Image")).Return(nil).Once()

	rr := env.upload(t, "image", "cape.png", "image/png", []byte("\x89PNG fake"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var img model.Image
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &img))
	assert.NotEmpty(t, img.ID)
	assert.Regexp(t, `^/images/hero-[0-9a-f-]{36}\.png$`, img.ImagePath)
	assert.Nil(t, img.SuperheroID)

	served := env.do(http.MethodGet, img.ImagePath, nil)
	assert.Equal(t, http.StatusOK, served.Code)
	assert.Equal(t, "\x89PNG fake", served.Body.String())
}

func TestImages_UploadRejected(t *testing.T) {
	cases := []struct {
		name   string
		field  string
		ct     string
		data   []byte
		status int
	}{
		{"wrong type", "image", "image/gif", []byte("GIF89a"), http.StatusBadRequest},
		{"missing field", "file", "image/png", []byte("png"), http.StatusBadRequest},
		{"too large", "image", "image/png", bytes.Repeat([]byte{1}, 1<<20+10), http.StatusRequestEntityTooLarge},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			env := newTestEnv(t)
			rr := env.upload(t, c.field, "f.bin", c.ct, c.data)
			assert.Equal(t, c.status, rr.Code, rr.Body.String())
			env.images.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("not multipart", func(t *testing.T) {
		env := newTestEnv(t)
		rr := env.do(http.MethodPost, "/api/images/upload", []byte(`{}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
