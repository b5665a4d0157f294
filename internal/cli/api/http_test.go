package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herovault/internal/model"
	"herovault/internal/service"
)

func TestClient_ListHeroes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/superheroes", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"h1","nickname":"Batman","images":[]}],"total":6,"page":2,"lastPage":2}`))
	}))
	defer ts.Close()

	page, err := NewClient(ts.URL+"/").ListHeroes(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 6, page.Total)
	assert.Equal(t, 2, page.LastPage)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Batman", page.Data[0].Nickname)
}

func TestClient_CreateAndUpdateSendJSON(t *testing.T) {
	var got map[string]any
	var methods []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method+" "+r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		got = nil
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"h1","nickname":"Batman","images":[]}`))
	}))
	defer ts.Close()
	c := NewClient(ts.URL)

	hero, err := c.CreateHero(context.Background(), service.CreateSuperheroInput{
		Nickname: "Batman", Images: []model.ImageRef{{ID: "img1"}, {ImagePath: "/images/x.png"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "h1", hero.ID)
	assert.Equal(t, []any{"img1", map[string]any{"imagePath": "/images/x.png"}}, got["images"])

	empty := []model.ImageRef{}
	_, err = c.UpdateHero(context.Background(), "h1", service.UpdateSuperheroInput{Images: &empty})
	require.NoError(t, err)
	assert.Equal(t, []any{}, got["images"])
	assert.NotContains(t, got, "nickname")

	assert.Equal(t, []string{"POST /api/superheroes", "PATCH /api/superheroes/h1"}, methods)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message list", 400, `{"message":["nickname: cannot be blank","realName: cannot be blank"],"error":"Bad Request","statusCode":400}`, "nickname: cannot be blank, realName: cannot be blank"},
		{"single message", 404, `{"message":"Record not found","statusCode":404}`, "Record not found"},
		{"error name only", 500, `{"message":[],"error":"Internal Server Error"}`, "Internal Server Error"},
		{"plain text", 502, `bad gateway`, "bad gateway"},
		{"empty", 503, ``, "Service Unavailable"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				_, _ = w.Write([]byte(c.body))
			}))
			defer ts.Close()

			_, err := NewClient(ts.URL).GetHero(context.Background(), "x")
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, c.status, apiErr.Status)
			assert.Equal(t, c.want, apiErr.Message)
			assert.NotEmpty(t, apiErr.Messages)
		})
	}
}

func TestClient_UploadImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/images/upload", r.URL.Path)
		file, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "cape.png", hdr.Filename)
		assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
		assert.Equal(t, "png!", string(data))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"i1","imagePath":"/images/hero-1.png","superheroId":null}`))
	}))
	defer ts.Close()

	img, err := NewClient(ts.URL).UploadImage(context.Background(), "cape.png", "image/png", []byte("png!"))
	require.NoError(t, err)
	assert.Equal(t, "/images/hero-1.png", img.ImagePath)
}

func TestClient_DeleteAndTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_, _ = w.Write([]byte(`{"id":"h1","nickname":"Gone","images":[]}`))
	}))
	hero, err := NewClient(ts.URL).DeleteHero(context.Background(), "h1")
	require.NoError(t, err)
	assert.Equal(t, "Gone", hero.Nickname)
	ts.Close()

	_, err = NewClient(ts.URL).DeleteHero(context.Background(), "h1")
	assert.Error(t, err)
}
