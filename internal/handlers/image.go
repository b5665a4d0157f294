package handlers

import (
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"herovault/internal/apperr"
	"herovault/internal/config"
	"herovault/internal/service"
)

const uploadField = "image"

// ImageHandler accepts image uploads and serves locally stored images.
type ImageHandler struct {
	Service *service.ImageService
	Logger  *zap.SugaredLogger
	Config  *config.Config
	rw      *responder
}

func NewImageHandler(svc *service.ImageService, logger *zap.SugaredLogger, cfg *config.Config, rw *responder) *ImageHandler {
	return &ImageHandler{Service: svc, Logger: logger, Config: cfg, rw: rw}
}

// Upload handles multipart/form-data with the file in the "image" field.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// whole request limit: file plus 1MB for the multipart envelope
	maxFile := h.Config.BlobMaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxFile+1<<20)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.rw.error(w, r, apperr.PayloadTooLarge("File too large"))
			return
		}
		h.rw.error(w, r, apperr.BadRequest("Invalid multipart form"))
		return
	}
	if r.MultipartForm != nil {
		defer func() { _ = r.MultipartForm.RemoveAll() }()
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		h.rw.error(w, r, apperr.BadRequest("File is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxFile+1))
	if err != nil {
		h.rw.error(w, r, apperr.BadRequest("Failed to read file"))
		return
	}

	img, err := h.Service.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		h.rw.error(w, r, err)
		return
	}
	h.rw.json(w, http.StatusCreated, img)
}

// Serve writes a file from the local images directory. Unknown names get the
// JSON 404 envelope instead of the file server's plain text.
func (h *ImageHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	fsys := os.DirFS(h.Config.ImagesDir)
	if name == "" || !fs.ValidPath(name) {
		h.rw.error(w, r, routeNotFound(r))
		return
	}
	info, err := fs.Stat(fsys, name)
	if err != nil || info.IsDir() {
		h.rw.error(w, r, routeNotFound(r))
		return
	}
	http.ServeFileFS(w, r, fsys, name)
}
