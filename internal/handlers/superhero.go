package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"herovault/internal/apperr"
	"herovault/internal/service"
)

// SuperheroHandler serves the /api/superheroes resource.
type SuperheroHandler struct {
	Service *service.SuperheroService
	Logger  *zap.SugaredLogger
	rw      *responder
}

func NewSuperheroHandler(svc *service.SuperheroService, logger *zap.SugaredLogger, rw *responder) *SuperheroHandler {
	return &SuperheroHandler{Service: svc, Logger: logger, rw: rw}
}

func (h *SuperheroHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateSuperheroInput
	if err := decodeJSON(r, &in); err != nil {
		h.rw.error(w, r, err)
		return
	}
	hero, err := h.Service.Create(r.Context(), in)
	if err != nil {
		h.rw.error(w, r, err)
		return
	}
	h.rw.json(w, http.StatusCreated, hero)
}

func (h *SuperheroHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", service.DefaultPage)
	if err != nil {
		h.rw.error(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultLimit)
	if err != nil {
		h.rw.error(w, r, err)
		return
	}
	res, err := h.Service.FindAll(r.Context(), page, limit)
	if err != nil {
		h.rw.error(w, r, err)
		return
	}
	h.rw.json(w, http.StatusOK, res)
}

func (h *SuperheroHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rw.error(w, r, err)
		return
	}
	hero, err := h.Service.FindOne(r.Context(), id)
	if err != nil {
		h.rw.error(w, r, err)
		return
	}
	h.rw.json(w, http.StatusOK, hero)
}

func (h *SuperheroHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rw.error(w, r, err)
		return
	}
	var in service.UpdateSuperheroInput
	if err := decodeJSON(r, &in); err != nil {
		h.rw.error(w, r, err)
		return
	}
	hero, err := h.Service.Update(r.Context(), id, in)
	if err != nil {
		h.rw.error(w, r, err)
		return
	}
	h.rw.json(w, http.StatusOK, hero)
}

func (h *SuperheroHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.rw.error(w, r, err)
		return
	}
	hero, err := h.Service.Remove(r.Context(), id)
	if err != nil {
		h.rw.error(w, r, err)
		return
	}
	h.rw.json(w, http.StatusOK, hero)
}

// queryInt reads a positive integer query parameter, def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperr.BadRequest(name + " must be a positive integer")
	}
	return n, nil
}
