package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todolist/internal/model"
	"github.com/BuzzLyutic/todolist/internal/service"
	"github.com/BuzzLyutic/todolist/pkg/respond"
)

const maxBodyBytes = 1 << 20

type textRequest struct {
	Text *string `json:"text"`
}

type TaskHandler struct {
	store  *service.TaskStore
	logger *zap.Logger
}

func NewTaskHandler(store *service.TaskStore, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		store:  store,
		logger: logger,
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	req, err := h.decode(w, r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	var text string
	if req.Text != nil {
		text = *req.Text
	}

	task, err := h.store.Add(text)
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/tasks/"+task.ID)
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := model.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		h.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, h.store.List(filter))
}

// Update replaces the task text. Unknown ids are ignored and answered with 204.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, err := h.decode(w, r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Text == nil {
		respond.Error(w, r, http.StatusBadRequest, "text is required")
		return
	}

	task, ok := h.store.Edit(chi.URLParam(r, "id"), *req.Text)
	if !ok {
		respond.NoContent(w, r)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	task, ok := h.store.Toggle(chi.URLParam(r, "id"))
	if !ok {
		respond.NoContent(w, r)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.store.Delete(chi.URLParam(r, "id"))
	respond.NoContent(w, r)
}

func (h *TaskHandler) decode(w http.ResponseWriter, r *http.Request) (textRequest, error) {
	var req textRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.logger.Debug("failed to decode json", zap.Error(err))
		return req, err
	}
	return req, nil
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, "task cannot be empty")
	case errors.Is(err, model.ErrUnknownFilter):
		respond.Error(w, r, http.StatusBadRequest, "filter must be all, completed or pending")
	default:
		h.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
