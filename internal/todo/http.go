package todo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gf-haseeb/advanced-todo-system/internal/model"
)

// Handler exposes the manager as a REST API. Every response uses the same
// envelope: {success, data?, message?, count?} or {success:false, error}.
type Handler struct {
	mgr     *Manager
	version string
}

func NewHandler(mgr *Manager, version string) *Handler {
	return &Handler{mgr: mgr, version: version}
}

// Routes registers all endpoints on the given router. The caller decides
// the mount prefix.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/{id}", h.GetTask)
		r.Put("/{id}", h.UpdateTask)
		r.Delete("/{id}", h.DeleteTask)
		r.Post("/{id}/move", h.MoveTask)
	})

	r.Route("/lists", func(r chi.Router) {
		r.Get("/", h.ListLists)
		r.Post("/", h.CreateList)
		r.Get("/{id}", h.GetList)
		r.Put("/{id}", h.UpdateList)
		r.Delete("/{id}", h.DeleteList)
		r.Get("/{id}/tasks", h.ListTasksIn)
	})

	r.Post("/storage/resave", h.Resave)
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, code int, data any, message string) {
	writeJSON(w, code, envelope{Success: true, Data: data, Message: message})
}

func writeCollection(w http.ResponseWriter, data any, count int) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Count: &count})
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, envelope{Success: false, Error: msg})
}

// writeOpErr maps the library error taxonomy onto HTTP status codes.
func writeOpErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrDuplicate):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrListNotEmpty):
		writeErr(w, http.StatusConflict, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeStrict rejects bodies with unknown fields so partial updates can
// only touch the enumerated set.
func decodeStrict(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"message": "API is running",
		"version": h.version,
	})
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks := h.mgr.AllTasks()
	writeCollection(w, tasks, len(tasks))
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ListID      string         `json:"list_id"`
		Title       string         `json:"title"`
		Description string         `json:"description"`
		Priority    model.Priority `json:"priority"`
	}
	if err := decodeStrict(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if strings.TrimSpace(in.ListID) == "" {
		writeErr(w, http.StatusBadRequest, "missing required field: list_id")
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeErr(w, http.StatusBadRequest, "missing required field: title")
		return
	}

	t, err := h.mgr.CreateTask(model.ListID(in.ListID), in.Title, in.Description, in.Priority)
	if err != nil {
		writeOpErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, t, "Task created successfully")
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := model.TaskID(chi.URLParam(r, "id"))
	listID, t, err := h.mgr.GetTask(id)
	if err != nil {
		writeOpErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data: map[string]any{
			"task":    t,
			"list_id": listID,
		},
	})
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := model.TaskID(chi.URLParam(r, "id"))
	var p TaskPatch
	if err := decodeStrict(r, &p); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	t, err := h.mgr.UpdateTask(id, p)
	if err != nil {
		writeOpErr(w, err)
		return
	}
	writeData(w, http.StatusOK, t, "Task updated successfully")
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := model.TaskID(chi.URLParam(r, "id"))
	if err := h.mgr.DeleteTask(id); err != nil {
		writeOpErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Task "+string(id)+" deleted successfully")
}

func (h *Handler) MoveTask(w http.ResponseWriter, r *http.Request) {
	id := model.TaskID(chi.URLParam(r, "id"))
	var in struct {
		SourceListID string `json:"source_list_id"`
		TargetListID string `json:"target_list_id"`
	}
	if err := decodeStrict(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if in.SourceListID == "" || in.TargetListID == "" {
		writeErr(w, http.StatusBadRequest, "missing required fields: source_list_id, target_list_id")
		return
	}

	t, err := h.mgr.MoveTaskToList(model.ListID(in.SourceListID), id, model.ListID(in.TargetListID))
	if err != nil {
		writeOpErr(w, err)
		return
	}
	writeData(w, http.StatusOK, t, "Task moved successfully")
}

func (h *Handler) ListLists(w http.ResponseWriter, r *http.Request) {
	lists := h.mgr.Lists()
	writeCollection(w, lists, len(lists))
}

func (h *Handler) CreateList(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeStrict(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeErr(w, http.StatusBadRequest, "missing required field: name")
		return
	}

	l, err := h.mgr.CreateList(in.Name, in.Description)
	if err != nil {
		writeOpErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, l, "List created successfully")
}

func (h *Handler) GetList(w http.ResponseWriter, r *http.Request) {
	id := model.ListID(chi.URLParam(r, "id"))
	l, err := h.mgr.GetList(id)
	if err != nil {
		writeOpErr(w, err)
		return
	}
	writeData(w, http.StatusOK, l, "")
}

func (h *Handler) UpdateList(w http.ResponseWriter, r *http.Request) {
	id := model.ListID(chi.URLParam(r, "id"))
	var p ListPatch
	if err := decodeStrict(r, &p); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	l, err := h.mgr.UpdateList(id, p)
	if err != nil {
		writeOpErr(w, err)
		return
	}
	writeData(w, http.StatusOK, l, "List updated successfully")
}

func (h *Handler) DeleteList(w http.ResponseWriter, r *http.Request) {
	id := model.ListID(chi.URLParam(r, "id"))
	cascade := parseBool(r.URL.Query().Get("cascade"))
	if err := h.mgr.DeleteList(id, cascade); err != nil {
		writeOpErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil, "List "+string(id)+" deleted successfully")
}

func (h *Handler) ListTasksIn(w http.ResponseWriter, r *http.Request) {
	id := model.ListID(chi.URLParam(r, "id"))
	tasks, err := h.mgr.TasksIn(id)
	if err != nil {
		writeOpErr(w, err)
		return
	}
	writeCollection(w, tasks, len(tasks))
}

func (h *Handler) Resave(w http.ResponseWriter, r *http.Request) {
	if err := h.mgr.Resave(); err != nil {
		writeOpErr(w, err)
		return
	}
	writeData(w, http.StatusOK, nil, "Snapshot saved")
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
