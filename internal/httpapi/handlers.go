package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"todo-api/internal/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"todos":  s.todos.Len(),
	})
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.todos.List())
}

// Both fields are required; pointers tell a missing field from a zero value.
type createTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decodeJSON(w, r, s.maxBodyBytes, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	switch {
	case req.Title == nil:
		writeError(w, http.StatusUnprocessableEntity, "missing field: title")
		return
	case req.Completed == nil:
		writeError(w, http.StatusUnprocessableEntity, "missing field: completed")
		return
	}

	todos := s.todos.Create(*req.Title, *req.Completed)
	created := todos[len(todos)-1]
	s.logger.Debug("todo created",
		zap.String("rid", RequestIDFromContext(r.Context())),
		zap.Stringer("id", created.ID),
	)
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := s.todoID(w, r)
	if !ok {
		return
	}

	found, err := s.todos.Get(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := s.todoID(w, r)
	if !ok {
		return
	}

	var patch model.TodoPatch
	if err := decodeJSON(w, r, s.maxBodyBytes, &patch); err != nil {
		writeDecodeError(w, err)
		return
	}

	todos, err := s.todos.Update(id, patch)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := s.todoID(w, r)
	if !ok {
		return
	}

	todos, err := s.todos.Delete(id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

// todoID parses the {id} path segment. A malformed id cannot name any todo,
// so it gets the same 404 as an unknown one.
func (s *Server) todoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["id"]
	id, err := uuid.Parse(raw)
	if err != nil {
		s.logger.Debug("malformed todo id",
			zap.String("rid", RequestIDFromContext(r.Context())),
			zap.String("id", raw),
		)
		writeNotFound(w)
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	rid := RequestIDFromContext(r.Context())

	var nf *model.NotFoundError
	if errors.As(err, &nf) {
		s.logger.Debug("todo not found", zap.String("rid", rid), zap.Stringer("id", nf.ID))
		writeNotFound(w)
		return
	}
	s.logger.Error("store error", zap.String("rid", rid), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}
