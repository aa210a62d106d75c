// Package store holds the in-memory todo collection.
//
// Every operation takes the same mutex for its whole read-modify-read
// sequence, so callers never see a half-applied mutation. Returned slices are
// copies in insertion order.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"todo-api/internal/model"
)

type TodoStore struct {
	mu    sync.Mutex
	todos []model.Todo
	now   func() time.Time
}

func NewTodoStore() *TodoStore {
	return NewTodoStoreWithClock(func() time.Time { return time.Now().UTC() })
}

// NewTodoStoreWithClock is NewTodoStore with a caller-supplied clock for
// created_at stamps.
func NewTodoStoreWithClock(now func() time.Time) *TodoStore {
	return &TodoStore{
		todos: make([]model.Todo, 0),
		now:   now,
	}
}

func (s *TodoStore) List() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Create appends a new todo and returns the whole collection. The new todo is
// always the last element.
func (s *TodoStore) Create(title string, completed bool) []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos = append(s.todos, model.Todo{
		ID:        uuid.New(),
		Title:     title,
		Completed: completed,
		CreatedAt: s.now(),
	})
	return s.snapshot()
}

func (s *TodoStore) Get(id uuid.UUID) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return model.Todo{}, &model.NotFoundError{ID: id}
	}
	return s.todos[i], nil
}

func (s *TodoStore) Update(id uuid.UUID, patch model.TodoPatch) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, &model.NotFoundError{ID: id}
	}
	patch.Apply(&s.todos[i])
	return s.snapshot(), nil
}

func (s *TodoStore) Delete(id uuid.UUID) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, &model.NotFoundError{ID: id}
	}
	s.todos = slices.Delete(s.todos, i, i+1)
	return s.snapshot(), nil
}

func (s *TodoStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.todos)
}

// caller holds s.mu
func (s *TodoStore) indexOf(id uuid.UUID) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}

// caller holds s.mu
func (s *TodoStore) snapshot() []model.Todo {
	out := make([]model.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}
