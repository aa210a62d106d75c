// Package httpapi exposes the todo store over HTTP.
package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"todo-api/internal/model"
)

type TodoStore interface {
	List() []model.Todo
	Create(title string, completed bool) []model.Todo
	Get(id uuid.UUID) (model.Todo, error)
	Update(id uuid.UUID, patch model.TodoPatch) ([]model.Todo, error)
	Delete(id uuid.UUID) ([]model.Todo, error)
	Len() int
}

// Options tunes the server. Zero fields fall back to the defaults below.
type Options struct {
	Logger         *zap.Logger
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	AllowedOrigins []string
	CORSMaxAge     int
}

const (
	defaultRequestTimeout = 3 * time.Second
	defaultMaxBodyBytes   = 1 << 20 // 1 MiB
	defaultCORSMaxAge     = 3600
)

type Server struct {
	todos        TodoStore
	logger       *zap.Logger
	maxBodyBytes int64
	handler      http.Handler
}

func NewServer(todos TodoStore, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = defaultRequestTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.CORSMaxAge == 0 {
		opts.CORSMaxAge = defaultCORSMaxAge
	}

	srv := &Server{
		todos:        todos,
		logger:       opts.Logger,
		maxBodyBytes: opts.MaxBodyBytes,
	}

	router := mux.NewRouter()

	router.HandleFunc("/healthz", srv.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", srv.handleReady).Methods(http.MethodGet)

	router.HandleFunc("/todos", srv.handleListTodos).Methods(http.MethodGet)
	router.HandleFunc("/todos", srv.handleCreateTodo).Methods(http.MethodPost)
	router.HandleFunc("/todos/{id}", srv.handleGetTodo).Methods(http.MethodGet)
	router.HandleFunc("/todos/{id}", srv.handleUpdateTodo).Methods(http.MethodPut)
	router.HandleFunc("/todos/{id}", srv.handleDeleteTodo).Methods(http.MethodDelete)

	srv.handler = WithRequestID(
		Logging(opts.Logger)(
			CORS(opts.AllowedOrigins, opts.CORSMaxAge)(
				Timeout(opts.RequestTimeout)(
					router,
				),
			),
		),
	)
	return srv
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
