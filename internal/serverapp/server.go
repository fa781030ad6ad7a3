package serverapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/gf-haseeb/advanced-todo-system/internal/config"
	"github.com/gf-haseeb/advanced-todo-system/internal/httpmw"
	"github.com/gf-haseeb/advanced-todo-system/internal/todo"
)

type Options struct {
	Config  *config.Config
	Manager *todo.Manager
	Logger  zerolog.Logger
}

// NewHandler assembles the full HTTP surface: probes at the root, the
// REST API under the configured prefix.
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Manager == nil {
		return nil, errors.New("manager is required")
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(httpmw.WithRequestID)
	r.Use(httpmw.WithAccessLog(opts.Logger))
	r.Use(httpmw.WithRecover(opts.Logger))
	r.Use(corsMiddleware(opts.Config.CORS.Origins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "advanced-todo-system",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		// A readable container means storage loaded; re-listing is cheap.
		_ = opts.Manager.Lists()
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "advanced-todo-system",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	apiHandler := todo.NewHandler(opts.Manager, config.Version)
	prefix := strings.TrimSuffix(opts.Config.API.Prefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	r.Route(prefix, apiHandler.Routes)

	return r, nil
}

func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	allowAll := false
	allowed := map[string]bool{}
	for _, o := range origins {
		if o == "*" {
			allowAll = true
			continue
		}
		allowed[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAll || allowed[origin]) {
				if allowAll {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				} else {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
				}
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
