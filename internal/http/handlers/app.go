package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"relay/internal/domain"
	"relay/internal/imagegen"
	"relay/internal/infra"
)

// App is the handler container holding the pipeline collaborators shared by
// both operations.
type App struct {
	Config  *infra.Config
	Service *imagegen.Service
	Logger  infra.Logger
}

// NewApp wires the handler container.
func NewApp(cfg *infra.Config, svc *imagegen.Service, logger infra.Logger) *App {
	return &App{Config: cfg, Service: svc, Logger: logger}
}

type errorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the failure shape shared by both operations. The label is the
// operation-level identifier, the message the original failure text.
func (a *App) error(w http.ResponseWriter, code int, label, message string) {
	a.json(w, code, errorResponse{Error: label, Message: message, Timestamp: time.Now().UTC()})
}

// fail maps a classified pipeline error onto its HTTP status and writes the
// failure shape. Unclassified errors surface as internal failures.
func (a *App) fail(w http.ResponseWriter, label string, err error) {
	status := domain.StatusOf(err)
	if status >= http.StatusInternalServerError {
		a.Logger.Error().Err(err).Str("category", string(domain.CategoryOf(err))).Msg(label)
	} else {
		a.Logger.Warn().Err(err).Str("category", string(domain.CategoryOf(err))).Msg(label)
	}
	a.error(w, status, label, err.Error())
}

// MethodNotAllowed keeps non-POST probes on the image endpoints inside the
// JSON error contract.
func (a *App) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	a.error(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
}

// NotFound mirrors MethodNotAllowed for unknown paths.
func (a *App) NotFound(w http.ResponseWriter, r *http.Request) {
	a.error(w, http.StatusNotFound, "not_found", "Resource not found")
}
