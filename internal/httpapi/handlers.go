package httpapi

import (
	"context"
	"errors"
	"net/http"

	"oppintel-engine/internal/domain"
	"oppintel-engine/internal/pipeline"
	"oppintel-engine/internal/poll"
)

const statusMessage = "Opportunity Intelligence Engine running"

type RootHandler struct{}

func (h RootHandler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such route")
		return
	}
	writeJSON(w, map[string]any{"status": statusMessage})
}

type HealthHandler struct{}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"ok": true})
}

type OpportunitiesHandler struct {
	List func(ctx context.Context) ([]domain.Opportunity, error)
}

func (h OpportunitiesHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	opps, err := h.List(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "list_failed", err.Error())
		return
	}
	writeJSON(w, opps)
}

type ScrapeHandler struct {
	RunNow    func(ctx context.Context) (pipeline.Summary, error)
	RunStatus func() poll.RunStatus
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.RunStatus())
}

// RunSync blocks until the run completes, so the caller sees the summary.
// A run already in progress answers 409 instead of interleaving a second one.
func (h ScrapeHandler) RunSync(w http.ResponseWriter, r *http.Request) {
	sum, err := h.RunNow(r.Context())
	if errors.Is(err, poll.ErrAlreadyRunning) {
		WriteError(w, r, http.StatusConflict, "already_running", err.Error())
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "run_failed", err.Error())
		return
	}
	writeJSON(w, map[string]any{
		"message": "scrape executed",
		"summary": sum,
	})
}
