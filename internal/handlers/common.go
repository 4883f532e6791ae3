package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := make(map[string]bool, len(h.checks))
	allHealthy := true
	for name, check := range h.checks {
		err := check(ctx)
		checks[name] = err == nil
		if err != nil {
			allHealthy = false
			h.logger.Warnw("Readiness check failed", "dependency", name, "error", err)
		}
	}

	snap := h.framework.Current()
	status := http.StatusOK
	if !allHealthy {
		status = http.StatusServiceUnavailable
	}
	h.jsonResponse(w, status, map[string]interface{}{
		"ready":             allHealthy,
		"checks":            checks,
		"dataset_version":   snap.Version,
		"dataset_loaded_at": snap.LoadedAt,
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, key string) (value, set bool, err error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, false, nil
	}
	value, err = strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("invalid %s parameter %q", key, raw)
	}
	return value, true, nil
}

// pathName returns a path parameter as text. chi matches against the decoded
// path unless the request carries a RawPath, so only then is the value escaped.
func pathName(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}
