package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/kinjal-s-patel/visitor-management-system/internal/screen"
	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// handleAPIVisitors routes /api/visitors requests.
func (s *Server) handleAPIVisitors(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.apiListVisitors(w, r)
	case http.MethodPost:
		s.apiAddVisitor(w, r)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// apiListVisitors returns visitors matching the query parameters.
func (s *Server) apiListVisitors(w http.ResponseWriter, r *http.Request) {
	q, err := visitor.ParseQuery(r.URL.Query())
	if err != nil {
		apiError(w, fmt.Sprintf("invalid query: %v", err), http.StatusBadRequest)
		return
	}

	records, err := s.store.Fetch(r.Context(), q)
	if err != nil {
		s.logger.Error("listing visitors failed", "error", err)
		apiError(w, "visitor store unavailable", http.StatusServiceUnavailable)
		return
	}

	apiJSON(w, records, http.StatusOK)
}

// apiAddVisitor registers a visitor from a JSON body.
func (s *Server) apiAddVisitor(w http.ResponseWriter, r *http.Request) {
	var form screen.IntakeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	intake := screen.NewIntake(s.store, s.hosts, s.screenOptions(r))
	sub, err := intake.Submit(r.Context(), form)
	if err != nil {
		var ve *visitor.ValidationError
		if errors.As(err, &ve) {
			apiJSON(w, map[string]interface{}{"error": ve.Error(), "problems": ve.Problems}, http.StatusBadRequest)
			return
		}
		apiError(w, "visitor store unavailable", http.StatusServiceUnavailable)
		return
	}

	apiJSON(w, map[string]interface{}{"id": sub.ID, "next": sub.Next}, http.StatusCreated)
}

// handleAPIHosts routes /api/hosts requests.
func (s *Server) handleAPIHosts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		hosts, err := s.hosts.List(r.Context())
		if err != nil {
			s.logger.Error("listing hosts failed", "error", err)
			apiError(w, "listing hosts failed", http.StatusInternalServerError)
			return
		}
		apiJSON(w, hosts, http.StatusOK)
	case http.MethodPost:
		var req struct {
			Title      string `json:"title"`
			Email      string `json:"email"`
			Department string `json:"department"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiError(w, "invalid JSON body", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			apiError(w, "title is required", http.StatusBadRequest)
			return
		}
		h, err := s.hosts.Add(r.Context(), req.Title, req.Email, req.Department)
		if err != nil {
			apiError(w, fmt.Sprintf("adding host: %v", err), http.StatusBadRequest)
			return
		}
		apiJSON(w, h, http.StatusCreated)
	case http.MethodDelete:
		id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil || id <= 0 {
			apiError(w, "id must be a positive integer", http.StatusBadRequest)
			return
		}
		if err := s.hosts.Delete(r.Context(), id); err != nil {
			if errors.Is(err, visitor.ErrNotFound) {
				apiError(w, "host not found", http.StatusNotFound)
				return
			}
			s.logger.Error("deleting host failed", "host_id", id, "error", err)
			apiError(w, "deleting host failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
