package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/repolens/repolens/pkg/errors"
	"github.com/repolens/repolens/pkg/github"
	"github.com/repolens/repolens/pkg/scout"
)

// searchResponse is the JSON envelope for search endpoints.
type searchResponse struct {
	Results   []scout.Profile `json:"results"`
	Count     int             `json:"count"`
	Total     int             `json:"total"`
	Truncated bool            `json:"truncated"`
}

// analyzeResponse is the JSON envelope for the analyze endpoint.
type analyzeResponse struct {
	Analysis *scout.AnalysisResult `json:"analysis"`
}

// errorResponse is the JSON envelope for failures.
type errorResponse struct {
	Error string         `json:"error"`
	Code  apperrors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSearch accepts the same criteria as the CLI as query parameters:
// q, language, topic (repeatable), stars, forks, max.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := scout.SearchCriteria{
		Query:    q.Get("q"),
		Language: q.Get("language"),
		Topics:   q["topic"],
		MinStars: intParam(q.Get("stars")),
		MinForks: intParam(q.Get("forks")),
	}
	maxResults := intParam(q.Get("max"))
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	result, err := s.searcher.Search(r.Context(), criteria, maxResults)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	profiles := s.enricher.EnrichAll(r.Context(), result.Candidates)
	writeJSON(w, http.StatusOK, searchResponse{
		Results:   profiles,
		Count:     len(profiles),
		Total:     result.Total,
		Truncated: result.Truncated,
	})
}

// handleSearchJava accepts: version (8/11/17/21), build_tool, stars, max.
func (s *Server) handleSearchJava(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := scout.JavaSearchOptions{
		Version:    q.Get("version"),
		BuildTool:  q.Get("build_tool"),
		MinStars:   intParam(q.Get("stars")),
		MaxResults: intParam(q.Get("max")),
	}
	if opts.Version == "" {
		opts.Version = "8"
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = s.maxResults
	}

	result, err := s.searcher.SearchJavaVersion(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	profiles := s.enricher.EnrichAll(r.Context(), result.Candidates)
	writeJSON(w, http.StatusOK, searchResponse{
		Results:   profiles,
		Count:     len(profiles),
		Total:     result.Total,
		Truncated: result.Truncated,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	repo := chi.URLParam(r, "repo")
	if err := github.ValidateOwner(owner); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := github.ValidateRepo(repo); err != nil {
		s.writeError(w, r, err)
		return
	}

	analysis, err := s.analyzer.Analyze(r.Context(), owner, repo)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Analysis: analysis})
}

// writeError maps the application error taxonomy to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadGateway
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidCriteria, apperrors.ErrCodeInvalidRepoRef:
		status = http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeRateLimited:
		status = http.StatusServiceUnavailable
	}

	s.logger.Warn("request failed",
		"id", requestIDFrom(r.Context()), "path", r.URL.Path, "err", err)
	writeJSON(w, status, errorResponse{
		Error: apperrors.UserMessage(err),
		Code:  apperrors.GetCode(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func intParam(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
