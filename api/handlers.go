// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/poiesic/mentormatch/core"
	"github.com/poiesic/mentormatch/recommend"
)

// Handler serves the recommendation HTTP API.
type Handler struct {
	engine *recommend.Engine
	logger *slog.Logger
}

// NewHandler creates a handler around an engine.
func NewHandler(engine *recommend.Engine) *Handler {
	return &Handler{
		engine: engine,
		logger: slog.Default().With("component", "api"),
	}
}

// Routes builds the router for the recommendation API.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)
	r.Get("/recommendations/mentors", h.MentorsForStudent)
	r.Get("/recommendations/students", h.StudentsForMentor)
	r.Post("/recommendations/invalidate", h.Invalidate)
	r.Post("/profiles/sync", h.SyncProfile)

	return r
}

// envelope is the uniform response shape: a machine code, a short
// message, and the payload.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Warn("response encode failed", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{Code: status, Message: message})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, envelope{Code: http.StatusOK, Message: "ok"})
}

// MentorsForStudent handles GET /recommendations/mentors.
// Query parameters: studentId (or userId), limit, semantic.
func (h *Handler) MentorsForStudent(w http.ResponseWriter, r *http.Request) {
	h.recommendFor(w, r, core.KindStudent, "studentId")
}

// StudentsForMentor handles GET /recommendations/students.
// Query parameters: mentorId (or userId), limit, semantic.
func (h *Handler) StudentsForMentor(w http.ResponseWriter, r *http.Request) {
	h.recommendFor(w, r, core.KindMentor, "mentorId")
}

func (h *Handler) recommendFor(w http.ResponseWriter, r *http.Request, kind core.Kind, idParam string) {
	query := r.URL.Query()

	idStr := query.Get(idParam)
	if idStr == "" {
		idStr = query.Get("userId")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid or missing subject id")
		return
	}

	limit := 0
	if limitStr := query.Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		} else {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	semantic := true
	if semStr := query.Get("semantic"); semStr != "" {
		parsed, err := strconv.ParseBool(semStr)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid semantic flag")
			return
		}
		semantic = parsed
	}

	set, err := h.engine.Recommend(r.Context(), kind, id, limit, semantic)
	if err != nil {
		if errors.Is(err, core.ErrSubjectNotFound) {
			respondError(w, http.StatusNotFound, "subject profile not found")
			return
		}
		h.logger.Error("recommendation failed",
			"kind", kind.String(), "id", id, "err", err)
		respondError(w, http.StatusInternalServerError, "recommendation failed")
		return
	}

	respondJSON(w, http.StatusOK, envelope{Code: http.StatusOK, Message: "ok", Data: set})
}

type subjectRequest struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`
}

func decodeSubject(r *http.Request) (core.Kind, int64, error) {
	var req subjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return 0, 0, err
	}
	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		return 0, 0, err
	}
	if req.ID <= 0 {
		return 0, 0, errors.New("id must be positive")
	}
	return kind, req.ID, nil
}

// Invalidate handles POST /recommendations/invalidate. The cache drop
// happens off the request so a profile-edit flow never waits on it.
func (h *Handler) Invalidate(w http.ResponseWriter, r *http.Request) {
	kind, id, err := decodeSubject(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid invalidation request")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.engine.Invalidate(ctx, kind, id); err != nil {
			h.logger.Warn("invalidation failed",
				"kind", kind.String(), "id", id, "err", err)
		}
	}()

	respondJSON(w, http.StatusAccepted, envelope{Code: http.StatusAccepted, Message: "invalidation scheduled"})
}

// SyncProfile handles POST /profiles/sync, refreshing a profile's
// vector index entry and dropping its cached recommendations.
func (h *Handler) SyncProfile(w http.ResponseWriter, r *http.Request) {
	kind, id, err := decodeSubject(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sync request")
		return
	}

	if err := h.engine.SyncProfile(r.Context(), kind, id); err != nil {
		if errors.Is(err, core.ErrSubjectNotFound) {
			respondError(w, http.StatusNotFound, "subject profile not found")
			return
		}
		h.logger.Error("profile sync failed",
			"kind", kind.String(), "id", id, "err", err)
		respondError(w, http.StatusBadGateway, "profile sync failed")
		return
	}

	respondJSON(w, http.StatusOK, envelope{Code: http.StatusOK, Message: "ok"})
}
