// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package streaming

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/melodiahq/melodia/internal/platform/middleware"
	requestutil "github.com/melodiahq/melodia/internal/platform/request"
	"github.com/melodiahq/melodia/internal/platform/respond"
	"github.com/melodiahq/melodia/internal/platform/validate"
)

// Handler implements streaming HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /streams surface. Everything requires a signed-in
// listener.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/{songID}/url", handler.streamURL)
	router.Post("/", handler.logStream)
	router.Get("/recent", handler.recentlyPlayed)

	return router
}

type logStreamRequest struct {
	SongID          string `json:"song_id"`
	DurationSeconds int    `json:"duration_seconds"`
}

// streamURL handles GET /api/v1/streams/{songID}/url.
func (handler *Handler) streamURL(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.StreamURL(request.Context(), userID, requestutil.ID(request, "songID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// logStream handles POST /api/v1/streams.
func (handler *Handler) logStream(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input logStreamRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldSongID, input.SongID).
		UUID(FieldSongID, input.SongID).
		Positive(FieldDuration, input.DurationSeconds)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.LogStream(request.Context(), userID, input.SongID, input.DurationSeconds); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// recentlyPlayed handles GET /api/v1/streams/recent.
func (handler *Handler) recentlyPlayed(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	plays, err := handler.service.RecentlyPlayed(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, plays)
}
