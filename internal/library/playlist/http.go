// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package playlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/melodiahq/melodia/internal/platform/middleware"
	requestutil "github.com/melodiahq/melodia/internal/platform/request"
	"github.com/melodiahq/melodia/internal/platform/respond"
	"github.com/melodiahq/melodia/internal/platform/validate"
	"github.com/melodiahq/melodia/pkg/pagination"
)

// Handler implements playlist HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /playlists surface.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listPlaylists)
	router.Post("/", handler.createPlaylist)
	router.Get("/{id}", handler.getPlaylist)
	router.Patch("/{id}", handler.updatePlaylist)
	router.Delete("/{id}", handler.deletePlaylist)
	router.Put("/{id}/songs/{songID}", handler.addSong)
	router.Delete("/{id}/songs/{songID}", handler.removeSong)

	return router
}

type playlistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type playlistUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// createPlaylist handles POST /api/v1/playlists.
func (handler *Handler) createPlaylist(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input playlistRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 120).
		MaxLen(FieldDescription, input.Description, 1000)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), userID, input.Name, input.Description)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

// getPlaylist handles GET /api/v1/playlists/{id}.
func (handler *Handler) getPlaylist(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.Get(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

// updatePlaylist handles PATCH /api/v1/playlists/{id}.
func (handler *Handler) updatePlaylist(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input playlistUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).MaxLen(FieldName, *input.Name, 120)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(request.Context(), userID, requestutil.ID(request, "id"), UpdateInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

// deletePlaylist handles DELETE /api/v1/playlists/{id}.
func (handler *Handler) deletePlaylist(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// addSong handles PUT /api/v1/playlists/{id}/songs/{songID}.
func (handler *Handler) addSong(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.AddSong(request.Context(), userID,
		requestutil.ID(request, "id"), requestutil.ID(request, "songID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// removeSong handles DELETE /api/v1/playlists/{id}/songs/{songID}.
func (handler *Handler) removeSong(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.RemoveSong(request.Context(), userID,
		requestutil.ID(request, "id"), requestutil.ID(request, "songID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// listPlaylists handles GET /api/v1/playlists.
func (handler *Handler) listPlaylists(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	playlists, total, err := handler.service.ListMine(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, playlists, pagination.NewMeta(params.Page, params.Limit, total))
}
