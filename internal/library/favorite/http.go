// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package favorite

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/melodiahq/melodia/internal/platform/middleware"
	requestutil "github.com/melodiahq/melodia/internal/platform/request"
	"github.com/melodiahq/melodia/internal/platform/respond"
	"github.com/melodiahq/melodia/internal/platform/validate"
	"github.com/melodiahq/melodia/pkg/pagination"
)

// Handler implements favorites HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /favorites surface.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listFavorites)
	router.Put("/{songID}", handler.addFavorite)
	router.Delete("/{songID}", handler.removeFavorite)

	return router
}

// addFavorite handles PUT /api/v1/favorites/{songID}.
func (handler *Handler) addFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	songID := requestutil.ID(request, "songID")
	validator := &validate.Validator{}
	validator.UUID(FieldSongID, songID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Add(request.Context(), userID, songID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// removeFavorite handles DELETE /api/v1/favorites/{songID}.
func (handler *Handler) removeFavorite(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Remove(request.Context(), userID, requestutil.ID(request, "songID")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// listFavorites handles GET /api/v1/favorites.
func (handler *Handler) listFavorites(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	songs, total, err := handler.service.List(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, songs, pagination.NewMeta(params.Page, params.Limit, total))
}
