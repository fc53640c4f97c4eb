// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package dispute

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/melodiahq/melodia/internal/platform/request"
	"github.com/melodiahq/melodia/internal/platform/respond"
	"github.com/melodiahq/melodia/internal/platform/validate"
	"github.com/melodiahq/melodia/pkg/pagination"
)

// Handler implements dispute HTTP endpoints. The entire surface is
// admin-only.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes mounts the dispute endpoints on an admin-guarded
// router.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/disputes/open", handler.listOpen)
	router.Get("/disputes/{id}", handler.getDispute)
	router.Post("/disputes/{id}/resolve", handler.resolveDispute)
}

type resolveDisputeRequest struct {
	WinnerSongID string `json:"winner_song_id"`
}

// resolveDispute handles POST /api/v1/admin/disputes/{id}/resolve.
func (handler *Handler) resolveDispute(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input resolveDisputeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldWinner, input.WinnerSongID).UUID(FieldWinner, input.WinnerSongID)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	resolved, err := handler.service.Resolve(request.Context(), claims.UserID, requestutil.ID(request, "id"), input.WinnerSongID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, resolved)
}

// getDispute handles GET /api/v1/admin/disputes/{id}.
func (handler *Handler) getDispute(writer http.ResponseWriter, request *http.Request) {
	found, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

// listOpen handles GET /api/v1/admin/disputes/open.
func (handler *Handler) listOpen(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	disputes, total, err := handler.service.ListOpen(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, disputes, pagination.NewMeta(params.Page, params.Limit, total))
}
