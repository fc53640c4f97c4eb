// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package complaint

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/melodiahq/melodia/internal/platform/middleware"
	requestutil "github.com/melodiahq/melodia/internal/platform/request"
	"github.com/melodiahq/melodia/internal/platform/respond"
	"github.com/melodiahq/melodia/internal/platform/validate"
	"github.com/melodiahq/melodia/pkg/pagination"
)

// Handler implements complaint HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /complaints surface. Everything requires a signed-in
// listener.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.fileComplaint)
	router.Get("/mine", handler.listMine)

	return router
}

// RegisterAdminRoutes mounts the resolution endpoints on an admin-guarded
// router.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/complaints/open", handler.listOpen)
	router.Post("/complaints/{id}/resolve", handler.resolveComplaint)
}

type fileRequest struct {
	SongID string `json:"song_id"`
	Reason string `json:"reason"`
}

type resolveRequest struct {
	Action string `json:"action"`
}

// fileComplaint handles POST /api/v1/complaints.
func (handler *Handler) fileComplaint(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input fileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldSongID, input.SongID).
		UUID(FieldSongID, input.SongID).
		Required(FieldReason, input.Reason).
		MaxLen(FieldReason, input.Reason, 2000)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	filed, err := handler.service.File(request.Context(), userID, input.SongID, input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, filed)
}

// resolveComplaint handles POST /api/v1/admin/complaints/{id}/resolve.
func (handler *Handler) resolveComplaint(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input resolveRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	resolved, err := handler.service.Resolve(request.Context(), claims.UserID, requestutil.ID(request, "id"), Action(input.Action))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, resolved)
}

// listMine handles GET /api/v1/complaints/mine.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	complaints, total, err := handler.service.ListMine(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, complaints, pagination.NewMeta(params.Page, params.Limit, total))
}

// listOpen handles GET /api/v1/admin/complaints/open.
func (handler *Handler) listOpen(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	complaints, total, err := handler.service.ListOpen(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, complaints, pagination.NewMeta(params.Page, params.Limit, total))
}
