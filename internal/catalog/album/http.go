// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package album

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/melodiahq/melodia/internal/platform/middleware"
	requestutil "github.com/melodiahq/melodia/internal/platform/request"
	"github.com/melodiahq/melodia/internal/platform/respond"
	"github.com/melodiahq/melodia/internal/platform/validate"
	"github.com/melodiahq/melodia/pkg/pagination"
)

// Handler implements album HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /albums surface.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.getAlbum)
	router.Get("/{id}/songs", handler.listTracks)
	router.Get("/by-artist/{artistID}", handler.listPublicByArtist)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.createAlbum)
		r.Get("/mine", handler.listMine)
		r.Patch("/{id}", handler.updateAlbum)
		r.Post("/{id}/submit", handler.submitAlbum)
	})

	return router
}

// RegisterAdminRoutes mounts the moderation endpoints on an admin-guarded
// router.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/albums/pending", handler.listPending)
	router.Post("/albums/{id}/approve", handler.approveAlbum)
	router.Post("/albums/{id}/reject", handler.rejectAlbum)
	router.Post("/albums/{id}/submit", handler.submitAlbumForArtist)
	router.Post("/artists/{artistID}/albums", handler.createAlbumForArtist)
}

type albumRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
	ReleaseType string `json:"release_type"`
	CoverKey    string `json:"cover_key"`
}

type albumUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Language    *string `json:"language"`
	ReleaseType *string `json:"release_type"`
	CoverKey    *string `json:"cover_key"`
}

type rejectAlbumRequest struct {
	Reason string `json:"reason"`
}

func (request albumRequest) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, request.Title).
		MaxLen(FieldTitle, request.Title, 200).
		MaxLen(FieldDescription, request.Description, 2000).
		MaxLen(FieldLanguage, request.Language, 10)
	if request.ReleaseType != "" {
		validator.OneOf(FieldReleaseType, request.ReleaseType, ReleaseTypes...)
	}
	return validator.Err()
}

// createAlbum handles POST /api/v1/albums.
func (handler *Handler) createAlbum(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input albumRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), userID, CreateInput{
		Title:       input.Title,
		Description: input.Description,
		Language:    input.Language,
		ReleaseType: input.ReleaseType,
		CoverKey:    input.CoverKey,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

// createAlbumForArtist handles POST /api/v1/admin/artists/{artistID}/albums.
func (handler *Handler) createAlbumForArtist(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input albumRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateForArtist(
		request.Context(),
		claims.UserID,
		requestutil.ID(request, "artistID"),
		CreateInput{
			Title:       input.Title,
			Description: input.Description,
			Language:    input.Language,
			ReleaseType: input.ReleaseType,
			CoverKey:    input.CoverKey,
		},
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

// getAlbum handles GET /api/v1/albums/{id}.
func (handler *Handler) getAlbum(writer http.ResponseWriter, request *http.Request) {
	callerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		callerID = claims.UserID
	}

	found, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"), callerID, requestutil.IsAdmin(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

// listTracks handles GET /api/v1/albums/{id}/songs.
func (handler *Handler) listTracks(writer http.ResponseWriter, request *http.Request) {
	callerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		callerID = claims.UserID
	}

	tracks, err := handler.service.Tracks(request.Context(), requestutil.ID(request, "id"), callerID, requestutil.IsAdmin(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tracks)
}

// updateAlbum handles PATCH /api/v1/albums/{id}.
func (handler *Handler) updateAlbum(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input albumUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 200)
	}
	if input.ReleaseType != nil {
		validator.OneOf(FieldReleaseType, *input.ReleaseType, ReleaseTypes...)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.Update(
		request.Context(),
		userID,
		requestutil.IsAdmin(request),
		requestutil.ID(request, "id"),
		UpdateInput{
			Title:       input.Title,
			Description: input.Description,
			Language:    input.Language,
			ReleaseType: input.ReleaseType,
			CoverKey:    input.CoverKey,
		},
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

// submitAlbum handles POST /api/v1/albums/{id}/submit.
func (handler *Handler) submitAlbum(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	submitted, err := handler.service.Submit(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, submitted)
}

// submitAlbumForArtist handles POST /api/v1/admin/albums/{id}/submit.
func (handler *Handler) submitAlbumForArtist(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	submitted, err := handler.service.SubmitForArtist(request.Context(), claims.UserID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, submitted)
}

// approveAlbum handles POST /api/v1/admin/albums/{id}/approve.
func (handler *Handler) approveAlbum(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	approved, err := handler.service.Approve(request.Context(), claims.UserID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, approved)
}

// rejectAlbum handles POST /api/v1/admin/albums/{id}/reject.
func (handler *Handler) rejectAlbum(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rejectAlbumRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldReason, input.Reason).MaxLen(FieldReason, input.Reason, 1000)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rejected, err := handler.service.Reject(request.Context(), claims.UserID, requestutil.ID(request, "id"), input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, rejected)
}

// listMine handles GET /api/v1/albums/mine.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	albums, total, err := handler.service.ListMine(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, albums, pagination.NewMeta(params.Page, params.Limit, total))
}

// listPublicByArtist handles GET /api/v1/albums/by-artist/{artistID}.
func (handler *Handler) listPublicByArtist(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	albums, total, err := handler.service.ListPublicByArtist(request.Context(), requestutil.ID(request, "artistID"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, albums, pagination.NewMeta(params.Page, params.Limit, total))
}

// listPending handles GET /api/v1/admin/albums/pending.
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	albums, total, err := handler.service.ListPending(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, albums, pagination.NewMeta(params.Page, params.Limit, total))
}
