// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/melodiahq/melodia/internal/platform/request"
	"github.com/melodiahq/melodia/internal/platform/respond"
	"github.com/melodiahq/melodia/internal/platform/validate"
	"github.com/melodiahq/melodia/pkg/pagination"
)

// Handler implements profile and artist directory HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the authenticated /me surface.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getProfile)
	router.Patch("/", handler.updateProfile)
	router.Delete("/", handler.deleteAccount)
	router.Post("/artist-application", handler.requestArtistVerification)

	return router
}

// PublicRoutes returns the unauthenticated artist directory surface.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{slug}", handler.getArtistBySlug)
	return router
}

// RegisterAdminRoutes mounts the verification review endpoints on an
// admin-guarded router.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/artists/pending", handler.listPendingArtists)
	router.Post("/artists/{artistID}/approve", handler.approveArtist)
	router.Post("/artists/{artistID}/reject", handler.rejectArtist)
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`
}

type artistApplicationRequest struct {
	ArtistName string `json:"artist_name"`
}

type rejectArtistRequest struct {
	Reason string `json:"reason"`
}

// getProfile handles GET /api/v1/me.
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

// updateProfile handles PATCH /api/v1/me.
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.DisplayName != nil {
		validator.Required("display_name", *input.DisplayName).
			MaxLen("display_name", *input.DisplayName, 100)
	}
	if input.Bio != nil {
		validator.MaxLen("bio", *input.Bio, 2000)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
		AvatarURL:   input.AvatarURL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

// deleteAccount handles DELETE /api/v1/me.
func (handler *Handler) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// requestArtistVerification handles POST /api/v1/me/artist-application.
func (handler *Handler) requestArtistVerification(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input artistApplicationRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required("artist_name", input.ArtistName).
		MaxLen("artist_name", input.ArtistName, 100)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.RequestArtistVerification(request.Context(), userID, input.ArtistName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, profile)
}

// getArtistBySlug handles GET /api/v1/artists/{slug}.
func (handler *Handler) getArtistBySlug(writer http.ResponseWriter, request *http.Request) {
	artistSlug := chi.URLParam(request, "slug")

	profile, err := handler.service.GetArtistBySlug(request.Context(), artistSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

// listPendingArtists handles GET /api/v1/admin/artists/pending.
func (handler *Handler) listPendingArtists(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	profiles, total, err := handler.service.ListPendingArtists(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, profiles, pagination.NewMeta(params.Page, params.Limit, total))
}

// approveArtist handles POST /api/v1/admin/artists/{artistID}/approve.
func (handler *Handler) approveArtist(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.ApproveArtist(request.Context(), claims.UserID, requestutil.ID(request, "artistID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

// rejectArtist handles POST /api/v1/admin/artists/{artistID}/reject.
func (handler *Handler) rejectArtist(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rejectArtistRequest
	if request.Body != nil && request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, validate.ErrInvalidJSON)
			return
		}
	}
	if input.Reason == "" {
		input.Reason = "Application declined"
	}

	profile, err := handler.service.RejectArtist(
		request.Context(),
		claims.UserID,
		requestutil.ID(request, "artistID"),
		input.Reason,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}
