// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package song

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/melodiahq/melodia/internal/platform/middleware"
	requestutil "github.com/melodiahq/melodia/internal/platform/request"
	"github.com/melodiahq/melodia/internal/platform/respond"
	"github.com/melodiahq/melodia/internal/platform/validate"
	"github.com/melodiahq/melodia/pkg/pagination"
)

// Handler implements song HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /songs surface. Reads work with optional identity
// (owners see their drafts); mutations require authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.getSong)
	router.Get("/by-artist/{artistID}", handler.listPublicByArtist)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.createSong)
		r.Get("/mine", handler.listMine)
		r.Patch("/{id}", handler.updateSong)
		r.Post("/{id}/submit", handler.submitSong)
	})

	return router
}

// RegisterAdminRoutes mounts the moderation endpoints on an admin-guarded
// router.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Get("/songs/pending", handler.listPending)
	router.Post("/songs/{id}/approve", handler.approveSong)
	router.Post("/songs/{id}/reject", handler.rejectSong)
	router.Post("/artists/{artistID}/songs", handler.createSongForArtist)
}

type songRequest struct {
	Title           string  `json:"title"`
	Genre           string  `json:"genre"`
	Language        string  `json:"language"`
	Lyrics          string  `json:"lyrics"`
	Description     string  `json:"description"`
	DurationSeconds int     `json:"duration_seconds"`
	AudioKey        string  `json:"audio_key"`
	CoverKey        string  `json:"cover_key"`
	AlbumID         *string `json:"album_id"`
	TrackNumber     *int    `json:"track_number"`
}

type songUpdateRequest struct {
	Title           *string `json:"title"`
	Genre           *string `json:"genre"`
	Language        *string `json:"language"`
	Lyrics          *string `json:"lyrics"`
	Description     *string `json:"description"`
	DurationSeconds *int    `json:"duration_seconds"`
	AudioKey        *string `json:"audio_key"`
	CoverKey        *string `json:"cover_key"`
	AlbumID         *string `json:"album_id"`
	TrackNumber     *int    `json:"track_number"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (request songRequest) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, request.Title).
		MaxLen(FieldTitle, request.Title, 200).
		Required(FieldLyrics, request.Lyrics).
		MaxLen(FieldLanguage, request.Language, 10).
		MaxLen(FieldDescription, request.Description, 2000).
		Required(FieldAudioKey, request.AudioKey).
		Positive(FieldDuration, request.DurationSeconds)
	if request.AlbumID != nil {
		validator.UUID(FieldAlbumID, *request.AlbumID)
	}
	return validator.Err()
}

// createSong handles POST /api/v1/songs.
func (handler *Handler) createSong(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input songRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}
	if err := input.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.Create(request.Context(), userID, CreateInput{
		Title:           input.Title,
		Genre:           input.Genre,
		Language:        input.Language,
		Lyrics:          input.Lyrics,
		Description:     input.Description,
		DurationSeconds: input.DurationSeconds,
		AudioKey:        input.AudioKey,
		CoverKey:        input.CoverKey,
		AlbumID:         input.AlbumID,
		TrackNumber:     input.TrackNumber,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

// createSongForArtist handles POST /api/v1/admin/artists/{artistID}/songs.
func (handler *Handler) createSongForArtist(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input songRequest
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
			Title:           input.Title,
			Genre:           input.Genre,
			Language:        input.Language,
			Lyrics:          input.Lyrics,
			Description:     input.Description,
			DurationSeconds: input.DurationSeconds,
			AudioKey:        input.AudioKey,
			CoverKey:        input.CoverKey,
			AlbumID:         input.AlbumID,
			TrackNumber:     input.TrackNumber,
		},
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, created)
}

// getSong handles GET /api/v1/songs/{id}.
func (handler *Handler) getSong(writer http.ResponseWriter, request *http.Request) {
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

// updateSong handles PATCH /api/v1/songs/{id}.
func (handler *Handler) updateSong(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input songUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 200)
	}
	if input.Lyrics != nil {
		validator.Required(FieldLyrics, *input.Lyrics)
	}
	if input.DurationSeconds != nil {
		validator.Positive(FieldDuration, *input.DurationSeconds)
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
			Title:           input.Title,
			Genre:           input.Genre,
			Language:        input.Language,
			Lyrics:          input.Lyrics,
			Description:     input.Description,
			DurationSeconds: input.DurationSeconds,
			AudioKey:        input.AudioKey,
			CoverKey:        input.CoverKey,
			AlbumID:         input.AlbumID,
			TrackNumber:     input.TrackNumber,
		},
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

// submitSong handles POST /api/v1/songs/{id}/submit.
func (handler *Handler) submitSong(writer http.ResponseWriter, request *http.Request) {
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

// approveSong handles POST /api/v1/admin/songs/{id}/approve.
func (handler *Handler) approveSong(writer http.ResponseWriter, request *http.Request) {
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

// rejectSong handles POST /api/v1/admin/songs/{id}/reject.
func (handler *Handler) rejectSong(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rejectRequest
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

// listMine handles GET /api/v1/songs/mine.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	songs, total, err := handler.service.ListMine(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, songs, pagination.NewMeta(params.Page, params.Limit, total))
}

// listPublicByArtist handles GET /api/v1/songs/by-artist/{artistID}.
func (handler *Handler) listPublicByArtist(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	songs, total, err := handler.service.ListPublicByArtist(request.Context(), requestutil.ID(request, "artistID"), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, songs, pagination.NewMeta(params.Page, params.Limit, total))
}

// listPending handles GET /api/v1/admin/songs/pending?scope=standalone|album.
func (handler *Handler) listPending(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	scope := request.URL.Query().Get("scope")

	songs, total, err := handler.service.ListPending(request.Context(), scope, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, songs, pagination.NewMeta(params.Page, params.Limit, total))
}
