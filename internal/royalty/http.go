// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package royalty

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/melodiahq/melodia/internal/platform/middleware"
	requestutil "github.com/melodiahq/melodia/internal/platform/request"
	"github.com/melodiahq/melodia/internal/platform/respond"
	"github.com/melodiahq/melodia/internal/platform/validate"
	"github.com/melodiahq/melodia/pkg/pagination"
)

// Handler implements payout HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the artist-facing /earnings surface.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/mine", handler.listMine)

	return router
}

// RegisterAdminRoutes mounts the payout engine controls on an
// admin-guarded router.
func (handler *Handler) RegisterAdminRoutes(router chi.Router) {
	router.Post("/payouts/run", handler.runPayout)
	router.Get("/payouts", handler.listByMonth)
	router.Post("/payouts/{id}/paid", handler.markPaid)
}

type runRequest struct {
	Month string `json:"month"`
}

// runPayout handles POST /api/v1/admin/payouts/run.
func (handler *Handler) runPayout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input runRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldMonth, input.Month).Month(FieldMonth, input.Month)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Run(request.Context(), claims.UserID, input.Month)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

// listByMonth handles GET /api/v1/admin/payouts?month=YYYY-MM.
func (handler *Handler) listByMonth(writer http.ResponseWriter, request *http.Request) {
	month := request.URL.Query().Get("month")

	validator := &validate.Validator{}
	validator.Required(FieldMonth, month).Month(FieldMonth, month)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	payouts, total, err := handler.service.ListByMonth(request.Context(), month, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, payouts, pagination.NewMeta(params.Page, params.Limit, total))
}

// markPaid handles POST /api/v1/admin/payouts/{id}/paid.
func (handler *Handler) markPaid(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paid, err := handler.service.MarkPaid(request.Context(), claims.UserID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, paid)
}

// listMine handles GET /api/v1/earnings/mine.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	payouts, total, err := handler.service.ListMine(request.Context(), userID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, payouts, pagination.NewMeta(params.Page, params.Limit, total))
}
