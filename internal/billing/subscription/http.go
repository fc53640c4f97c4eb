// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package subscription

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/melodiahq/melodia/internal/platform/middleware"
	requestutil "github.com/melodiahq/melodia/internal/platform/request"
	"github.com/melodiahq/melodia/internal/platform/respond"
	"github.com/melodiahq/melodia/internal/platform/validate"
)

// Handler implements subscription HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /subscriptions surface.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/me", handler.getSubscription)
	router.Post("/activate", handler.activate)
	router.Delete("/", handler.cancel)

	return router
}

type activateRequest struct {
	Plan        string    `json:"plan"`
	Amount      float64   `json:"amount"`
	ProviderRef string    `json:"provider_ref"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

// activate handles POST /api/v1/subscriptions/activate.
func (handler *Handler) activate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input activateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldPlan, input.Plan).
		Required(FieldProviderRef, input.ProviderRef).
		Custom(FieldAmount, input.Amount <= 0, "must be greater than zero")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	activated, err := handler.service.Activate(request.Context(), userID, ActivateInput{
		Plan:        input.Plan,
		Amount:      input.Amount,
		ProviderRef: input.ProviderRef,
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, activated)
}

// cancel handles DELETE /api/v1/subscriptions.
func (handler *Handler) cancel(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Cancel(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// getSubscription handles GET /api/v1/subscriptions/me.
func (handler *Handler) getSubscription(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}
