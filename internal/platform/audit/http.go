// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

package audit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/melodiahq/melodia/internal/platform/respond"
)

const defaultLogLimit = 100

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin-only audit surface. The caller is
// responsible for wrapping the router with role enforcement.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/audit-logs", handler.listAuditLogs)
	router.Get("/stats", handler.dashboardStats)
}

func (handler *Handler) listAuditLogs(writer http.ResponseWriter, request *http.Request) {
	limit := defaultLogLimit
	if raw := request.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= defaultLogLimit {
			limit = parsed
		}
	}

	entries, err := handler.service.ListRecent(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, entries)
}

func (handler *Handler) dashboardStats(writer http.ResponseWriter, request *http.Request) {
	stats, err := handler.service.DashboardStats(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}
