package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopcraft/storefront/internal/api/middleware"
	"github.com/shopcraft/storefront/internal/errors"
	"github.com/shopcraft/storefront/internal/models"
	service "github.com/shopcraft/storefront/internal/services"
	"github.com/shopcraft/storefront/internal/utils/response"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) ListNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized notification access attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil || page < 1 {
			page = 1
		}
		pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if err != nil || pageSize < 1 || pageSize > 100 {
			pageSize = 10
		}

		notifications, total, err := h.notificationService.ListNotificationsByUser(r.Context(), claims.UserID, page, pageSize)
		if err != nil {
			logger.Error("Failed to list notifications", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, models.PaginatedResponse{
			Data:     notifications,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		})
	}
}
