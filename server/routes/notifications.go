package routes

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamcbatch1/conceptclarity/server/config"
	"github.com/teamcbatch1/conceptclarity/server/controllers"
	"github.com/teamcbatch1/conceptclarity/server/middlewares"
)

func NotificationRoutes(ctrl *controllers.NotificationController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))

	r.Get("/", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		return ctrl.GetNotifications(r.Context(), id)
	}))

	r.Get("/unread-count", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		count, err := ctrl.GetUnreadCount(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return map[string]int64{"unreadCount": count}, nil
	}))

	r.Put("/{notification_id}/read", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		notificationID, err := uuid.Parse(chi.URLParam(r, "notification_id"))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid notification id", controllers.ErrBadRequest)
		}
		if err := ctrl.MarkAsRead(r.Context(), id, notificationID); err != nil {
			return nil, err
		}
		return map[string]string{"message": "Notification marked as read"}, nil
	}))

	r.Put("/mark-all-read", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		if err := ctrl.MarkAllAsRead(r.Context(), id); err != nil {
			return nil, err
		}
		return map[string]string{"message": "All notifications marked as read"}, nil
	}))

	return r
}
