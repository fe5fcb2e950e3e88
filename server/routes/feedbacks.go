package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/teamcbatch1/conceptclarity/server/config"
	"github.com/teamcbatch1/conceptclarity/server/controllers"
	"github.com/teamcbatch1/conceptclarity/server/middlewares"
	"github.com/teamcbatch1/conceptclarity/server/utils/types"
)

func FeedbackRoutes(ctrl *controllers.FeedbackController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))

	r.Post("/", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		var req types.CreateFeedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: invalid request body", controllers.ErrBadRequest)
		}
		return ctrl.CreateFeedback(r.Context(), id, req)
	}))

	r.Get("/user", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		return ctrl.GetUserFeedbacks(r.Context(), id)
	}))

	r.Get("/{feedback_id}", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		feedbackID, err := uuid.Parse(chi.URLParam(r, "feedback_id"))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid feedback id", controllers.ErrBadRequest)
		}
		return ctrl.GetFeedbackByID(r.Context(), id, middlewares.Role(r), feedbackID)
	}))

	r.Delete("/{feedback_id}", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		feedbackID, err := uuid.Parse(chi.URLParam(r, "feedback_id"))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid feedback id", controllers.ErrBadRequest)
		}
		if err := ctrl.DeleteFeedback(r.Context(), id, middlewares.Role(r), feedbackID); err != nil {
			return nil, err
		}
		return map[string]string{"message": "Feedback deleted"}, nil
	}))

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.RequireAdmin)

		gr.Get("/admin/all", handleJSON(func(r *http.Request) (any, error) {
			return ctrl.GetAllFeedbacks(r.Context())
		}))

		gr.Get("/admin/stats", handleJSON(func(r *http.Request) (any, error) {
			return ctrl.GetStats(r.Context())
		}))
	})

	return r
}
