package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teamcbatch1/conceptclarity/server/config"
	"github.com/teamcbatch1/conceptclarity/server/controllers"
	"github.com/teamcbatch1/conceptclarity/server/middlewares"
	"github.com/teamcbatch1/conceptclarity/server/utils/types"
)

func AuthRoutes(ctrl *controllers.AuthController, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", handleJSON(func(r *http.Request) (any, error) {
		var req types.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: invalid request body", controllers.ErrBadRequest)
		}
		return ctrl.Register(r.Context(), req)
	}))

	r.Post("/login", handleJSON(func(r *http.Request) (any, error) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: invalid request body", controllers.ErrBadRequest)
		}
		return ctrl.Login(r.Context(), req)
	}))

	r.Get("/check-admin", handleJSON(func(r *http.Request) (any, error) {
		exists, err := ctrl.CheckAdminExists(r.Context())
		if err != nil {
			return nil, err
		}
		return map[string]bool{"adminExists": exists}, nil
	}))

	r.Post("/forgot-password", handleJSON(func(r *http.Request) (any, error) {
		var req types.ForgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: invalid request body", controllers.ErrBadRequest)
		}
		message, err := ctrl.ForgotPassword(r.Context(), req.Email)
		if err != nil {
			return nil, err
		}
		return map[string]string{"message": message}, nil
	}))

	r.Post("/reset-password", handleJSON(func(r *http.Request) (any, error) {
		var req types.ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: invalid request body", controllers.ErrBadRequest)
		}
		if err := ctrl.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
			return nil, err
		}
		return map[string]string{"message": "Password has been reset successfully"}, nil
	}))

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Get("/verify", handleJSON(func(r *http.Request) (any, error) {
			id, err := authedUserID(r)
			if err != nil {
				return nil, err
			}
			user, err := ctrl.Verify(r.Context(), id)
			if err != nil {
				return nil, err
			}
			return map[string]any{"user": user}, nil
		}))
	})

	return r
}
