package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/teamcbatch1/conceptclarity/server/config"
	"github.com/teamcbatch1/conceptclarity/server/controllers"
	"github.com/teamcbatch1/conceptclarity/server/middlewares"
	"github.com/teamcbatch1/conceptclarity/server/sources/psql/models"
	"github.com/teamcbatch1/conceptclarity/server/utils/types"
)

const maxAvatarSize = 5 << 20

func UserRoutes(ctrl *controllers.UserController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))

	r.Get("/{user_id}", handleJSON(func(r *http.Request) (any, error) {
		targetID, err := pathUserID(r)
		if err != nil {
			return nil, err
		}
		if err := requireSelfOrAdmin(r, targetID); err != nil {
			return nil, err
		}
		return ctrl.GetUser(r.Context(), targetID)
	}))

	r.Put("/{user_id}", handleJSON(func(r *http.Request) (any, error) {
		targetID, err := pathUserID(r)
		if err != nil {
			return nil, err
		}
		if err := requireSelfOrAdmin(r, targetID); err != nil {
			return nil, err
		}
		var req types.UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: invalid request body", controllers.ErrBadRequest)
		}
		return ctrl.UpdateUser(r.Context(), targetID, req)
	}))

	r.Post("/{user_id}/avatar", handleJSON(func(r *http.Request) (any, error) {
		targetID, err := pathUserID(r)
		if err != nil {
			return nil, err
		}
		if err := requireSelfOrAdmin(r, targetID); err != nil {
			return nil, err
		}

		if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
			return nil, fmt.Errorf("%w: invalid multipart form", controllers.ErrBadRequest)
		}
		file, header, err := r.FormFile("avatar")
		if err != nil {
			return nil, fmt.Errorf("%w: avatar file is required", controllers.ErrBadRequest)
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		return ctrl.UploadAvatar(r.Context(), targetID, file, header.Size, contentType)
	}))

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.RequireAdmin)

		gr.Get("/", handleJSON(func(r *http.Request) (any, error) {
			return ctrl.GetAllUsers(r.Context())
		}))

		gr.Delete("/{user_id}", handleJSON(func(r *http.Request) (any, error) {
			targetID, err := pathUserID(r)
			if err != nil {
				return nil, err
			}
			if err := ctrl.DeleteUser(r.Context(), targetID); err != nil {
				return nil, err
			}
			return map[string]string{"message": "User deleted"}, nil
		}))
	})

	return r
}

func pathUserID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "user_id"))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid user id", controllers.ErrBadRequest)
	}
	return id, nil
}

func requireSelfOrAdmin(r *http.Request, targetID int) error {
	id, err := authedUserID(r)
	if err != nil {
		return err
	}
	if id != targetID && middlewares.Role(r) != models.RoleAdmin {
		return fmt.Errorf("%w: Unauthorized", controllers.ErrForbidden)
	}
	return nil
}
