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

func ChatRoutes(ctrl *controllers.ChatController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))

	r.Post("/create", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		var req types.CreateChatRequest
		if r.Body != nil {
			// Body is optional; a bare POST creates an untitled chat.
			json.NewDecoder(r.Body).Decode(&req)
		}
		return ctrl.CreateChat(r.Context(), id, req.Title)
	}))

	r.Post("/send", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		var req types.SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: invalid request body", controllers.ErrBadRequest)
		}
		return ctrl.SendMessage(r.Context(), id, req)
	}))

	r.Get("/", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		return ctrl.GetChats(r.Context(), id)
	}))

	r.Get("/{chat_id}", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		chatID, err := uuid.Parse(chi.URLParam(r, "chat_id"))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid chat id", controllers.ErrBadRequest)
		}
		return ctrl.GetMessages(r.Context(), id, chatID)
	}))

	r.Delete("/{chat_id}", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		chatID, err := uuid.Parse(chi.URLParam(r, "chat_id"))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid chat id", controllers.ErrBadRequest)
		}
		if err := ctrl.DeleteChat(r.Context(), id, chatID); err != nil {
			return nil, err
		}
		return map[string]string{"message": "Chat deleted"}, nil
	}))

	return r
}
