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

func TicketRoutes(ctrl *controllers.TicketController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))

	r.Post("/create", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		var req types.CreateTicketRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: invalid request body", controllers.ErrBadRequest)
		}
		return ctrl.CreateTicket(r.Context(), id, req)
	}))

	r.Get("/my-tickets", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		return ctrl.GetUserTickets(r.Context(), id)
	}))

	r.Get("/{ticket_id}", handleJSON(func(r *http.Request) (any, error) {
		id, err := authedUserID(r)
		if err != nil {
			return nil, err
		}
		ticketID, err := uuid.Parse(chi.URLParam(r, "ticket_id"))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid ticket id", controllers.ErrBadRequest)
		}
		return ctrl.GetTicketByID(r.Context(), id, middlewares.Role(r), ticketID)
	}))

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.RequireAdmin)

		gr.Get("/all", handleJSON(func(r *http.Request) (any, error) {
			return ctrl.GetAllTickets(r.Context())
		}))

		gr.Get("/stats", handleJSON(func(r *http.Request) (any, error) {
			return ctrl.GetStats(r.Context())
		}))

		gr.Put("/{ticket_id}", handleJSON(func(r *http.Request) (any, error) {
			ticketID, err := uuid.Parse(chi.URLParam(r, "ticket_id"))
			if err != nil {
				return nil, fmt.Errorf("%w: invalid ticket id", controllers.ErrBadRequest)
			}
			var req types.UpdateTicketRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				return nil, fmt.Errorf("%w: invalid request body", controllers.ErrBadRequest)
			}
			return ctrl.UpdateTicket(r.Context(), ticketID, req)
		}))
	})

	return r
}
