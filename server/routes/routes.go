package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/teamcbatch1/conceptclarity/server/controllers"
	"github.com/teamcbatch1/conceptclarity/server/middlewares"
	"github.com/teamcbatch1/conceptclarity/server/utils/logging"
)

// generic wrapper to reduce boilerplate
func handleJSON(handler func(r *http.Request) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := handler(r)
		if err != nil {
			status := statusFromError(err)
			if status == http.StatusInternalServerError {
				logging.ErrorLogger.Error("request failed",
					zap.String("path", r.URL.Path), zap.Error(err))
				http.Error(w, "Internal server error", status)
				return
			}
			http.Error(w, errorMessage(err), status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(res)
	}
}

var sentinels = map[error]int{
	controllers.ErrBadRequest:   http.StatusBadRequest,
	controllers.ErrUnauthorized: http.StatusUnauthorized,
	controllers.ErrForbidden:    http.StatusForbidden,
	controllers.ErrNotFound:     http.StatusNotFound,
}

func statusFromError(err error) int {
	for sentinel, status := range sentinels {
		if errors.Is(err, sentinel) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorMessage strips the sentinel prefix so only the user-facing part of a
// wrapped controller error goes on the wire.
func errorMessage(err error) string {
	msg := err.Error()
	for sentinel := range sentinels {
		prefix := sentinel.Error() + ": "
		if strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}

func authedUserID(r *http.Request) (int, error) {
	id, ok := middlewares.UserID(r)
	if !ok {
		return 0, controllers.ErrUnauthorized
	}
	return id, nil
}
