package key

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"gojobot/internal/lib/api/cont"
	"gojobot/internal/lib/api/response"
	"gojobot/internal/lib/sl"
)

type Core interface {
	GenerateApiKey(username string) (string, error)
}

// Generate returns the caller's API key, creating one when none
// exists yet.
func Generate(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.key"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		username := cont.GetUser(r.Context())
		if username == "" {
			logger.Error("no user in context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Unauthorized"))
			return
		}

		newKey, err := handler.GenerateApiKey(username)
		if err != nil {
			logger.Error("failed to generate api key", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to generate key: %v", err)))
			return
		}

		logger.Info("api key issued", slog.String("username", username))
		render.JSON(w, r, response.Ok(newKey))
	}
}
