package payments

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"gojobot/internal/lib/api/response"
	"gojobot/internal/lib/sl"
)

// Review resolves a pending payment. kind is "registration" or
// "training", approved picks the verdict.
func Review(log *slog.Logger, reviewer Reviewer, kind string, approved bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.payments"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if id == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("record id is required"))
			return
		}

		msg, err := reviewer.ReviewPayment(kind, id, approved)
		if err != nil {
			logger.Error("failed to review payment",
				slog.String("kind", kind),
				slog.String("id", id),
				sl.Err(err),
			)
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to review payment: %v", err)))
			return
		}

		logger.Info("payment reviewed",
			slog.String("kind", kind),
			slog.String("id", id),
			slog.Bool("approved", approved),
		)
		render.JSON(w, r, response.Ok(msg))
	}
}
