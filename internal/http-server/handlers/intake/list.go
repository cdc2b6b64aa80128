package intake

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"gojobot/internal/lib/api/response"
	"gojobot/internal/lib/sl"
)

func Registrations(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.intake"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		regs, err := handler.ListRegistrations()
		if err != nil {
			logger.Error("failed to list registrations", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list registrations: %v", err)))
			return
		}

		logger.Debug("registrations listed", slog.Int("count", len(regs)))
		render.JSON(w, r, response.Ok(regs))
	}
}

func Trainings(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.intake"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		trs, err := handler.ListTrainings()
		if err != nil {
			logger.Error("failed to list trainings", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list trainings: %v", err)))
			return
		}

		logger.Debug("trainings listed", slog.Int("count", len(trs)))
		render.JSON(w, r, response.Ok(trs))
	}
}

func Jobs(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.intake"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		apps, err := handler.ListJobApplications()
		if err != nil {
			logger.Error("failed to list job applications", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list job applications: %v", err)))
			return
		}

		logger.Debug("job applications listed", slog.Int("count", len(apps)))
		render.JSON(w, r, response.Ok(apps))
	}
}
