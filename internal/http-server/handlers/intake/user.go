package intake

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	repository "gojobot/internal/database"
	"gojobot/internal/lib/api/response"
	"gojobot/internal/lib/sl"
)

// userRecords bundles everything known about one applicant.
type userRecords struct {
	Registration any `json:"registration,omitempty"`
	Training     any `json:"training,omitempty"`
	Jobs         any `json:"jobs,omitempty"`
}

func User(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.intake"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		telegramId, err := strconv.ParseInt(chi.URLParam(r, "telegramId"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("telegramId must be an integer"))
			return
		}

		var out userRecords
		if reg, err := handler.GetRegistration(telegramId); err == nil {
			out.Registration = reg
		} else if !errors.Is(err, repository.ErrNotFound) {
			logger.Error("failed to load registration", sl.Err(err))
		}
		if tr, err := handler.GetTraining(telegramId); err == nil {
			out.Training = tr
		} else if !errors.Is(err, repository.ErrNotFound) {
			logger.Error("failed to load training", sl.Err(err))
		}
		if apps, err := handler.GetJobApplicationsByUser(telegramId); err == nil && len(apps) > 0 {
			out.Jobs = apps
		}

		render.JSON(w, r, response.Ok(out))
	}
}
