package intake

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"gojobot/entity"
	repository "gojobot/internal/database"
	"gojobot/internal/lib/api/response"
	"gojobot/internal/lib/sl"
)

type jobStatusRequest struct {
	Status string `json:"status"`
}

// JobStatus moves a job application to a new review status.
func JobStatus(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.intake"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		var req jobStatusRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		switch req.Status {
		case entity.StatusPending, entity.StatusApproved, entity.StatusRejected:
		default:
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("Unknown status: %q", req.Status)))
			return
		}

		app, err := handler.UpdateJobStatus(id, req.Status)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("Job application not found"))
				return
			}
			logger.Error("failed to update job status", slog.String("id", id), sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to update status: %v", err)))
			return
		}

		logger.Info("job application status updated",
			slog.String("id", id),
			slog.String("status", req.Status),
		)
		render.JSON(w, r, response.Ok(app))
	}
}
