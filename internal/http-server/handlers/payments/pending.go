package payments

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"gojobot/internal/lib/api/response"
	"gojobot/internal/lib/sl"
)

type pendingPayments struct {
	Registrations any `json:"registrations"`
	Trainings     any `json:"trainings"`
}

func Pending(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.payments"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		regs, err := handler.PendingRegistrationPayments()
		if err != nil {
			logger.Error("failed to list pending registration payments", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list pending payments: %v", err)))
			return
		}

		trs, err := handler.PendingTrainingPayments()
		if err != nil {
			logger.Error("failed to list pending training payments", sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list pending payments: %v", err)))
			return
		}

		logger.Debug("pending payments listed",
			slog.Int("registrations", len(regs)),
			slog.Int("trainings", len(trs)),
		)
		render.JSON(w, r, response.Ok(pendingPayments{Registrations: regs, Trainings: trs}))
	}
}
