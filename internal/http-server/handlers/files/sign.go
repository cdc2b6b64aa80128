package files

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"gojobot/internal/lib/api/response"
	"gojobot/internal/lib/fileurl"
	"gojobot/internal/lib/sl"
)

const linkTTL = 15 * time.Minute

// Sign returns a short-lived signed URL for an artifact reference. The
// route itself sits behind API key auth.
func Sign(log *slog.Logger, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.files"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ref := chi.URLParam(r, "ref")
		if ref == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("file reference is required"))
			return
		}

		url := fileurl.SignURL(ref, secret, linkTTL)
		logger.Debug("signed file url", slog.String("ref", ref))
		render.JSON(w, r, response.Ok(url))
	}
}
