package files

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"gojobot/internal/lib/api/response"
	"gojobot/internal/lib/fileurl"
	"gojobot/internal/lib/sl"
	"gojobot/internal/service/files"
)

// Serve streams a stored artifact. The route is public but every URL is
// signed with an expiry, so only holders of a freshly signed link get
// through.
func Serve(log *slog.Logger, store files.Store, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.files"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ref := chi.URLParam(r, "ref")
		expires := r.URL.Query().Get("expires")
		sig := r.URL.Query().Get("sig")

		if !fileurl.Verify(ref, expires, sig, secret) {
			logger.Warn("rejected file request", slog.String("ref", ref))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("Link is invalid or expired"))
			return
		}

		rc, name, err := store.Open(r.Context(), ref)
		if err != nil {
			if errors.Is(err, files.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("File not found"))
				return
			}
			logger.Error("failed to open artifact", slog.String("ref", ref), sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to open file"))
			return
		}
		defer rc.Close()

		if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
			w.Header().Set("Content-Type", ct)
		} else {
			w.Header().Set("Content-Type", "application/octet-stream")
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))

		if _, err := io.Copy(w, rc); err != nil {
			logger.Warn("streaming artifact", slog.String("ref", ref), sl.Err(err))
		}
	}
}
