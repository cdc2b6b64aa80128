package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"gojobot/internal/config"
	"gojobot/internal/http-server/handlers/errors"
	filehandlers "gojobot/internal/http-server/handlers/files"
	"gojobot/internal/http-server/handlers/intake"
	"gojobot/internal/http-server/handlers/key"
	"gojobot/internal/http-server/handlers/payments"
	"gojobot/internal/http-server/middleware/authenticate"
	"gojobot/internal/lib/sl"
	"gojobot/internal/service/files"
	"gojobot/internal/ws"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

// Handler is the database surface the API needs, implemented by the
// Mongo repository.
type Handler interface {
	authenticate.Authenticate
	intake.Core
	payments.Core
	key.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, reviewer payments.Reviewer, store files.Store, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	// Signed URLs carry their own auth, websockets authenticate by
	// query token.
	router.Get("/api/v1/files/{ref}", filehandlers.Serve(log, store, conf.Listen.SignSecret))
	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, handler, log, w, r)
	})

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.Timeout(15 * time.Second))
		authed.Use(authenticate.New(log, handler))

		authed.Route("/api/v1", func(v1 chi.Router) {
			v1.Route("/registrations", func(r chi.Router) {
				r.Get("/", intake.Registrations(log, handler))
			})
			v1.Route("/trainings", func(r chi.Router) {
				r.Get("/", intake.Trainings(log, handler))
			})
			v1.Route("/jobs", func(r chi.Router) {
				r.Get("/", intake.Jobs(log, handler))
				r.Post("/{id}/status", intake.JobStatus(log, handler))
			})
			v1.Get("/users/{telegramId}", intake.User(log, handler))
			v1.Route("/payments", func(r chi.Router) {
				r.Get("/pending", payments.Pending(log, handler))
				r.Post("/registration/{id}/approve", payments.Review(log, reviewer, "registration", true))
				r.Post("/registration/{id}/reject", payments.Review(log, reviewer, "registration", false))
				r.Post("/training/{id}/approve", payments.Review(log, reviewer, "training", true))
				r.Post("/training/{id}/reject", payments.Review(log, reviewer, "training", false))
			})
			v1.Get("/files/{ref}/sign", filehandlers.Sign(log, conf.Listen.SignSecret))
			v1.Route("/key", func(r chi.Router) {
				r.Post("/new", key.Generate(log, handler))
			})
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
