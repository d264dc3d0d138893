package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	logger "github.com/sirupsen/logrus"

	"orderdesk/src/auth"
	"orderdesk/src/handler"
	"orderdesk/src/lookup"
	"orderdesk/src/pipeline"
	"orderdesk/src/repository"
	"orderdesk/src/templates"
)

// Desk is everything the desk API routes to.
type Desk struct {
	Pipeline  *pipeline.Pipeline
	History   *repository.HistoryRepository
	Templates *templates.Service
	Chain     *lookup.ChainLookup
	TokenHash string
}

func NewRouter(desk Desk) http.Handler {
	r := chi.NewRouter()
	// === Global Middleware ===
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("healthcheck write error")
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireBearer(desk.TokenHash))

		r.Route("/draft", func(r chi.Router) {
			r.Get("/", handler.GetDraftHandler(desk.Pipeline))
			r.Patch("/", handler.PatchDraftHandler(desk.Pipeline))
			r.Post("/reset", handler.ResetDraftHandler(desk.Pipeline))
			r.Post("/preview", handler.PreviewHandler(desk.Pipeline))
			r.Post("/submit", handler.SubmitHandler(desk.Pipeline))
			r.Post("/confirm", handler.ConfirmHandler(desk.Pipeline))
			r.Post("/cancel", handler.CancelHandler(desk.Pipeline))
			r.Post("/resubmit-last", handler.ResubmitLastHandler(desk.Pipeline))
		})

		r.Get("/history", handler.HistoryHandler(desk.History))

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", handler.ListTemplatesHandler(desk.Templates))
			r.Post("/", handler.SaveTemplateHandler(desk.Templates, desk.Pipeline))
			r.Delete("/{id}", handler.DeleteTemplateHandler(desk.Templates))
			r.Post("/{id}/apply", handler.ApplyTemplateHandler(desk.Templates, desk.Pipeline))
		})

		r.Get("/options/expirations", handler.ExpirationsHandler(desk.Chain))
		r.Get("/options/strikes", handler.StrikesHandler(desk.Chain))
	})

	return r
}

// StartServer serves h on port until SIGINT or SIGTERM, then shuts down
// gracefully.
func StartServer(port string, h http.Handler) {
	// Server setup
	addr := ":" + port
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	// Shutdown on SIGINT or SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
