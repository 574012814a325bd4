package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/moodmate/backend/internal/app"
	"github.com/zhouzirui/moodmate/backend/internal/handler/entry"
	"github.com/zhouzirui/moodmate/backend/internal/handler/history"
	"github.com/zhouzirui/moodmate/backend/internal/handler/live"
	"github.com/zhouzirui/moodmate/backend/internal/handler/palette"
	"github.com/zhouzirui/moodmate/backend/internal/handler/settings"
	"github.com/zhouzirui/moodmate/backend/internal/handler/stream"
	middlewarePkg "github.com/zhouzirui/moodmate/backend/internal/middleware"
	paletteModel "github.com/zhouzirui/moodmate/backend/internal/model/palette"
	"github.com/zhouzirui/moodmate/backend/pkg/utils"
)

// Options tunes the router.
type Options struct {
	Logger   *zap.Logger
	Location *time.Location
	// AIEnabled is reported by the health check.
	AIEnabled bool
}

// NewRouter wires HTTP routes to the application.
func NewRouter(a *app.App, pal paletteModel.Store, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		api.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]any{
				"status": "ok",
				"ai":     opts.AIEnabled,
				"busy":   a.Busy(),
			})
		})

		palette.New(pal).RegisterRoutes(api)
		entry.New(a, logger).RegisterRoutes(api)
		stream.New(a, logger).RegisterRoutes(api)
		history.New(a, logger, opts.Location).RegisterRoutes(api)
		settings.New(a, logger).RegisterRoutes(api)
		live.New(a, logger).RegisterRoutes(api)
	})

	return r
}
