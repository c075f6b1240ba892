package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sparetrackhq/sparetrack-backend/api/controllers"
	"github.com/sparetrackhq/sparetrack-backend/api/middleware"
	"github.com/sparetrackhq/sparetrack-backend/internal/attachments"
	"github.com/sparetrackhq/sparetrack-backend/internal/authn"
	"github.com/sparetrackhq/sparetrack-backend/internal/equipment"
	"github.com/sparetrackhq/sparetrack-backend/pkg/config"
	"github.com/sparetrackhq/sparetrack-backend/pkg/db"
	"github.com/sparetrackhq/sparetrack-backend/pkg/logger"
	"github.com/sparetrackhq/sparetrack-backend/pkg/metrics"
)

// NewRouter assembles the HTTP surface: the REST API, the uploads static
// tree, the metrics endpoint, and the SPA fallback.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	equipmentService equipment.Service,
	attachmentService attachments.Service,
	authService authn.Service,
	uploadRoot string,
	pingers ...db.Pinger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: false,
		}),
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.Health())
		r.Get("/ready", controllers.Ready(logg, pingers...))

		r.Route("/equipment", func(r chi.Router) {
			r.Get("/", controllers.EquipmentList(equipmentService, logg))
			r.Get("/{id}", controllers.EquipmentDetail(equipmentService, logg))
			r.Get("/{id}/attachments", controllers.EquipmentAttachments(equipmentService, logg))
			r.Patch("/{id}", controllers.EquipmentPatch(equipmentService, logg))
			r.Post("/{id}/upload", controllers.AttachmentUpload(attachmentService, cfg.Uploads.MaxSizeBytes, logg))
		})

		r.Post("/send-otp", controllers.SendOTP(authService, logg))
		r.Post("/verify-otp", controllers.VerifyOTP(authService, logg))
		r.Post("/register", controllers.Register(authService, logg))
		r.Post("/login", controllers.Login(authService, logg))
		r.Post("/forgot-password", controllers.ForgotPassword(authService, logg))
		r.Post("/logout", controllers.Logout())
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Handle("/uploads/*", uploadsHandler(uploadRoot))

	// Everything else is the SPA bundle with index fallback.
	r.NotFound(controllers.SPA(cfg.Web.DistDir))

	return r
}

// uploadsHandler serves stored attachment files. Directory paths answer 404
// instead of a listing.
func uploadsHandler(root string) http.Handler {
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(root)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(r.URL.Path, "/uploads/")))
		if rel == "." || strings.HasPrefix(rel, "..") {
			http.NotFound(w, r)
			return
		}
		info, err := os.Stat(filepath.Join(root, rel))
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}
