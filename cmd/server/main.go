package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mkbraam/wishd/internal/auth"
	"github.com/mkbraam/wishd/internal/config"
	"github.com/mkbraam/wishd/internal/images"
	"github.com/mkbraam/wishd/internal/lists"
	"github.com/mkbraam/wishd/internal/middleware"
	"github.com/mkbraam/wishd/internal/store"
)

// purgeInterval is how often expired sessions are swept.
const purgeInterval = time.Hour

func main() {
	cfg := config.Load()
	ctx := context.Background()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	// ── Database ─────────────────────────────────────────────
	db, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal("database connect", "err", err)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("database migrate", "err", err)
	}

	// ── Sessions ─────────────────────────────────────────────
	sessions := auth.NewSessions(db, db)
	hasher := auth.NewHasher(cfg.BcryptCost)

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(db, sessions, hasher, logger)
	listHandler := lists.NewHandler(db, logger)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.CurrentUser(sessions, logger))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.With(middleware.RequireAuth).Get("/me", authHandler.Me)
	})

	// List and item routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", listHandler.Stats)
		r.Route("/lists", func(r chi.Router) {
			r.Get("/", listHandler.Index)
			r.Post("/", listHandler.Create)
			r.Get("/{key}", listHandler.Show)
			r.Put("/{key}", listHandler.Update)
			r.Delete("/{key}", listHandler.Destroy)

			r.Route("/{key}/items", func(r chi.Router) {
				r.Get("/", listHandler.ItemIndex)
				r.Post("/", listHandler.ItemCreate)
				r.Get("/{itemID}", listHandler.ItemShow)
				r.Put("/{itemID}", listHandler.ItemUpdate)
				r.Delete("/{itemID}", listHandler.ItemDestroy)
			})
		})

		// Image routes need object storage configured.
		if cfg.MinioEndpoint != "" {
			blobs, err := store.NewBlobStore(
				ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
				cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
			)
			if err != nil {
				logger.Fatal("minio connect", "err", err)
			}
			imageHandler := images.NewHandler(db, blobs, logger)

			r.Route("/images", func(r chi.Router) {
				r.Post("/", imageHandler.Create)
				r.Get("/{id}", imageHandler.Show)
				r.Get("/{id}/content", imageHandler.Content)
				r.Delete("/{id}", imageHandler.Destroy)
			})
		}
	})

	// ── Session purge ────────────────────────────────────────
	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-purgeCtx.Done():
				return
			case <-ticker.C:
				n, err := sessions.PurgeExpired(purgeCtx)
				if err != nil {
					logger.Error("purge sessions", "err", err)
				} else if n > 0 {
					logger.Info("purged expired sessions", "count", n)
				}
			}
		}
	}()

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
