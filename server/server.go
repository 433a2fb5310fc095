package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tunevault/cache"
	"tunevault/config"
	"tunevault/core/auth"
	"tunevault/core/library"
	"tunevault/core/media"
	"tunevault/db"
	"tunevault/logger"
	"tunevault/repository"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.InfoLevel,
		OutputPath: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
	})

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenExpiry)
	if err != nil {
		logger.Fatal("JWT_SECRET must be set", logger.ErrorField(err))
	}

	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.DB.Close()

	if err := db.InitDB(); err != nil {
		logger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}

	// The playlist cache is an optimization; run without it if Redis is down.
	if err := db.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, playlist cache disabled", logger.ErrorField(err))
	} else {
		defer db.CloseRedis()
		logger.Info("Successfully connected to Redis")
	}

	if err := media.EnsureDir(cfg.UploadDir); err != nil {
		logger.Fatal("Failed to create storage root", logger.ErrorField(err))
	}
	if err := media.EnsureDefaultCover(cfg.UploadDir); err != nil {
		logger.Fatal("Failed to provision default cover", logger.ErrorField(err))
	}

	songRepo := repository.NewMySQLSongRepository()
	playlistRepo := repository.NewMySQLPlaylistRepository()
	userRepo := repository.NewMySQLUserRepository()
	playlistCache := cache.NewPlaylistCache(db.RedisClient, 10*time.Minute)

	apiHandler := NewAPIHandler(songRepo, playlistRepo, userRepo, playlistCache, tokens, cfg)

	if cfg.WatchLibrary {
		scanner := library.NewScanner(cfg.UploadDir, songRepo, cfg.DefaultCoverPath)
		watcher, err := library.NewWatcher(scanner)
		if err != nil {
			logger.Fatal("Failed to create library watcher", logger.ErrorField(err))
		}
		if err := watcher.Start(); err != nil {
			logger.Fatal("Failed to start library watcher", logger.ErrorField(err))
		}
		defer watcher.Stop()
		logger.Info("Library watcher started", logger.String("root", cfg.UploadDir))
	}

	router := mux.NewRouter()

	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Range")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Auth endpoints
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)

	// Song catalog endpoints
	router.HandleFunc("/api/songs", apiHandler.GetSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/songs", apiHandler.UploadSongHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/songs/{id}", apiHandler.DeleteSongHandler).Methods(http.MethodDelete)

	// Playlist endpoints
	router.HandleFunc("/api/playlists", apiHandler.GetPlaylistsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists", apiHandler.CreatePlaylistHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}", apiHandler.GetPlaylistHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/playlists/{id}", apiHandler.RenamePlaylistHandler).Methods(http.MethodPut)
	router.HandleFunc("/api/playlists/{id}", apiHandler.DeletePlaylistHandler).Methods(http.MethodDelete)
	router.HandleFunc("/api/playlists/{id}/add", apiHandler.AddSongHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/playlists/{id}/songs/{songId}", apiHandler.RemoveSongHandler).Methods(http.MethodDelete)

	// Uploaded media, served read-only from the storage root
	uploadsFileServer := http.FileServer(http.Dir(cfg.UploadDir))
	router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", uploadsFileServer))

	// Web client bundle
	uiFileServer := http.FileServer(http.Dir(cfg.WebAppDir))
	router.PathPrefix("/").Handler(uiFileServer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	logger.Info("Server stopped")
}
