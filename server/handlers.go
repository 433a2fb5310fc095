package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tunevault/cache"
	"tunevault/config"
	"tunevault/core/auth"
	"tunevault/logger"
	"tunevault/repository"

	"github.com/gorilla/mux"
)

// APIHandler handles all API requests.
type APIHandler struct {
	songRepo      repository.SongRepository
	playlistRepo  repository.PlaylistRepository
	userRepo      repository.UserRepository
	playlistCache *cache.PlaylistCache
	tokens        *auth.TokenIssuer
	cfg           *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	songRepo repository.SongRepository,
	playlistRepo repository.PlaylistRepository,
	userRepo repository.UserRepository,
	playlistCache *cache.PlaylistCache,
	tokens *auth.TokenIssuer,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		songRepo:      songRepo,
		playlistRepo:  playlistRepo,
		userRepo:      userRepo,
		playlistCache: playlistCache,
		tokens:        tokens,
		cfg:           cfg,
	}
}

// respondJSON writes payload as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode JSON response", logger.ErrorField(err))
	}
}

// respondError writes a JSON error body of the form {"error": message}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// pathID parses a numeric path variable.
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}
