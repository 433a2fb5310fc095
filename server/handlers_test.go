package server

import (
	"net/http"
	"testing"
	"time"

	"tunevault/config"
	"tunevault/core/auth"

	"github.com/gorilla/mux"
)

func newTestHandler(t *testing.T, songRepo *mockSongRepository, playlistRepo *mockPlaylistRepository, userRepo *mockUserRepository) *APIHandler {
	t.Helper()

	tokens, err := auth.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create token issuer: %v", err)
	}

	cfg := &config.Config{
		UploadDir:        t.TempDir(),
		DefaultCoverPath: "/uploads/default-cover.jpg",
		TokenExpiry:      time.Hour,
	}

	return NewAPIHandler(songRepo, playlistRepo, userRepo, nil, tokens, cfg)
}

func newTestRouter(h *APIHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/auth/register", h.RegisterHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", h.LoginHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/songs", h.GetSongsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/songs", h.UploadSongHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/songs/{id}", h.DeleteSongHandler).Methods(http.MethodDelete)
	r.HandleFunc("/api/playlists", h.GetPlaylistsHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/playlists", h.CreatePlaylistHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/playlists/{id}", h.GetPlaylistHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/playlists/{id}", h.RenamePlaylistHandler).Methods(http.MethodPut)
	r.HandleFunc("/api/playlists/{id}", h.DeletePlaylistHandler).Methods(http.MethodDelete)
	r.HandleFunc("/api/playlists/{id}/add", h.AddSongHandler).Methods(http.MethodPost)
	r.HandleFunc("/api/playlists/{id}/songs/{songId}", h.RemoveSongHandler).Methods(http.MethodDelete)
	return r
}
