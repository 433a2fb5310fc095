package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"tunevault/logger"
	"tunevault/model"
	"tunevault/repository"
)

type playlistNameRequest struct {
	Name string `json:"name"`
}

type addSongRequest struct {
	SongID int64 `json:"songId"`
}

// GetPlaylistsHandler returns all playlists with their raw song ID lists.
func (h *APIHandler) GetPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.playlistRepo.GetAllPlaylists()
	if err != nil {
		logger.Error("Failed to list playlists", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, playlists)
}

// GetPlaylistHandler returns one playlist with its songs resolved to full
// catalog records. Song references that no longer resolve are dropped from
// the projection; the stored playlist keeps them (no cascade on song delete).
func (h *APIHandler) GetPlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	ctx := r.Context()
	if cached := h.playlistCache.GetResolved(ctx, id); cached != nil {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	playlist, err := h.playlistRepo.GetPlaylistByID(id)
	if err != nil {
		logger.Error("Failed to load playlist", logger.Int64("playlistId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if playlist == nil {
		respondError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	resolved := &model.ResolvedPlaylist{
		ID:        playlist.ID,
		Name:      playlist.Name,
		Songs:     make([]*model.Song, 0, len(playlist.SongIDs)),
		CreatedAt: playlist.CreatedAt,
		UpdatedAt: playlist.UpdatedAt,
	}
	for _, songID := range playlist.SongIDs {
		song, err := h.songRepo.GetSongByID(songID)
		if err != nil {
			logger.Error("Failed to resolve playlist song",
				logger.Int64("playlistId", id), logger.Int64("songId", songID), logger.ErrorField(err))
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}
		if song == nil {
			// Dangling reference left behind by a song deletion.
			logger.Debug("Dropping unresolved playlist song",
				logger.Int64("playlistId", id), logger.Int64("songId", songID))
			continue
		}
		resolved.Songs = append(resolved.Songs, song)
	}

	h.playlistCache.SetResolved(ctx, resolved)
	respondJSON(w, http.StatusOK, resolved)
}

// CreatePlaylistHandler creates an empty named playlist.
func (h *APIHandler) CreatePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	var req playlistNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name required")
		return
	}

	playlist, err := h.playlistRepo.CreatePlaylist(req.Name)
	if err != nil {
		logger.Error("Failed to create playlist", logger.String("name", req.Name), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	logger.Info("Playlist created", logger.Int64("playlistId", playlist.ID), logger.String("name", playlist.Name))
	respondJSON(w, http.StatusCreated, playlist)
}

// RenamePlaylistHandler updates a playlist's name.
func (h *APIHandler) RenamePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var req playlistNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Name required")
		return
	}

	if err := h.playlistRepo.RenamePlaylist(id, req.Name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		logger.Error("Failed to rename playlist", logger.Int64("playlistId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.playlistCache.Invalidate(r.Context(), id)
	h.respondWithPlaylist(w, id)
}

// DeletePlaylistHandler removes a playlist record only; songs are untouched.
func (h *APIHandler) DeletePlaylistHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	if err := h.playlistRepo.DeletePlaylist(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Playlist not found")
			return
		}
		logger.Error("Failed to delete playlist", logger.Int64("playlistId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.playlistCache.Invalidate(r.Context(), id)
	logger.Info("Playlist deleted", logger.Int64("playlistId", id))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Playlist deleted"})
}

// AddSongHandler appends a song to a playlist. The song must exist in the
// catalog at insertion time; adding a song already present is a no-op.
func (h *APIHandler) AddSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var req addSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playlist, err := h.playlistRepo.GetPlaylistByID(id)
	if err != nil {
		logger.Error("Failed to load playlist", logger.Int64("playlistId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if playlist == nil {
		respondError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	song, err := h.songRepo.GetSongByID(req.SongID)
	if err != nil {
		logger.Error("Failed to load song", logger.Int64("songId", req.SongID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if song == nil {
		respondError(w, http.StatusNotFound, "Song not found")
		return
	}

	if err := h.playlistRepo.AddSong(id, req.SongID); err != nil {
		logger.Error("Failed to add song to playlist",
			logger.Int64("playlistId", id), logger.Int64("songId", req.SongID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.playlistCache.Invalidate(r.Context(), id)
	h.respondWithPlaylist(w, id)
}

// RemoveSongHandler removes a song from a playlist. Removing a song that is
// not in the playlist is a no-op, not an error.
func (h *APIHandler) RemoveSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	songID, err := pathID(r, "songId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	playlist, err := h.playlistRepo.GetPlaylistByID(id)
	if err != nil {
		logger.Error("Failed to load playlist", logger.Int64("playlistId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if playlist == nil {
		respondError(w, http.StatusNotFound, "Playlist not found")
		return
	}

	if err := h.playlistRepo.RemoveSong(id, songID); err != nil {
		logger.Error("Failed to remove song from playlist",
			logger.Int64("playlistId", id), logger.Int64("songId", songID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	h.playlistCache.Invalidate(r.Context(), id)
	h.respondWithPlaylist(w, id)
}

// respondWithPlaylist writes the current state of a playlist after a mutation.
func (h *APIHandler) respondWithPlaylist(w http.ResponseWriter, id int64) {
	playlist, err := h.playlistRepo.GetPlaylistByID(id)
	if err != nil || playlist == nil {
		logger.Error("Failed to reload playlist", logger.Int64("playlistId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	respondJSON(w, http.StatusOK, playlist)
}
