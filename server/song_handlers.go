package server

import (
	"errors"
	"net/http"
	"path/filepath"

	"tunevault/core/media"
	"tunevault/logger"
	"tunevault/model"
	"tunevault/repository"
)

// GetSongsHandler returns the whole catalog, most recently uploaded first.
func (h *APIHandler) GetSongsHandler(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songRepo.GetAllSongs()
	if err != nil {
		logger.Error("Failed to list songs", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"songs": songs})
}

// UploadSongHandler turns a multipart upload into a catalog record.
// Expected multipart form fields:
// - audio: the audio file (mp3/wav/ogg), required
// - cover: cover image (jpg/jpeg/png), optional
// - title, artist: required metadata
func (h *APIHandler) UploadSongHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32MB max memory
		respondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return
	}

	title := r.FormValue("title")
	artist := r.FormValue("artist")
	if title == "" || artist == "" {
		respondError(w, http.StatusBadRequest, "Title and artist are required")
		return
	}

	audioFile, audioHeader, err := r.FormFile("audio")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Audio file is required")
		return
	}
	defer audioFile.Close()

	// Validate extensions before anything touches the disk.
	if !media.IsAllowedAudio(audioHeader.Filename) {
		respondError(w, http.StatusBadRequest, "Only mp3, wav and ogg audio files are allowed")
		return
	}

	coverFile, coverHeader, err := r.FormFile("cover")
	if err == nil {
		defer coverFile.Close()
		if !media.IsAllowedImage(coverHeader.Filename) {
			respondError(w, http.StatusBadRequest, "Only jpg, jpeg and png cover images are allowed")
			return
		}
	} else if err != http.ErrMissingFile {
		respondError(w, http.StatusBadRequest, "Error processing cover file")
		return
	}

	audioName := media.GenerateFileName(audioHeader.Filename)
	audioDiskPath := filepath.Join(h.cfg.UploadDir, audioName)
	if err := media.SaveFile(audioFile, audioDiskPath); err != nil {
		logger.Error("Failed to save audio file", logger.String("path", audioDiskPath), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to store audio file")
		return
	}

	coverServePath := h.cfg.DefaultCoverPath
	var coverDiskPath string
	if coverFile != nil {
		coverName := media.GenerateFileName(coverHeader.Filename)
		coverDiskPath = filepath.Join(h.cfg.UploadDir, coverName)
		if err := media.SaveFile(coverFile, coverDiskPath); err != nil {
			logger.Error("Failed to save cover file", logger.String("path", coverDiskPath), logger.ErrorField(err))
			media.RemoveFile(audioDiskPath)
			respondError(w, http.StatusInternalServerError, "Failed to store cover file")
			return
		}
		coverServePath = "/" + filepath.ToSlash(coverDiskPath)
	}

	song := &model.Song{
		Title:     title,
		Artist:    artist,
		AudioPath: "/" + filepath.ToSlash(audioDiskPath),
		CoverPath: coverServePath,
	}

	songID, err := h.songRepo.CreateSong(song)
	if err != nil {
		// Files were written first; a failed insert must not leave them behind.
		media.RemoveFile(audioDiskPath)
		if coverDiskPath != "" {
			media.RemoveFile(coverDiskPath)
		}
		logger.Error("Failed to create song record", logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to create song")
		return
	}

	created, err := h.songRepo.GetSongByID(songID)
	if err != nil || created == nil {
		logger.Error("Failed to load created song", logger.Int64("songId", songID), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Failed to load created song")
		return
	}

	logger.Info("Song uploaded",
		logger.Int64("songId", songID),
		logger.String("title", title),
		logger.String("artist", artist))
	respondJSON(w, http.StatusCreated, created)
}

// DeleteSongHandler removes a song record and its stored files. The shared
// default cover is never deleted. If file removal fails after the record is
// gone, the failure is surfaced rather than swallowed, so the caller knows
// files may be orphaned.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	song, err := h.songRepo.GetSongByID(id)
	if err != nil {
		logger.Error("Failed to load song", logger.Int64("songId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if song == nil {
		respondError(w, http.StatusNotFound, "Song not found")
		return
	}

	if err := h.songRepo.DeleteSong(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Song not found")
			return
		}
		logger.Error("Failed to delete song record", logger.Int64("songId", id), logger.ErrorField(err))
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	var storageErr error
	if err := media.RemoveFile(media.DiskPath(h.cfg.UploadDir, song.AudioPath)); err != nil {
		storageErr = err
	}
	if !media.IsDefaultCover(song.CoverPath) {
		if err := media.RemoveFile(media.DiskPath(h.cfg.UploadDir, song.CoverPath)); err != nil && storageErr == nil {
			storageErr = err
		}
	}

	if storageErr != nil {
		logger.Error("Song record deleted but file cleanup failed",
			logger.Int64("songId", id), logger.ErrorField(storageErr))
		respondError(w, http.StatusInternalServerError,
			"Song record deleted but stored files could not be removed")
		return
	}

	logger.Info("Song deleted", logger.Int64("songId", id), logger.String("title", song.Title))
	respondJSON(w, http.StatusOK, map[string]string{"message": "Song deleted"})
}
