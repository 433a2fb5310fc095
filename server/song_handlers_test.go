package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tunevault/model"
)

func TestGetSongsHandler_ReturnsNewestFirst(t *testing.T) {
	songRepo := &mockSongRepository{
		GetAllSongsFunc: func() ([]*model.Song, error) {
			return []*model.Song{
				{ID: 2, Title: "Newer", Artist: "A", UploadedAt: time.Now()},
				{ID: 1, Title: "Older", Artist: "B", UploadedAt: time.Now().Add(-time.Hour)},
			}, nil
		},
	}
	h := newTestHandler(t, songRepo, &mockPlaylistRepository{}, &mockUserRepository{})
	r := newTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/songs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", w.Code)
	}

	var body struct {
		Songs []model.Song `json:"songs"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(body.Songs) != 2 {
		t.Fatalf("Expected 2 songs, got %d", len(body.Songs))
	}
	if body.Songs[0].ID != 2 {
		t.Errorf("Expected newest song first, got ID %d", body.Songs[0].ID)
	}
}

func multipartUpload(t *testing.T, title, artist, audioName string, coverName string) (*bytes.Buffer, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	if title != "" {
		mw.WriteField("title", title)
	}
	if artist != "" {
		mw.WriteField("artist", artist)
	}
	if audioName != "" {
		fw, err := mw.CreateFormFile("audio", audioName)
		if err != nil {
			t.Fatalf("Failed to create audio part: %v", err)
		}
		io.WriteString(fw, "fake audio bytes")
	}
	if coverName != "" {
		fw, err := mw.CreateFormFile("cover", coverName)
		if err != nil {
			t.Fatalf("Failed to create cover part: %v", err)
		}
		io.WriteString(fw, "fake image bytes")
	}
	mw.Close()
	return buf, mw.FormDataContentType()
}

func TestUploadSongHandler_Success(t *testing.T) {
	var created *model.Song
	songRepo := &mockSongRepository{
		CreateSongFunc: func(song *model.Song) (int64, error) {
			created = song
			created.ID = 7
			created.UploadedAt = time.Now()
			return 7, nil
		},
		GetSongByIDFunc: func(id int64) (*model.Song, error) {
			if id == 7 {
				return created, nil
			}
			return nil, nil
		},
	}
	h := newTestHandler(t, songRepo, &mockPlaylistRepository{}, &mockUserRepository{})
	r := newTestRouter(h)

	body, contentType := multipartUpload(t, "A", "B", "track.mp3", "")
	req := httptest.NewRequest(http.MethodPost, "/api/songs", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var song model.Song
	if err := json.NewDecoder(w.Body).Decode(&song); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if song.Title != "A" || song.Artist != "B" {
		t.Errorf("Unexpected song metadata: %+v", song)
	}
	if song.CoverPath != h.cfg.DefaultCoverPath {
		t.Errorf("Expected default cover, got %s", song.CoverPath)
	}
	if filepath.Ext(song.AudioPath) != ".mp3" {
		t.Errorf("Expected stored audio to keep .mp3 extension, got %s", song.AudioPath)
	}

	// The audio file must exist in the storage root under its generated name.
	stored := filepath.Join(h.cfg.UploadDir, filepath.Base(song.AudioPath))
	if _, err := os.Stat(stored); err != nil {
		t.Errorf("Expected stored audio file at %s: %v", stored, err)
	}
}

func TestUploadSongHandler_MissingAudio(t *testing.T) {
	h := newTestHandler(t, &mockSongRepository{}, &mockPlaylistRepository{}, &mockUserRepository{})
	r := newTestRouter(h)

	body, contentType := multipartUpload(t, "A", "B", "", "")
	req := httptest.NewRequest(http.MethodPost, "/api/songs", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing audio, got %d", w.Code)
	}
}

func TestUploadSongHandler_MissingMetadata(t *testing.T) {
	h := newTestHandler(t, &mockSongRepository{}, &mockPlaylistRepository{}, &mockUserRepository{})
	r := newTestRouter(h)

	body, contentType := multipartUpload(t, "A", "", "track.mp3", "")
	req := httptest.NewRequest(http.MethodPost, "/api/songs", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing artist, got %d", w.Code)
	}
}

func TestUploadSongHandler_DisallowedExtension(t *testing.T) {
	createCalled := false
	songRepo := &mockSongRepository{
		CreateSongFunc: func(song *model.Song) (int64, error) {
			createCalled = true
			return 1, nil
		},
	}
	h := newTestHandler(t, songRepo, &mockPlaylistRepository{}, &mockUserRepository{})
	r := newTestRouter(h)

	body, contentType := multipartUpload(t, "A", "B", "track.exe", "")
	req := httptest.NewRequest(http.MethodPost, "/api/songs", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for disallowed extension, got %d", w.Code)
	}
	if createCalled {
		t.Error("Expected no catalog write for disallowed extension")
	}

	// Nothing may be written to the storage root before validation passes.
	entries, err := os.ReadDir(h.cfg.UploadDir)
	if err != nil {
		t.Fatalf("Failed to read storage root: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty storage root, found %d entries", len(entries))
	}
}

func TestUploadSongHandler_DisallowedCoverExtension(t *testing.T) {
	h := newTestHandler(t, &mockSongRepository{}, &mockPlaylistRepository{}, &mockUserRepository{})
	r := newTestRouter(h)

	body, contentType := multipartUpload(t, "A", "B", "track.mp3", "cover.gif")
	req := httptest.NewRequest(http.MethodPost, "/api/songs", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for disallowed cover extension, got %d", w.Code)
	}
}

func TestDeleteSongHandler_NotFound(t *testing.T) {
	h := newTestHandler(t, &mockSongRepository{}, &mockPlaylistRepository{}, &mockUserRepository{})
	r := newTestRouter(h)

	req := httptest.NewRequest(http.MethodDelete, "/api/songs/99", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing song, got %d", w.Code)
	}
}

func TestDeleteSongHandler_RemovesFilesButKeepsDefaultCover(t *testing.T) {
	h := newTestHandler(t, &mockSongRepository{}, &mockPlaylistRepository{}, &mockUserRepository{})

	audioPath := filepath.Join(h.cfg.UploadDir, "abc.mp3")
	defaultCover := filepath.Join(h.cfg.UploadDir, "default-cover.jpg")
	os.WriteFile(audioPath, []byte("audio"), 0644)
	os.WriteFile(defaultCover, []byte("cover"), 0644)

	songRepo := h.songRepo.(*mockSongRepository)
	songRepo.GetSongByIDFunc = func(id int64) (*model.Song, error) {
		return &model.Song{
			ID:        id,
			Title:     "A",
			Artist:    "B",
			AudioPath: "/uploads/abc.mp3",
			CoverPath: "/uploads/default-cover.jpg",
		}, nil
	}
	r := newTestRouter(h)

	req := httptest.NewRequest(http.MethodDelete, "/api/songs/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	if _, err := os.Stat(audioPath); !os.IsNotExist(err) {
		t.Error("Expected audio file to be removed")
	}
	if _, err := os.Stat(defaultCover); err != nil {
		t.Error("Expected default cover to survive song deletion")
	}
}

func TestDeleteSongHandler_RemovesCustomCover(t *testing.T) {
	h := newTestHandler(t, &mockSongRepository{}, &mockPlaylistRepository{}, &mockUserRepository{})

	audioPath := filepath.Join(h.cfg.UploadDir, "abc.mp3")
	coverPath := filepath.Join(h.cfg.UploadDir, "abc.jpg")
	os.WriteFile(audioPath, []byte("audio"), 0644)
	os.WriteFile(coverPath, []byte("cover"), 0644)

	songRepo := h.songRepo.(*mockSongRepository)
	songRepo.GetSongByIDFunc = func(id int64) (*model.Song, error) {
		return &model.Song{
			ID:        id,
			AudioPath: "/uploads/abc.mp3",
			CoverPath: "/uploads/abc.jpg",
		}, nil
	}
	r := newTestRouter(h)

	req := httptest.NewRequest(http.MethodDelete, "/api/songs/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", w.Code)
	}
	if _, err := os.Stat(coverPath); !os.IsNotExist(err) {
		t.Error("Expected custom cover to be removed with the song")
	}
}

func TestDeleteSongHandler_SurfacesFileCleanupFailure(t *testing.T) {
	h := newTestHandler(t, &mockSongRepository{}, &mockPlaylistRepository{}, &mockUserRepository{})

	// A non-empty directory in place of the audio file makes the unlink fail.
	blocked := filepath.Join(h.cfg.UploadDir, "blocked.mp3")
	os.MkdirAll(blocked, 0755)
	os.WriteFile(filepath.Join(blocked, "child"), []byte("x"), 0644)

	deleted := false
	songRepo := h.songRepo.(*mockSongRepository)
	songRepo.GetSongByIDFunc = func(id int64) (*model.Song, error) {
		return &model.Song{
			ID:        id,
			AudioPath: "/uploads/blocked.mp3",
			CoverPath: "/uploads/default-cover.jpg",
		}, nil
	}
	songRepo.DeleteSongFunc = func(id int64) error {
		deleted = true
		return nil
	}
	r := newTestRouter(h)

	req := httptest.NewRequest(http.MethodDelete, "/api/songs/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 when file cleanup fails, got %d", w.Code)
	}
	if !deleted {
		t.Error("Expected catalog record to be deleted despite cleanup failure")
	}

	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["error"] == "" {
		t.Error("Expected error body describing the cleanup failure")
	}
}
