package library

import (
	"os"
	"path/filepath"
	"testing"

	"tunevault/model"
)

// mockSongRepository implements repository.SongRepository for scanner tests.
type mockSongRepository struct {
	songs  []*model.Song
	nextID int64
}

func (m *mockSongRepository) CreateSong(song *model.Song) (int64, error) {
	m.nextID++
	song.ID = m.nextID
	m.songs = append(m.songs, song)
	return song.ID, nil
}

func (m *mockSongRepository) GetSongByID(id int64) (*model.Song, error) {
	for _, song := range m.songs {
		if song.ID == id {
			return song, nil
		}
	}
	return nil, nil
}

func (m *mockSongRepository) GetAllSongs() ([]*model.Song, error) {
	return m.songs, nil
}

func (m *mockSongRepository) GetSongByAudioPath(audioPath string) (*model.Song, error) {
	for _, song := range m.songs {
		if song.AudioPath == audioPath {
			return song, nil
		}
	}
	return nil, nil
}

func (m *mockSongRepository) DeleteSong(id int64) error {
	return nil
}

func TestScan_RegistersUncatalogedAudio(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, "road-trip.mp3"), []byte("not real audio"), 0644)
	os.WriteFile(filepath.Join(root, "notes.txt"), []byte("ignored"), 0644)

	repo := &mockSongRepository{}
	scanner := NewScanner(root, repo, "/uploads/default-cover.jpg")

	registered, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if registered != 1 {
		t.Fatalf("Expected 1 registered song, got %d", registered)
	}

	song := repo.songs[0]
	// The fake file carries no tags, so metadata falls back to the filename.
	if song.Title != "road-trip" {
		t.Errorf("Expected filename-derived title, got %s", song.Title)
	}
	if song.Artist != "Unknown Artist" {
		t.Errorf("Expected fallback artist, got %s", song.Artist)
	}
	if song.CoverPath != "/uploads/default-cover.jpg" {
		t.Errorf("Expected default cover, got %s", song.CoverPath)
	}
}

func TestScan_IsIdempotent(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, "track.ogg"), []byte("x"), 0644)

	repo := &mockSongRepository{}
	scanner := NewScanner(root, repo, "/uploads/default-cover.jpg")

	if _, err := scanner.Scan(); err != nil {
		t.Fatalf("First scan failed: %v", err)
	}
	registered, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Second scan failed: %v", err)
	}
	if registered != 0 {
		t.Errorf("Expected second scan to register nothing, got %d", registered)
	}
	if len(repo.songs) != 1 {
		t.Errorf("Expected a single catalog entry, got %d", len(repo.songs))
	}
}
