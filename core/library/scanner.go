package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tunevault/core/media"
	"tunevault/logger"
	"tunevault/model"
	"tunevault/repository"

	"github.com/dhowden/tag"
)

// Scanner registers audio files that were placed into the storage root
// out-of-band (copied in by hand rather than uploaded) into the catalog.
type Scanner struct {
	root         string
	songRepo     repository.SongRepository
	defaultCover string
}

// NewScanner creates a Scanner over the given storage root.
func NewScanner(root string, songRepo repository.SongRepository, defaultCover string) *Scanner {
	return &Scanner{root: root, songRepo: songRepo, defaultCover: defaultCover}
}

// Scan walks the storage root once and registers every uncataloged audio
// file. Returns the number of songs registered.
func (s *Scanner) Scan() (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, fmt.Errorf("failed to read storage root %s: %w", s.root, err)
	}

	registered := 0
	for _, entry := range entries {
		if entry.IsDir() || !media.IsAllowedAudio(entry.Name()) {
			continue
		}
		added, err := s.RegisterFile(entry.Name())
		if err != nil {
			logger.Warn("Failed to register library file",
				logger.String("file", entry.Name()), logger.ErrorField(err))
			continue
		}
		if added {
			registered++
		}
	}
	return registered, nil
}

// RegisterFile catalogs a single audio file inside the storage root unless
// it is already known. Reports whether a new song was created.
func (s *Scanner) RegisterFile(name string) (bool, error) {
	servePath := "/" + filepath.ToSlash(filepath.Join(s.root, name))

	existing, err := s.songRepo.GetSongByAudioPath(servePath)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	title, artist := readMetadata(filepath.Join(s.root, name))
	song := &model.Song{
		Title:     title,
		Artist:    artist,
		AudioPath: servePath,
		CoverPath: s.defaultCover,
	}
	id, err := s.songRepo.CreateSong(song)
	if err != nil {
		return false, err
	}

	logger.Info("Registered library file",
		logger.Int64("songId", id),
		logger.String("file", name),
		logger.String("title", title))
	return true, nil
}

// readMetadata pulls title/artist from embedded tags, falling back to the
// filename when the file carries none.
func readMetadata(path string) (title, artist string) {
	title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	artist = "Unknown Artist"

	f, err := os.Open(path)
	if err != nil {
		return title, artist
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return title, artist
	}
	if t := strings.TrimSpace(m.Title()); t != "" {
		title = t
	}
	if a := strings.TrimSpace(m.Artist()); a != "" {
		artist = a
	}
	return title, artist
}
