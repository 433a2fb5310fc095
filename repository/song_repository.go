package repository

import (
	"database/sql"
	"fmt"

	"tunevault/db"
	"tunevault/model"
)

// SongRepository defines the interface for song catalog operations.
type SongRepository interface {
	CreateSong(song *model.Song) (int64, error)
	GetSongByID(id int64) (*model.Song, error)
	GetAllSongs() ([]*model.Song, error)
	GetSongByAudioPath(audioPath string) (*model.Song, error)
	DeleteSong(id int64) error
}

// mysqlSongRepository implements SongRepository for MySQL.
type mysqlSongRepository struct {
	DB *sql.DB
}

// NewMySQLSongRepository creates a new mysqlSongRepository backed by the global connection.
func NewMySQLSongRepository() SongRepository {
	return &mysqlSongRepository{DB: db.DB}
}

// CreateSong adds a new song to the catalog and returns its generated ID.
func (r *mysqlSongRepository) CreateSong(song *model.Song) (int64, error) {
	query := `INSERT INTO songs (title, artist, audio_path, cover_path) VALUES (?, ?, ?, ?)`
	stmt, err := r.DB.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateSong: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(song.Title, song.Artist, song.AudioPath, song.CoverPath)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateSong: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateSong: %w", err)
	}
	return id, nil
}

// GetSongByID retrieves a song by its ID. Returns nil, nil when absent.
func (r *mysqlSongRepository) GetSongByID(id int64) (*model.Song, error) {
	query := `SELECT id, title, artist, audio_path, cover_path, uploaded_at FROM songs WHERE id = ?`
	row := r.DB.QueryRow(query, id)

	song := &model.Song{}
	err := row.Scan(&song.ID, &song.Title, &song.Artist, &song.AudioPath, &song.CoverPath, &song.UploadedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Song not found
		}
		return nil, fmt.Errorf("failed to scan song by ID %d: %w", id, err)
	}
	return song, nil
}

// GetAllSongs retrieves all songs, most recently uploaded first.
func (r *mysqlSongRepository) GetAllSongs() ([]*model.Song, error) {
	query := `SELECT id, title, artist, audio_path, cover_path, uploaded_at
	           FROM songs ORDER BY uploaded_at DESC, id DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := make([]*model.Song, 0)
	for rows.Next() {
		song := &model.Song{}
		if err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.AudioPath, &song.CoverPath, &song.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan song in GetAllSongs: %w", err)
		}
		songs = append(songs, song)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetAllSongs: %w", err)
	}

	return songs, nil
}

// GetSongByAudioPath retrieves a song by its stored audio path. Returns nil, nil when absent.
// Used by the library watcher to skip files that are already cataloged.
func (r *mysqlSongRepository) GetSongByAudioPath(audioPath string) (*model.Song, error) {
	query := `SELECT id, title, artist, audio_path, cover_path, uploaded_at FROM songs WHERE audio_path = ?`
	row := r.DB.QueryRow(query, audioPath)

	song := &model.Song{}
	err := row.Scan(&song.ID, &song.Title, &song.Artist, &song.AudioPath, &song.CoverPath, &song.UploadedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan song by audio path %s: %w", audioPath, err)
	}
	return song, nil
}

// DeleteSong removes a song record. Returns ErrNotFound if no row was deleted.
// Playlist membership rows referencing the song are left in place; resolution
// drops them at read time.
func (r *mysqlSongRepository) DeleteSong(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to execute DeleteSong for ID %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for DeleteSong: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
