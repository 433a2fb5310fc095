package repository

import (
	"database/sql"
	"fmt"

	"tunevault/db"
	"tunevault/model"
)

// PlaylistRepository defines the interface for playlist data operations.
type PlaylistRepository interface {
	CreatePlaylist(name string) (*model.Playlist, error)
	GetPlaylistByID(id int64) (*model.Playlist, error)
	GetAllPlaylists() ([]*model.Playlist, error)
	RenamePlaylist(id int64, name string) error
	DeletePlaylist(id int64) error
	AddSong(playlistID, songID int64) error
	RemoveSong(playlistID, songID int64) error
}

// mysqlPlaylistRepository implements PlaylistRepository for MySQL.
type mysqlPlaylistRepository struct {
	DB *sql.DB
}

// NewMySQLPlaylistRepository creates a new mysqlPlaylistRepository backed by the global connection.
func NewMySQLPlaylistRepository() PlaylistRepository {
	return &mysqlPlaylistRepository{DB: db.DB}
}

// CreatePlaylist inserts an empty playlist and returns it with its generated ID.
func (r *mysqlPlaylistRepository) CreatePlaylist(name string) (*model.Playlist, error) {
	stmt, err := r.DB.Prepare(`INSERT INTO playlists (name) VALUES (?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement for CreatePlaylist: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.Exec(name)
	if err != nil {
		return nil, fmt.Errorf("failed to execute CreatePlaylist: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID for CreatePlaylist: %w", err)
	}

	return r.GetPlaylistByID(id)
}

// GetPlaylistByID retrieves a playlist with its ordered song IDs. Returns nil, nil when absent.
func (r *mysqlPlaylistRepository) GetPlaylistByID(id int64) (*model.Playlist, error) {
	query := `SELECT id, name, created_at, updated_at FROM playlists WHERE id = ?`
	row := r.DB.QueryRow(query, id)

	playlist := &model.Playlist{}
	err := row.Scan(&playlist.ID, &playlist.Name, &playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Playlist not found
		}
		return nil, fmt.Errorf("failed to scan playlist by ID %d: %w", id, err)
	}

	songIDs, err := r.getSongIDs(id)
	if err != nil {
		return nil, err
	}
	playlist.SongIDs = songIDs

	return playlist, nil
}

// GetAllPlaylists retrieves all playlists with their ordered song IDs.
func (r *mysqlPlaylistRepository) GetAllPlaylists() ([]*model.Playlist, error) {
	rows, err := r.DB.Query(`SELECT id, name, created_at, updated_at FROM playlists`)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]*model.Playlist, 0)
	for rows.Next() {
		playlist := &model.Playlist{}
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.CreatedAt, &playlist.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist in GetAllPlaylists: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetAllPlaylists: %w", err)
	}

	for _, playlist := range playlists {
		songIDs, err := r.getSongIDs(playlist.ID)
		if err != nil {
			return nil, err
		}
		playlist.SongIDs = songIDs
	}

	return playlists, nil
}

// RenamePlaylist updates a playlist's name. Returns ErrNotFound if absent.
func (r *mysqlPlaylistRepository) RenamePlaylist(id int64, name string) error {
	res, err := r.DB.Exec(`UPDATE playlists SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("failed to execute RenamePlaylist for ID %d: %w", id, err)
	}

	// RowsAffected is 0 both for a missing row and for an unchanged name,
	// so check existence explicitly before reporting not found.
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for RenamePlaylist: %w", err)
	}
	if affected == 0 {
		existing, err := r.GetPlaylistByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ErrNotFound
		}
	}
	return nil
}

// DeletePlaylist removes a playlist record; membership rows go with it via
// the foreign key cascade. Songs themselves are untouched.
func (r *mysqlPlaylistRepository) DeletePlaylist(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM playlists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to execute DeletePlaylist for ID %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for DeletePlaylist: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddSong appends a song to the end of a playlist. Adding a song that is
// already present is a no-op; the composite primary key guards against
// duplicates even under concurrent adds.
func (r *mysqlPlaylistRepository) AddSong(playlistID, songID int64) error {
	query := `
	INSERT INTO playlist_songs (playlist_id, song_id, position)
	SELECT ?, ?, COALESCE(MAX(position), -1) + 1 FROM playlist_songs WHERE playlist_id = ?
	ON DUPLICATE KEY UPDATE position = position`
	_, err := r.DB.Exec(query, playlistID, songID, playlistID)
	if err != nil {
		return fmt.Errorf("failed to add song %d to playlist %d: %w", songID, playlistID, err)
	}
	return nil
}

// RemoveSong removes a song from a playlist. Removing an absent song is a no-op.
func (r *mysqlPlaylistRepository) RemoveSong(playlistID, songID int64) error {
	_, err := r.DB.Exec(`DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("failed to remove song %d from playlist %d: %w", songID, playlistID, err)
	}
	return nil
}

func (r *mysqlPlaylistRepository) getSongIDs(playlistID int64) ([]int64, error) {
	rows, err := r.DB.Query(
		`SELECT song_id FROM playlist_songs WHERE playlist_id = ? ORDER BY position ASC`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs of playlist %d: %w", playlistID, err)
	}
	defer rows.Close()

	songIDs := make([]int64, 0)
	for rows.Next() {
		var songID int64
		if err := rows.Scan(&songID); err != nil {
			return nil, fmt.Errorf("failed to scan song ID of playlist %d: %w", playlistID, err)
		}
		songIDs = append(songIDs, songID)
	}
	return songIDs, rows.Err()
}
