package model

import "time"

// Playlist is a named, ordered, duplicate-free collection of song references.
type Playlist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SongIDs   []int64   `json:"songs"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResolvedPlaylist is the read-time projection of a playlist with its song
// references resolved to full catalog records. References that no longer
// resolve are dropped from the projection, not from the stored playlist.
type ResolvedPlaylist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Songs     []*Song   `json:"songs"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
