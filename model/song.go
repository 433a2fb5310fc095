package model

import "time"

// Song represents an uploaded track in the library catalog.
type Song struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	AudioPath  string    `json:"url"`   // Serve path of the stored audio file, e.g. /uploads/<name>.mp3
	CoverPath  string    `json:"cover"` // Serve path of the cover image; falls back to the shared default
	UploadedAt time.Time `json:"uploadedAt"`
}
