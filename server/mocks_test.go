package server

import (
	"tunevault/model"
)

// mockSongRepository implements repository.SongRepository for testing.
type mockSongRepository struct {
	CreateSongFunc         func(song *model.Song) (int64, error)
	GetSongByIDFunc        func(id int64) (*model.Song, error)
	GetAllSongsFunc        func() ([]*model.Song, error)
	GetSongByAudioPathFunc func(audioPath string) (*model.Song, error)
	DeleteSongFunc         func(id int64) error
}

func (m *mockSongRepository) CreateSong(song *model.Song) (int64, error) {
	if m.CreateSongFunc != nil {
		return m.CreateSongFunc(song)
	}
	return 1, nil
}

func (m *mockSongRepository) GetSongByID(id int64) (*model.Song, error) {
	if m.GetSongByIDFunc != nil {
		return m.GetSongByIDFunc(id)
	}
	return nil, nil
}

func (m *mockSongRepository) GetAllSongs() ([]*model.Song, error) {
	if m.GetAllSongsFunc != nil {
		return m.GetAllSongsFunc()
	}
	return []*model.Song{}, nil
}

func (m *mockSongRepository) GetSongByAudioPath(audioPath string) (*model.Song, error) {
	if m.GetSongByAudioPathFunc != nil {
		return m.GetSongByAudioPathFunc(audioPath)
	}
	return nil, nil
}

func (m *mockSongRepository) DeleteSong(id int64) error {
	if m.DeleteSongFunc != nil {
		return m.DeleteSongFunc(id)
	}
	return nil
}

// mockPlaylistRepository implements repository.PlaylistRepository for testing.
type mockPlaylistRepository struct {
	CreatePlaylistFunc  func(name string) (*model.Playlist, error)
	GetPlaylistByIDFunc func(id int64) (*model.Playlist, error)
	GetAllPlaylistsFunc func() ([]*model.Playlist, error)
	RenamePlaylistFunc  func(id int64, name string) error
	DeletePlaylistFunc  func(id int64) error
	AddSongFunc         func(playlistID, songID int64) error
	RemoveSongFunc      func(playlistID, songID int64) error
}

func (m *mockPlaylistRepository) CreatePlaylist(name string) (*model.Playlist, error) {
	if m.CreatePlaylistFunc != nil {
		return m.CreatePlaylistFunc(name)
	}
	return &model.Playlist{ID: 1, Name: name, SongIDs: []int64{}}, nil
}

func (m *mockPlaylistRepository) GetPlaylistByID(id int64) (*model.Playlist, error) {
	if m.GetPlaylistByIDFunc != nil {
		return m.GetPlaylistByIDFunc(id)
	}
	return nil, nil
}

func (m *mockPlaylistRepository) GetAllPlaylists() ([]*model.Playlist, error) {
	if m.GetAllPlaylistsFunc != nil {
		return m.GetAllPlaylistsFunc()
	}
	return []*model.Playlist{}, nil
}

func (m *mockPlaylistRepository) RenamePlaylist(id int64, name string) error {
	if m.RenamePlaylistFunc != nil {
		return m.RenamePlaylistFunc(id, name)
	}
	return nil
}

func (m *mockPlaylistRepository) DeletePlaylist(id int64) error {
	if m.DeletePlaylistFunc != nil {
		return m.DeletePlaylistFunc(id)
	}
	return nil
}

func (m *mockPlaylistRepository) AddSong(playlistID, songID int64) error {
	if m.AddSongFunc != nil {
		return m.AddSongFunc(playlistID, songID)
	}
	return nil
}

func (m *mockPlaylistRepository) RemoveSong(playlistID, songID int64) error {
	if m.RemoveSongFunc != nil {
		return m.RemoveSongFunc(playlistID, songID)
	}
	return nil
}

// mockUserRepository implements repository.UserRepository for testing.
type mockUserRepository struct {
	CreateUserFunc        func(user *model.User) (int64, error)
	GetUserByIDFunc       func(id int64) (*model.User, error)
	GetUserByUsernameFunc func(username string) (*model.User, error)
}

func (m *mockUserRepository) CreateUser(user *model.User) (int64, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(user)
	}
	return 1, nil
}

func (m *mockUserRepository) GetUserByID(id int64) (*model.User, error) {
	if m.GetUserByIDFunc != nil {
		return m.GetUserByIDFunc(id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetUserByUsername(username string) (*model.User, error) {
	if m.GetUserByUsernameFunc != nil {
		return m.GetUserByUsernameFunc(username)
	}
	return nil, nil
}
