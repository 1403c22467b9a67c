package main

// SongRecord is the persisted form of a song. The nullable foreign keys
// mirror the optional references of a catalog song.
type SongRecord struct {
	ID       uint64  `gorm:"primarykey" json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	ArtistID *uint64 `json:"artist_id,omitempty"`
	GenreID  *uint64 `json:"genre_id,omitempty"`
}

type ArtistRecord struct {
	ID   uint64 `gorm:"primarykey" json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type GenreRecord struct {
	ID   uint64 `gorm:"primarykey" json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}
