package main

import (
	"context"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type database struct {
	db *gorm.DB
}

func newDatabase(path string) (*database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(&ArtistRecord{}, &GenreRecord{}, &SongRecord{})
	if err != nil {
		return nil, err
	}

	return &database{
		db: db,
	}, nil
}

func (d *database) Close() error {
	return nil
}

func (d *database) CreateSong(ctx context.Context, song *SongRecord) error {
	return d.db.WithContext(ctx).Create(song).Error
}

func (d *database) UpdateSong(ctx context.Context, song *SongRecord) error {
	return d.db.WithContext(ctx).Save(song).Error
}

func (d *database) DeleteSong(ctx context.Context, id uint64) error {
	return d.db.WithContext(ctx).Delete(&SongRecord{}, id).Error
}

// GetSongs returns all songs ordered by id, which is creation order.
func (d *database) GetSongs(ctx context.Context) ([]*SongRecord, error) {
	var songs []*SongRecord
	return songs, d.db.WithContext(ctx).Order("id").Find(&songs).Error
}

func (d *database) CreateArtist(ctx context.Context, artist *ArtistRecord) error {
	return d.db.WithContext(ctx).Create(artist).Error
}

func (d *database) DeleteArtist(ctx context.Context, id uint64) error {
	return d.db.WithContext(ctx).Delete(&ArtistRecord{}, id).Error
}

func (d *database) GetArtists(ctx context.Context) ([]*ArtistRecord, error) {
	var artists []*ArtistRecord
	return artists, d.db.WithContext(ctx).Order("id").Find(&artists).Error
}

// ClearSongArtists detaches every song referencing the artist.
func (d *database) ClearSongArtists(ctx context.Context, artistID uint64) error {
	return d.db.WithContext(ctx).
		Model(&SongRecord{}).
		Where("artist_id = ?", artistID).
		Update("artist_id", nil).Error
}

func (d *database) CreateGenre(ctx context.Context, genre *GenreRecord) error {
	return d.db.WithContext(ctx).Create(genre).Error
}

func (d *database) DeleteGenre(ctx context.Context, id uint64) error {
	return d.db.WithContext(ctx).Delete(&GenreRecord{}, id).Error
}

func (d *database) GetGenres(ctx context.Context) ([]*GenreRecord, error) {
	var genres []*GenreRecord
	return genres, d.db.WithContext(ctx).Order("id").Find(&genres).Error
}

// ClearSongGenres detaches every song referencing the genre.
func (d *database) ClearSongGenres(ctx context.Context, genreID uint64) error {
	return d.db.WithContext(ctx).
		Model(&SongRecord{}).
		Where("genre_id = ?", genreID).
		Update("genre_id", nil).Error
}
