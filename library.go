package main

import (
	"context"
	"errors"
	"slices"
	"sync"

	"songserver/catalog"
)

var errNotFound = errors.New("not found")

// library binds the durable records to the in-memory catalog. The catalog is
// the single source of truth for queries; the database is a mirror that is
// loaded once at startup and written through on every mutation.
type library struct {
	mu sync.Mutex
	db *database

	cat *catalog.Catalog

	songs     map[uint64]*catalog.Song
	songIDs   map[*catalog.Song]uint64
	artists   map[uint64]*catalog.Artist
	artistIDs map[*catalog.Artist]uint64
	genres    map[uint64]*catalog.Genre
	genreIDs  map[*catalog.Genre]uint64
}

func newLibrary(ctx context.Context, db *database) (*library, error) {
	l := &library{
		db:        db,
		cat:       catalog.New(),
		songs:     map[uint64]*catalog.Song{},
		songIDs:   map[*catalog.Song]uint64{},
		artists:   map[uint64]*catalog.Artist{},
		artistIDs: map[*catalog.Artist]uint64{},
		genres:    map[uint64]*catalog.Genre{},
		genreIDs:  map[*catalog.Genre]uint64{},
	}

	artists, err := db.GetArtists(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range artists {
		artist := l.cat.NewArtist(record.Name)
		l.artists[record.ID] = artist
		l.artistIDs[artist] = record.ID
	}

	genres, err := db.GetGenres(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range genres {
		genre := l.cat.NewGenre(record.Name)
		l.genres[record.ID] = genre
		l.genreIDs[genre] = record.ID
	}

	songs, err := db.GetSongs(ctx)
	if err != nil {
		return nil, err
	}
	for _, record := range songs {
		var artist *catalog.Artist
		if record.ArtistID != nil {
			artist = l.artists[*record.ArtistID]
		}
		var genre *catalog.Genre
		if record.GenreID != nil {
			genre = l.genres[*record.GenreID]
		}

		song := l.cat.NewSong(record.Name, artist, genre)
		l.songs[record.ID] = song
		l.songIDs[song] = record.ID
	}

	return l, nil
}

func (l *library) Song(id uint64) (*catalog.Song, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	song, ok := l.songs[id]
	return song, ok
}

func (l *library) SongID(song *catalog.Song) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.songIDs[song]
}

func (l *library) Artist(id uint64) (*catalog.Artist, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	artist, ok := l.artists[id]
	return artist, ok
}

func (l *library) ArtistID(artist *catalog.Artist) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.artistIDs[artist]
}

func (l *library) Genre(id uint64) (*catalog.Genre, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	genre, ok := l.genres[id]
	return genre, ok
}

func (l *library) GenreID(genre *catalog.Genre) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.genreIDs[genre]
}

// Artists returns the known artists in creation order.
func (l *library) Artists() []*catalog.Artist {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]uint64, 0, len(l.artists))
	for id := range l.artists {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	artists := make([]*catalog.Artist, 0, len(ids))
	for _, id := range ids {
		artists = append(artists, l.artists[id])
	}
	return artists
}

// Genres returns the known genres in creation order.
func (l *library) Genres() []*catalog.Genre {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]uint64, 0, len(l.genres))
	for id := range l.genres {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	genres := make([]*catalog.Genre, 0, len(ids))
	for _, id := range ids {
		genres = append(genres, l.genres[id])
	}
	return genres
}

func (l *library) CreateSong(ctx context.Context, name string, artistID, genreID *uint64) (*catalog.Song, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var artist *catalog.Artist
	if artistID != nil {
		a, ok := l.artists[*artistID]
		if !ok {
			return nil, errNotFound
		}
		artist = a
	}
	var genre *catalog.Genre
	if genreID != nil {
		g, ok := l.genres[*genreID]
		if !ok {
			return nil, errNotFound
		}
		genre = g
	}

	record := &SongRecord{Name: name, ArtistID: artistID, GenreID: genreID}
	err := l.db.CreateSong(ctx, record)
	if err != nil {
		return nil, err
	}

	var song *catalog.Song
	if artist != nil {
		song = artist.AddSong(name, genre)
	} else {
		song = l.cat.NewSong(name, nil, genre)
	}

	l.songs[record.ID] = song
	l.songIDs[song] = record.ID
	return song, nil
}

func (l *library) UpdateSong(ctx context.Context, id uint64, name string, artistID, genreID *uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	song, ok := l.songs[id]
	if !ok {
		return errNotFound
	}

	var artist *catalog.Artist
	if artistID != nil {
		a, ok := l.artists[*artistID]
		if !ok {
			return errNotFound
		}
		artist = a
	}
	var genre *catalog.Genre
	if genreID != nil {
		g, ok := l.genres[*genreID]
		if !ok {
			return errNotFound
		}
		genre = g
	}

	record := &SongRecord{ID: id, Name: name, ArtistID: artistID, GenreID: genreID}
	err := l.db.UpdateSong(ctx, record)
	if err != nil {
		return err
	}

	song.SetName(name)
	song.SetArtist(artist)
	song.SetGenre(genre)
	return nil
}

func (l *library) DeleteSong(ctx context.Context, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	song, ok := l.songs[id]
	if !ok {
		return errNotFound
	}

	err := l.db.DeleteSong(ctx, id)
	if err != nil {
		return err
	}

	l.cat.Remove(song)
	delete(l.songs, id)
	delete(l.songIDs, song)
	return nil
}

func (l *library) CreateArtist(ctx context.Context, name string) (*catalog.Artist, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.unsafeCreateArtist(ctx, name)
}

// FindOrCreateArtist matches artists by exact name. Used by the API and the
// HTML forms, which refer to artists by name rather than id.
func (l *library) FindOrCreateArtist(ctx context.Context, name string) (*catalog.Artist, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, artist := range l.artists {
		if artist.Name == name {
			return artist, nil
		}
	}
	return l.unsafeCreateArtist(ctx, name)
}

func (l *library) unsafeCreateArtist(ctx context.Context, name string) (*catalog.Artist, error) {
	record := &ArtistRecord{Name: name}
	err := l.db.CreateArtist(ctx, record)
	if err != nil {
		return nil, err
	}

	artist := l.cat.NewArtist(name)
	l.artists[record.ID] = artist
	l.artistIDs[artist] = record.ID
	return artist, nil
}

// DeleteArtist removes the artist and detaches its songs. The songs survive
// without an artist reference.
func (l *library) DeleteArtist(ctx context.Context, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	artist, ok := l.artists[id]
	if !ok {
		return errNotFound
	}

	err := l.db.ClearSongArtists(ctx, id)
	if err != nil {
		return err
	}
	err = l.db.DeleteArtist(ctx, id)
	if err != nil {
		return err
	}

	for _, song := range artist.Songs() {
		song.SetArtist(nil)
	}
	delete(l.artists, id)
	delete(l.artistIDs, artist)
	return nil
}

func (l *library) CreateGenre(ctx context.Context, name string) (*catalog.Genre, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.unsafeCreateGenre(ctx, name)
}

func (l *library) FindOrCreateGenre(ctx context.Context, name string) (*catalog.Genre, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, genre := range l.genres {
		if genre.Name == name {
			return genre, nil
		}
	}
	return l.unsafeCreateGenre(ctx, name)
}

func (l *library) unsafeCreateGenre(ctx context.Context, name string) (*catalog.Genre, error) {
	record := &GenreRecord{Name: name}
	err := l.db.CreateGenre(ctx, record)
	if err != nil {
		return nil, err
	}

	genre := l.cat.NewGenre(name)
	l.genres[record.ID] = genre
	l.genreIDs[genre] = record.ID
	return genre, nil
}

// DeleteGenre removes the genre and detaches its songs.
func (l *library) DeleteGenre(ctx context.Context, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	genre, ok := l.genres[id]
	if !ok {
		return errNotFound
	}

	err := l.db.ClearSongGenres(ctx, id)
	if err != nil {
		return err
	}
	err = l.db.DeleteGenre(ctx, id)
	if err != nil {
		return err
	}

	for _, song := range genre.Songs() {
		song.SetGenre(nil)
	}
	delete(l.genres, id)
	delete(l.genreIDs, genre)
	return nil
}

