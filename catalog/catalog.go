// Package catalog implements an in-memory song catalog. A song belongs to at
// most one artist and one genre; artists and genres never store their own
// song lists. Their "has many" side is always derived by scanning the
// catalog, so there is a single source of truth and nothing to keep in sync.
package catalog

import (
	"errors"
	"sync"
)

var (
	// ErrArtistUnset is returned when accessing the artist of a song that
	// has none.
	ErrArtistUnset = errors.New("song has no artist")
	// ErrGenreUnset is returned when accessing the genre of a song that
	// has none.
	ErrGenreUnset = errors.New("song has no genre")
)

// Catalog holds every song constructed through it, in insertion order.
// It is safe for concurrent use. The zero value is not usable; call [New].
type Catalog struct {
	mu    sync.RWMutex
	songs []*Song
}

func New() *Catalog {
	return &Catalog{}
}

// Register appends the song to the catalog. There is no uniqueness check:
// registering the same song twice stores it twice.
func (c *Catalog) Register(s *Song) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.songs = append(c.songs, s)
}

// Songs returns a copy of the full song list in insertion order.
func (c *Catalog) Songs() []*Song {
	c.mu.RLock()
	defer c.mu.RUnlock()

	songs := make([]*Song, len(c.songs))
	copy(songs, c.songs)
	return songs
}

// Len returns the number of registered songs.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.songs)
}

// Remove deletes the first entry identical to s, preserving the order of the
// rest. Removing a song that is not registered is a no-op.
func (c *Catalog) Remove(s *Song) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, other := range c.songs {
		if other == s {
			c.songs = append(c.songs[:i], c.songs[i+1:]...)
			return
		}
	}
}

// NewSong constructs a song and registers it. Artist and genre may be nil
// and can be set later.
func (c *Catalog) NewSong(name string, artist *Artist, genre *Genre) *Song {
	s := &Song{cat: c, name: name, artist: artist, genre: genre}
	c.Register(s)
	return s
}

// NewArtist constructs an artist bound to this catalog. The artist is not
// stored anywhere: it only exists as a query handle until songs reference it.
func (c *Catalog) NewArtist(name string) *Artist {
	return &Artist{cat: c, Name: name}
}

// NewGenre constructs a genre bound to this catalog.
func (c *Catalog) NewGenre(name string) *Genre {
	return &Genre{cat: c, Name: name}
}

// Song is a named track referencing at most one artist and one genre. Both
// references are optional and mutable. Songs are identified by pointer:
// two songs with equal names are distinct entries.
type Song struct {
	cat    *Catalog
	name   string
	artist *Artist
	genre  *Genre
}

func (s *Song) Name() string {
	s.cat.mu.RLock()
	defer s.cat.mu.RUnlock()

	return s.name
}

func (s *Song) SetName(name string) {
	s.cat.mu.Lock()
	defer s.cat.mu.Unlock()

	s.name = name
}

// Artist returns the referenced artist, or nil if unset.
func (s *Song) Artist() *Artist {
	s.cat.mu.RLock()
	defer s.cat.mu.RUnlock()

	return s.artist
}

// SetArtist points the song at the given artist. A nil artist clears the
// reference, removing the song from every artist's derived view.
func (s *Song) SetArtist(a *Artist) {
	s.cat.mu.Lock()
	defer s.cat.mu.Unlock()

	s.artist = a
}

// Genre returns the referenced genre, or nil if unset.
func (s *Song) Genre() *Genre {
	s.cat.mu.RLock()
	defer s.cat.mu.RUnlock()

	return s.genre
}

// SetGenre points the song at the given genre. Nil clears the reference.
func (s *Song) SetGenre(g *Genre) {
	s.cat.mu.Lock()
	defer s.cat.mu.Unlock()

	s.genre = g
}

// ArtistName returns the name of the song's artist, or [ErrArtistUnset] if
// the song has none.
func (s *Song) ArtistName() (string, error) {
	s.cat.mu.RLock()
	defer s.cat.mu.RUnlock()

	if s.artist == nil {
		return "", ErrArtistUnset
	}
	return s.artist.Name, nil
}

// GenreName returns the name of the song's genre, or [ErrGenreUnset] if the
// song has none.
func (s *Song) GenreName() (string, error) {
	s.cat.mu.RLock()
	defer s.cat.mu.RUnlock()

	if s.genre == nil {
		return "", ErrGenreUnset
	}
	return s.genre.Name, nil
}

func (s *Song) String() string {
	s.cat.mu.RLock()
	defer s.cat.mu.RUnlock()

	str := `"` + s.name + `"`
	if s.artist != nil {
		str += ` by ` + s.artist.Name
	}
	return str
}

// Artist is a song owner. It stores no song list of its own.
type Artist struct {
	cat  *Catalog
	Name string
}

// Songs returns the songs referencing this artist, in catalog insertion
// order. The result is recomputed on every call by scanning the catalog.
func (a *Artist) Songs() []*Song {
	a.cat.mu.RLock()
	defer a.cat.mu.RUnlock()

	var songs []*Song
	for _, s := range a.cat.songs {
		if s.artist == a {
			songs = append(songs, s)
		}
	}
	return songs
}

// AddSong constructs and registers a song owned by this artist. The genre
// may be nil.
func (a *Artist) AddSong(name string, genre *Genre) *Song {
	return a.cat.NewSong(name, a, genre)
}

// Genre is a song category, derived the same way as [Artist].
type Genre struct {
	cat  *Catalog
	Name string
}

// Songs returns the songs referencing this genre, in catalog insertion order.
func (g *Genre) Songs() []*Song {
	g.cat.mu.RLock()
	defer g.cat.mu.RUnlock()

	var songs []*Song
	for _, s := range g.cat.songs {
		if s.genre == g {
			songs = append(songs, s)
		}
	}
	return songs
}
