package catalog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSongRegisters(t *testing.T) {
	c := New()
	s := c.NewSong("Empire State of Mind", nil, nil)

	songs := c.Songs()
	require.Len(t, songs, 1)
	assert.Same(t, s, songs[0])
}

func TestRegisterTwiceDuplicates(t *testing.T) {
	c := New()
	s := c.NewSong("Lotta Years", nil, nil)
	c.Register(s)

	songs := c.Songs()
	require.Len(t, songs, 2)
	assert.Same(t, s, songs[0])
	assert.Same(t, s, songs[1])
}

func TestSongsInsertionOrder(t *testing.T) {
	c := New()
	first := c.NewSong("first", nil, nil)
	second := c.NewSong("second", nil, nil)
	third := c.NewSong("third", nil, nil)

	songs := c.Songs()
	require.Len(t, songs, 3)
	assert.Same(t, first, songs[0])
	assert.Same(t, second, songs[1])
	assert.Same(t, third, songs[2])
}

func TestSongsStableWithoutConstruction(t *testing.T) {
	c := New()
	c.NewSong("a", nil, nil)
	c.NewSong("b", nil, nil)

	assert.Equal(t, c.Songs(), c.Songs())
}

func TestSongsReturnsCopy(t *testing.T) {
	c := New()
	c.NewSong("a", nil, nil)

	songs := c.Songs()
	songs[0] = nil

	require.Len(t, c.Songs(), 1)
	assert.NotNil(t, c.Songs()[0])
}

func TestArtistSongs(t *testing.T) {
	c := New()
	jayZ := c.NewArtist("Jay Z")
	aesopRock := c.NewArtist("Aesop Rock")
	rap := c.NewGenre("rap")
	pop := c.NewGenre("pop")

	empire := c.NewSong("Empire State of Mind", jayZ, rap)
	lotta := c.NewSong("Lotta Years", aesopRock, rap)
	noneShallPass := c.NewSong("None Shall Pass", aesopRock, pop)

	jayZSongs := jayZ.Songs()
	require.Len(t, jayZSongs, 1)
	assert.Same(t, empire, jayZSongs[0])

	aesopSongs := aesopRock.Songs()
	require.Len(t, aesopSongs, 2)
	assert.Same(t, lotta, aesopSongs[0])
	assert.Same(t, noneShallPass, aesopSongs[1])
}

func TestGenreSongs(t *testing.T) {
	c := New()
	rap := c.NewGenre("rap")
	pop := c.NewGenre("pop")

	first := c.NewSong("one", nil, rap)
	c.NewSong("two", nil, pop)
	third := c.NewSong("three", nil, rap)

	rapSongs := rap.Songs()
	require.Len(t, rapSongs, 2)
	assert.Same(t, first, rapSongs[0])
	assert.Same(t, third, rapSongs[1])
}

func TestArtistsAreDistinctByIdentity(t *testing.T) {
	c := New()
	a1 := c.NewArtist("MF DOOM")
	a2 := c.NewArtist("MF DOOM")

	c.NewSong("Rapp Snitch Knishes", a1, nil)

	assert.Len(t, a1.Songs(), 1)
	assert.Empty(t, a2.Songs())
}

func TestReassignArtistMovesDerivedView(t *testing.T) {
	c := New()
	jayZ := c.NewArtist("Jay Z")
	aesopRock := c.NewArtist("Aesop Rock")

	s := c.NewSong("Empire State of Mind", jayZ, nil)
	require.Len(t, jayZ.Songs(), 1)

	s.SetArtist(aesopRock)

	assert.Empty(t, jayZ.Songs())
	require.Len(t, aesopRock.Songs(), 1)
	assert.Same(t, s, aesopRock.Songs()[0])

	s.SetArtist(nil)
	assert.Empty(t, aesopRock.Songs())
}

func TestSongWithoutArtist(t *testing.T) {
	c := New()
	jayZ := c.NewArtist("Jay Z")
	s := c.NewSong("orphan", nil, nil)

	assert.Empty(t, jayZ.Songs())

	_, err := s.ArtistName()
	assert.ErrorIs(t, err, ErrArtistUnset)

	_, err = s.GenreName()
	assert.ErrorIs(t, err, ErrGenreUnset)
}

func TestArtistName(t *testing.T) {
	c := New()
	jayZ := c.NewArtist("Jay Z")
	rap := c.NewGenre("rap")
	s := c.NewSong("Empire State of Mind", jayZ, rap)

	name, err := s.ArtistName()
	require.NoError(t, err)
	assert.Equal(t, "Jay Z", name)

	genre, err := s.GenreName()
	require.NoError(t, err)
	assert.Equal(t, "rap", genre)
}

func TestAddSong(t *testing.T) {
	c := New()
	aesopRock := c.NewArtist("Aesop Rock")
	rap := c.NewGenre("rap")

	s := aesopRock.AddSong("Lotta Years", rap)

	assert.Same(t, aesopRock, s.Artist())
	assert.Same(t, rap, s.Genre())
	require.Len(t, c.Songs(), 1)
	assert.Same(t, s, c.Songs()[0])
}

func TestRemove(t *testing.T) {
	c := New()
	a := c.NewSong("a", nil, nil)
	b := c.NewSong("b", nil, nil)
	d := c.NewSong("d", nil, nil)

	c.Remove(b)

	songs := c.Songs()
	require.Len(t, songs, 2)
	assert.Same(t, a, songs[0])
	assert.Same(t, d, songs[1])

	// Not registered anymore: no-op.
	c.Remove(b)
	assert.Equal(t, 2, c.Len())
}

func TestRemoveDuplicateRemovesFirst(t *testing.T) {
	c := New()
	s := c.NewSong("dup", nil, nil)
	c.Register(s)

	c.Remove(s)
	require.Len(t, c.Songs(), 1)
	assert.Same(t, s, c.Songs()[0])
}

func TestSongString(t *testing.T) {
	c := New()
	jayZ := c.NewArtist("Jay Z")

	assert.Equal(t, `"Empire State of Mind" by Jay Z`, c.NewSong("Empire State of Mind", jayZ, nil).String())
	assert.Equal(t, `"orphan"`, c.NewSong("orphan", nil, nil).String())
}

func TestConcurrentRegister(t *testing.T) {
	c := New()
	artist := c.NewArtist("busy")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			artist.AddSong("track", nil)
			artist.Songs()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
	assert.Len(t, artist.Songs(), 50)
}
