package main

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"songserver/catalog"
)

const pageSize = 50

// songView flattens a catalog song for templates and sorting. Unset
// references render as empty strings.
type songView struct {
	ID       uint64
	Name     string
	Artist   string
	ArtistID uint64
	Genre    string
	GenreID  uint64
}

func (s *server) songView(song *catalog.Song) *songView {
	v := &songView{
		ID:   s.lib.SongID(song),
		Name: song.Name(),
	}
	if artist := song.Artist(); artist != nil {
		v.Artist = artist.Name
		v.ArtistID = s.lib.ArtistID(artist)
	}
	if genre := song.Genre(); genre != nil {
		v.Genre = genre.Name
		v.GenreID = s.lib.GenreID(genre)
	}
	return v
}

func (s *server) songViews(songs []*catalog.Song) []*songView {
	views := make([]*songView, len(songs))
	for i, song := range songs {
		views[i] = s.songView(song)
	}
	return views
}

func (s *server) getSongs(w http.ResponseWriter, r *http.Request) {
	sort := r.URL.Query().Get("sort")
	if sort != "name" && sort != "artist" {
		sort = "name"
	}
	order := parseOrder(r, "asc")

	songs := s.songViews(s.lib.cat.Songs())
	slices.SortStableFunc(songs, func(a, b *songView) int {
		var cmp int
		if sort == "artist" {
			cmp = strings.Compare(a.Artist, b.Artist)
		} else {
			cmp = strings.Compare(a.Name, b.Name)
		}
		if order == "desc" {
			cmp = -cmp
		}
		return cmp
	})

	total := int64(len(songs))
	p := newPagination(r, total, func(pg int) string {
		return fmt.Sprintf("/songs?sort=%s&order=%s&page=%d", sort, order, pg)
	})

	offset := (p.Page - 1) * pageSize
	if offset > len(songs) {
		offset = len(songs)
	}
	end := offset + pageSize
	if end > len(songs) {
		end = len(songs)
	}

	nameOrder := "asc"
	if sort == "name" && order == "asc" {
		nameOrder = "desc"
	}
	artistOrder := "asc"
	if sort == "artist" && order == "asc" {
		artistOrder = "desc"
	}

	s.renderTemplate(w, http.StatusOK, "songs.html", map[string]interface{}{
		"Title":         "Songs",
		"Songs":         songs[offset:end],
		"Total":         total,
		"Sort":          sort,
		"Order":         order,
		"SortNameURL":   fmt.Sprintf("/songs?sort=name&order=%s&page=1", nameOrder),
		"SortArtistURL": fmt.Sprintf("/songs?sort=artist&order=%s&page=1", artistOrder),
		"Pagination":    p,
	})
}

func (s *server) getNewSong(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, http.StatusOK, "song.html", map[string]interface{}{
		"Title":   "New Song",
		"Song":    &songView{},
		"Artists": s.artistViews(),
		"Genres":  s.genreViews(),
	})
}

func (s *server) postNewSong(w http.ResponseWriter, r *http.Request) {
	s.createOrUpdateSong(w, r, nil)
}

func (s *server) getSong(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	song, ok := s.lib.Song(id)
	if !ok {
		s.renderError(w, http.StatusNotFound, errors.New("song does not exist"))
		return
	}

	s.renderTemplate(w, http.StatusOK, "song.html", map[string]interface{}{
		"Title":   "Update Song",
		"Song":    s.songView(song),
		"Artists": s.artistViews(),
		"Genres":  s.genreViews(),
	})
}

func (s *server) postSong(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	if _, ok := s.lib.Song(id); !ok {
		s.renderError(w, http.StatusNotFound, errors.New("song does not exist"))
		return
	}

	s.createOrUpdateSong(w, r, &id)
}

func (s *server) createOrUpdateSong(w http.ResponseWriter, r *http.Request, id *uint64) {
	err := r.ParseForm()
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	name := strings.TrimSpace(r.Form.Get("name"))
	if name == "" {
		s.renderError(w, http.StatusBadRequest, errors.New("name is missing"))
		return
	}

	artistID, err := parseOptionalID(r.Form.Get("artist"))
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}
	genreID, err := parseOptionalID(r.Form.Get("genre"))
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	var songID uint64
	if id == nil {
		song, err := s.lib.CreateSong(r.Context(), name, artistID, genreID)
		if err != nil {
			s.renderError(w, http.StatusInternalServerError, err)
			return
		}
		songID = s.lib.SongID(song)
	} else {
		err = s.lib.UpdateSong(r.Context(), *id, name, artistID, genreID)
		if err != nil {
			s.renderError(w, http.StatusInternalServerError, err)
			return
		}
		songID = *id
	}

	http.Redirect(w, r, "/songs#"+strconv.FormatUint(songID, 10), http.StatusSeeOther)
}

func (s *server) getDeleteSong(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	song, ok := s.lib.Song(id)
	if !ok {
		s.renderError(w, http.StatusNotFound, errors.New("song does not exist"))
		return
	}

	s.renderTemplate(w, http.StatusOK, "song-delete.html", map[string]interface{}{
		"Title": "Delete Song",
		"Song":  s.songView(song),
	})
}

func (s *server) postDeleteSong(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	err = s.lib.DeleteSong(r.Context(), id)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/songs", http.StatusSeeOther)
}

func extractID(r *http.Request) (uint64, error) {
	idStr := chi.URLParam(r, "id")
	return strconv.ParseUint(idStr, 10, 64)
}

// parseOptionalID parses a form reference field. Empty means unset.
func parseOptionalID(value string) (*uint64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
