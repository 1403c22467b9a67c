package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"songserver/catalog"
)

type artistView struct {
	ID    uint64
	Name  string
	Songs int
}

func (s *server) artistViews() []*artistView {
	artists := s.lib.Artists()
	views := make([]*artistView, len(artists))
	for i, artist := range artists {
		views[i] = &artistView{
			ID:    s.lib.ArtistID(artist),
			Name:  artist.Name,
			Songs: len(artist.Songs()),
		}
	}
	return views
}

func (s *server) getArtists(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, http.StatusOK, "artists.html", map[string]interface{}{
		"Title":   "Artists",
		"Artists": s.artistViews(),
	})
}

func (s *server) postNewArtist(w http.ResponseWriter, r *http.Request) {
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

	artist, err := s.lib.FindOrCreateArtist(r.Context(), name)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/artists/"+strconv.FormatUint(s.lib.ArtistID(artist), 10), http.StatusSeeOther)
}

func (s *server) getArtist(w http.ResponseWriter, r *http.Request) {
	artist, id, err := s.extractArtist(r)
	if err != nil {
		s.renderArtistError(w, err)
		return
	}

	// The artist's songs are always derived by scanning the catalog.
	s.renderTemplate(w, http.StatusOK, "artist.html", map[string]interface{}{
		"Title":  artist.Name,
		"Artist": &artistView{ID: id, Name: artist.Name},
		"Songs":  s.songViews(artist.Songs()),
		"Genres": s.genreViews(),
	})
}

// postArtistSong adds a song directly under the artist: the song is created
// owned by the artist, optionally with a genre.
func (s *server) postArtistSong(w http.ResponseWriter, r *http.Request) {
	_, id, err := s.extractArtist(r)
	if err != nil {
		s.renderArtistError(w, err)
		return
	}

	err = r.ParseForm()
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	name := strings.TrimSpace(r.Form.Get("name"))
	if name == "" {
		s.renderError(w, http.StatusBadRequest, errors.New("name is missing"))
		return
	}

	genreID, err := parseOptionalID(r.Form.Get("genre"))
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err)
		return
	}

	_, err = s.lib.CreateSong(r.Context(), name, &id, genreID)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/artists/"+strconv.FormatUint(id, 10), http.StatusSeeOther)
}

func (s *server) getDeleteArtist(w http.ResponseWriter, r *http.Request) {
	artist, id, err := s.extractArtist(r)
	if err != nil {
		s.renderArtistError(w, err)
		return
	}

	s.renderTemplate(w, http.StatusOK, "artist-delete.html", map[string]interface{}{
		"Title":  "Delete Artist",
		"Artist": &artistView{ID: id, Name: artist.Name, Songs: len(artist.Songs())},
	})
}

func (s *server) postDeleteArtist(w http.ResponseWriter, r *http.Request) {
	_, id, err := s.extractArtist(r)
	if err != nil {
		s.renderArtistError(w, err)
		return
	}

	err = s.lib.DeleteArtist(r.Context(), id)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/artists", http.StatusSeeOther)
}

func (s *server) extractArtist(r *http.Request) (*catalog.Artist, uint64, error) {
	id, err := extractID(r)
	if err != nil {
		return nil, 0, err
	}

	artist, ok := s.lib.Artist(id)
	if !ok {
		return nil, 0, errNotFound
	}
	return artist, id, nil
}

func (s *server) renderArtistError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNotFound) {
		s.renderError(w, http.StatusNotFound, errors.New("artist does not exist"))
		return
	}
	s.renderError(w, http.StatusBadRequest, err)
}
