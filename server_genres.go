package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"songserver/catalog"
)

type genreView struct {
	ID    uint64
	Name  string
	Songs int
}

func (s *server) genreViews() []*genreView {
	genres := s.lib.Genres()
	views := make([]*genreView, len(genres))
	for i, genre := range genres {
		views[i] = &genreView{
			ID:    s.lib.GenreID(genre),
			Name:  genre.Name,
			Songs: len(genre.Songs()),
		}
	}
	return views
}

func (s *server) getGenres(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, http.StatusOK, "genres.html", map[string]interface{}{
		"Title":  "Genres",
		"Genres": s.genreViews(),
	})
}

func (s *server) postNewGenre(w http.ResponseWriter, r *http.Request) {
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

	genre, err := s.lib.FindOrCreateGenre(r.Context(), name)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/genres/"+strconv.FormatUint(s.lib.GenreID(genre), 10), http.StatusSeeOther)
}

func (s *server) getGenre(w http.ResponseWriter, r *http.Request) {
	genre, id, err := s.extractGenre(r)
	if err != nil {
		s.renderGenreError(w, err)
		return
	}

	s.renderTemplate(w, http.StatusOK, "genre.html", map[string]interface{}{
		"Title": genre.Name,
		"Genre": &genreView{ID: id, Name: genre.Name},
		"Songs": s.songViews(genre.Songs()),
	})
}

func (s *server) getDeleteGenre(w http.ResponseWriter, r *http.Request) {
	genre, id, err := s.extractGenre(r)
	if err != nil {
		s.renderGenreError(w, err)
		return
	}

	s.renderTemplate(w, http.StatusOK, "genre-delete.html", map[string]interface{}{
		"Title": "Delete Genre",
		"Genre": &genreView{ID: id, Name: genre.Name, Songs: len(genre.Songs())},
	})
}

func (s *server) postDeleteGenre(w http.ResponseWriter, r *http.Request) {
	_, id, err := s.extractGenre(r)
	if err != nil {
		s.renderGenreError(w, err)
		return
	}

	err = s.lib.DeleteGenre(r.Context(), id)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, err)
		return
	}

	http.Redirect(w, r, "/genres", http.StatusSeeOther)
}

func (s *server) extractGenre(r *http.Request) (*catalog.Genre, uint64, error) {
	id, err := extractID(r)
	if err != nil {
		return nil, 0, err
	}

	genre, ok := s.lib.Genre(id)
	if !ok {
		return nil, 0, errNotFound
	}
	return genre, id, nil
}

func (s *server) renderGenreError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNotFound) {
		s.renderError(w, http.StatusNotFound, errors.New("genre does not exist"))
		return
	}
	s.renderError(w, http.StatusBadRequest, err)
}
