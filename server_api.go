package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

type apiSong struct {
	ID     uint64 `json:"id"`
	Name   string `json:"name"`
	Artist string `json:"artist,omitempty"`
	Genre  string `json:"genre,omitempty"`
}

// getApiSongs dumps the whole catalog in insertion order.
func (s *server) getApiSongs(w http.ResponseWriter, r *http.Request) {
	songs := s.lib.cat.Songs()
	out := make([]*apiSong, len(songs))
	for i, song := range songs {
		out[i] = &apiSong{
			ID:   s.lib.SongID(song),
			Name: song.Name(),
		}
		if name, err := song.ArtistName(); err == nil {
			out[i].Artist = name
		}
		if name, err := song.GenreName(); err == nil {
			out[i].Genre = name
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	err := json.NewEncoder(w).Encode(out)
	if err != nil {
		slog.Error("serving api songs", "error", err)
	}
}

// postApiSong creates a song. Artist and genre are referenced by name and
// created on first use.
func (s *server) postApiSong(w http.ResponseWriter, r *http.Request) {
	var in apiSong
	err := json.NewDecoder(r.Body).Decode(&in)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		http.Error(w, "name is missing", http.StatusBadRequest)
		return
	}

	var artistID *uint64
	if name := strings.TrimSpace(in.Artist); name != "" {
		artist, err := s.lib.FindOrCreateArtist(r.Context(), name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		id := s.lib.ArtistID(artist)
		artistID = &id
	}

	var genreID *uint64
	if name := strings.TrimSpace(in.Genre); name != "" {
		genre, err := s.lib.FindOrCreateGenre(r.Context(), name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		id := s.lib.GenreID(genre)
		genreID = &id
	}

	song, err := s.lib.CreateSong(r.Context(), in.Name, artistID, genreID)
	if err != nil {
		if errors.Is(err, errNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	slog.Info("created song", "song", song.String())

	out := &apiSong{ID: s.lib.SongID(song), Name: song.Name()}
	if name, err := song.ArtistName(); err == nil {
		out.Artist = name
	}
	if name, err := song.GenreName(); err == nil {
		out.Genre = name
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(out)
	if err != nil {
		slog.Error("serving api song", "error", err)
	}
}

func mustApiToken(token string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || r.Header.Get("Authorization") != "Token "+token {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
