package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type serverOptions struct {
	dataDir  string
	baseURL  string
	username string
	password string
	jwtKey   string
	apiToken string
}

type server struct {
	lib      *library
	jwtAuth  *jwtauth.JWTAuth
	baseURL  string
	username string
	password string
	apiToken string
}

func newServer(ctx context.Context, opts *serverOptions) (http.Handler, error) {
	err := os.MkdirAll(opts.dataDir, 0766)
	if err != nil {
		return nil, err
	}

	db, err := newDatabase(filepath.Join(opts.dataDir, "catalog.db"))
	if err != nil {
		return nil, err
	}

	lib, err := newLibrary(ctx, db)
	if err != nil {
		return nil, err
	}

	s := &server{
		lib:      lib,
		jwtAuth:  jwtauth.New("HS256", []byte(opts.jwtKey), nil),
		baseURL:  opts.baseURL,
		username: opts.username,
		password: opts.password,
		apiToken: opts.apiToken,
	}

	return s.routes(), nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(s.jwtAuth))

	r.Get("/login", s.loginGet)
	r.Post("/login", s.loginPost)
	r.Get("/logout", s.logoutGet)
	r.Handle("/assets/*", http.FileServerFS(assetsFS))

	r.Group(func(r chi.Router) {
		r.Use(s.mustLoggedIn)

		r.Get("/", s.getIndex)

		r.Get("/songs", s.getSongs)
		r.Get("/songs/new", s.getNewSong)
		r.Post("/songs/new", s.postNewSong)
		r.Get("/songs/{id}", s.getSong)
		r.Post("/songs/{id}", s.postSong)
		r.Get("/songs/{id}/delete", s.getDeleteSong)
		r.Post("/songs/{id}/delete", s.postDeleteSong)

		r.Get("/artists", s.getArtists)
		r.Post("/artists/new", s.postNewArtist)
		r.Get("/artists/{id}", s.getArtist)
		r.Post("/artists/{id}/songs", s.postArtistSong)
		r.Get("/artists/{id}/delete", s.getDeleteArtist)
		r.Post("/artists/{id}/delete", s.postDeleteArtist)

		r.Get("/genres", s.getGenres)
		r.Post("/genres/new", s.postNewGenre)
		r.Get("/genres/{id}", s.getGenre)
		r.Get("/genres/{id}/delete", s.getDeleteGenre)
		r.Post("/genres/{id}/delete", s.postDeleteGenre)
	})

	r.Group(func(r chi.Router) {
		r.Use(mustApiToken(s.apiToken))

		r.Get("/api/songs", s.getApiSongs)
		r.Post("/api/songs", s.postApiSong)
	})

	return r
}

func (s *server) getIndex(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, http.StatusOK, "index.html", map[string]interface{}{
		"Title":   "Catalog",
		"Songs":   s.lib.cat.Len(),
		"Artists": len(s.lib.Artists()),
		"Genres":  len(s.lib.Genres()),
	})
}
