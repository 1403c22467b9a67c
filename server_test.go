package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testUsername = "admin"
	testPassword = "hunter2"
	testApiToken = "test-token"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	handler, err := newServer(context.Background(), &serverOptions{
		dataDir:  t.TempDir(),
		baseURL:  "http://localhost:8080",
		username: testUsername,
		password: string(hash),
		jwtKey:   "test-secret",
		apiToken: testApiToken,
	})
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

// noRedirectClient stops at the first response so redirects can be asserted.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func TestPagesRequireLogin(t *testing.T) {
	ts := newTestServer(t)

	res, err := noRedirectClient().Get(ts.URL + "/songs")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.True(t, strings.HasPrefix(res.Header.Get("Location"), "/login"))
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	client := noRedirectClient()

	form := url.Values{}
	form.Set("username", testUsername)
	form.Set("password", testPassword)

	res, err := client.PostForm(ts.URL+"/login", form)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusSeeOther, res.StatusCode)

	var jwtCookie *http.Cookie
	for _, cookie := range res.Cookies() {
		if cookie.Name == "jwt" {
			jwtCookie = cookie
		}
	}
	require.NotNil(t, jwtCookie)
	assert.NotEmpty(t, jwtCookie.Value)

	// The cookie grants access to the pages.
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/songs", nil)
	require.NoError(t, err)
	req.AddCookie(jwtCookie)

	res, err = client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	form := url.Values{}
	form.Set("username", testUsername)
	form.Set("password", "wrong")

	res, err := noRedirectClient().PostForm(ts.URL+"/login", form)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestApiRequiresToken(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/api/songs")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func apiRequest(t *testing.T, ts *httptest.Server, method, path string, body []byte) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Token "+testApiToken)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func TestApiCreateAndListSongs(t *testing.T) {
	ts := newTestServer(t)

	for _, song := range []apiSong{
		{Name: "Empire State of Mind", Artist: "Jay Z", Genre: "rap"},
		{Name: "Lotta Years", Artist: "Aesop Rock", Genre: "rap"},
		{Name: "None Shall Pass", Artist: "Aesop Rock", Genre: "pop"},
	} {
		body, err := json.Marshal(song)
		require.NoError(t, err)

		res := apiRequest(t, ts, http.MethodPost, "/api/songs", body)
		var created apiSong
		require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
		res.Body.Close()

		require.Equal(t, http.StatusCreated, res.StatusCode)
		assert.NotZero(t, created.ID)
		assert.Equal(t, song.Name, created.Name)
		assert.Equal(t, song.Artist, created.Artist)
		assert.Equal(t, song.Genre, created.Genre)
	}

	res := apiRequest(t, ts, http.MethodGet, "/api/songs", nil)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var songs []apiSong
	require.NoError(t, json.NewDecoder(res.Body).Decode(&songs))
	require.Len(t, songs, 3)

	// Insertion order is preserved.
	assert.Equal(t, "Empire State of Mind", songs[0].Name)
	assert.Equal(t, "Jay Z", songs[0].Artist)
	assert.Equal(t, "Lotta Years", songs[1].Name)
	assert.Equal(t, "None Shall Pass", songs[2].Name)
	assert.Equal(t, "pop", songs[2].Genre)
}

func TestApiCreateSongWithoutName(t *testing.T) {
	ts := newTestServer(t)

	res := apiRequest(t, ts, http.MethodPost, "/api/songs", []byte(`{"artist":"Jay Z"}`))
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
