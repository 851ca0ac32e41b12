package catalog

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tweetql/internal/restclient"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moviesJSON = `{"status":"ok","data":{"movie_count":2,"movies":[
	{"id":10,"title":"Alpha","year":2001,"rating":7.5,"genres":["Drama"],"large_cover_image":"http://img/a.jpg"},
	{"id":11,"title":"Beta","year":2002,"rating":6.1,"genres":[],"large_cover_image":"http://img/b.jpg"}
]}}`

const booksJSON = `{"status":"OK","results":{"list_name":"Hardcover Fiction","books":[
	{"rank":1,"title":"FIRST","author":"A. Writer","publisher":"Pub","primary_isbn13":"9780000000001"},
	{"rank":2,"title":"SECOND","author":"B. Writer","publisher":"Pub","primary_isbn13":"9780000000002"}
]}}`

func gz(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestMovies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v2/list_movies.json":
			w.Write([]byte(moviesJSON))
		case "/api/v2/movie_details.json":
			if r.URL.Query().Get("movie_id") == "10" {
				w.Write([]byte(`{"status":"ok","data":{"movie":{"id":10,"title":"Alpha"}}}`))
				return
			}
			w.Write([]byte(`{"status":"ok","data":{"movie":{"id":0,"url":"","title":null}}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	m := NewMovies(restclient.New("movies", time.Second), srv.URL+"/api/v2/")
	ctx := context.Background()

	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Title)
	assert.Equal(t, []string{"Drama"}, list[0].Genres)
	assert.Equal(t, "http://img/b.jpg", list[1].LargeCoverImage)

	movie, err := m.Get(ctx, "10")
	require.NoError(t, err)
	require.NotNil(t, movie)
	assert.EqualValues(t, 10, movie.Id)

	movie, err = m.Get(ctx, "999")
	require.NoError(t, err)
	assert.Nil(t, movie)
}

func TestMoviesUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewMovies(restclient.New("movies", time.Second), srv.URL).List(context.Background())
	var stErr *restclient.StatusError
	require.True(t, errors.As(err, &stErr), "got %v", err)
	assert.Equal(t, http.StatusBadGateway, stErr.Code)
}

func TestBooks(t *testing.T) {
	body := gz(t, booksJSON)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/svc/books/v3/lists/current/hardcover-fiction.json", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("api-key"))
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(body)
	}))
	defer srv.Close()

	b := NewBooks(restclient.New("books", time.Second), srv.URL+"/svc/books/v3", "hardcover-fiction", "secret")
	books, err := b.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.EqualValues(t, 1, books[0].Rank)
	assert.Equal(t, "SECOND", books[1].Title)
}

func TestBooksEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"OK","results":{}}`))
	}))
	defer srv.Close()

	books, err := NewBooks(restclient.New("books", time.Second), srv.URL, "x", "k").List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestBooksErrors(t *testing.T) {
	truncated := gz(t, booksJSON)[:20]
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(truncated)
	}))
	defer srv.Close()

	client := restclient.New("books", time.Second)

	_, err := NewBooks(client, srv.URL, "x", "").List(context.Background())
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewBooks(client, srv.URL, "x", "k").List(context.Background())
	var decErr *restclient.DecodeError
	assert.True(t, errors.As(err, &decErr), "got %v", err)
}
