package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"tweetql/cmd/back/internal/app"
)

type Movies struct {
	client  Getter
	baseURL string
}

func NewMovies(client Getter, baseURL string) *Movies {
	return &Movies{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

type listMoviesResponse struct {
	Data struct {
		Movies []app.Movie `json:"movies"`
	} `json:"data"`
}

type movieDetailsResponse struct {
	Data struct {
		Movie app.Movie `json:"movie"`
	} `json:"data"`
}

func (m *Movies) List(ctx context.Context) ([]app.Movie, error) {
	var resp listMoviesResponse
	if err := m.client.GetJSON(ctx, m.baseURL+"/list_movies.json", &resp); err != nil {
		return nil, fmt.Errorf("Movies.List: %w", err)
	}
	return resp.Data.Movies, nil
}

// Get возвращает nil, если API не знает такого фильма (отдает id 0)
func (m *Movies) Get(ctx context.Context, id string) (*app.Movie, error) {
	q := url.Values{"movie_id": {id}}
	var resp movieDetailsResponse
	if err := m.client.GetJSON(ctx, m.baseURL+"/movie_details.json?"+q.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("Movies.Get(%s): %w", id, err)
	}
	if resp.Data.Movie.Id == 0 {
		return nil, nil
	}
	return &resp.Data.Movie, nil
}
