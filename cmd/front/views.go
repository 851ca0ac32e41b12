package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tweetql/cmd/front/internal/gql"
	"tweetql/cmd/front/internal/render"
)

const allMoviesQuery = `query getMovies {
  allMovies {
    id
    title
    year
    rating
    large_cover_image
  }
}`

const movieQuery = `query getMovie($movieId: String!) {
  movie(id: $movieId) {
    id
    title
    year
    rating
    runtime
    genres
    language
    description_full
    medium_cover_image
  }
}`

const allTweetsQuery = `query getTweets {
  allTweets {
    id
    text
    author {
      fullName
    }
  }
}`

const allBooksQuery = `query getBooks {
  allBooks {
    rank
    title
    author
    publisher
    primary_isbn13
  }
}`

type movie struct {
	ID               int32    `json:"id"`
	Title            string   `json:"title"`
	Year             int32    `json:"year"`
	Rating           float64  `json:"rating"`
	Runtime          float64  `json:"runtime"`
	Genres           []string `json:"genres"`
	Language         string   `json:"language"`
	DescriptionFull  string   `json:"description_full"`
	LargeCoverImage  string   `json:"large_cover_image"`
	MediumCoverImage string   `json:"medium_cover_image"`
}

type tweet struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author *struct {
		FullName string `json:"fullName"`
	} `json:"author"`
}

type book struct {
	Rank          int32  `json:"rank"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Publisher     string `json:"publisher"`
	PrimaryIsbn13 string `json:"primary_isbn13"`
}

// view выполняет один фиксированный запрос и превращает ответ в карточки
type view func(ctx context.Context, c *gql.Client, args []string) ([]render.Card, error)

func moviesView(ctx context.Context, c *gql.Client, _ []string) ([]render.Card, error) {
	var out struct {
		AllMovies []movie `json:"allMovies"`
	}
	if err := c.Do(ctx, allMoviesQuery, nil, &out); err != nil {
		return nil, err
	}
	cards := make([]render.Card, len(out.AllMovies))
	for i, m := range out.AllMovies {
		cards[i] = render.Card{
			Title: m.Title,
			Lines: []string{
				fmt.Sprintf("#%d  %d  *%.1f", m.ID, m.Year, m.Rating),
				m.LargeCoverImage,
			},
		}
	}
	return cards, nil
}

func movieView(ctx context.Context, c *gql.Client, args []string) ([]render.Card, error) {
	var out struct {
		Movie *movie `json:"movie"`
	}
	if err := c.Do(ctx, movieQuery, map[string]any{"movieId": args[0]}, &out); err != nil {
		return nil, err
	}
	if out.Movie == nil {
		return nil, fmt.Errorf("movie %s not found", args[0])
	}
	m := out.Movie
	return []render.Card{{
		Title: m.Title,
		Lines: []string{
			fmt.Sprintf("%d, %s min, %s", m.Year, strconv.FormatFloat(m.Runtime, 'f', -1, 64), m.Language),
			fmt.Sprintf("rating %.1f", m.Rating),
			strings.Join(m.Genres, ", "),
			m.DescriptionFull,
			m.MediumCoverImage,
		},
	}}, nil
}

func tweetsView(ctx context.Context, c *gql.Client, _ []string) ([]render.Card, error) {
	var out struct {
		AllTweets []tweet `json:"allTweets"`
	}
	if err := c.Do(ctx, allTweetsQuery, nil, &out); err != nil {
		return nil, err
	}
	cards := make([]render.Card, len(out.AllTweets))
	for i, t := range out.AllTweets {
		author := "unknown"
		if t.Author != nil {
			author = t.Author.FullName
		}
		cards[i] = render.Card{Title: "@" + author, Lines: []string{t.Text, "id " + t.ID}}
	}
	return cards, nil
}

func booksView(ctx context.Context, c *gql.Client, _ []string) ([]render.Card, error) {
	var out struct {
		AllBooks []book `json:"allBooks"`
	}
	if err := c.Do(ctx, allBooksQuery, nil, &out); err != nil {
		return nil, err
	}
	cards := make([]render.Card, len(out.AllBooks))
	for i, b := range out.AllBooks {
		cards[i] = render.Card{
			Title: fmt.Sprintf("%d. %s", b.Rank, b.Title),
			Lines: []string{b.Author, b.Publisher, b.PrimaryIsbn13},
		}
	}
	return cards, nil
}
