package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"tweetql/cmd/back/internal/app"
)

var ErrMissingAPIKey = errors.New("books api key is not configured")

type Books struct {
	client  Getter
	baseURL string
	list    string
	apiKey  string
}

func NewBooks(client Getter, baseURL, list, apiKey string) *Books {
	return &Books{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		list:    list,
		apiKey:  apiKey,
	}
}

type booksListResponse struct {
	Results struct {
		Books []app.Book `json:"books"`
	} `json:"results"`
}

// List возвращает текущий список бестселлеров
func (b *Books) List(ctx context.Context) ([]app.Book, error) {
	if b.apiKey == "" {
		return nil, fmt.Errorf("Books.List: %w", ErrMissingAPIKey)
	}

	q := url.Values{"api-key": {b.apiKey}}
	rawURL := fmt.Sprintf("%s/lists/current/%s.json?%s", b.baseURL, url.PathEscape(b.list), q.Encode())

	var resp booksListResponse
	if err := b.client.GetJSON(ctx, rawURL, &resp); err != nil {
		return nil, fmt.Errorf("Books.List: %w", err)
	}
	if resp.Results.Books == nil {
		return []app.Book{}, nil
	}
	return resp.Results.Books, nil
}
