// Package gql is a minimal GraphQL-over-HTTP client for the tweetql API.
package gql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tweetql/internal/restclient"
)

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}

type Error struct {
	Message string `json:"message"`
	Path    []any  `json:"path"`
}

// Errors - ошибки из поля errors ответа
type Errors []Error

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Message
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

type Client struct {
	endpoint string
	http     *restclient.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{endpoint: endpoint, http: restclient.New("tweetql", timeout)}
}

// Do выполняет запрос и раскладывает data в out. Частичный ответ с
// ошибками возвращается как Errors, data при этом все равно разобрана.
func (c *Client) Do(ctx context.Context, query string, vars map[string]any, out any) error {
	var resp response
	if err := c.http.PostJSON(ctx, c.endpoint, request{Query: query, Variables: vars}, &resp); err != nil {
		return err
	}
	if len(resp.Data) > 0 && string(resp.Data) != "null" && out != nil {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	if len(resp.Errors) > 0 {
		return Errors(resp.Errors)
	}
	return nil
}

// IsGraphQLError - ошибка пришла от сервера в поле errors
func IsGraphQLError(err error) bool {
	var gqlErrs Errors
	return errors.As(err, &gqlErrs)
}
