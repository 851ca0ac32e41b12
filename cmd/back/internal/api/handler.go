package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"tweetql/internal/logger"

	"github.com/gofrs/uuid/v5"
	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

const RequestIDHeader = "X-Request-ID"

// NewHandler - POST /graphql с телом {query, operationName, variables}
// и GET /graphql?query=...&operationName=...&variables=<json>
func NewHandler(schema *graphql.Schema, log *slog.Logger) http.Handler {
	return LoggerMiddleware(log, &graphqlHandler{
		schema: schema,
		post:   &relay.Handler{Schema: schema},
	})
}

type graphqlHandler struct {
	schema *graphql.Schema
	post   *relay.Handler
}

func (h *graphqlHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.post.ServeHTTP(w, r)
		return
	}

	q := r.URL.Query()
	query := q.Get("query")
	if query == "" {
		http.Error(w, "query parameter is required", http.StatusBadRequest)
		return
	}
	var variables map[string]interface{}
	if raw := q.Get("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &variables); err != nil {
			http.Error(w, "variables must be a JSON object", http.StatusBadRequest)
			return
		}
	}

	response := h.schema.Exec(r.Context(), query, q.Get("operationName"), variables)
	body, err := json.Marshal(response)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// LoggerMiddleware кладет в контекст запроса логгер с request_id
func LoggerMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.Must(uuid.NewV4()).String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		reqLog := log.With("request_id", requestID)
		ctx := logger.NewContext(r.Context(), reqLog)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
