package api

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"tweetql/cmd/back/internal/app"
	"tweetql/cmd/back/internal/repo"
	"tweetql/internal/logger"
	"tweetql/internal/metrics"

	"github.com/gofrs/uuid/v5"
	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var Schema string

type Repository interface {
	CreateTweet(ctx context.Context, tweet app.Tweet) (app.Tweet, error)
	GetTweetByID(ctx context.Context, id string) (app.Tweet, error)
	ListTweets(ctx context.Context) ([]app.Tweet, error)
	GetUserTweets(ctx context.Context, userId string) ([]app.Tweet, error)
	DeleteTweet(ctx context.Context, id string) (bool, error)
	ListUsers(ctx context.Context) ([]app.User, error)
	GetUserByID(ctx context.Context, id string) (app.User, error)
}

type MovieCatalog interface {
	List(ctx context.Context) ([]app.Movie, error)
	Get(ctx context.Context, id string) (*app.Movie, error)
}

type BookCatalog interface {
	List(ctx context.Context) ([]app.Book, error)
}

type Producer interface {
	PublishJSON(ctx context.Context, routingKey string, message interface{}) error
}

// Resolver - корневой резолвер для Query и Mutation
type Resolver struct {
	Database Repository
	Movies   MovieCatalog
	Books    BookCatalog
	// Producer может быть nil - тогда события не отправляются
	Producer Producer
}

// NewSchema разбирает схему и связывает ее с резолвером
func NewSchema(r *Resolver, maxParallelism int) (*graphql.Schema, error) {
	if maxParallelism <= 0 {
		maxParallelism = 10
	}
	schema, err := graphql.ParseSchema(Schema, r, graphql.MaxParallelism(maxParallelism))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return schema, nil
}

// observe записывает метрики резолвера: defer observe("field")(&err)
func observe(field string) func(*error) {
	start := time.Now()
	return func(errp *error) {
		outcome := "ok"
		if *errp != nil {
			outcome = "error"
		}
		metrics.ResolverCallsTotal.WithLabelValues(field, outcome).Inc()
		metrics.ResolverDuration.WithLabelValues(field).Observe(time.Since(start).Seconds())
	}
}

func (r *Resolver) Ping() string {
	return "pong"
}

func (r *Resolver) AllTweets(ctx context.Context) (_ []*tweetResolver, err error) {
	defer observe("allTweets")(&err)

	tweets, err := r.Database.ListTweets(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListTweets: %w", err)
	}
	return r.tweetResolvers(tweets), nil
}

func (r *Resolver) AllUsers(ctx context.Context) (_ []*userResolver, err error) {
	defer observe("allUsers")(&err)

	users, err := r.Database.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	out := make([]*userResolver, len(users))
	for i := range users {
		out[i] = &userResolver{root: r, user: users[i]}
	}
	return out, nil
}

func (r *Resolver) Tweet(ctx context.Context, args struct{ ID graphql.ID }) (_ *tweetResolver, err error) {
	defer observe("tweet")(&err)

	tweet, err := r.Database.GetTweetByID(ctx, string(args.ID))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetTweetByID: %w", err)
	}
	return &tweetResolver{root: r, tweet: tweet}, nil
}

func (r *Resolver) PostTweet(ctx context.Context, args struct {
	Text   string
	UserID graphql.ID
}) (_ *tweetResolver, err error) {
	defer observe("postTweet")(&err)

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	tweet, err := r.Database.CreateTweet(ctx, app.Tweet{
		Id:     id.String(),
		Text:   args.Text,
		UserId: string(args.UserID),
	})
	if err != nil {
		return nil, fmt.Errorf("CreateTweet: %w", err)
	}

	r.publish(ctx, TweetEvent{Action: ActionCreated, TweetId: tweet.Id, UserId: tweet.UserId})
	return &tweetResolver{root: r, tweet: tweet}, nil
}

func (r *Resolver) DeleteTweet(ctx context.Context, args struct{ ID graphql.ID }) (_ bool, err error) {
	defer observe("deleteTweet")(&err)

	tweet, err := r.Database.GetTweetByID(ctx, string(args.ID))
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("GetTweetByID: %w", err)
	}

	ok, err := r.Database.DeleteTweet(ctx, tweet.Id)
	if err != nil {
		return false, fmt.Errorf("DeleteTweet: %w", err)
	}
	if ok {
		r.publish(ctx, TweetEvent{Action: ActionDeleted, TweetId: tweet.Id, UserId: tweet.UserId})
	}
	return ok, nil
}

func (r *Resolver) AllMovies(ctx context.Context) (_ []*movieResolver, err error) {
	defer observe("allMovies")(&err)

	movies, err := r.Movies.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("allMovies", "error", err)
		return nil, err
	}
	out := make([]*movieResolver, len(movies))
	for i := range movies {
		out[i] = &movieResolver{movies[i]}
	}
	return out, nil
}

func (r *Resolver) Movie(ctx context.Context, args struct{ ID string }) (_ *movieResolver, err error) {
	defer observe("movie")(&err)

	movie, err := r.Movies.Get(ctx, args.ID)
	if err != nil {
		logger.FromContext(ctx).Error("movie", "id", args.ID, "error", err)
		return nil, err
	}
	if movie == nil {
		return nil, nil
	}
	return &movieResolver{*movie}, nil
}

// AllBooks отдает ошибку поля, если ответ не удалось разобрать
func (r *Resolver) AllBooks(ctx context.Context) (_ []*bookResolver, err error) {
	defer observe("allBooks")(&err)

	books, err := r.Books.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("allBooks", "error", err)
		return nil, err
	}
	out := make([]*bookResolver, len(books))
	for i := range books {
		out[i] = &bookResolver{books[i]}
	}
	return out, nil
}

func (r *Resolver) tweetResolvers(tweets []app.Tweet) []*tweetResolver {
	out := make([]*tweetResolver, len(tweets))
	for i := range tweets {
		out[i] = &tweetResolver{root: r, tweet: tweets[i]}
	}
	return out
}
