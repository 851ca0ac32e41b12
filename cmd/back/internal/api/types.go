package api

import (
	"context"
	"errors"
	"fmt"

	"tweetql/cmd/back/internal/app"
	"tweetql/cmd/back/internal/repo"

	"github.com/graph-gophers/graphql-go"
)

type tweetResolver struct {
	root  *Resolver
	tweet app.Tweet
}

func (t *tweetResolver) ID() graphql.ID     { return graphql.ID(t.tweet.Id) }
func (t *tweetResolver) Text() string       { return t.tweet.Text }
func (t *tweetResolver) UserID() graphql.ID { return graphql.ID(t.tweet.UserId) }

// Author - null, если пользователя с таким userId нет
func (t *tweetResolver) Author(ctx context.Context) (*userResolver, error) {
	user, err := t.root.Database.GetUserByID(ctx, t.tweet.UserId)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return &userResolver{root: t.root, user: user}, nil
}

type userResolver struct {
	root *Resolver
	user app.User
}

func (u *userResolver) ID() graphql.ID    { return graphql.ID(u.user.Id) }
func (u *userResolver) FirstName() string { return u.user.FirstName }
func (u *userResolver) LastName() string  { return u.user.LastName }
func (u *userResolver) FullName() string  { return u.user.FullName() }

func (u *userResolver) Tweets(ctx context.Context) ([]*tweetResolver, error) {
	tweets, err := u.root.Database.GetUserTweets(ctx, u.user.Id)
	if err != nil {
		return nil, fmt.Errorf("GetUserTweets: %w", err)
	}
	return u.root.tweetResolvers(tweets), nil
}

type movieResolver struct {
	m app.Movie
}

func (r *movieResolver) ID() int32                       { return r.m.Id }
func (r *movieResolver) URL() string                     { return r.m.Url }
func (r *movieResolver) ImdbCode() string                { return r.m.ImdbCode }
func (r *movieResolver) Title() string                   { return r.m.Title }
func (r *movieResolver) TitleEnglish() string            { return r.m.TitleEnglish }
func (r *movieResolver) TitleLong() string               { return r.m.TitleLong }
func (r *movieResolver) Slug() string                    { return r.m.Slug }
func (r *movieResolver) Year() int32                     { return r.m.Year }
func (r *movieResolver) Rating() float64                 { return r.m.Rating }
func (r *movieResolver) Runtime() float64                { return r.m.Runtime }
func (r *movieResolver) DescriptionFull() string         { return r.m.DescriptionFull }
func (r *movieResolver) YtTrailerCode() string           { return r.m.YtTrailerCode }
func (r *movieResolver) Language() string                { return r.m.Language }
func (r *movieResolver) BackgroundImage() string         { return r.m.BackgroundImage }
func (r *movieResolver) BackgroundImageOriginal() string { return r.m.BackgroundImageOriginal }
func (r *movieResolver) SmallCoverImage() string         { return r.m.SmallCoverImage }
func (r *movieResolver) MediumCoverImage() string        { return r.m.MediumCoverImage }
func (r *movieResolver) LargeCoverImage() string         { return r.m.LargeCoverImage }

func (r *movieResolver) Genres() []string {
	if r.m.Genres == nil {
		return []string{}
	}
	return r.m.Genres
}

// в списке фильмов API не всегда отдает summary и synopsis
func (r *movieResolver) Summary() *string  { return optional(r.m.Summary) }
func (r *movieResolver) Synopsis() *string { return optional(r.m.Synopsis) }

type bookResolver struct {
	b app.Book
}

func (r *bookResolver) Rank() int32              { return r.b.Rank }
func (r *bookResolver) Title() string            { return r.b.Title }
func (r *bookResolver) Author() string           { return r.b.Author }
func (r *bookResolver) Description() string      { return r.b.Description }
func (r *bookResolver) Publisher() string        { return r.b.Publisher }
func (r *bookResolver) PrimaryIsbn13() string    { return r.b.PrimaryIsbn13 }
func (r *bookResolver) BookImage() string        { return r.b.BookImage }
func (r *bookResolver) AmazonProductURL() string { return r.b.AmazonProductUrl }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
