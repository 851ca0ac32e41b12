package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tweetql/cmd/back/internal/app"
)

// Repository - хранилище в Postgres, схема в migrations/
type Repository struct {
	db *sql.DB
}

func NewRepository(rawDB *sql.DB) *Repository {
	return &Repository{db: rawDB}
}

func (d Repository) CreateTweet(ctx context.Context, tweet app.Tweet) (app.Tweet, error) {
	query := `insert into tweets (id, text, user_id) values ($1, $2, $3)
	returning id, text, user_id, created_at`
	err := d.db.QueryRowContext(ctx, query, tweet.Id, tweet.Text, tweet.UserId).Scan(&tweet.Id, &tweet.Text,
		&tweet.UserId, &tweet.CreatedAt)
	if err != nil {
		return app.Tweet{}, err
	}
	return tweet, nil
}

func (d Repository) GetTweetByID(ctx context.Context, id string) (app.Tweet, error) {
	query := `select id, text, user_id, created_at from tweets where id = $1`

	var tweet app.Tweet
	err := d.db.QueryRowContext(ctx, query, id).Scan(&tweet.Id, &tweet.Text,
		&tweet.UserId, &tweet.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return app.Tweet{}, ErrNotFound
	}
	if err != nil {
		return app.Tweet{}, err
	}
	return tweet, nil
}

func (d Repository) ListTweets(ctx context.Context) ([]app.Tweet, error) {
	query := `select id, text, user_id, created_at from tweets order by seq`
	return d.queryTweets(ctx, query)
}

func (d Repository) GetUserTweets(ctx context.Context, userId string) ([]app.Tweet, error) {
	query := `select id, text, user_id, created_at from tweets where user_id = $1 order by seq`
	return d.queryTweets(ctx, query, userId)
}

func (d Repository) DeleteTweet(ctx context.Context, id string) (bool, error) {
	query := `delete from tweets where id = $1`
	res, err := d.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d Repository) ListUsers(ctx context.Context) ([]app.User, error) {
	query := `select id, first_name, last_name from users order by seq`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []app.User
	for rows.Next() {
		var user app.User
		if err := rows.Scan(&user.Id, &user.FirstName, &user.LastName); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (d Repository) GetUserByID(ctx context.Context, id string) (app.User, error) {
	query := `select id, first_name, last_name from users where id = $1`

	var user app.User
	err := d.db.QueryRowContext(ctx, query, id).Scan(&user.Id, &user.FirstName, &user.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return app.User{}, ErrNotFound
	}
	if err != nil {
		return app.User{}, err
	}
	return user, nil
}

func (d Repository) queryTweets(ctx context.Context, query string, args ...any) ([]app.Tweet, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tweets []app.Tweet
	for rows.Next() {
		var tweet app.Tweet
		if err := rows.Scan(&tweet.Id, &tweet.Text, &tweet.UserId, &tweet.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tweet: %w", err)
		}
		tweets = append(tweets, tweet)
	}
	return tweets, rows.Err()
}
