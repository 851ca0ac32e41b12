package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tweetql/cmd/back/internal/app"
	"tweetql/cmd/back/internal/cache"
)

const (
	tweetsKey = "tweets"
	usersKey  = "users"
)

// KeyValue - операции redis, которые нужны RedisRepository (см. cache.RedisClient)
type KeyValue interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GetDelete(ctx context.Context, key string) (string, error)
	AddToRight(ctx context.Context, key string, items ...string) error
	GetList(ctx context.Context, key string) ([]string, error)
	RemoveElements(ctx context.Context, key string, value string) (int64, error)
}

// RedisRepository хранит каждую запись как JSON под своим ключом,
// а порядок - в списках id (tweets, users, user_tweets:<id>).
type RedisRepository struct {
	kv KeyValue
}

func NewRedisRepository(kv KeyValue) *RedisRepository {
	return &RedisRepository{kv: kv}
}

func tweetKey(id string) string      { return "tweet:" + id }
func userKey(id string) string       { return "user:" + id }
func userTweetsKey(id string) string { return "user_tweets:" + id }

// Seed заполняет пустое хранилище начальными данными
func (r *RedisRepository) Seed(ctx context.Context, users []app.User, tweets []app.Tweet) error {
	ids, err := r.kv.GetList(ctx, usersKey)
	if err != nil {
		return fmt.Errorf("Seed: %w", err)
	}
	if len(ids) > 0 {
		return nil
	}
	for _, u := range users {
		if err := r.putJSON(ctx, userKey(u.Id), u); err != nil {
			return fmt.Errorf("Seed: %w", err)
		}
		if err := r.kv.AddToRight(ctx, usersKey, u.Id); err != nil {
			return fmt.Errorf("Seed: %w", err)
		}
	}
	for _, t := range tweets {
		if _, err := r.CreateTweet(ctx, t); err != nil {
			return fmt.Errorf("Seed: %w", err)
		}
	}
	return nil
}

func (r *RedisRepository) CreateTweet(ctx context.Context, tweet app.Tweet) (app.Tweet, error) {
	if tweet.CreatedAt.IsZero() {
		tweet.CreatedAt = time.Now().UTC()
	}
	if err := r.putJSON(ctx, tweetKey(tweet.Id), tweet); err != nil {
		return app.Tweet{}, err
	}
	if err := r.kv.AddToRight(ctx, tweetsKey, tweet.Id); err != nil {
		return app.Tweet{}, r.rollbackCreate(ctx, tweet.Id, false, err)
	}
	if err := r.kv.AddToRight(ctx, userTweetsKey(tweet.UserId), tweet.Id); err != nil {
		return app.Tweet{}, r.rollbackCreate(ctx, tweet.Id, true, err)
	}
	return tweet, nil
}

// rollbackCreate убирает то, что CreateTweet успел записать,
// чтобы неудачная мутация не оставила твит, видимый через tweet(id)
func (r *RedisRepository) rollbackCreate(ctx context.Context, id string, listed bool, cause error) error {
	errs := []error{cause}
	if listed {
		if _, err := r.kv.RemoveElements(ctx, tweetsKey, id); err != nil {
			errs = append(errs, fmt.Errorf("rollback %s: %w", tweetsKey, err))
		}
	}
	if _, err := r.kv.GetDelete(ctx, tweetKey(id)); err != nil && !errors.Is(err, cache.ErrMiss) {
		errs = append(errs, fmt.Errorf("rollback %s: %w", tweetKey(id), err))
	}
	return errors.Join(errs...)
}

func (r *RedisRepository) GetTweetByID(ctx context.Context, id string) (app.Tweet, error) {
	var tweet app.Tweet
	if err := r.getJSON(ctx, tweetKey(id), &tweet); err != nil {
		return app.Tweet{}, err
	}
	return tweet, nil
}

func (r *RedisRepository) ListTweets(ctx context.Context) ([]app.Tweet, error) {
	return r.tweetsByList(ctx, tweetsKey)
}

func (r *RedisRepository) GetUserTweets(ctx context.Context, userId string) ([]app.Tweet, error) {
	return r.tweetsByList(ctx, userTweetsKey(userId))
}

func (r *RedisRepository) DeleteTweet(ctx context.Context, id string) (bool, error) {
	raw, err := r.kv.GetDelete(ctx, tweetKey(id))
	if errors.Is(err, cache.ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var tweet app.Tweet
	if err := json.Unmarshal([]byte(raw), &tweet); err != nil {
		return false, fmt.Errorf("decode tweet %s: %w", id, err)
	}
	if _, err := r.kv.RemoveElements(ctx, tweetsKey, id); err != nil {
		return false, err
	}
	if _, err := r.kv.RemoveElements(ctx, userTweetsKey(tweet.UserId), id); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisRepository) ListUsers(ctx context.Context) ([]app.User, error) {
	ids, err := r.kv.GetList(ctx, usersKey)
	if err != nil {
		return nil, err
	}
	users := make([]app.User, 0, len(ids))
	for _, id := range ids {
		user, err := r.GetUserByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *RedisRepository) GetUserByID(ctx context.Context, id string) (app.User, error) {
	var user app.User
	if err := r.getJSON(ctx, userKey(id), &user); err != nil {
		return app.User{}, err
	}
	return user, nil
}

// tweetsByList пропускает id, запись которых уже удалена
func (r *RedisRepository) tweetsByList(ctx context.Context, key string) ([]app.Tweet, error) {
	ids, err := r.kv.GetList(ctx, key)
	if err != nil {
		return nil, err
	}
	tweets := make([]app.Tweet, 0, len(ids))
	for _, id := range ids {
		tweet, err := r.GetTweetByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, tweet)
	}
	return tweets, nil
}

func (r *RedisRepository) putJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.kv.Set(ctx, key, string(raw), 0)
}

func (r *RedisRepository) getJSON(ctx context.Context, key string, v any) error {
	raw, err := r.kv.Get(ctx, key)
	if errors.Is(err, cache.ErrMiss) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
