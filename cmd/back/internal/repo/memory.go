package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"tweetql/cmd/back/internal/app"
)

// MemoryRepository хранит твиты и пользователей в памяти процесса.
// Данные теряются при перезапуске.
type MemoryRepository struct {
	mu     sync.RWMutex
	tweets []app.Tweet
	users  []app.User
}

func NewMemoryRepository(users []app.User, tweets []app.Tweet) *MemoryRepository {
	return &MemoryRepository{
		users:  slices.Clone(users),
		tweets: slices.Clone(tweets),
	}
}

func (m *MemoryRepository) CreateTweet(ctx context.Context, tweet app.Tweet) (app.Tweet, error) {
	if err := ctx.Err(); err != nil {
		return app.Tweet{}, err
	}
	if tweet.CreatedAt.IsZero() {
		tweet.CreatedAt = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tweets = append(m.tweets, tweet)
	return tweet, nil
}

func (m *MemoryRepository) GetTweetByID(ctx context.Context, id string) (app.Tweet, error) {
	if err := ctx.Err(); err != nil {
		return app.Tweet{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.tweets {
		if t.Id == id {
			return t, nil
		}
	}
	return app.Tweet{}, ErrNotFound
}

func (m *MemoryRepository) ListTweets(ctx context.Context) ([]app.Tweet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.tweets), nil
}

func (m *MemoryRepository) GetUserTweets(ctx context.Context, userId string) ([]app.Tweet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var tweets []app.Tweet
	for _, t := range m.tweets {
		if t.UserId == userId {
			tweets = append(tweets, t)
		}
	}
	return tweets, nil
}

// DeleteTweet удаляет ровно одну запись. false - если id не найден
func (m *MemoryRepository) DeleteTweet(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := slices.IndexFunc(m.tweets, func(t app.Tweet) bool { return t.Id == id })
	if idx < 0 {
		return false, nil
	}
	m.tweets = slices.Delete(m.tweets, idx, idx+1)
	return true, nil
}

func (m *MemoryRepository) ListUsers(ctx context.Context) ([]app.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.users), nil
}

func (m *MemoryRepository) GetUserByID(ctx context.Context, id string) (app.User, error) {
	if err := ctx.Err(); err != nil {
		return app.User{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Id == id {
			return u, nil
		}
	}
	return app.User{}, ErrNotFound
}
