package repo

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"tweetql/cmd/back/internal/app"
	"tweetql/cmd/back/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKV повторяет семантику redis для SET/GET/GETDEL/RPUSH/LRANGE/LREM
type fakeKV struct {
	mu     sync.Mutex
	values map[string]string
	lists  map[string][]string
	// pushErr - ошибка RPUSH для конкретного списка
	pushErr map[string]error
}

func newFakeKV() *fakeKV {
	return &fakeKV{values: map[string]string{}, lists: map[string][]string{}, pushErr: map[string]error{}}
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value.(string)
	return nil
}

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return v, nil
}

func (f *fakeKV) GetDelete(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return "", cache.ErrMiss
	}
	delete(f.values, key)
	return v, nil
}

func (f *fakeKV) AddToRight(_ context.Context, key string, items ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.pushErr[key]; err != nil {
		return err
	}
	f.lists[key] = append(f.lists[key], items...)
	return nil
}

func (f *fakeKV) GetList(_ context.Context, key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.lists[key]), nil
}

func (f *fakeKV) RemoveElements(_ context.Context, key string, value string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	before := len(f.lists[key])
	f.lists[key] = slices.DeleteFunc(f.lists[key], func(s string) bool { return s == value })
	return int64(before - len(f.lists[key])), nil
}

func TestRedisRepository(t *testing.T) {
	r := NewRedisRepository(newFakeKV())
	require.NoError(t, r.Seed(context.Background(), app.SeedUsers(), app.SeedTweets()))
	runStoreTests(t, r)
}

func TestRedisRepositorySeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	r := NewRedisRepository(kv)

	require.NoError(t, r.Seed(ctx, app.SeedUsers(), app.SeedTweets()))
	require.NoError(t, r.Seed(ctx, app.SeedUsers(), app.SeedTweets()))

	tweets, err := r.ListTweets(ctx)
	require.NoError(t, err)
	assert.Len(t, tweets, 2)

	users, err := r.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestRedisRepositorySkipsDanglingIDs(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	r := NewRedisRepository(kv)
	require.NoError(t, r.Seed(ctx, app.SeedUsers(), app.SeedTweets()))

	// запись удалена, а id остался в списке
	_, err := kv.GetDelete(ctx, tweetKey("1"))
	require.NoError(t, err)

	tweets, err := r.ListTweets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, tweetIDs(tweets))
}

func TestRedisRepositoryCreateTweetRollsBack(t *testing.T) {
	errDown := errors.New("redis down")

	tests := []struct {
		name     string
		failList string
	}{
		{name: "tweets list", failList: tweetsKey},
		{name: "user tweets list", failList: userTweetsKey("1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := newFakeKV()
			r := NewRedisRepository(kv)
			require.NoError(t, r.Seed(ctx, app.SeedUsers(), app.SeedTweets()))

			kv.pushErr[tt.failList] = errDown
			_, err := r.CreateTweet(ctx, app.Tweet{Id: "new", Text: "lost", UserId: "1"})
			require.ErrorIs(t, err, errDown)

			_, err = r.GetTweetByID(ctx, "new")
			assert.ErrorIs(t, err, ErrNotFound)

			tweets, err := r.ListTweets(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"1", "2"}, tweetIDs(tweets))
			assert.NotContains(t, kv.lists[tweetsKey], "new")
		})
	}
}
