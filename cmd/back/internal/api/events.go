package api

import (
	"context"
	"time"

	"tweetql/internal/logger"
)

const (
	TweetsQueue = "tweets"

	ActionCreated = "tweet.created"
	ActionDeleted = "tweet.deleted"
)

type TweetEvent struct {
	Action  string    `json:"action"`
	TweetId string    `json:"tweet_id"`
	UserId  string    `json:"user_id"`
	At      time.Time `json:"at"`
}

// publish не влияет на результат мутации, ошибки только логируются
func (r *Resolver) publish(ctx context.Context, event TweetEvent) {
	if r.Producer == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	if err := r.Producer.PublishJSON(ctx, TweetsQueue, event); err != nil {
		logger.FromContext(ctx).Warn("publish tweet event", "action", event.Action, "tweet_id", event.TweetId, "error", err)
	}
}
