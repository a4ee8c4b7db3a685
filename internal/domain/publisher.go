package domain

import "context"

//go:generate mockgen -source=publisher.go -destination=publisher_mock.go -package=domain

type Publisher interface {
	// Publish posts text, replying to replyToID when it is non-empty, and
	// returns the id of the new post.
	Publish(ctx context.Context, text, replyToID string) (string, error)
}
