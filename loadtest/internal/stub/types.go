package stub

import "time"

// Post is a post accepted by the stubbed X API.
type Post struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	ReplyToID string    `json:"reply_to_id,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePostRequest struct {
	Text  string `json:"text" binding:"required"`
	Reply *struct {
		InReplyToTweetID string `json:"in_reply_to_tweet_id"`
	} `json:"reply,omitempty"`
}

type CreatePostResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}

type PostsResponse struct {
	Posts []Post `json:"posts"`
	Count int    `json:"count"`
}

type FailRequest struct {
	// Count is how many upcoming posts are rejected.
	Count int `json:"count"`
}
