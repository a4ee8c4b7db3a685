package poster

type createPostRequest struct {
	Text  string         `json:"text"`
	Reply *replySettings `json:"reply,omitempty"`
}

type replySettings struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

type createPostResponse struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
}
