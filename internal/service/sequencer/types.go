package sequencer

type PostResult struct {
	Index     int    `json:"index"`
	ReplyToID string `json:"reply_to_id,omitempty"`
	PostID    string `json:"post_id,omitempty"`
	Success   bool   `json:"success"`
	Skipped   bool   `json:"skipped"`
	Error     string `json:"error,omitempty"`
}

type Result struct {
	PostCount    int          `json:"post_count"`
	SuccessCount int          `json:"success_count"`
	FailedCount  int          `json:"failed_count"`
	SkippedCount int          `json:"skipped_count"`
	Aborted      bool         `json:"aborted"`
	Posts        []PostResult `json:"posts"`
}

// HeadID is the id of the first post, empty when it failed.
func (r *Result) HeadID() string {
	if len(r.Posts) == 0 {
		return ""
	}
	return r.Posts[0].PostID
}
