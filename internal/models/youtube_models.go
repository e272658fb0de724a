package models

// Response shapes for the YouTube Data API v3 commentThreads.list call.
// Only the fields we read are declared.

type YouTubeCommentThreadsResponse struct {
	Items []YouTubeCommentThread `json:"items"`
}

type YouTubeCommentThread struct {
	Snippet struct {
		TopLevelComment struct {
			Snippet YouTubeCommentSnippet `json:"snippet"`
		} `json:"topLevelComment"`
	} `json:"snippet"`
}

type YouTubeCommentSnippet struct {
	TextDisplay       string `json:"textDisplay"`
	AuthorDisplayName string `json:"authorDisplayName"`
	LikeCount         int    `json:"likeCount"`
	PublishedAt       string `json:"publishedAt"`
}

type YouTubeErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
