package models

// Comment is a single YouTube comment as returned by the Data API.
// Immutable once fetched; the analyzer never mutates it.
type Comment struct {
	Text        string `json:"text"`
	Author      string `json:"author"`
	LikeCount   int    `json:"like_count"`
	PublishedAt string `json:"published_at"`
}

type VideoRequest struct {
	VideoID     string `json:"video_id" binding:"required"`
	MaxComments int    `json:"max_comments"`
}
