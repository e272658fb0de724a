package models

type RedditComment struct {
	Subreddit string  `json:"subreddit"`
	Author    string  `json:"author"`
	Body      string  `json:"body"`
	Ups       int     `json:"ups"`
	CreatedAt float64 `json:"created_utc"`
	ID        string  `json:"id"`
}

type RedditAPIResponse struct {
	Data RedditAPIData `json:"data"`
}

type RedditAPIData struct {
	After    string           `json:"after"`
	Children []RedditAPIChild `json:"children"`
}

type RedditAPIChild struct {
	Data RedditComment `json:"data"`
}
