package types

// FeedResponse is the subset of the Bluesky getFeed response the crawler
// consumes.
type FeedResponse struct {
	Cursor string      `json:"cursor"`
	Feed   []FeedEntry `json:"feed"`
}

// FeedEntry represents each post in the feed.
type FeedEntry struct {
	Post Post `json:"post"`
}

// Post is an individual feed post.
type Post struct {
	Author    Author `json:"author"`
	CID       string `json:"cid"`
	IndexedAt string `json:"indexedAt"`
	Record    Record `json:"record"`
	URI       string `json:"uri"`
}

// Author represents the author of a post.
type Author struct {
	DID         string `json:"did"`
	DisplayName string `json:"displayName"`
	Handle      string `json:"handle"`
}

// Record holds the content of a post.
type Record struct {
	Type      string   `json:"$type"`
	CreatedAt string   `json:"createdAt"`
	Langs     []string `json:"langs"`
	Text      string   `json:"text"`
}
