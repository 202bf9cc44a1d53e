package domain

// Blog is an owned blog-post record. UserID is set once at creation.
type Blog struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	UserID string `json:"owner_id"`
}

// BlogSummary is the blog projection joined into user listings.
type BlogSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
}

// Summary returns the projection of b used when listing users.
func (b *Blog) Summary() BlogSummary {
	return BlogSummary{ID: b.ID, Title: b.Title, Author: b.Author, URL: b.URL}
}

// BlogPatch carries the fields of an update. Nil fields are left untouched.
type BlogPatch struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// Empty reports whether the patch changes nothing.
func (p BlogPatch) Empty() bool {
	return p.Title == nil && p.Author == nil && p.URL == nil && p.Likes == nil
}
