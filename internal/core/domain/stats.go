package domain

// FavoriteBlog is the reduced view of the most liked blog.
type FavoriteBlog struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// BlogStats aggregates the blog collection.
type BlogStats struct {
	Count      int           `json:"count"`
	TotalLikes int           `json:"total_likes"`
	Favorite   *FavoriteBlog `json:"favorite"`
}

// TotalLikes sums the likes of every blog.
func TotalLikes(blogs []*Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// MostLiked returns the blog with the most likes, or nil for an empty slice.
// On a tie the later blog wins.
func MostLiked(blogs []*Blog) *FavoriteBlog {
	var fav *Blog
	for _, b := range blogs {
		if fav == nil || b.Likes >= fav.Likes {
			fav = b
		}
	}
	if fav == nil {
		return nil
	}
	return &FavoriteBlog{Title: fav.Title, Author: fav.Author, Likes: fav.Likes}
}

// ComputeStats builds BlogStats over blogs.
func ComputeStats(blogs []*Blog) BlogStats {
	return BlogStats{
		Count:      len(blogs),
		TotalLikes: TotalLikes(blogs),
		Favorite:   MostLiked(blogs),
	}
}
