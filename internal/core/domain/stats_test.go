package domain

import "testing"

func TestTotalLikes(t *testing.T) {
	cases := []struct {
		name  string
		blogs []*Blog
		want  int
	}{
		{"empty", nil, 0},
		{"single", []*Blog{{Likes: 5}}, 5},
		{"many", []*Blog{{Likes: 7}, {Likes: 5}, {Likes: 12}, {Likes: 0}}, 24},
	}

	for _, tc := range cases {
		if got := TotalLikes(tc.blogs); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestMostLiked_Empty(t *testing.T) {
	if fav := MostLiked(nil); fav != nil {
		t.Fatalf("expected nil favorite, got %+v", fav)
	}
}

func TestMostLiked_PicksHighest(t *testing.T) {
	blogs := []*Blog{
		{Title: "React patterns", Author: "Michael Chan", Likes: 7},
		{Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", Likes: 12},
		{Title: "First class tests", Author: "Robert C. Martin", Likes: 10},
	}

	fav := MostLiked(blogs)
	if fav == nil || fav.Title != "Canonical string reduction" || fav.Likes != 12 {
		t.Fatalf("unexpected favorite: %+v", fav)
	}
}

func TestMostLiked_TieGoesToLater(t *testing.T) {
	blogs := []*Blog{
		{Title: "first", Likes: 3},
		{Title: "second", Likes: 3},
	}

	if fav := MostLiked(blogs); fav.Title != "second" {
		t.Errorf("expected later blog to win tie, got %q", fav.Title)
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats([]*Blog{{Title: "a", Likes: 1}, {Title: "b", Likes: 4}})
	if stats.Count != 2 || stats.TotalLikes != 5 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Favorite == nil || stats.Favorite.Title != "b" {
		t.Errorf("unexpected favorite: %+v", stats.Favorite)
	}
}
