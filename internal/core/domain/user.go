package domain

// User is a registered identity that can authenticate and own blogs.
// BlogIDs grows by append only; entries may outlive the blog they point at
// because deleting a blog does not touch its owner's list.
type User struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	BlogIDs      []string `json:"-"`
}

// UserSummary is the owner projection joined into blog listings.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Summary returns the public owner projection of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Name: u.Name}
}

// OwnsBlog reports whether u appears in the blog's owner reference.
func (u *User) OwnsBlog(b *Blog) bool {
	return b != nil && u.ID != "" && b.UserID == u.ID
}
