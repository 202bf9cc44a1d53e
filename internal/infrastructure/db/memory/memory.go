// Package memory provides process-local repositories for development and
// end-to-end tests. Ids have the same 24-character hex shape as MongoDB
// ObjectIDs so id validation behaves identically across drivers.
package memory

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

func newID() string {
	return primitive.NewObjectID().Hex()
}

func checkID(id string) error {
	if !primitive.IsValidObjectID(id) {
		return domain.ErrInvalidID
	}
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.BlogIDs = append(make([]string, 0, len(u.BlogIDs)), u.BlogIDs...)
	return &clone
}

func cloneBlog(b *domain.Blog) *domain.Blog {
	clone := *b
	return &clone
}
