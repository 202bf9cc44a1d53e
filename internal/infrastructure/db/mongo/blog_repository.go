package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bloglist/bloglist-api/internal/core/domain"
)

const collectionBlogs = "blogs"

type BlogRepository struct {
	col *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{col: db.Collection(collectionBlogs)}
}

type blogDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Author string             `bson:"author"`
	URL    string             `bson:"url"`
	Likes  int                `bson:"likes"`
	User   primitive.ObjectID `bson:"user,omitempty"`
}

func (d blogDocument) toDomain() *domain.Blog {
	b := &domain.Blog{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Author: d.Author,
		URL:    d.URL,
		Likes:  d.Likes,
	}
	if !d.User.IsZero() {
		b.UserID = d.User.Hex()
	}
	return b
}

// patchSet builds the $set document for the non-nil fields of p.
func patchSet(p domain.BlogPatch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Author != nil {
		set["author"] = *p.Author
	}
	if p.URL != nil {
		set["url"] = *p.URL
	}
	if p.Likes != nil {
		set["likes"] = *p.Likes
	}
	return set
}

func (r *BlogRepository) Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error) {
	owner, err := parseID(b.UserID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := blogDocument{
		ID:     primitive.NewObjectID(),
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
		User:   owner,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert blog: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BlogRepository) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc blogDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByIDs returns the blogs among ids that exist. Malformed ids are skipped.
func (r *BlogRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Blog, error) {
	oids := parseIDs(ids)
	if len(oids) == 0 {
		return []*domain.Blog{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *BlogRepository) List(ctx context.Context) ([]*domain.Blog, error) {
	return r.find(ctx, bson.M{})
}

func (r *BlogRepository) find(ctx context.Context, filter bson.M) ([]*domain.Blog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []blogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}

	out := make([]*domain.Blog, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Update applies patch and returns the document as stored afterwards.
func (r *BlogRepository) Update(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := patchSet(patch)
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc blogDocument
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlogNotFound
		}
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBlogNotFound
	}
	return nil
}

// EnsureIndexes creates the owner lookup index on the blogs collection.
func (r *BlogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}},
	})
	return err
}
