package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bloglist/bloglist-api/internal/core/domain"
	"github.com/bloglist/bloglist-api/internal/core/security"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

// validHex mirrors the ObjectID check of the real repositories: ids are 24
// lowercase hex characters.
func validHex(id string) bool {
	if len(id) != 24 {
		return false
	}
	return strings.Trim(id, "0123456789abcdef") == ""
}

func stubID(n int) string {
	return fmt.Sprintf("%024x", n)
}

type stubUserRepo struct {
	byID    map[string]*domain.User
	nextID  int
	saveErr error // if set, Save returns this error
	listErr error
	saves   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.BlogIDs = append([]string(nil), u.BlogIDs...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return nil, domain.ErrUserExists
		}
	}
	clone := cloneUser(u)
	clone.ID = stubID(r.nextID)
	r.nextID++
	r.byID[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if !validHex(id) {
		return nil, domain.ErrInvalidID
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Save(_ context.Context, u *domain.User) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.byID[u.ID] = cloneUser(u)
	return nil
}

type stubBlogRepo struct {
	byID      map[string]*domain.Blog
	order     []string
	nextID    int
	createErr error
	deletes   int
	updates   int
	onList    func()
}

func newStubBlogRepo() *stubBlogRepo {
	// Blog ids start far from user ids so the two never collide.
	return &stubBlogRepo{byID: make(map[string]*domain.Blog), nextID: 1000}
}

func (r *stubBlogRepo) Create(_ context.Context, b *domain.Blog) (*domain.Blog, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	clone := *b
	clone.ID = stubID(r.nextID)
	r.nextID++
	r.byID[clone.ID] = &clone
	r.order = append(r.order, clone.ID)
	out := clone
	return &out, nil
}

func (r *stubBlogRepo) FindByID(_ context.Context, id string) (*domain.Blog, error) {
	if !validHex(id) {
		return nil, domain.ErrInvalidID
	}
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBlogRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Blog, error) {
	var out []*domain.Blog
	for _, id := range ids {
		if b, ok := r.byID[id]; ok {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBlogRepo) List(_ context.Context) ([]*domain.Blog, error) {
	if r.onList != nil {
		r.onList()
	}
	out := make([]*domain.Blog, 0, len(r.byID))
	for _, id := range r.order {
		if b, ok := r.byID[id]; ok {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBlogRepo) Update(_ context.Context, id string, p domain.BlogPatch) (*domain.Blog, error) {
	if !validHex(id) {
		return nil, domain.ErrInvalidID
	}
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	r.updates++
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.Likes != nil {
		b.Likes = *p.Likes
	}
	clone := *b
	return &clone, nil
}

func (r *stubBlogRepo) Delete(_ context.Context, id string) error {
	if !validHex(id) {
		return domain.ErrInvalidID
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBlogNotFound
	}
	r.deletes++
	delete(r.byID, id)
	return nil
}

type stubStatsCache struct {
	stored        *domain.BlogStats
	gen           uint64
	getErr        error
	gets          int
	sets          int
	invalidations int
}

func (c *stubStatsCache) Get(context.Context) (*domain.BlogStats, uint64, error) {
	c.gets++
	if c.getErr != nil {
		return nil, 0, c.getErr
	}
	if c.stored == nil {
		return nil, c.gen, nil
	}
	clone := *c.stored
	return &clone, c.gen, nil
}

func (c *stubStatsCache) Set(_ context.Context, s domain.BlogStats, gen uint64) error {
	if gen != c.gen {
		return nil
	}
	c.sets++
	c.stored = &s
	return nil
}

func (c *stubStatsCache) Invalidate(context.Context) error {
	c.invalidations++
	c.gen++
	c.stored = nil
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testSecret = "test-secret"

func testHasher() *security.PasswordHasher {
	return security.NewPasswordHasher(bcrypt.MinCost)
}

func testTokens() *security.TokenService {
	tokens, err := security.NewTokenService(testSecret)
	if err != nil {
		panic(err)
	}
	return tokens
}

// seedUser stores a user whose password is "secret".
func seedUser(repo *stubUserRepo, username, name string) *domain.User {
	hash, err := testHasher().Hash("secret")
	if err != nil {
		panic(err)
	}
	u, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		BlogIDs:      []string{},
	})
	if err != nil {
		panic(err)
	}
	return u
}

func intPtr(n int) *int         { return &n }
func strPtr(s string) *string   { return &s }
func nopLogger() zerolog.Logger { return zerolog.Nop() }
