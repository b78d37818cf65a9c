package handlers

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quillshop/apiserver/internal/store"
	"github.com/quillshop/apiserver/types"
)

// In-memory repositories backing the route tests. They mirror the
// store contracts, including conflict behavior for uniqueness.

type memUserRepo struct {
	users  map[int]types.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int]types.User{}, nextID: 1}
}

func (r *memUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (types.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *memUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return user, nil
}

func (r *memUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	for _, existing := range r.users {
		if existing.ID != user.ID && (existing.Username == user.Username || existing.Email == user.Email) {
			return types.User{}, store.ErrConflict
		}
	}
	r.users[user.ID] = user
	return user, nil
}

type memPostRepo struct {
	posts         map[int]types.Post
	comments      map[int]types.Comment
	nextPostID    int
	nextCommentID int
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{
		posts:         map[int]types.Post{},
		comments:      map[int]types.Comment{},
		nextPostID:    1,
		nextCommentID: 1,
	}
}

func (r *memPostRepo) List(_ context.Context, offset, limit int) ([]types.Post, int, error) {
	all := []types.Post{}
	for id := 1; id < r.nextPostID; id++ {
		if post, ok := r.posts[id]; ok {
			all = append(all, post)
		}
	}
	total := len(all)
	if offset >= total {
		return []types.Post{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *memPostRepo) Get(_ context.Context, id int) (types.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return types.Post{}, store.ErrNotFound
	}
	return post, nil
}

func (r *memPostRepo) Create(_ context.Context, post types.Post) (types.Post, error) {
	post.ID = r.nextPostID
	r.nextPostID++
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	r.posts[post.ID] = post
	return post, nil
}

func (r *memPostRepo) Update(_ context.Context, post types.Post) (types.Post, error) {
	if _, ok := r.posts[post.ID]; !ok {
		return types.Post{}, store.ErrNotFound
	}
	post.UpdatedAt = time.Now()
	r.posts[post.ID] = post
	return post, nil
}

func (r *memPostRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.posts, id)
	for commentID, comment := range r.comments {
		if comment.PostID == id {
			delete(r.comments, commentID)
		}
	}
	return nil
}

func (r *memPostRepo) CreateComment(_ context.Context, comment types.Comment) (types.Comment, error) {
	comment.ID = r.nextCommentID
	r.nextCommentID++
	comment.CreatedAt = time.Now()
	r.comments[comment.ID] = comment
	return comment, nil
}

func (r *memPostRepo) ListComments(_ context.Context, postID int) ([]types.Comment, error) {
	comments := []types.Comment{}
	for id := 1; id < r.nextCommentID; id++ {
		if comment, ok := r.comments[id]; ok && comment.PostID == postID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

type memInventoryRepo struct {
	items  map[int]types.InventoryItem
	nextID int
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{items: map[int]types.InventoryItem{}, nextID: 1}
}

func (r *memInventoryRepo) Get(_ context.Context, id int) (types.InventoryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return types.InventoryItem{}, store.ErrNotFound
	}
	return item, nil
}

func (r *memInventoryRepo) Create(_ context.Context, item types.InventoryItem) (types.InventoryItem, error) {
	for _, existing := range r.items {
		if existing.Name == item.Name {
			return types.InventoryItem{}, store.ErrConflict
		}
	}
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return item, nil
}

func (r *memInventoryRepo) Update(_ context.Context, item types.InventoryItem) (types.InventoryItem, error) {
	if _, ok := r.items[item.ID]; !ok {
		return types.InventoryItem{}, store.ErrNotFound
	}
	for _, existing := range r.items {
		if existing.ID != item.ID && existing.Name == item.Name {
			return types.InventoryItem{}, store.ErrConflict
		}
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *memInventoryRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memInventoryRepo) Categories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	categories := []string{}
	for id := 1; id < r.nextID; id++ {
		item, ok := r.items[id]
		if !ok || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	return categories, nil
}

func (r *memInventoryRepo) Search(_ context.Context, text, category string, offset, limit int) ([]types.InventoryItem, int, error) {
	needle := strings.ToLower(text)
	matched := []types.InventoryItem{}
	for id := 1; id < r.nextID; id++ {
		item, ok := r.items[id]
		if !ok {
			continue
		}
		if category != "" && item.Category != category {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Description), needle) {
			matched = append(matched, item)
		}
	}
	total := len(matched)
	if offset >= total {
		return []types.InventoryItem{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// expiredToken signs an already-expired token with the test secret.
func expiredToken(t *testing.T, userID int) string {
	t.Helper()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-30 * time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	return signed
}
