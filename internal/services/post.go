package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/quillshop/apiserver/internal/events"
	"github.com/quillshop/apiserver/types"
)

// PostRepository defines persistence operations for posts and comments.
type PostRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.Post, int, error)
	Get(ctx context.Context, id int) (types.Post, error)
	Create(ctx context.Context, post types.Post) (types.Post, error)
	Update(ctx context.Context, post types.Post) (types.Post, error)
	Delete(ctx context.Context, id int) error
	CreateComment(ctx context.Context, comment types.Comment) (types.Comment, error)
	ListComments(ctx context.Context, postID int) ([]types.Comment, error)
}

// PostUpdate carries partial post changes. Nil fields keep their
// current values.
type PostUpdate struct {
	Title   *string
	Content *string
}

// PostService encapsulates blog use-cases. Only the authoring user
// may update or delete a post.
type PostService struct {
	repo PostRepository
	bus  *events.Bus
}

func NewPostService(repo PostRepository, bus *events.Bus) *PostService {
	return &PostService{repo: repo, bus: bus}
}

func (s *PostService) List(ctx context.Context, offset, limit int) ([]types.Post, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *PostService) Get(ctx context.Context, id int) (types.Post, error) {
	return s.repo.Get(ctx, id)
}

func (s *PostService) Create(ctx context.Context, userID int, title, content string) (types.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" || content == "" {
		return types.Post{}, fmt.Errorf("%w: title and content are required", ErrValidation)
	}

	post, err := s.repo.Create(ctx, types.Post{
		Title:   title,
		Content: content,
		UserID:  userID,
	})
	if err != nil {
		return types.Post{}, err
	}

	s.bus.Emit(ctx, events.PostCreated, map[string]any{"post_id": post.ID, "user_id": userID})
	return post, nil
}

// Update applies a partial update to a post owned by userID. Omitted
// fields keep their stored values rather than being reset.
func (s *PostService) Update(ctx context.Context, userID, postID int, update PostUpdate) (types.Post, error) {
	post, err := s.repo.Get(ctx, postID)
	if err != nil {
		return types.Post{}, err
	}
	if post.UserID != userID {
		return types.Post{}, ErrForbidden
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return types.Post{}, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		post.Title = title
	}
	if update.Content != nil {
		if *update.Content == "" {
			return types.Post{}, fmt.Errorf("%w: content cannot be empty", ErrValidation)
		}
		post.Content = *update.Content
	}

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return types.Post{}, err
	}
	updated.Author = post.Author

	s.bus.Emit(ctx, events.PostUpdated, map[string]any{"post_id": updated.ID, "user_id": userID})
	return updated, nil
}

// Delete removes a post owned by userID along with its comments.
func (s *PostService) Delete(ctx context.Context, userID, postID int) error {
	post, err := s.repo.Get(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}

	s.bus.Emit(ctx, events.PostDeleted, map[string]any{"post_id": postID, "user_id": userID})
	return nil
}

// AddComment attaches a comment to an existing post. Any
// authenticated user may comment, not just the post's author.
func (s *PostService) AddComment(ctx context.Context, userID, postID int, content string) (types.Comment, error) {
	if content == "" {
		return types.Comment{}, fmt.Errorf("%w: content is required", ErrValidation)
	}

	if _, err := s.repo.Get(ctx, postID); err != nil {
		return types.Comment{}, err
	}

	comment, err := s.repo.CreateComment(ctx, types.Comment{
		PostID:  postID,
		Content: content,
		UserID:  userID,
	})
	if err != nil {
		return types.Comment{}, err
	}

	s.bus.Emit(ctx, events.CommentCreated, map[string]any{"comment_id": comment.ID, "post_id": postID, "user_id": userID})
	return comment, nil
}

func (s *PostService) ListComments(ctx context.Context, postID int) ([]types.Comment, error) {
	if _, err := s.repo.Get(ctx, postID); err != nil {
		return nil, err
	}
	return s.repo.ListComments(ctx, postID)
}
