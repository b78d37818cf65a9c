package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quillshop/apiserver/internal/services"
	"github.com/quillshop/apiserver/types"
	"github.com/sirupsen/logrus"
)

// PostHandler provides HTTP handlers for posts and comments.
type PostHandler struct {
	postService *services.PostService
	log         *logrus.Entry
}

// NewPostHandler constructs a handler with the provided service.
func NewPostHandler(postService *services.PostService, log *logrus.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		log:         log.WithField("handler", "posts"),
	}
}

// PostRouter registers post routes on the given router. Reads are
// public; every mutation requires a valid token.
func PostRouter(
	r chi.Router,
	postService *services.PostService,
	authMiddleware func(http.Handler) http.Handler,
	log *logrus.Logger,
) {
	handler := NewPostHandler(postService, log)

	r.Get("/", handler.ListPosts)
	r.With(authMiddleware).Post("/create", handler.CreatePost)
	r.With(authMiddleware).Put("/update/{postID}", handler.UpdatePost)
	r.With(authMiddleware).Delete("/delete/{postID}", handler.DeletePost)
	r.Route("/{postID}", func(r chi.Router) {
		r.Get("/", handler.GetPost)
		r.Get("/comments", handler.ListComments)
		r.With(authMiddleware).Post("/comments", handler.AddComment)
	})
}

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page, limit, offset, err := parsePagination(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, total, err := h.postService.List(r.Context(), offset, limit)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, PostListResponse{
		Success: true,
		Posts:   posts,
		Page:    page,
		Limit:   limit,
		Total:   total,
	})
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, PostResponse{Success: true, Post: post})
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	post, err := h.postService.Create(r.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, PostResponse{Success: true, Post: post})
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	post, err := h.postService.Update(r.Context(), user.ID, id, services.PostUpdate{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, PostResponse{Success: true, Post: post})
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.postService.Delete(r.Context(), user.ID, id); err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "post deleted successfully"})
}

func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	comment, err := h.postService.AddComment(r.Context(), user.ID, id, req.Content)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, CommentResponse{Success: true, Comment: comment})
}

func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "postID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comments, err := h.postService.ListComments(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, CommentListResponse{Success: true, Comments: comments})
}

type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

type PostResponse struct {
	Success bool       `json:"success"`
	Post    types.Post `json:"post"`
}

type PostListResponse struct {
	Success bool         `json:"success"`
	Posts   []types.Post `json:"posts"`
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
	Total   int          `json:"total"`
}

type CommentResponse struct {
	Success bool          `json:"success"`
	Comment types.Comment `json:"comment"`
}

type CommentListResponse struct {
	Success  bool            `json:"success"`
	Comments []types.Comment `json:"comments"`
}
