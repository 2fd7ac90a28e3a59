package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/postboard/core/logger"
	"github.com/dmitrymomot/postboard/core/validator"
	"github.com/dmitrymomot/postboard/pkg/randomid"
)

// RecentCommentsLimit bounds the comments shown on the feed.
const RecentCommentsLimit = 20

// Post is a user's article. Username is filled in by listings.
type Post struct {
	ID        string
	UserID    string
	Username  string
	Title     string
	Content   string
	CreatedAt time.Time
}

// Comment is a reply to a post. Username is filled in by listings.
type Comment struct {
	ID        string
	UserID    string
	PostID    string
	Username  string
	Text      string
	CreatedAt time.Time
}

// PostInput is the post form.
type PostInput struct {
	Title   string `form:"title" validate:"required;max:200"`
	Content string `form:"content" validate:"required;max:20000"`
}

// CommentInput is the comment form.
type CommentInput struct {
	Text string `form:"text" validate:"required;max:2000"`
}

// Feed is the home page content.
type Feed struct {
	Posts    []Post
	Comments []Comment
}

// Service manages posts and comments. Mutations check ownership.
type Service struct {
	posts    PostStore
	comments CommentStore
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewService creates a content service.
func NewService(posts PostStore, comments CommentStore, opts ...Option) *Service {
	s := &Service{
		posts:    posts,
		comments: comments,
		log:      logger.Nop(),
		now:      time.Now,
		newID:    randomid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Feed returns all posts newest first and the most recent comments.
func (s *Service) Feed(ctx context.Context) (Feed, error) {
	posts, err := s.posts.ListPosts(ctx)
	if err != nil {
		return Feed{}, fmt.Errorf("list posts: %w", err)
	}
	comments, err := s.comments.ListRecentComments(ctx, RecentCommentsLimit)
	if err != nil {
		return Feed{}, fmt.Errorf("list comments: %w", err)
	}
	return Feed{Posts: posts, Comments: comments}, nil
}

// UserPosts returns a user's posts newest first.
func (s *Service) UserPosts(ctx context.Context, userID string) ([]Post, error) {
	posts, err := s.posts.ListPostsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}
	return posts, nil
}

// Post returns a post and its comments oldest first.
func (s *Service) Post(ctx context.Context, id string) (Post, []Comment, error) {
	post, err := s.posts.PostByID(ctx, id)
	if err != nil {
		return Post{}, nil, err
	}
	comments, err := s.comments.ListCommentsByPost(ctx, id)
	if err != nil {
		return Post{}, nil, fmt.Errorf("list post comments: %w", err)
	}
	return post, comments, nil
}

// CreatePost stores a new post by userID.
func (s *Service) CreatePost(ctx context.Context, userID string, in PostInput) (Post, error) {
	if err := validate(&in); err != nil {
		return Post{}, err
	}

	post := Post{
		ID:        s.newID(),
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return Post{}, fmt.Errorf("create post: %w", err)
	}

	s.log.InfoContext(ctx, "post created", logger.Component("content"), slog.String("post_id", post.ID))
	return post, nil
}

// UpdatePost replaces the title and content of a post owned by userID.
func (s *Service) UpdatePost(ctx context.Context, userID, postID string, in PostInput) (Post, error) {
	if err := validate(&in); err != nil {
		return Post{}, err
	}

	post, err := s.owned(ctx, userID, postID)
	if err != nil {
		return Post{}, err
	}
	if err := s.posts.UpdatePost(ctx, postID, in.Title, in.Content); err != nil {
		return Post{}, fmt.Errorf("update post: %w", err)
	}

	post.Title, post.Content = in.Title, in.Content
	return post, nil
}

// DeletePost removes a post owned by userID together with its comments.
func (s *Service) DeletePost(ctx context.Context, userID, postID string) (Post, error) {
	post, err := s.owned(ctx, userID, postID)
	if err != nil {
		return Post{}, err
	}
	if err := s.posts.DeletePost(ctx, postID); err != nil {
		return Post{}, fmt.Errorf("delete post: %w", err)
	}

	s.log.InfoContext(ctx, "post deleted", logger.Component("content"), slog.String("post_id", postID))
	return post, nil
}

// AddComment attaches a comment by userID to a post and returns the post.
func (s *Service) AddComment(ctx context.Context, userID, postID string, in CommentInput) (Post, Comment, error) {
	if err := validate(&in); err != nil {
		return Post{}, Comment{}, err
	}

	post, err := s.posts.PostByID(ctx, postID)
	if err != nil {
		return Post{}, Comment{}, err
	}

	c := Comment{
		ID:        s.newID(),
		UserID:    userID,
		PostID:    postID,
		Text:      in.Text,
		CreatedAt: s.now().UTC(),
	}
	if err := s.comments.CreateComment(ctx, c); err != nil {
		return Post{}, Comment{}, fmt.Errorf("create comment: %w", err)
	}
	return post, c, nil
}

func (s *Service) owned(ctx context.Context, userID, postID string) (Post, error) {
	post, err := s.posts.PostByID(ctx, postID)
	if err != nil {
		return Post{}, err
	}
	if post.UserID != userID {
		return Post{}, ErrForbidden
	}
	return post, nil
}

func validate(v any) error {
	if err := validator.ValidateStruct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}
