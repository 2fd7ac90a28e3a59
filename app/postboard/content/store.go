package content

import "context"

// PostStore persists posts. Lookups of absent posts return ErrPostNotFound.
type PostStore interface {
	CreatePost(ctx context.Context, p Post) error
	PostByID(ctx context.Context, id string) (Post, error)
	ListPosts(ctx context.Context) ([]Post, error)
	ListPostsByUser(ctx context.Context, userID string) ([]Post, error)
	UpdatePost(ctx context.Context, id, title, content string) error
	// DeletePost also removes the post's comments.
	DeletePost(ctx context.Context, id string) error
}

// CommentStore persists comments.
type CommentStore interface {
	// CreateComment returns ErrPostNotFound when the post is gone.
	CreateComment(ctx context.Context, c Comment) error
	ListRecentComments(ctx context.Context, limit int) ([]Comment, error)
	ListCommentsByPost(ctx context.Context, postID string) ([]Comment, error)
}
