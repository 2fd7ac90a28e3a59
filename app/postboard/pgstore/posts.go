package pgstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrymomot/postboard/app/postboard/content"
	"github.com/dmitrymomot/postboard/integration/database/pg"
)

const (
	selectPosts = `SELECT p.id, p.user_id, u.username, p.title, p.content, p.created_at
FROM posts p JOIN users u ON u.id = p.user_id`
	selectComments = `SELECT c.id, c.user_id, c.post_id, u.username, c.text, c.created_at
FROM comments c JOIN users u ON u.id = c.user_id`
)

const (
	insertPostQuery     = `INSERT INTO posts (id, user_id, title, content, created_at) VALUES ($1, $2, $3, $4, $5)`
	postByIDQuery       = selectPosts + ` WHERE p.id = $1`
	listPostsQuery      = selectPosts + ` ORDER BY p.created_at DESC, p.id`
	listUserPostsQuery  = selectPosts + ` WHERE p.user_id = $1 ORDER BY p.created_at DESC, p.id`
	updatePostQuery     = `UPDATE posts SET title = $2, content = $3 WHERE id = $1`
	deletePostQuery     = `DELETE FROM posts WHERE id = $1`
	insertCommentQuery  = `INSERT INTO comments (id, user_id, post_id, text, created_at) VALUES ($1, $2, $3, $4, $5)`
	recentCommentsQuery = selectComments + ` ORDER BY c.created_at DESC, c.id LIMIT $1`
	postCommentsQuery   = selectComments + ` WHERE c.post_id = $1 ORDER BY c.created_at, c.id`
)

func (s *Store) CreatePost(ctx context.Context, p content.Post) error {
	_, err := s.conn(ctx).ExecContext(ctx, insertPostQuery, p.ID, p.UserID, p.Title, p.Content, p.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (s *Store) PostByID(ctx context.Context, id string) (content.Post, error) {
	var p content.Post
	err := s.conn(ctx).QueryRowContext(ctx, postByIDQuery, id).
		Scan(&p.ID, &p.UserID, &p.Username, &p.Title, &p.Content, &p.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return content.Post{}, content.ErrPostNotFound
		}
		return content.Post{}, fmt.Errorf("select post: %w", err)
	}
	return p, nil
}

func (s *Store) ListPosts(ctx context.Context) ([]content.Post, error) {
	return s.posts(ctx, listPostsQuery)
}

func (s *Store) ListPostsByUser(ctx context.Context, userID string) ([]content.Post, error) {
	return s.posts(ctx, listUserPostsQuery, userID)
}

func (s *Store) UpdatePost(ctx context.Context, id, title, body string) error {
	res, err := s.conn(ctx).ExecContext(ctx, updatePostQuery, id, title, body)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return content.ErrPostNotFound
	}
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	if _, err := s.conn(ctx).ExecContext(ctx, deletePostQuery, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (s *Store) CreateComment(ctx context.Context, c content.Comment) error {
	_, err := s.conn(ctx).ExecContext(ctx, insertCommentQuery, c.ID, c.UserID, c.PostID, c.Text, c.CreatedAt.UTC())
	if err != nil {
		if pg.IsForeignKeyViolationError(err) {
			return content.ErrPostNotFound
		}
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (s *Store) ListRecentComments(ctx context.Context, limit int) ([]content.Comment, error) {
	return s.comments(ctx, recentCommentsQuery, limit)
}

func (s *Store) ListCommentsByPost(ctx context.Context, postID string) ([]content.Comment, error) {
	return s.comments(ctx, postCommentsQuery, postID)
}

func (s *Store) posts(ctx context.Context, query string, args ...any) ([]content.Post, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	defer closeRows(rows)

	out := []content.Post{}
	for rows.Next() {
		var p content.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Username, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return out, nil
}

func (s *Store) comments(ctx context.Context, query string, args ...any) ([]content.Comment, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	defer closeRows(rows)

	out := []content.Comment{}
	for rows.Next() {
		var c content.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.PostID, &c.Username, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return out, nil
}

func closeRows(rows *sql.Rows) {
	_ = rows.Close()
}
