// Package memstore keeps users, posts and comments in process memory.
// It backs development runs with STORAGE_BACKEND=memory and handler tests.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/postboard/app/postboard/account"
	"github.com/dmitrymomot/postboard/app/postboard/content"
)

// Store implements account.UserStore, content.PostStore and content.CommentStore.
// Deletes cascade the way the Postgres schema does.
type Store struct {
	mu         sync.RWMutex
	users      map[string]account.User
	byUsername map[string]string
	posts      map[string]content.Post
	comments   map[string]content.Comment
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:      map[string]account.User{},
		byUsername: map[string]string{},
		posts:      map[string]content.Post{},
		comments:   map[string]content.Comment{},
	}
}

func (s *Store) CreateUser(_ context.Context, u account.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUsername[u.Username]; ok {
		return account.ErrUsernameTaken
	}
	s.users[u.ID] = u
	s.byUsername[u.Username] = u.ID
	return nil
}

func (s *Store) UserByUsername(_ context.Context, username string) (account.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return account.User{}, account.ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *Store) UserByID(_ context.Context, id string) (account.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return account.User{}, account.ErrUserNotFound
	}
	return u, nil
}

func (s *Store) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil
	}
	delete(s.users, id)
	delete(s.byUsername, u.Username)

	for pid, p := range s.posts {
		if p.UserID == id {
			s.deletePostLocked(pid)
		}
	}
	for cid, c := range s.comments {
		if c.UserID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

func (s *Store) CreatePost(_ context.Context, p content.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Username = ""
	s.posts[p.ID] = p
	return nil
}

func (s *Store) PostByID(_ context.Context, id string) (content.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return content.Post{}, content.ErrPostNotFound
	}
	return s.withAuthor(p), nil
}

func (s *Store) ListPosts(_ context.Context) ([]content.Post, error) {
	return s.listPosts(func(content.Post) bool { return true }), nil
}

func (s *Store) ListPostsByUser(_ context.Context, userID string) ([]content.Post, error) {
	return s.listPosts(func(p content.Post) bool { return p.UserID == userID }), nil
}

func (s *Store) UpdatePost(_ context.Context, id, title, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return content.ErrPostNotFound
	}
	p.Title, p.Content = title, body
	s.posts[id] = p
	return nil
}

func (s *Store) DeletePost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletePostLocked(id)
	return nil
}

func (s *Store) CreateComment(_ context.Context, c content.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[c.PostID]; !ok {
		return content.ErrPostNotFound
	}
	c.Username = ""
	s.comments[c.ID] = c
	return nil
}

func (s *Store) ListRecentComments(_ context.Context, limit int) ([]content.Comment, error) {
	out := s.listComments(func(content.Comment) bool { return true })
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListCommentsByPost(_ context.Context, postID string) ([]content.Comment, error) {
	return s.listComments(func(c content.Comment) bool { return c.PostID == postID }), nil
}

func (s *Store) deletePostLocked(id string) {
	delete(s.posts, id)
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
}

func (s *Store) withAuthor(p content.Post) content.Post {
	p.Username = s.users[p.UserID].Username
	return p
}

// listPosts returns matching posts newest first.
func (s *Store) listPosts(match func(content.Post) bool) []content.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]content.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if match(p) {
			out = append(out, s.withAuthor(p))
		}
	}
	slices.SortFunc(out, func(a, b content.Post) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out
}

// listComments returns matching comments oldest first.
func (s *Store) listComments(match func(content.Comment) bool) []content.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]content.Comment, 0)
	for _, c := range s.comments {
		if match(c) {
			c.Username = s.users[c.UserID].Username
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b content.Comment) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out
}
