package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shukuma/webapp/internal/domain"
	"shukuma/webapp/internal/repository"
)

type postRepository struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]*domain.Post
}

func NewPostRepository() repository.PostRepository {
	return &postRepository{posts: make(map[primitive.ObjectID]*domain.Post)}
}

// clonePost copies the slices so callers never alias stored state.
func clonePost(p *domain.Post) domain.Post {
	c := *p
	c.Likes = append([]primitive.ObjectID{}, p.Likes...)
	c.Comments = append([]domain.Comment{}, p.Comments...)
	return c
}

func (r *postRepository) Create(_ context.Context, post *domain.Post) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	stored := clonePost(post)
	r.posts[post.ID] = &stored
	return post.ID, nil
}

func (r *postRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := clonePost(p)
	return &c, nil
}

func (r *postRepository) ListByAuthors(_ context.Context, authorIDs []primitive.ObjectID, limit int) ([]domain.Post, error) {
	authors := make(map[primitive.ObjectID]bool, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = true
	}

	r.mu.RLock()
	out := []domain.Post{}
	for _, p := range r.posts {
		if authors[p.UserID] {
			out = append(out, clonePost(p))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *postRepository) AddLike(_ context.Context, postID, userID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return false, repository.ErrNotFound
	}
	if p.LikedBy(userID) {
		return false, nil
	}
	p.Likes = append(p.Likes, userID)
	p.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *postRepository) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return false, repository.ErrNotFound
	}
	for i, id := range p.Likes {
		if id == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			p.UpdatedAt = time.Now().UTC()
			return true, nil
		}
	}
	return false, nil
}

func (r *postRepository) AddComment(_ context.Context, postID primitive.ObjectID, comment domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Comments = append(p.Comments, comment)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *postRepository) RemoveComment(_ context.Context, postID, commentID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			p.Comments = append(p.Comments[:i], p.Comments[i+1:]...)
			p.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return repository.ErrNotFound
}
