package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"blogtab/internal/cache"
	apperrors "blogtab/internal/errors"
	"blogtab/internal/model"
	"blogtab/internal/repository"
)

const (
	postCacheTTL = 5 * time.Minute

	// MaxPageLimit caps the page size for list queries. Callers supply the
	// default for an absent limit; an explicit zero means an empty page.
	MaxPageLimit = 100
)

// PostService exposes ownership-checked post operations. Reads are public;
// update and delete are restricted to the owner.
type PostService interface {
	Create(ctx context.Context, ownerID uint, title, description string) (*model.Post, error)
	List(ctx context.Context, skip, limit int) ([]model.Post, error)
	GetWithComments(ctx context.Context, id uint) (*model.Post, []model.Comment, error)
	Update(ctx context.Context, id, callerID uint, title, description string) error
	Delete(ctx context.Context, id, callerID uint) error
}

type postService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	cache       *cache.Client
}

// NewPostService builds a PostService with repositories and cache.
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, cache *cache.Client) PostService {
	return &postService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		cache:       cache,
	}
}

func (s *postService) cacheKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// Create persists a post owned by the caller. Any authenticated identity may
// create; no further authorization applies.
func (s *postService) Create(ctx context.Context, ownerID uint, title, description string) (*model.Post, error) {
	post := &model.Post{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// List returns a page of posts. Negative skip/limit are rejected and the
// page size is clamped to MaxPageLimit. A zero limit is honored and yields
// an empty page.
func (s *postService) List(ctx context.Context, skip, limit int) ([]model.Post, error) {
	if skip < 0 || limit < 0 {
		return nil, apperrors.ErrInvalidPagination
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return s.postRepo.List(ctx, skip, limit)
}

// GetWithComments returns a post and all comments on it. The post record is
// served from cache when possible; comments always come from the store.
func (s *postService) GetWithComments(ctx context.Context, id uint) (*model.Post, []model.Comment, error) {
	post, err := s.getPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list comments: %w", err)
	}
	return post, comments, nil
}

func (s *postService) getPost(ctx context.Context, id uint) (*model.Post, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(post); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, postCacheTTL)
	}
	return post, nil
}

// Update replaces title and description and refreshes date_last_updated.
// Only the owner may update.
func (s *postService) Update(ctx context.Context, id, callerID uint, title, description string) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrPostNotFound
		}
		return err
	}
	if post.OwnerID != callerID {
		return apperrors.ErrForbidden
	}

	post.Title = title
	post.Description = description
	if err := s.postRepo.Update(ctx, post); err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// Delete removes a post and cascades to its comments in one transaction.
// Only the owner may delete.
func (s *postService) Delete(ctx context.Context, id, callerID uint) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrPostNotFound
		}
		return err
	}
	if post.OwnerID != callerID {
		return apperrors.ErrForbidden
	}

	if err := s.postRepo.DeleteWithComments(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
