package repository

import (
	"context"

	"gorm.io/gorm"

	"blogtab/internal/model"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	List(ctx context.Context, offset, limit int) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	DeleteWithComments(ctx context.Context, postID uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository builds a GORM-backed post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).
		Order("date_created DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// DeleteWithComments removes a post and all of its comments as one
// transaction: either the post and every child comment are gone, or nothing
// is.
func (r *postRepository) DeleteWithComments(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, postID).Error
	})
}
