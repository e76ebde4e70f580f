package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	apperrors "blogtab/internal/errors"
	"blogtab/internal/model"
	"blogtab/internal/repository"
)

// mysqlFKViolation is the MySQL error code for a failed foreign key check.
const mysqlFKViolation = 1452

// CommentService exposes ownership-checked comment operations. Creation
// relies on the store's foreign key to require an existing parent post; the
// violation is surfaced as a post NotFound.
type CommentService interface {
	Create(ctx context.Context, postID, ownerID uint, text string) (*model.Comment, error)
	Update(ctx context.Context, id, callerID uint, text string) error
	Delete(ctx context.Context, id, callerID uint) error
}

type commentService struct {
	commentRepo repository.CommentRepository
}

// NewCommentService builds a CommentService.
func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

// Create persists a comment on an existing post, owned by the caller.
func (s *commentService) Create(ctx context.Context, postID, ownerID uint, text string) (*model.Comment, error) {
	comment := &model.Comment{
		Text:    text,
		PostID:  postID,
		OwnerID: ownerID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlFKViolation {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// Update replaces the comment text and refreshes date_last_updated. Only the
// owner may update.
func (s *commentService) Update(ctx context.Context, id, callerID uint, text string) error {
	comment, err := s.findOwned(ctx, id, callerID)
	if err != nil {
		return err
	}

	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return nil
}

// Delete removes a comment. Only the owner may delete; a comment owned by
// someone else reports Forbidden, not NotFound.
func (s *commentService) Delete(ctx context.Context, id, callerID uint) error {
	if _, err := s.findOwned(ctx, id, callerID); err != nil {
		return err
	}
	return s.commentRepo.Delete(ctx, id)
}

func (s *commentService) findOwned(ctx context.Context, id, callerID uint) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	if comment.OwnerID != callerID {
		return nil, apperrors.ErrForbidden
	}
	return comment, nil
}
