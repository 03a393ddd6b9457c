package service

import (
	"context"
	"strings"
	"time"

	"artship-backend/internal/model"
	"artship-backend/internal/ports"

	"github.com/google/uuid"
)

const maxCommentLength = 2000

// CommentService : комментарии к артам, включая ответы (один уровень
// вложенности через parent_comment_id).
type CommentService struct {
	commentRepository ports.CommentRepository
	artService        ports.ArtService
	now               func() time.Time
}

func NewCommentService(commentRepo ports.CommentRepository, artService ports.ArtService) *CommentService {
	return &CommentService{
		commentRepository: commentRepo,
		artService:        artService,
		now:               time.Now,
	}
}

func (s *CommentService) AddComment(ctx context.Context, userID string, artID string, text string, parentID *string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxCommentLength {
		return nil, model.ErrValidation
	}

	ok, err := s.artService.HasAccess(ctx, artID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrAccessDenied
	}

	// ответ должен ссылаться на корневой комментарий того же арта
	if parentID != nil {
		parent, err := s.commentRepository.GetByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.ArtID != artID || parent.ParentCommentID != nil {
			return nil, model.ErrValidation
		}
	}

	comment := &model.Comment{
		ID:              uuid.New().String(),
		ArtID:           artID,
		UserID:          userID,
		Text:            text,
		ParentCommentID: parentID,
		CreatedAt:       s.now(),
	}
	if err := s.commentRepository.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) EditComment(ctx context.Context, id string, userID string, text string) error {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxCommentLength {
		return model.ErrValidation
	}
	return s.commentRepository.Update(ctx, id, userID, text)
}

func (s *CommentService) DeleteComment(ctx context.Context, id string, userID string) error {
	return s.commentRepository.Delete(ctx, id, userID)
}

// ListForArt возвращает комментарии арта; rootOnly отфильтровывает
// ответы, их клиент догружает через ListReplies
func (s *CommentService) ListForArt(ctx context.Context, artID string, viewerID string, rootOnly bool) ([]*model.Comment, error) {
	ok, err := s.artService.HasAccess(ctx, artID, viewerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrAccessDenied
	}
	if rootOnly {
		return s.commentRepository.ListRootByArt(ctx, artID)
	}
	return s.commentRepository.ListByArt(ctx, artID)
}

func (s *CommentService) ListForUser(ctx context.Context, userID string) ([]*model.Comment, error) {
	return s.commentRepository.ListByUser(ctx, userID)
}

func (s *CommentService) ListReplies(ctx context.Context, parentID string) ([]*model.Comment, error) {
	return s.commentRepository.ListReplies(ctx, parentID)
}

func (s *CommentService) CountForArt(ctx context.Context, artID string) (int64, error) {
	return s.commentRepository.CountByArt(ctx, artID)
}
