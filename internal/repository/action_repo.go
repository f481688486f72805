package repository

import (
	"Showcase/internal/model"
	"context"

	"gorm.io/gorm"
)

type ActionRepo interface {
	CreateLike(ctx context.Context, like *model.VideoLike) error
	DeleteLike(ctx context.Context, videoID, userID uint64) (int64, error)
	CheckLikeExists(ctx context.Context, videoID, userID uint64) (bool, error)

	CreateComment(ctx context.Context, comment *model.VideoComment) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.VideoComment, error)
	SoftDeleteComment(ctx context.Context, commentID uint64) (int64, error)
	GetRootComments(ctx context.Context, videoID, cursorID uint64, limit int) ([]*model.VideoComment, error)
	GetReplies(ctx context.Context, parentID, afterID uint64, limit int) ([]*model.VideoComment, error)
	CountReplies(ctx context.Context, parentIDs []uint64) (map[uint64]int64, error)

	CreateCommentLike(ctx context.Context, cl *model.CommentLike) error
	DeleteCommentLike(ctx context.Context, commentID, userID uint64) (int64, error)
	CheckCommentLikeExists(ctx context.Context, commentID, userID uint64) (bool, error)
	GetLikedCommentIDs(ctx context.Context, userID uint64, commentIDs []uint64) (map[uint64]bool, error)
}

type ActionRepoImpl struct {
	db *gorm.DB
}

func NewActionRepo(db *gorm.DB) ActionRepo {
	return &ActionRepoImpl{db: db}
}

// CreateLike 主键 (video_id, user_id) 冲突即重复点赞
func (s *ActionRepoImpl) CreateLike(ctx context.Context, like *model.VideoLike) error {
	return dbFrom(ctx, s.db).Create(like).Error
}

func (s *ActionRepoImpl) DeleteLike(ctx context.Context, videoID, userID uint64) (int64, error) {
	res := dbFrom(ctx, s.db).
		Where("video_id = ? AND user_id = ?", videoID, userID).
		Delete(&model.VideoLike{})
	return res.RowsAffected, res.Error
}

func (s *ActionRepoImpl) CheckLikeExists(ctx context.Context, videoID, userID uint64) (bool, error) {
	var count int64
	err := dbFrom(ctx, s.db).Model(&model.VideoLike{}).
		Where("video_id = ? AND user_id = ?", videoID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *ActionRepoImpl) CreateComment(ctx context.Context, comment *model.VideoComment) error {
	return dbFrom(ctx, s.db).Create(comment).Error
}

// GetCommentByID 已删除的评论视为不存在
func (s *ActionRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.VideoComment, error) {
	var comment model.VideoComment
	err := dbFrom(ctx, s.db).
		Where("id = ? AND is_deleted = ?", commentID, false).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// SoftDeleteComment 只删本条，回复保留 parent_id
func (s *ActionRepoImpl) SoftDeleteComment(ctx context.Context, commentID uint64) (int64, error) {
	res := dbFrom(ctx, s.db).Model(&model.VideoComment{}).
		Where("id = ? AND is_deleted = ?", commentID, false).
		Update("is_deleted", true)
	return res.RowsAffected, res.Error
}

// GetRootComments 一级评论，按 id 倒序；已删除但仍有回复的保留用于占位
func (s *ActionRepoImpl) GetRootComments(ctx context.Context, videoID, cursorID uint64, limit int) ([]*model.VideoComment, error) {
	query := dbFrom(ctx, s.db).
		Where("video_id = ? AND parent_id IS NULL", videoID).
		Where("is_deleted = ? OR EXISTS (SELECT 1 FROM video_comments r WHERE r.parent_id = video_comments.id AND r.is_deleted = ?)", false, false)
	if cursorID > 0 {
		query = query.Where("id < ?", cursorID)
	}
	var comments []*model.VideoComment
	err := query.Order("id DESC").Limit(limit).Find(&comments).Error
	return comments, err
}

// GetReplies 直接回复，按 id 正序
func (s *ActionRepoImpl) GetReplies(ctx context.Context, parentID, afterID uint64, limit int) ([]*model.VideoComment, error) {
	var comments []*model.VideoComment
	err := dbFrom(ctx, s.db).
		Where("parent_id = ? AND id > ? AND is_deleted = ?", parentID, afterID, false).
		Order("id ASC").
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (s *ActionRepoImpl) CountReplies(ctx context.Context, parentIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(parentIDs))
	if len(parentIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		ParentID uint64
		Total    int64
	}
	err := dbFrom(ctx, s.db).Model(&model.VideoComment{}).
		Select("parent_id, COUNT(*) AS total").
		Where("parent_id IN ? AND is_deleted = ?", parentIDs, false).
		Group("parent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.ParentID] = r.Total
	}
	return counts, nil
}

func (s *ActionRepoImpl) CreateCommentLike(ctx context.Context, cl *model.CommentLike) error {
	return dbFrom(ctx, s.db).Create(cl).Error
}

func (s *ActionRepoImpl) DeleteCommentLike(ctx context.Context, commentID, userID uint64) (int64, error) {
	res := dbFrom(ctx, s.db).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&model.CommentLike{})
	return res.RowsAffected, res.Error
}

func (s *ActionRepoImpl) CheckCommentLikeExists(ctx context.Context, commentID, userID uint64) (bool, error) {
	var count int64
	err := dbFrom(ctx, s.db).Model(&model.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count).Error
	return count > 0, err
}

// GetLikedCommentIDs 批量查询用户点过赞的评论
func (s *ActionRepoImpl) GetLikedCommentIDs(ctx context.Context, userID uint64, commentIDs []uint64) (map[uint64]bool, error) {
	liked := make(map[uint64]bool)
	if userID == 0 || len(commentIDs) == 0 {
		return liked, nil
	}
	var ids []uint64
	err := dbFrom(ctx, s.db).Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
