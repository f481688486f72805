package service

import (
	"Showcase/internal/api/config"
	"Showcase/internal/api/dto"
	"Showcase/internal/model"
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/mongo"
	"Showcase/internal/pkg/util"
	"Showcase/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxProcessingErrorRunes = 1000

// TranscodeQueue 转码任务投递
type TranscodeQueue interface {
	Enqueue(ctx context.Context, task *model.TranscodeTask) error
}

// VideoIndex 搜索索引，未配置 ES 时为 nil
type VideoIndex interface {
	IndexVideo(ctx context.Context, video *model.Video) error
	DeleteVideo(ctx context.Context, id uint64) error
	SearchVideoIDs(ctx context.Context, text string, size int) ([]uint64, error)
}

type VideoService interface {
	Submit(ctx context.Context, userID, businessID uint64, req *dto.SubmitVideoDTO) (*dto.VideoDTO, error)
	HandleProcessingResult(ctx context.Context, res *model.ProcessingResult) error
	Delete(ctx context.Context, userID uint64, publicID string) error
	FailStaleProcessing(ctx context.Context, now time.Time) (int, error)
	GetVideo(ctx context.Context, viewerID uint64, publicID string) (*dto.VideoDTO, error)
	SyncIndex(ctx context.Context, ids []uint64) error
}

type videoServiceImpl struct {
	videoRepo    repository.VideoRepo
	businessRepo repository.BusinessRepo
	queue        TranscodeQueue
	index        VideoIndex
	ledger       CounterLedger
	notifier     NotificationService
	worker       config.WorkerConfig
	now          func() time.Time
	trackView    func(ctx context.Context, videoID uint64)
}

func NewVideoService(
	videoRepo repository.VideoRepo,
	businessRepo repository.BusinessRepo,
	queue TranscodeQueue,
	index VideoIndex,
	ledger CounterLedger,
	notifier NotificationService,
	worker config.WorkerConfig,
) VideoService {
	s := &videoServiceImpl{
		videoRepo:    videoRepo,
		businessRepo: businessRepo,
		queue:        queue,
		index:        index,
		ledger:       ledger,
		notifier:     notifier,
		worker:       worker,
		now:          time.Now,
	}
	s.trackView = s.trackViewAsync
	return s
}

// Submit 创建 processing 状态的视频并投递转码任务；投递失败时视频直接置为 failed
func (s *videoServiceImpl) Submit(ctx context.Context, userID, businessID uint64, req *dto.SubmitVideoDTO) (*dto.VideoDTO, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	business, err := s.businessRepo.GetBusinessByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	if business.OwnerUserID != userID {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(req.Title)
	if n := utf8.RuneCountInString(title); n == 0 || n > 255 {
		return nil, invalid("title", "length must be between 1 and 255 characters")
	}
	sourceURL := strings.TrimSpace(req.SourceURL)
	if sourceURL == "" {
		return nil, invalid("source_url", "required")
	}
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	now := s.now().UTC()
	video := &model.Video{
		PublicID:    uuid.NewString(),
		BusinessID:  business.ID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		SourceURL:   sourceURL,
		IsPublic:    isPublic,
		Status:      model.VideoStatusProcessing,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = s.videoRepo.CreateVideo(ctx, video, util.NormalizeTags(req.Hashtags)); err != nil {
		return nil, err
	}

	task := &model.TranscodeTask{
		VideoID:        video.ID,
		PublicID:       video.PublicID,
		SourceURL:      video.SourceURL,
		MaxAttempts:    s.worker.MaxAttempts,
		TimeoutSeconds: int64(s.worker.AttemptTimeout / time.Second),
	}
	if qErr := s.queue.Enqueue(ctx, task); qErr != nil {
		log.ErrorContext(ctx, "enqueue transcode task failed", "video_id", video.ID, "err", qErr)
		reason := truncateRunes(fmt.Sprintf("%s: %v", ErrProcessing.Error(), qErr), maxProcessingErrorRunes)
		ok, tErr := s.videoRepo.TransitionStatus(ctx, video.ID, model.VideoStatusProcessing, model.VideoStatusFailed,
			map[string]any{"processing_error": reason})
		if tErr != nil {
			return nil, tErr
		}
		if ok {
			video.Status = model.VideoStatusFailed
			video.ProcessingError = reason
		}
	}
	return toVideoDTO(video), nil
}

// HandleProcessingResult 只有 processing 能迁移；终态或已删除的视频重复回调直接忽略
func (s *videoServiceImpl) HandleProcessingResult(ctx context.Context, res *model.ProcessingResult) error {
	if res.Outcome != model.OutcomeSuccess && res.Outcome != model.OutcomeFailure {
		return invalid("outcome", "must be success or failure")
	}
	if err := validateMedia(res.Media); err != nil {
		return err
	}
	video, err := s.findForCallback(ctx, res)
	if err != nil {
		return err
	}
	if video.IsDeleted || video.Status.IsTerminal() {
		log.InfoContext(ctx, "ignore processing result for settled video",
			"video_id", video.ID, "status", video.Status, "deleted", video.IsDeleted)
		return nil
	}

	to := model.VideoStatusFailed
	fields := map[string]any{}
	switch {
	case res.Outcome == model.OutcomeSuccess && res.Media != nil && strings.TrimSpace(res.Media.VideoURL) != "":
		to = model.VideoStatusPublished
		fields["video_url"] = strings.TrimSpace(res.Media.VideoURL)
		fields["thumbnail_url"] = res.Media.ThumbnailURL
		fields["duration"] = res.Media.Duration
		fields["format"] = res.Media.Format
		fields["resolution"] = res.Media.Resolution
		fields["processing_error"] = ""
	case res.Outcome == model.OutcomeSuccess:
		fields["processing_error"] = consts.MissingVideoURLReason
	default:
		reason := strings.TrimSpace(res.Error)
		if reason == "" {
			reason = "processing failed"
		}
		fields["processing_error"] = truncateRunes(reason, maxProcessingErrorRunes)
	}

	ok, err := s.videoRepo.TransitionStatus(ctx, video.ID, model.VideoStatusProcessing, to, fields)
	if err != nil {
		return err
	}
	if !ok {
		log.InfoContext(ctx, "processing result lost the race, video already settled", "video_id", video.ID)
		return nil
	}
	s.afterSettled(ctx, video.ID, to)
	return nil
}

// validateMedia 与 videos 表的列宽一致，超长直接拒绝，避免写库失败后反复重试
func validateMedia(m *model.MediaMeta) error {
	if m == nil {
		return nil
	}
	switch {
	case utf8.RuneCountInString(strings.TrimSpace(m.VideoURL)) > consts.MaxMediaURLLen:
		return invalid("media.video_url", "must be at most 512 characters")
	case utf8.RuneCountInString(m.ThumbnailURL) > consts.MaxMediaURLLen:
		return invalid("media.thumbnail_url", "must be at most 512 characters")
	case utf8.RuneCountInString(m.Format) > consts.MaxMediaAttrLen:
		return invalid("media.format", "must be at most 32 characters")
	case utf8.RuneCountInString(m.Resolution) > consts.MaxMediaAttrLen:
		return invalid("media.resolution", "must be at most 32 characters")
	case m.Duration < 0:
		return invalid("media.duration", "must not be negative")
	}
	return nil
}

func (s *videoServiceImpl) findForCallback(ctx context.Context, res *model.ProcessingResult) (*model.Video, error) {
	var (
		video *model.Video
		err   error
	)
	switch {
	case res.VideoID > 0:
		video, err = s.videoRepo.GetVideoByID(ctx, res.VideoID)
	case res.PublicID != "":
		video, err = s.videoRepo.GetVideoByPublicID(ctx, res.PublicID)
	default:
		return nil, invalid("video_id", "video_id or public_id is required")
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return video, nil
}

// afterSettled 迁移成功后的索引与通知，失败只记录日志
func (s *videoServiceImpl) afterSettled(ctx context.Context, videoID uint64, to model.VideoStatus) {
	video, err := s.videoRepo.GetVideoByID(ctx, videoID)
	if err != nil {
		log.WarnContext(ctx, "reload settled video failed", "video_id", videoID, "err", err)
		return
	}
	kind := mongo.NotifyVideoFailed
	if to == model.VideoStatusPublished {
		kind = mongo.NotifyVideoPublished
		if s.index != nil {
			if err = s.index.IndexVideo(ctx, video); err != nil {
				log.WarnContext(ctx, "index published video failed", "video_id", videoID, "err", err)
			}
		}
	}
	business, err := s.businessRepo.GetBusinessByID(ctx, video.BusinessID)
	if err != nil {
		return
	}
	s.notifier.Notify(ctx, NotificationEvent{
		ReceiverID: business.OwnerUserID,
		Kind:       kind,
		Target:     model.VideoTarget{VideoID: video.ID},
		Content:    video.ProcessingError,
		Payload:    map[string]any{"public_id": video.PublicID, "title": video.Title},
	})
}

// Delete 店主可在任意状态下软删除，评论和点赞保留
func (s *videoServiceImpl) Delete(ctx context.Context, userID uint64, publicID string) error {
	video, err := loadActiveVideo(ctx, s.videoRepo, publicID)
	if err != nil {
		return err
	}
	if userID == 0 || video.Business.ID == 0 || video.Business.OwnerUserID != userID {
		return ErrForbidden
	}
	if err = s.videoRepo.SoftDeleteVideo(ctx, video.ID); err != nil {
		return err
	}
	if s.index != nil {
		if err = s.index.DeleteVideo(ctx, video.ID); err != nil {
			log.WarnContext(ctx, "remove video from index failed", "video_id", video.ID, "err", err)
		}
	}
	return nil
}

// FailStaleProcessing 超过 max_attempts × attempt_timeout 仍在 processing 的视频置为 failed
func (s *videoServiceImpl) FailStaleProcessing(ctx context.Context, now time.Time) (int, error) {
	budget := time.Duration(s.worker.MaxAttempts) * s.worker.AttemptTimeout
	cutoff := now.UTC().Add(-budget)

	total := 0
	for {
		videos, err := s.videoRepo.ListStaleProcessing(ctx, cutoff, consts.StaleSweepBatch)
		if err != nil {
			return total, err
		}
		moved := 0
		for _, v := range videos {
			ok, err := s.videoRepo.TransitionStatus(ctx, v.ID, model.VideoStatusProcessing, model.VideoStatusFailed,
				map[string]any{"processing_error": consts.ProcessingTimeoutReason})
			if err != nil {
				return total, err
			}
			if ok {
				moved++
				s.afterSettled(ctx, v.ID, model.VideoStatusFailed)
			}
		}
		total += moved
		if len(videos) < consts.StaleSweepBatch || moved == 0 {
			return total, nil
		}
	}
}

// GetVideo 非公开或未发布的视频只有店主可见；已发布视频记一次播放
func (s *videoServiceImpl) GetVideo(ctx context.Context, viewerID uint64, publicID string) (*dto.VideoDTO, error) {
	video, err := loadVisibleVideo(ctx, s.videoRepo, viewerID, publicID)
	if err != nil {
		return nil, err
	}
	if video.Status == model.VideoStatusPublished {
		s.trackView(ctx, video.ID)
	}
	return toVideoDTO(video), nil
}

func (s *videoServiceImpl) trackViewAsync(ctx context.Context, videoID uint64) {
	bg := context.WithoutCancel(ctx)
	go func() {
		if err := s.ledger.Increment(bg, videoID, model.CounterViewCount, 1); err != nil {
			log.WarnContext(bg, "track view failed", "video_id", videoID, "err", err)
		}
	}()
}

// SyncIndex 按数据库最新状态刷新索引：已发布的写入，其余删除
func (s *videoServiceImpl) SyncIndex(ctx context.Context, ids []uint64) error {
	if s.index == nil || len(ids) == 0 {
		return nil
	}
	videos, err := s.videoRepo.GetVideosByIDs(ctx, ids)
	if err != nil {
		return err
	}
	var errs []error
	for _, v := range videos {
		if v.Status == model.VideoStatusPublished && !v.IsDeleted {
			err = s.index.IndexVideo(ctx, v)
		} else {
			err = s.index.DeleteVideo(ctx, v.ID)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("video %d: %w", v.ID, err))
		}
	}
	return errors.Join(errs...)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
