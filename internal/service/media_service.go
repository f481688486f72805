package service

import (
	"Showcase/internal/api/dto"
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/util"
	"bytes"
	"context"
	"fmt"
	"io"
	log "log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ObjectStorage 对象存储，返回可公开访问的地址
type ObjectStorage interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

type MediaService interface {
	Upload(ctx context.Context, userID uint64, reader io.Reader, size int64) (*dto.MediaUploadDTO, error)
}

type mediaServiceImpl struct {
	storage ObjectStorage
	now     func() time.Time
}

func NewMediaService(storage ObjectStorage) MediaService {
	return &mediaServiceImpl{storage: storage, now: time.Now}
}

// Upload 只接受图片和视频，图片额外生成 480px 宽的缩略图
func (s *mediaServiceImpl) Upload(ctx context.Context, userID uint64, reader io.Reader, size int64) (*dto.MediaUploadDTO, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	if s.storage == nil {
		return nil, ErrStorage
	}

	head := make([]byte, 3072)
	n, err := io.ReadFull(reader, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	head = head[:n]
	mtype := mimetype.Detect(head)
	mime := mtype.String()
	isImage := strings.HasPrefix(mime, consts.MimePrefixImage)
	if !isImage && !strings.HasPrefix(mime, consts.MimePrefixVideo) {
		return nil, ErrFileNotSupported
	}

	prefix := s.now().Format("2006/01/02/") + uuid.NewString()
	body := io.MultiReader(bytes.NewReader(head), reader)

	var raw []byte
	if isImage {
		// 图片需要再读一遍生成缩略图
		if raw, err = io.ReadAll(body); err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	url, err := s.storage.Put(ctx, prefix+mtype.Extension(), body, size, mime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	out := &dto.MediaUploadDTO{URL: url, Mime: mime, Size: size}

	if isImage {
		thumb, tErr := util.MakeThumbnail(bytes.NewReader(raw), consts.ThumbnailWidth)
		if tErr != nil {
			log.WarnContext(ctx, "make thumbnail failed", "err", tErr)
			return out, nil
		}
		thumbURL, pErr := s.storage.Put(ctx, "thumb/"+prefix+".jpg", bytes.NewReader(thumb), int64(len(thumb)), "image/jpeg")
		if pErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, pErr)
		}
		out.ThumbnailURL = thumbURL
	}
	return out, nil
}
