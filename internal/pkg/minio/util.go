package minio

import (
	"Showcase/internal/api/config"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Storage 单桶对象存储，返回外网可访问的地址
type Storage struct {
	client *minio.Client
	bucket string
	base   string
}

func NewStorage(client *minio.Client, cfg config.MinIOConfig) *Storage {
	return &Storage{client: client, bucket: cfg.Bucket, base: publicBase(cfg)}
}

// Put 上传文件并返回公共 URL
func (s *Storage) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}
	if size <= 0 {
		size = -1
	}
	info, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return s.PublicURL(info.Key), nil
}

// Delete 删除 MinIO 中的文件
func (s *Storage) Delete(ctx context.Context, objectName string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *Storage) PublicURL(objectName string) string {
	return s.base + "/" + strings.TrimLeft(objectName, "/")
}

// publicBase 外网地址优先，未配置时退回内网地址
func publicBase(cfg config.MinIOConfig) string {
	endpoint, useSSL := cfg.ExternalEndpoint, cfg.ExternalUseSSL
	if endpoint == "" {
		endpoint, useSSL = cfg.InternalEndpoint, cfg.InternalUseSSL
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: endpoint, Path: "/" + cfg.Bucket}
	return u.String()
}
