package es

import (
	"Showcase/internal/model"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

type VideoRepo interface {
	EnsureIndex(ctx context.Context) error
	IndexVideo(ctx context.Context, video *model.Video) error
	DeleteVideo(ctx context.Context, id uint64) error
	SearchVideoIDs(ctx context.Context, text string, size int) ([]uint64, error)
}

type VideoRepoImpl struct {
	client *elasticsearch.TypedClient
	index  string
	now    func() time.Time
}

func NewVideoRepo(client *elasticsearch.TypedClient, index string) VideoRepo {
	return &VideoRepoImpl{client: client, index: index, now: time.Now}
}

// EnsureIndex 索引不存在时按 mapping 创建，wildcard 字段支持不区分大小写的子串匹配
func (s *VideoRepoImpl) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.index).Do(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = s.client.Indices.Create(s.index).
		Mappings(&types.TypeMapping{
			Properties: map[string]types.Property{
				"id":            types.NewUnsignedLongNumberProperty(),
				"public_id":     types.NewKeywordProperty(),
				"business_id":   types.NewUnsignedLongNumberProperty(),
				"title":         types.NewWildcardProperty(),
				"description":   types.NewWildcardProperty(),
				"hashtags":      types.NewKeywordProperty(),
				"status":        types.NewKeywordProperty(),
				"is_public":     types.NewBooleanProperty(),
				"view_count":    types.NewLongNumberProperty(),
				"like_count":    types.NewLongNumberProperty(),
				"comment_count": types.NewLongNumberProperty(),
				"share_count":   types.NewLongNumberProperty(),
				"created_at":    types.NewDateProperty(),
			},
		}).
		Do(ctx)
	return err
}

// IndexVideo 外部版本号取当前纳秒时间，旧的写入不会覆盖新的
func (s *VideoRepoImpl) IndexVideo(ctx context.Context, video *model.Video) error {
	doc := &VideoES{
		ID:           video.ID,
		PublicID:     video.PublicID,
		BusinessID:   video.BusinessID,
		Title:        video.Title,
		Description:  video.Description,
		Hashtags:     video.TagNames(),
		Status:       string(video.Status),
		IsPublic:     video.IsPublic,
		ViewCount:    video.ViewCount,
		LikeCount:    video.LikeCount,
		CommentCount: video.CommentCount,
		ShareCount:   video.ShareCount,
		CreatedAt:    video.CreatedAt,
	}

	_, err := s.client.Index(s.index).
		Id(strconv.FormatUint(video.ID, 10)).
		Document(doc).
		Version(strconv.FormatInt(s.now().UnixNano(), 10)).
		VersionType(versiontype.External).
		Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == ConflictCode {
			return nil
		}
		return err
	}
	return nil
}

// DeleteVideo 文档不存在视为成功
func (s *VideoRepoImpl) DeleteVideo(ctx context.Context, id uint64) error {
	_, err := s.client.Delete(s.index, strconv.FormatUint(id, 10)).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}
	return nil
}

// SearchVideoIDs 标题、描述、标签子串匹配，返回按 view_count、id 倒序的 id
func (s *VideoRepoImpl) SearchVideoIDs(ctx context.Context, text string, size int) ([]uint64, error) {
	pattern := "*" + escapeWildcard(strings.ToLower(text)) + "*"
	caseInsensitive := true
	wildcard := func(field string) types.Query {
		return types.Query{Wildcard: map[string]types.WildcardQuery{
			field: {Value: &pattern, CaseInsensitive: &caseInsensitive},
		}}
	}

	resp, err := s.client.Search().
		Index(s.index).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Filter: []types.Query{
					{Term: map[string]types.TermQuery{"status": {Value: string(model.VideoStatusPublished)}}},
					{Term: map[string]types.TermQuery{"is_public": {Value: true}}},
				},
				Should:             []types.Query{wildcard("title"), wildcard("description"), wildcard("hashtags")},
				MinimumShouldMatch: 1,
			},
		}).
		Sort(
			types.SortOptions{SortOptions: map[string]types.FieldSort{"view_count": {Order: &sortorder.Desc}}},
			types.SortOptions{SortOptions: map[string]types.FieldSort{"id": {Order: &sortorder.Desc}}},
		).
		Source_(&types.SourceFilter{Includes: []string{"id"}}).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var doc struct {
			ID uint64 `json:"id"`
		}
		if err = json.Unmarshal(hit.Source_, &doc); err != nil || doc.ID == 0 {
			continue
		}
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

func escapeWildcard(s string) string {
	return strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`).Replace(s)
}
