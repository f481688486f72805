package dto

// MediaUploadDTO 上传结果
type MediaUploadDTO struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Mime         string `json:"mime"`
	Size         int64  `json:"size"`
}
