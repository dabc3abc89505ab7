package types

import "io"

// MemeRead 聚合视图，likes/dislikes 每次由 meme_votes 计算
type MemeRead struct {
	ID       int64  `json:"id"`
	Caption  string `json:"caption"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
}

// MemeDownload 下载描述，只含对象存储 key
type MemeDownload struct {
	StorageKey string `json:"storage_key"`
}

// MemeFile 下载结果，调用方负责关闭 Body
type MemeFile struct {
	Filename    string
	ContentType string
	Body        io.ReadCloser
}

type MemeAfterCreate struct {
	ID int64 `json:"id"`
}

type ListMemesRequest struct {
	CartType string `form:"cart_type" binding:"required"`
}

type MarkMemeRequest struct {
	Mark string `form:"mark" binding:"required"`
}

// MemeCreatedEvent / MemeRatedEvent 提交后投递的领域事件
type MemeCreatedEvent struct {
	MemeID     int64  `json:"meme_id"`
	UserID     int64  `json:"user_id"`
	StorageKey string `json:"storage_key"`
}

type MemeRatedEvent struct {
	MemeID   int64  `json:"meme_id"`
	UserID   int64  `json:"user_id"`
	Mark     string `json:"mark"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
}

const (
	EventTagMemeCreated = "meme.created"
	EventTagMemeRated   = "meme.rated"
)
