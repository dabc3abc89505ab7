package models

import "time"

type VoteValue string

const (
	VoteLike    VoteValue = "like"
	VoteDislike VoteValue = "dislike"
)

func (v VoteValue) Valid() bool {
	return v == VoteLike || v == VoteDislike
}

// Vote 评分记录，对应表 meme_votes
// 唯一键: user_id + meme_id，同一用户对同一 meme 最多一条
type Vote struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:uk_user_meme_vote,priority:1" json:"user_id"`
	MemeID    int64     `gorm:"column:meme_id;not null;uniqueIndex:uk_user_meme_vote,priority:2;index:idx_vote_meme_id" json:"meme_id"`
	Value     VoteValue `gorm:"column:value;type:varchar(16);not null" json:"value"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Vote) TableName() string { return "meme_votes" }
