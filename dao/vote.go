package dao

import (
	"Sirius/models"
	"Sirius/types"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteState 一个 (user, meme) 的评分状态
type VoteState int

const (
	NoVote VoteState = iota
	Liked
	Disliked
)

func stateOf(v models.VoteValue) VoteState {
	if v == models.VoteLike {
		return Liked
	}
	return Disliked
}

func (s VoteState) String() string {
	switch s {
	case Liked:
		return "liked"
	case Disliked:
		return "disliked"
	default:
		return "no_vote"
	}
}

type VoteDAO struct {
	Repo[models.Vote]
}

func NewVoteDAO(db *gorm.DB) *VoteDAO {
	return &VoteDAO{Repo: NewRepo[models.Vote](db)}
}

// Toggle 在一个事务里读取现有评分并插入/翻转/撤销：
// 相同 mark 再投一次撤销，相反 mark 原地翻转。
// 同一用户的投票锁在 users 行上串行，不同用户互不影响。
func (d *VoteDAO) Toggle(ctx context.Context, userID, memeID int64, mark models.VoteValue) (VoteState, error) {
	var state VoteState
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").Where("id = ?", userID).Take(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		var memeCount int64
		if err := tx.Model(&models.Meme{}).Where("id = ?", memeID).Count(&memeCount).Error; err != nil {
			return err
		}
		if memeCount == 0 {
			return types.ErrMemeNotFound
		}

		var existing []models.Vote
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND meme_id = ?", userID, memeID).Limit(1).Find(&existing).Error
		if err != nil {
			return err
		}

		switch {
		case len(existing) == 0:
			vote := models.Vote{UserID: userID, MemeID: memeID, Value: mark}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			state = stateOf(mark)
		case existing[0].Value == mark:
			if err := tx.Delete(&models.Vote{}, existing[0].ID).Error; err != nil {
				return err
			}
			state = NoVote
		default:
			err := tx.Model(&models.Vote{}).Where("id = ?", existing[0].ID).
				Update("value", string(mark)).Error
			if err != nil {
				return err
			}
			state = stateOf(mark)
		}
		return nil
	})
	if err != nil {
		return NoVote, err
	}
	return state, nil
}

// State 当前评分状态
func (d *VoteDAO) State(ctx context.Context, userID, memeID int64) (VoteState, error) {
	var existing []models.Vote
	err := d.Db.WithContext(ctx).
		Where("user_id = ? AND meme_id = ?", userID, memeID).Limit(1).Find(&existing).Error
	if err != nil {
		return NoVote, err
	}
	if len(existing) == 0 {
		return NoVote, nil
	}
	return stateOf(existing[0].Value), nil
}

// Count 某个 (user, meme) 的评分行数，唯一约束下只会是 0 或 1
func (d *VoteDAO) Count(ctx context.Context, userID, memeID int64) (int64, error) {
	var n int64
	err := d.Db.WithContext(ctx).Model(&models.Vote{}).
		Where("user_id = ? AND meme_id = ?", userID, memeID).Count(&n).Error
	return n, err
}
