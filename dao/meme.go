package dao

import (
	"Sirius/models"
	"Sirius/types"
	"context"
	"fmt"
	"math/rand/v2"

	"gorm.io/gorm"
)

type MemeDAO struct {
	Repo[models.Meme]
}

func NewMemeDAO(db *gorm.DB) *MemeDAO {
	return &MemeDAO{Repo: NewRepo[models.Meme](db)}
}

// CreateWithCart 写入 meme 并放进 general 购物车，同一事务
func (d *MemeDAO) CreateWithCart(ctx context.Context, meme *models.Meme) error {
	return d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(meme).Error; err != nil {
			return err
		}
		entry := models.CartEntry{UserID: meme.UserID, MemeID: meme.ID, CartType: models.CartGeneral}
		return tx.Create(&entry).Error
	})
}

// aggregate likes/dislikes 由 meme_votes 现算，不落库
func (d *MemeDAO) aggregate(ctx context.Context) *gorm.DB {
	return d.Db.WithContext(ctx).
		Table("memes AS m").
		Select("m.id AS id, m.caption AS caption, "+
			"COUNT(DISTINCT CASE WHEN v.value = ? THEN v.id END) AS likes, "+
			"COUNT(DISTINCT CASE WHEN v.value = ? THEN v.id END) AS dislikes",
			string(models.VoteLike), string(models.VoteDislike)).
		Joins("LEFT JOIN meme_votes AS v ON v.meme_id = m.id").
		Group("m.id, m.caption")
}

func joinCart(q *gorm.DB, cartType models.CartType) *gorm.DB {
	return q.Joins("JOIN meme_carts AS c ON c.meme_id = m.id AND c.cart_type = ?", string(cartType))
}

func (d *MemeDAO) inCart(ctx context.Context, cartType models.CartType) *gorm.DB {
	return joinCart(d.aggregate(ctx), cartType)
}

func first(rows []types.MemeRead) *types.MemeRead {
	if len(rows) == 0 {
		return nil
	}
	return &rows[0]
}

// GetAggregate 不存在返回 nil, nil
func (d *MemeDAO) GetAggregate(ctx context.Context, memeID int64) (*types.MemeRead, error) {
	var rows []types.MemeRead
	if err := d.aggregate(ctx).Where("m.id = ?", memeID).Limit(1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("get aggregate %d: %w", memeID, err)
	}
	return first(rows), nil
}

// GetDownload 不存在返回 nil, nil
func (d *MemeDAO) GetDownload(ctx context.Context, memeID int64) (*types.MemeDownload, error) {
	var rows []types.MemeDownload
	err := d.Db.WithContext(ctx).Model(&models.Meme{}).
		Select("storage_key").Where("id = ?", memeID).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get download %d: %w", memeID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// ListByCart personal 购物车按 userID 过滤；空切片表示购物车为空
func (d *MemeDAO) ListByCart(ctx context.Context, cartType models.CartType, userID int64) ([]types.MemeRead, error) {
	q := d.inCart(ctx, cartType)
	if cartType == models.CartPersonal {
		q = q.Where("c.user_id = ?", userID)
	}

	rows := make([]types.MemeRead, 0)
	if err := q.Order("m.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list cart %s: %w", cartType, err)
	}
	return rows, nil
}

// PickRandom 先计数再随机偏移，避免依赖方言的 RAND()/RANDOM()
func (d *MemeDAO) PickRandom(ctx context.Context) (*types.MemeRead, error) {
	// 与下面的偏移查询同一个 join，按 meme 去重计数
	var total int64
	err := joinCart(d.Db.WithContext(ctx).Table("memes AS m"), models.CartGeneral).
		Distinct("m.id").Count(&total).Error
	if err != nil {
		return nil, fmt.Errorf("count general cart: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	var rows []types.MemeRead
	err = d.inCart(ctx, models.CartGeneral).
		Order("m.id ASC").Offset(int(rand.Int64N(total))).Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("pick random: %w", err)
	}
	// 计数之后有 meme 被删除时偏移可能落空，退回第一条
	if len(rows) == 0 {
		err = d.inCart(ctx, models.CartGeneral).Order("m.id ASC").Limit(1).Scan(&rows).Error
		if err != nil {
			return nil, fmt.Errorf("pick random: %w", err)
		}
	}
	return first(rows), nil
}

// PickTrendy likes 最多的 general meme，至少一个 like；并列取最小 id
func (d *MemeDAO) PickTrendy(ctx context.Context) (*types.MemeRead, error) {
	var rows []types.MemeRead
	err := d.inCart(ctx, models.CartGeneral).
		Having("COUNT(DISTINCT CASE WHEN v.value = ? THEN v.id END) > 0", string(models.VoteLike)).
		Order("likes DESC, m.id ASC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("pick trendy: %w", err)
	}
	return first(rows), nil
}
