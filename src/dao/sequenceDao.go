package dao

import (
	"context"

	"NFTMarketEngine/src/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Sequence names owned by the engine.
const (
	SeqListing = "listing_id"
	SeqAuction = "auction_id"
)

// NextId allocates the next value of a monotonic sequence. Must run inside
// the operation's transaction so an aborted operation burns no id gaps only
// when the whole call rolls back together.
func (dao *Dao) NextId(ctx context.Context, name string) (int64, error) {
	var seq model.IdSequence
	err := dao.DB.WithContext(ctx).Table(model.IdSequenceTableName()).
		Where("name = ?", name).
		First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = model.IdSequence{Name: name, Next: 1}
		if err := dao.DB.WithContext(ctx).Table(model.IdSequenceTableName()).Create(&seq).Error; err != nil {
			return 0, errors.Wrap(err, "failed on create id sequence")
		}
	} else if err != nil {
		return 0, errors.Wrap(err, "failed on get id sequence")
	}

	id := seq.Next
	err = dao.DB.WithContext(ctx).Table(model.IdSequenceTableName()).
		Where("name = ?", name).
		Update("next", id+1).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed on advance id sequence")
	}
	return id, nil
}
