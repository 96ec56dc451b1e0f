package dao

import (
	"context"
	"time"

	"NFTMarketEngine/src/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// InsertEvent appends one notification record. Callers run it inside the
// transaction of the transition it describes, which is what makes the stream
// exactly-once.
func (dao *Dao) InsertEvent(ctx context.Context, event *model.MarketEvent) error {
	event.EventId = uuid.NewString()
	event.CreateTime = time.Now().UnixMilli()
	err := dao.DB.WithContext(ctx).Table(model.MarketEventTableName()).Create(event).Error
	if err != nil {
		return errors.Wrap(err, "failed on insert market event")
	}
	return nil
}

func (dao *Dao) ListEvents(ctx context.Context, eventType string, page, pageSize int) ([]model.MarketEvent, int64, error) {
	var events []model.MarketEvent
	var count int64
	tx := dao.DB.WithContext(ctx).Table(model.MarketEventTableName())
	if eventType != "" {
		tx = tx.Where("type = ?", eventType)
	}
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed on count market events")
	}
	err := tx.Order("id desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed on list market events")
	}
	return events, count, nil
}
