package message

import (
	"context"

	"github.com/gatherly/gatherly/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db: db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) create(ctx context.Context, message *model.GroupMessage) error {
	// only use ctx for values (logging) and not cancellation signals on cud operations for now. ctx cancellation can lead to rollbacks which we should decide individually.
	detached := context.WithoutCancel(ctx)
	err := r.db.WithContext(detached).Create(&message).Error
	if err != nil {
		return err
	}

	// the re-read stays on the detached context so a cancellation between the
	// two statements can't report an error for a message that was persisted
	return r.db.WithContext(detached).
		Preload("User").
		First(&message, message.ID).Error
}

func (r repository) findByGroup(ctx context.Context, groupId uint) ([]model.GroupMessage, error) {
	var messages []model.GroupMessage
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("group_id = ?", groupId).
		Order("created_at asc").
		Find(&messages).Error
	return messages, err
}
