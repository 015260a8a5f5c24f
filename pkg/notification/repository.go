package notification

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

func (r repository) findMemberIds(ctx context.Context, groupId uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&model.GroupMember{}).
		Where("group_id = ?", groupId).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r repository) findLatestGroupEvents(ctx context.Context, userId uint, limit int) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Joins("JOIN group_members ON group_members.group_id = events.group_id").
		Where("group_members.user_id = ?", userId).
		Preload("Group").
		Order("events.created_at desc").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r repository) findLatestGroupMessages(ctx context.Context, userId uint, limit int) ([]model.GroupMessage, error) {
	var messages []model.GroupMessage
	err := r.db.WithContext(ctx).
		Joins("JOIN group_members ON group_members.group_id = group_messages.group_id").
		Where("group_members.user_id = ?", userId).
		Preload("User").
		Preload("Group").
		Order("group_messages.created_at desc").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}
