package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/pkg/model"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{
		db: db,
	}
}

func (r repository) find(ctx context.Context, id uint) (*model.Group, error) {
	var group *model.Group
	err := r.db.
		WithContext(ctx).
		Preload("Owner").
		First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("group %d doesn't exist", id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find group: %v", err)
	}

	return group, nil
}

func (r repository) findAll(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.
		WithContext(ctx).
		Preload("Owner").
		Order("created_at desc").
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all groups: %v", err)
	}
	return groups, nil
}

// findByMember returns the groups the user has a membership row in, with each
// group's events ordered soonest first.
func (r repository) findByMember(ctx context.Context, userId uint) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.
		WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB {
			return db.Order("events.date asc")
		}).
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userId).
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find groups for user %d: %v", userId, err)
	}
	return groups, nil
}

// create inserts the group and the owner's membership row in one transaction.
// The owner is always a member.
func (r repository) create(ctx context.Context, group *model.Group) error {
	// only use ctx for values (logging) and not cancellation signals on cud operations for now. ctx
	// cancellation can lead to rollbacks which we should decide individually.
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		member := &model.GroupMember{UserID: group.OwnerID, GroupID: group.ID}
		return tx.Create(&member).Error
	})
}

// addMember is idempotent: joining a group twice leaves a single membership
// row and reports success.
func (r repository) addMember(ctx context.Context, groupId uint, userId uint) error {
	ctx = context.WithoutCancel(ctx)

	member := &model.GroupMember{UserID: userId, GroupID: groupId}
	err := r.db.WithContext(ctx).Create(&member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// removeMember is idempotent: leaving a group the user never joined is a
// no-op.
func (r repository) removeMember(ctx context.Context, groupId uint, userId uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.
		WithContext(ctx).
		Where("user_id = ? AND group_id = ?", userId, groupId).
		Delete(&model.GroupMember{}).Error
}

func (r repository) countMembers(ctx context.Context, groupId uint) (int64, error) {
	var count int64
	err := r.db.
		WithContext(ctx).
		Model(&model.GroupMember{}).
		Where("group_id = ?", groupId).
		Count(&count).Error
	return count, err
}

func (r repository) countMembersByGroup(ctx context.Context) (map[uint]int64, error) {
	type row struct {
		GroupID uint
		Count   int64
	}
	var rows []row
	err := r.db.
		WithContext(ctx).
		Model(&model.GroupMember{}).
		Select("group_id", "count(*) as count").
		Group("group_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupID] = row.Count
	}
	return counts, nil
}

// delete tears a group down in a fixed order: messages, the events' attendee
// rows, the events, the membership rows and finally the group itself. The
// schema doesn't rely on database-level cascades for this path.
func (r repository) delete(ctx context.Context, groupId uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", groupId).Delete(&model.GroupMessage{}).Error; err != nil {
			return err
		}

		var eventIds []uint
		if err := tx.Model(&model.Event{}).Where("group_id = ?", groupId).Pluck("id", &eventIds).Error; err != nil {
			return err
		}
		if len(eventIds) > 0 {
			if err := tx.Where("event_id IN ?", eventIds).Delete(&model.Attendee{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.Event{}, eventIds).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("group_id = ?", groupId).Delete(&model.GroupMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Group{}, groupId).Error
	})
}
