package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherly/gatherly/internal/errdef"
	"github.com/gatherly/gatherly/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) create(ctx context.Context, u *model.User) error {
	// only use ctx for values (logging) and not cancellation signals on cud operations for now. ctx
	// cancellation can lead to rollbacks which we should decide individually.
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Create(&u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("user %q already exists", u.Email)
	}

	return err
}

func (r repository) save(ctx context.Context, user *model.User) error {
	ctx = context.WithoutCancel(ctx)
	return r.db.WithContext(ctx).Save(&user).Error
}

func (r repository) findById(ctx context.Context, id uint) (*model.User, error) {
	var u *model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user with id %d", id)
	}
	return u, err
}

func (r repository) findByEmail(ctx context.Context, email string) (*model.User, error) {
	var u *model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user with email %q", email)
	}
	return u, err
}

func (r repository) findByPasswordResetToken(ctx context.Context, token string) (*model.User, error) {
	var u *model.User
	err := r.db.WithContext(ctx).First(&u, "password_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user with the given reset token")
	}
	return u, err
}

func (r repository) findAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User
	err := r.db.
		WithContext(ctx).
		Order("created_at desc").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all users: %v", err)
	}

	return users, nil
}

func (r repository) findOrCreate(ctx context.Context, user *model.User) (*model.User, error) {
	ctx = context.WithoutCancel(ctx)

	var u *model.User
	err := r.db.
		WithContext(ctx).
		Where(model.User{Email: user.Email}).
		Attrs(model.User{Name: user.Name, Image: user.Image}).
		FirstOrCreate(&u).Error
	return u, err
}

func (r repository) update(ctx context.Context, user *model.User) (*model.User, error) {
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Save(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %v", err)
	}

	return user, nil
}

// delete removes the user and everything hanging off it: memberships,
// attendances, messages, organized events and owned groups (with their
// members, messages, events and attendees). The schema doesn't rely on
// database-level cascades for this path, so the teardown order matters.
func (r repository) delete(ctx context.Context, id uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ownedGroupIds []uint
		if err := tx.Model(&model.Group{}).Where("owner_id = ?", id).Pluck("id", &ownedGroupIds).Error; err != nil {
			return err
		}

		if len(ownedGroupIds) > 0 {
			var ownedGroupEventIds []uint
			if err := tx.Model(&model.Event{}).Where("group_id IN ?", ownedGroupIds).Pluck("id", &ownedGroupEventIds).Error; err != nil {
				return err
			}
			if len(ownedGroupEventIds) > 0 {
				if err := tx.Where("event_id IN ?", ownedGroupEventIds).Delete(&model.Attendee{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("group_id IN ?", ownedGroupIds).Delete(&model.Event{}).Error; err != nil {
				return err
			}
			if err := tx.Where("group_id IN ?", ownedGroupIds).Delete(&model.GroupMessage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("group_id IN ?", ownedGroupIds).Delete(&model.GroupMember{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.Group{}, ownedGroupIds).Error; err != nil {
				return err
			}
		}

		var organizedEventIds []uint
		if err := tx.Model(&model.Event{}).Where("user_id = ?", id).Pluck("id", &organizedEventIds).Error; err != nil {
			return err
		}
		if len(organizedEventIds) > 0 {
			if err := tx.Where("event_id IN ?", organizedEventIds).Delete(&model.Attendee{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.Event{}, organizedEventIds).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.Attendee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.GroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.GroupMessage{}).Error; err != nil {
			return err
		}

		db := tx.Delete(&model.User{}, id)
		if db.Error != nil {
			return fmt.Errorf("failed to delete user with id %d: %v", id, db.Error)
		} else if db.RowsAffected < 1 {
			return errdef.NewNotFound("failed to find user with id %d", id)
		}

		return nil
	})
}
