package models

import (
	"errors"

	"memorial/db"

	"gorm.io/gorm"
)

// LifeMoment is one entry on a memorial's timeline
type LifeMoment struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	MemorialID  uint64   `gorm:"not null;index"`
	Memorial    Memorial `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title       string   `gorm:"type:varchar(200)"`
	Description string   `gorm:"type:text"`
	Date        string   `gorm:"type:varchar(10)"`
	SortOrder   int      `gorm:"not null"`
}

// LifeMomentCreate appends a moment to the timeline. Requires ADMIN.
// Without an explicit sort order the moment goes to the end.
func LifeMomentCreate(memorialID, requesterID uint64, title, description, date string, sortOrder *int) (moment LifeMoment, err error) {
	if err = CheckAccess(memorialID, &requesterID, PermissionAdmin); err != nil {
		return
	}
	moment = LifeMoment{
		MemorialID:  memorialID,
		Title:       title,
		Description: description,
		Date:        date,
	}
	if sortOrder != nil {
		moment.SortOrder = *sortOrder
		err = db.Instance.Create(&moment).Error
		return
	}
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		last := LifeMoment{}
		err := tx.Where("memorial_id = ?", memorialID).Order("sort_order DESC").First(&last).Error
		if err == nil {
			moment.SortOrder = last.SortOrder + 1
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&moment).Error
	})
	return
}

// LifeMomentList requires VIEW; requesterID is nil for anonymous callers
func LifeMomentList(memorialID uint64, requesterID *uint64) (moments []LifeMoment, err error) {
	if err = CheckAccess(memorialID, requesterID, PermissionView); err != nil {
		return
	}
	err = db.Instance.Where("memorial_id = ?", memorialID).Order("sort_order ASC, date ASC").Find(&moments).Error
	return
}

type LifeMomentUpdate struct {
	Title       *string
	Description *string
	Date        *string
	SortOrder   *int
}

func momentInMemorial(memorialID, momentID uint64) (moment LifeMoment, err error) {
	if err = db.Instance.First(&moment, momentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrNotFound
		}
		return
	}
	if moment.MemorialID != memorialID {
		return LifeMoment{}, ErrNotFound
	}
	return
}

// LifeMomentSave applies a partial update. Requires ADMIN.
func LifeMomentSave(memorialID, momentID, requesterID uint64, update LifeMomentUpdate) (moment LifeMoment, err error) {
	if err = CheckAccess(memorialID, &requesterID, PermissionAdmin); err != nil {
		return
	}
	if moment, err = momentInMemorial(memorialID, momentID); err != nil {
		return
	}
	if update.Title != nil {
		moment.Title = *update.Title
	}
	if update.Description != nil {
		moment.Description = *update.Description
	}
	if update.Date != nil {
		moment.Date = *update.Date
	}
	if update.SortOrder != nil {
		moment.SortOrder = *update.SortOrder
	}
	err = db.Instance.Save(&moment).Error
	return
}

// LifeMomentDelete requires ADMIN
func LifeMomentDelete(memorialID, momentID, requesterID uint64) error {
	if err := CheckAccess(memorialID, &requesterID, PermissionAdmin); err != nil {
		return err
	}
	moment, err := momentInMemorial(memorialID, momentID)
	if err != nil {
		return err
	}
	return db.Instance.Delete(&moment).Error
}

type LifeMomentOrder struct {
	ID        uint64 `json:"id" form:"id" binding:"required"`
	SortOrder int    `json:"sort_order" form:"sort_order"`
}

// LifeMomentsReorder rewrites sort orders in one transaction. Requires ADMIN.
// Moments not belonging to the memorial are rejected wholesale.
func LifeMomentsReorder(memorialID, requesterID uint64, orders []LifeMomentOrder) error {
	if err := CheckAccess(memorialID, &requesterID, PermissionAdmin); err != nil {
		return err
	}
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			result := tx.Model(&LifeMoment{}).
				Where("id = ? and memorial_id = ?", o.ID, memorialID).
				Update("sort_order", o.SortOrder)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected != 1 {
				return ErrNotFound
			}
		}
		return nil
	})
}
