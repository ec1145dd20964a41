package models

import (
	"errors"

	"memorial/db"

	"gorm.io/gorm"
)

type PrivacyLevel string

const (
	PrivacyPrivate    PrivacyLevel = "PRIVATE"
	PrivacySharedLink PrivacyLevel = "SHARED_LINK"
	PrivacyPublic     PrivacyLevel = "PUBLIC"
)

func (p PrivacyLevel) Valid() bool {
	return p == PrivacyPrivate || p == PrivacySharedLink || p == PrivacyPublic
}

type Memorial struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64
	UpdatedAt     int64
	OwnerID       uint64 `gorm:"not null;index"`
	Owner         User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	FullName      string `gorm:"type:varchar(200);index"`
	DateOfBirth   string `gorm:"type:varchar(10)"`
	DateOfPassing string `gorm:"type:varchar(10)"`
	Biography     string `gorm:"type:text"`
	PhotoPath     string `gorm:"type:varchar(300)"`
	ThumbPath     string `gorm:"type:varchar(300)"`
	PrivacyLevel  PrivacyLevel  `gorm:"type:varchar(20);not null;default:PRIVATE"`
	Grants        []AccessGrant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func MemorialCreate(ownerID uint64, fullName, dateOfBirth, dateOfPassing, biography string, privacyLevel PrivacyLevel) (memorial Memorial, err error) {
	if privacyLevel == "" {
		privacyLevel = PrivacyPrivate
	}
	if !privacyLevel.Valid() {
		return Memorial{}, errors.New("invalid privacy level")
	}
	memorial = Memorial{
		OwnerID:       ownerID,
		FullName:      fullName,
		DateOfBirth:   dateOfBirth,
		DateOfPassing: dateOfPassing,
		Biography:     biography,
		PrivacyLevel:  privacyLevel,
	}
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&memorial).Error; err != nil {
			return err
		}
		if memorial.PrivacyLevel == PrivacySharedLink {
			_, err := ensureShareToken(tx, memorial.ID)
			return err
		}
		return nil
	})
	return
}

// MemorialGet loads a memorial after a VIEW check. requesterID is nil for anonymous callers.
func MemorialGet(memorialID uint64, requesterID *uint64) (memorial Memorial, err error) {
	if err = db.Instance.First(&memorial, memorialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrNotFound
		}
		return
	}
	err = memorial.CheckAccess(requesterID, PermissionView)
	return
}

// UserMemorials returns the memorials owned by the user, newest first
func UserMemorials(userID uint64) (memorials []Memorial, err error) {
	err = db.Instance.Where("owner_id = ?", userID).Order("created_at DESC").Find(&memorials).Error
	return
}

type MemorialUpdate struct {
	FullName      *string
	DateOfBirth   *string
	DateOfPassing *string
	Biography     *string
	PrivacyLevel  *PrivacyLevel
}

// MemorialSave applies a partial update, gated on ADMIN. Switching to
// SHARED_LINK mints the share token if none exists yet; no transition ever
// removes an existing token grant.
func MemorialSave(memorialID, requesterID uint64, update MemorialUpdate) (memorial Memorial, err error) {
	if update.PrivacyLevel != nil && !update.PrivacyLevel.Valid() {
		return Memorial{}, errors.New("invalid privacy level")
	}
	if err = CheckAccess(memorialID, &requesterID, PermissionAdmin); err != nil {
		return
	}
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := db.ForUpdate(tx).First(&memorial, memorialID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if update.FullName != nil {
			memorial.FullName = *update.FullName
		}
		if update.DateOfBirth != nil {
			memorial.DateOfBirth = *update.DateOfBirth
		}
		if update.DateOfPassing != nil {
			memorial.DateOfPassing = *update.DateOfPassing
		}
		if update.Biography != nil {
			memorial.Biography = *update.Biography
		}
		if update.PrivacyLevel != nil {
			memorial.PrivacyLevel = *update.PrivacyLevel
		}
		if err := tx.Save(&memorial).Error; err != nil {
			return err
		}
		if memorial.PrivacyLevel == PrivacySharedLink {
			_, err := ensureShareToken(tx, memorial.ID)
			return err
		}
		return nil
	})
	return
}

// SetPrivacyLevel is MemorialSave restricted to the privacy dimension
func SetPrivacyLevel(memorialID, requesterID uint64, level PrivacyLevel) (Memorial, error) {
	return MemorialSave(memorialID, requesterID, MemorialUpdate{PrivacyLevel: &level})
}

// MemorialSetPhoto stores the uploaded photo paths, gated on ADMIN
func MemorialSetPhoto(memorialID, requesterID uint64, photoPath, thumbPath string) (memorial Memorial, err error) {
	if err = CheckAccess(memorialID, &requesterID, PermissionAdmin); err != nil {
		return
	}
	err = db.Instance.First(&memorial, memorialID).Error
	if err != nil {
		return
	}
	memorial.PhotoPath = photoPath
	memorial.ThumbPath = thumbPath
	err = db.Instance.Save(&memorial).Error
	return
}

// MemorialDelete removes the memorial and everything scoped to it.
// Only the owner may delete - an ADMIN grant is not enough.
func MemorialDelete(memorialID, requesterID uint64) error {
	memorial := Memorial{}
	if err := db.Instance.First(&memorial, memorialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if memorial.OwnerID != requesterID {
		return ErrForbidden
	}
	// Explicit cascade - SQLite deployments don't always enforce FK constraints
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&AccessGrant{}, &LifeMoment{}, &Memory{}, &VisitorInteraction{}} {
			if err := tx.Delete(child, "memorial_id = ?", memorialID).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&memorial).Error
	})
}
