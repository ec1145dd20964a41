package models

import (
	"errors"

	"memorial/config"
	"memorial/db"

	"gorm.io/gorm"
)

type MemoryType string

const (
	MemoryText  MemoryType = "TEXT"
	MemoryQuote MemoryType = "QUOTE"
	MemoryPhoto MemoryType = "PHOTO"
)

// ErrPhotoLimit - the memorial reached its photo-memory cap
var ErrPhotoLimit = errors.New("photo limit reached for this memorial")

// Memory is a visitor-contributed remembrance: a text, a quote, or a photo
type Memory struct {
	ID         uint64 `gorm:"primaryKey"`
	CreatedAt  int64
	MemorialID uint64     `gorm:"not null;index"`
	Memorial   Memorial   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID   uint64     `gorm:"not null"`
	Author     User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Type       MemoryType `gorm:"type:varchar(10);not null"`
	Content    string     `gorm:"type:text"`
	MediaPath  string     `gorm:"type:varchar(300)"`
	ThumbPath  string     `gorm:"type:varchar(300)"`
}

// MemoryCreate adds a text or quote memory. Requires CONTRIBUTE.
func MemoryCreate(memorialID, authorID uint64, memoryType MemoryType, content string) (memory Memory, err error) {
	if memoryType != MemoryText && memoryType != MemoryQuote {
		return Memory{}, errors.New("invalid memory type")
	}
	if err = CheckAccess(memorialID, &authorID, PermissionContribute); err != nil {
		return
	}
	memory = Memory{
		MemorialID: memorialID,
		AuthorID:   authorID,
		Type:       memoryType,
		Content:    content,
	}
	err = db.Instance.Create(&memory).Error
	return
}

// MemoryCreatePhoto records an uploaded photo memory. Requires CONTRIBUTE.
// Each memorial holds a bounded number of photos.
func MemoryCreatePhoto(memorialID, authorID uint64, mediaPath, thumbPath string) (memory Memory, err error) {
	if err = CheckAccess(memorialID, &authorID, PermissionContribute); err != nil {
		return
	}
	var count int64
	err = db.Instance.Model(&Memory{}).Where("memorial_id = ? and type = ?", memorialID, MemoryPhoto).Count(&count).Error
	if err != nil {
		return
	}
	if count >= int64(config.MAX_PHOTOS_PER_MEMORIAL) {
		return Memory{}, ErrPhotoLimit
	}
	memory = Memory{
		MemorialID: memorialID,
		AuthorID:   authorID,
		Type:       MemoryPhoto,
		MediaPath:  mediaPath,
		ThumbPath:  thumbPath,
	}
	err = db.Instance.Create(&memory).Error
	return
}

// MemoryList requires VIEW; pages are 1-based
func MemoryList(memorialID uint64, requesterID *uint64, page, limit int) (memories []Memory, total int64, err error) {
	if err = CheckAccess(memorialID, requesterID, PermissionView); err != nil {
		return
	}
	if err = db.Instance.Model(&Memory{}).Where("memorial_id = ?", memorialID).Count(&total).Error; err != nil {
		return
	}
	err = db.Instance.Preload("Author").
		Where("memorial_id = ?", memorialID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&memories).Error
	return
}

// MemoryDelete - the author may delete their own memory, anyone with ADMIN
// may delete any memory on the memorial
func MemoryDelete(memorialID, memoryID, requesterID uint64) error {
	memory := Memory{}
	if err := db.Instance.First(&memory, memoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if memory.MemorialID != memorialID {
		return ErrNotFound
	}
	if memory.AuthorID != requesterID {
		if err := CheckAccess(memorialID, &requesterID, PermissionAdmin); err != nil {
			return err
		}
	}
	return db.Instance.Delete(&memory).Error
}
