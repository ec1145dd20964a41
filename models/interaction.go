package models

import (
	"errors"

	"memorial/db"
)

type InteractionType string

const (
	InteractionCandle  InteractionType = "CANDLE"
	InteractionMessage InteractionType = "MESSAGE"
)

// VisitorInteraction is a candle lit or a message left on a memorial.
// VisitorID is nil for anonymous visitors of public memorials.
type VisitorInteraction struct {
	ID            uint64 `gorm:"primaryKey"`
	CreatedAt     int64
	MemorialID    uint64          `gorm:"not null;index"`
	Memorial      Memorial        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	VisitorID     *uint64
	Visitor       *User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Type          InteractionType `gorm:"type:varchar(10);not null"`
	Content       string          `gorm:"type:text"`
	ReactionEmoji string          `gorm:"type:varchar(10)"`
}

// InteractionCreate requires VIEW - leaving a candle or message only needs
// the ability to see the memorial
func InteractionCreate(memorialID uint64, visitorID *uint64, interactionType InteractionType, content, reactionEmoji string) (interaction VisitorInteraction, err error) {
	if interactionType != InteractionCandle && interactionType != InteractionMessage {
		return VisitorInteraction{}, errors.New("invalid interaction type")
	}
	if err = CheckAccess(memorialID, visitorID, PermissionView); err != nil {
		return
	}
	interaction = VisitorInteraction{
		MemorialID:    memorialID,
		VisitorID:     visitorID,
		Type:          interactionType,
		Content:       content,
		ReactionEmoji: reactionEmoji,
	}
	err = db.Instance.Create(&interaction).Error
	return
}

// InteractionList requires VIEW; pages are 1-based
func InteractionList(memorialID uint64, requesterID *uint64, page, limit int) (interactions []VisitorInteraction, total int64, err error) {
	if err = CheckAccess(memorialID, requesterID, PermissionView); err != nil {
		return
	}
	if err = db.Instance.Model(&VisitorInteraction{}).Where("memorial_id = ?", memorialID).Count(&total).Error; err != nil {
		return
	}
	err = db.Instance.Preload("Visitor").
		Where("memorial_id = ?", memorialID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&interactions).Error
	return
}

type MemorialStatsInfo struct {
	TotalMemories int64 `json:"total_memories"`
	TotalCandles  int64 `json:"total_candles"`
	TotalMessages int64 `json:"total_messages"`
	TotalVisitors int64 `json:"total_visitors"`
}

// MemorialStats requires VIEW
func MemorialStats(memorialID uint64, requesterID *uint64) (stats MemorialStatsInfo, err error) {
	if err = CheckAccess(memorialID, requesterID, PermissionView); err != nil {
		return
	}
	if err = db.Instance.Model(&Memory{}).Where("memorial_id = ?", memorialID).Count(&stats.TotalMemories).Error; err != nil {
		return
	}
	if err = db.Instance.Model(&VisitorInteraction{}).Where("memorial_id = ? and type = ?", memorialID, InteractionCandle).Count(&stats.TotalCandles).Error; err != nil {
		return
	}
	if err = db.Instance.Model(&VisitorInteraction{}).Where("memorial_id = ? and type = ?", memorialID, InteractionMessage).Count(&stats.TotalMessages).Error; err != nil {
		return
	}
	err = db.Instance.Model(&VisitorInteraction{}).
		Where("memorial_id = ? and visitor_id is not null", memorialID).
		Distinct("visitor_id").
		Count(&stats.TotalVisitors).Error
	return
}
