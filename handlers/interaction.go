package handlers

import (
	"net/http"

	"memorial/auth"
	"memorial/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type InteractionInfo struct {
	ID            uint64  `json:"id"`
	Type          string  `json:"type"`
	Content       string  `json:"content"`
	ReactionEmoji string  `json:"reaction_emoji"`
	VisitorID     *uint64 `json:"visitor_id"`
	VisitorName   string  `json:"visitor_name"`
	CreatedAt     int64   `json:"created_at"`
}

func newInteractionInfo(i *models.VisitorInteraction) InteractionInfo {
	info := InteractionInfo{
		ID:            i.ID,
		Type:          string(i.Type),
		Content:       i.Content,
		ReactionEmoji: i.ReactionEmoji,
		VisitorID:     i.VisitorID,
		CreatedAt:     i.CreatedAt,
	}
	if i.Visitor != nil {
		info.VisitorName = i.Visitor.Name
	}
	return info
}

type InteractionCreateRequest struct {
	MemorialID    uint64 `form:"memorial_id" binding:"required"`
	Type          string `form:"type" binding:"required"`
	Content       string `form:"content"`
	ReactionEmoji string `form:"reaction_emoji"`
}

type InteractionListRequest struct {
	MemorialID uint64 `form:"memorial_id" binding:"required"`
	PageRequest
}

// InteractionCreate lets visitors light a candle or leave a message.
// Anonymous visitors can do both on PUBLIC memorials.
func InteractionCreate(c *gin.Context) {
	r := InteractionCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	interaction, err := models.InteractionCreate(r.MemorialID, auth.CurrentUserID(c), models.InteractionType(r.Type), r.Content, r.ReactionEmoji)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newInteractionInfo(&interaction))
}

func InteractionList(c *gin.Context) {
	r := InteractionListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	r.clamp()
	interactions, total, err := models.InteractionList(r.MemorialID, auth.CurrentUserID(c), r.Page, r.Limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	items := []InteractionInfo{}
	for i := range interactions {
		items = append(items, newInteractionInfo(&interactions[i]))
	}
	c.JSON(http.StatusOK, newPagedResponse(items, total, r.Page, r.Limit))
}

func MemorialStats(c *gin.Context) {
	r := MemorialIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	stats, err := models.MemorialStats(r.MemorialID, auth.CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
