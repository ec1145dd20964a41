package handlers

import (
	"net/http"
	"strings"

	"memorial/db"
	"memorial/models"

	"github.com/gin-gonic/gin"
)

type SearchRequest struct {
	Query string `form:"q"`
	PageRequest
}

// Search lists PUBLIC memorials matching the name query. No auth - only
// public memorials are ever searchable.
func Search(c *gin.Context) {
	r := SearchRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	r.clamp()
	query := db.Instance.Model(&models.Memorial{}).Where("privacy_level = ?", models.PrivacyPublic)
	if q := strings.TrimSpace(r.Query); q != "" {
		query = query.Where("full_name LIKE ?", "%"+q+"%")
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	var memorials []models.Memorial
	err := query.Order("created_at DESC").Offset((r.Page - 1) * r.Limit).Limit(r.Limit).Find(&memorials).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError2Response)
		return
	}
	items := []MemorialInfo{}
	for i := range memorials {
		items = append(items, newMemorialInfo(&memorials[i]))
	}
	c.JSON(http.StatusOK, newPagedResponse(items, total, r.Page, r.Limit))
}
