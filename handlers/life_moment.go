package handlers

import (
	"net/http"

	"memorial/auth"
	"memorial/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type MomentInfo struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	SortOrder   int    `json:"sort_order"`
}

func newMomentInfo(m *models.LifeMoment) MomentInfo {
	return MomentInfo{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Date:        m.Date,
		SortOrder:   m.SortOrder,
	}
}

type MomentCreateRequest struct {
	MemorialID  uint64 `form:"memorial_id" binding:"required"`
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Date        string `form:"date" binding:"required"`
	SortOrder   *int   `form:"sort_order"`
}

type MomentSaveRequest struct {
	MemorialID  uint64  `form:"memorial_id" binding:"required"`
	MomentID    uint64  `form:"moment_id" binding:"required"`
	Title       *string `form:"title"`
	Description *string `form:"description"`
	Date        *string `form:"date"`
	SortOrder   *int    `form:"sort_order"`
}

type MomentDeleteRequest struct {
	MemorialID uint64 `form:"memorial_id" binding:"required"`
	MomentID   uint64 `form:"moment_id" binding:"required"`
}

type MomentsReorderRequest struct {
	MemorialID uint64                   `json:"memorial_id" binding:"required"`
	Moments    []models.LifeMomentOrder `json:"moments" binding:"required"`
}

func MomentCreate(c *gin.Context, user *models.User) {
	r := MomentCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	moment, err := models.LifeMomentCreate(r.MemorialID, user.ID, r.Title, r.Description, r.Date, r.SortOrder)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMomentInfo(&moment))
}

// MomentList serves anonymous callers too
func MomentList(c *gin.Context) {
	r := MemorialIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	moments, err := models.LifeMomentList(r.MemorialID, auth.CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	result := []MomentInfo{}
	for i := range moments {
		result = append(result, newMomentInfo(&moments[i]))
	}
	c.JSON(http.StatusOK, result)
}

func MomentSave(c *gin.Context, user *models.User) {
	r := MomentSaveRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	moment, err := models.LifeMomentSave(r.MemorialID, r.MomentID, user.ID, models.LifeMomentUpdate{
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		SortOrder:   r.SortOrder,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMomentInfo(&moment))
}

func MomentDelete(c *gin.Context, user *models.User) {
	r := MomentDeleteRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := models.LifeMomentDelete(r.MemorialID, r.MomentID, user.ID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func MomentsReorder(c *gin.Context, user *models.User) {
	r := MomentsReorderRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := models.LifeMomentsReorder(r.MemorialID, user.ID, r.Moments); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
