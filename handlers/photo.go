package handlers

import (
	"errors"
	"net/http"

	"memorial/auth"
	"memorial/db"
	"memorial/models"
	"memorial/storage"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	errUploadTooLarge = errors.New("uploaded file is too large")
	errUploadBadType  = errors.New("only jpeg, png and gif images are accepted")
	errNoStorage      = errors.New("no photo storage configured")
)

type PhotoFetchRequest struct {
	MemorialID uint64 `form:"memorial_id" binding:"required"`
	Thumb      int    `form:"thumb"`
}

type MemoryPhotoFetchRequest struct {
	MemorialID uint64 `form:"memorial_id" binding:"required"`
	MemoryID   uint64 `form:"memory_id" binding:"required"`
	Thumb      int    `form:"thumb"`
}

// MemorialPhoto uploads the memorial's profile photo. Requires ADMIN.
func MemorialPhoto(c *gin.Context, user *models.User) {
	r := MemorialIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := models.CheckAccess(r.MemorialID, &user.ID, models.PermissionAdmin); err != nil {
		abortWithError(c, err)
		return
	}
	mediaPath, thumbPath, err := savePhotoUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	memorial, err := models.MemorialSetPhoto(r.MemorialID, user.ID, mediaPath, thumbPath)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMemorialInfo(&memorial))
}

// MemorialPhotoFetch streams the profile photo; anonymous ok on PUBLIC
func MemorialPhotoFetch(c *gin.Context) {
	r := PhotoFetchRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	memorial, err := models.MemorialGet(r.MemorialID, auth.CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	path := memorial.PhotoPath
	if r.Thumb == 1 {
		path = memorial.ThumbPath
	}
	servePhoto(c, path)
}

// MemoryPhotoFetch streams a photo memory; anonymous ok on PUBLIC
func MemoryPhotoFetch(c *gin.Context) {
	r := MemoryPhotoFetchRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := models.CheckAccess(r.MemorialID, auth.CurrentUserID(c), models.PermissionView); err != nil {
		abortWithError(c, err)
		return
	}
	memory := models.Memory{}
	if err := db.Instance.First(&memory, r.MemoryID).Error; err != nil || memory.MemorialID != r.MemorialID {
		abortWithError(c, models.ErrNotFound)
		return
	}
	path := memory.MediaPath
	if r.Thumb == 1 {
		path = memory.ThumbPath
	}
	servePhoto(c, path)
}

func servePhoto(c *gin.Context, path string) {
	if path == "" {
		abortWithError(c, models.ErrNotFound)
		return
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		c.JSON(http.StatusInternalServerError, Response{Error: errNoStorage.Error()})
		return
	}
	c.Header("cache-control", "private, max-age=86400")
	store.Serve(path, c.Request, c.Writer)
}
