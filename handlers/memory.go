package handlers

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"

	"memorial/auth"
	"memorial/config"
	"memorial/models"
	"memorial/storage"
	"memorial/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

const thumbSize = 640

type MemoryInfo struct {
	ID         uint64 `json:"id"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	HasPhoto   bool   `json:"has_photo"`
	AuthorID   uint64 `json:"author_id"`
	AuthorName string `json:"author_name"`
	CreatedAt  int64  `json:"created_at"`
}

func newMemoryInfo(m *models.Memory) MemoryInfo {
	return MemoryInfo{
		ID:         m.ID,
		Type:       string(m.Type),
		Content:    m.Content,
		HasPhoto:   m.MediaPath != "",
		AuthorID:   m.AuthorID,
		AuthorName: m.Author.Name,
		CreatedAt:  m.CreatedAt,
	}
}

type MemoryCreateRequest struct {
	MemorialID uint64 `form:"memorial_id" binding:"required"`
	Type       string `form:"type" binding:"required"`
	Content    string `form:"content" binding:"required"`
}

type MemoryListRequest struct {
	MemorialID uint64 `form:"memorial_id" binding:"required"`
	PageRequest
}

type MemoryDeleteRequest struct {
	MemorialID uint64 `form:"memorial_id" binding:"required"`
	MemoryID   uint64 `form:"memory_id" binding:"required"`
}

func MemoryCreate(c *gin.Context, user *models.User) {
	r := MemoryCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	memory, err := models.MemoryCreate(r.MemorialID, user.ID, models.MemoryType(r.Type), r.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}
	memory.Author = *user
	c.JSON(http.StatusOK, newMemoryInfo(&memory))
}

// MemoryUpload stores a photo memory: the original plus a JPEG thumbnail,
// both under an opaque name
func MemoryUpload(c *gin.Context, user *models.User) {
	r := MemorialIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	// Fail the permission check before touching the file
	if err := models.CheckAccess(r.MemorialID, &user.ID, models.PermissionContribute); err != nil {
		abortWithError(c, err)
		return
	}
	mediaPath, thumbPath, err := savePhotoUpload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	memory, err := models.MemoryCreatePhoto(r.MemorialID, user.ID, mediaPath, thumbPath)
	if err != nil {
		abortWithError(c, err)
		return
	}
	memory.Author = *user
	c.JSON(http.StatusOK, newMemoryInfo(&memory))
}

// MemoryList serves anonymous callers too
func MemoryList(c *gin.Context) {
	r := MemoryListRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	r.clamp()
	memories, total, err := models.MemoryList(r.MemorialID, auth.CurrentUserID(c), r.Page, r.Limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	items := []MemoryInfo{}
	for i := range memories {
		items = append(items, newMemoryInfo(&memories[i]))
	}
	c.JSON(http.StatusOK, newPagedResponse(items, total, r.Page, r.Limit))
}

func MemoryDelete(c *gin.Context, user *models.User) {
	r := MemoryDeleteRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := models.MemoryDelete(r.MemorialID, r.MemoryID, user.ID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// savePhotoUpload validates the "photo" form file and writes it (plus a
// thumbnail) to the default bucket. Returns the stored paths.
func savePhotoUpload(c *gin.Context) (mediaPath, thumbPath string, err error) {
	header, err := c.FormFile("photo")
	if err != nil {
		return "", "", err
	}
	if header.Size > int64(config.MAX_UPLOAD_SIZE_MB)*1024*1024 {
		return "", "", errUploadTooLarge
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".gif" {
		return "", "", errUploadBadType
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		return "", "", errNoStorage
	}
	name := uuid.NewString()
	mediaPath = name + ext
	thumbPath = name + "_thumb.jpg"

	file, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer file.Close()
	thumbBuf := bytes.Buffer{}
	if _, err = utils.CreateThumb(thumbSize, file, &thumbBuf); err != nil {
		return "", "", err
	}
	if _, err = file.Seek(0, 0); err != nil {
		return "", "", err
	}
	if _, err = store.Save(mediaPath, file); err != nil {
		return "", "", err
	}
	if _, err = store.Save(thumbPath, &thumbBuf); err != nil {
		_ = store.Delete(mediaPath)
		return "", "", err
	}
	return mediaPath, thumbPath, nil
}
