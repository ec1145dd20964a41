package handlers

import (
	"net/http"

	"memorial/auth"
	"memorial/models"
	"memorial/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type MemorialInfo struct {
	ID            uint64 `json:"id"`
	Owner         uint64 `json:"owner"`
	FullName      string `json:"full_name"`
	DateOfBirth   string `json:"date_of_birth"`
	DateOfPassing string `json:"date_of_passing"`
	Subtitle      string `json:"subtitle"`
	Biography     string `json:"biography"`
	PrivacyLevel  string `json:"privacy_level"`
	HasPhoto      bool   `json:"has_photo"`
	CreatedAt     int64  `json:"created_at"`
}

func newMemorialInfo(m *models.Memorial) MemorialInfo {
	return MemorialInfo{
		ID:            m.ID,
		Owner:         m.OwnerID,
		FullName:      m.FullName,
		DateOfBirth:   m.DateOfBirth,
		DateOfPassing: m.DateOfPassing,
		Subtitle:      utils.GetLifeDatesString(m.DateOfBirth, m.DateOfPassing),
		Biography:     m.Biography,
		PrivacyLevel:  string(m.PrivacyLevel),
		HasPhoto:      m.PhotoPath != "",
		CreatedAt:     m.CreatedAt,
	}
}

type MemorialCreateRequest struct {
	FullName      string `form:"full_name" binding:"required"`
	DateOfBirth   string `form:"date_of_birth" binding:"required"`
	DateOfPassing string `form:"date_of_passing" binding:"required"`
	Biography     string `form:"biography"`
	PrivacyLevel  string `form:"privacy_level"`
}

type MemorialIDRequest struct {
	MemorialID uint64 `form:"memorial_id" binding:"required"`
}

type MemorialSaveRequest struct {
	MemorialID    uint64  `form:"memorial_id" binding:"required"`
	FullName      *string `form:"full_name"`
	DateOfBirth   *string `form:"date_of_birth"`
	DateOfPassing *string `form:"date_of_passing"`
	Biography     *string `form:"biography"`
	PrivacyLevel  *string `form:"privacy_level"`
}

func MemorialCreate(c *gin.Context, user *models.User) {
	r := MemorialCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	memorial, err := models.MemorialCreate(user.ID, r.FullName, r.DateOfBirth, r.DateOfPassing, r.Biography, models.PrivacyLevel(r.PrivacyLevel))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMemorialInfo(&memorial))
}

func MemorialList(c *gin.Context, user *models.User) {
	memorials, err := models.UserMemorials(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, DBError1Response)
		return
	}
	result := []MemorialInfo{}
	for i := range memorials {
		result = append(result, newMemorialInfo(&memorials[i]))
	}
	c.JSON(http.StatusOK, result)
}

// MemorialGet serves anonymous callers too - PUBLIC memorials need no login
func MemorialGet(c *gin.Context) {
	r := MemorialIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	memorial, err := models.MemorialGet(r.MemorialID, auth.CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMemorialInfo(&memorial))
}

func MemorialSave(c *gin.Context, user *models.User) {
	r := MemorialSaveRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	update := models.MemorialUpdate{
		FullName:      r.FullName,
		DateOfBirth:   r.DateOfBirth,
		DateOfPassing: r.DateOfPassing,
		Biography:     r.Biography,
	}
	if r.PrivacyLevel != nil {
		level := models.PrivacyLevel(*r.PrivacyLevel)
		update.PrivacyLevel = &level
	}
	memorial, err := models.MemorialSave(r.MemorialID, user.ID, update)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMemorialInfo(&memorial))
}

func MemorialDelete(c *gin.Context, user *models.User) {
	r := MemorialIDRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := models.MemorialDelete(r.MemorialID, user.ID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// MemorialShared resolves an anonymous share link: the token itself is the
// authorization, regardless of the memorial's current privacy level
func MemorialShared(c *gin.Context) {
	token := c.Param("token")
	memorial, permission, err := models.ResolveByToken(token)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"memorial":   newMemorialInfo(&memorial),
		"permission": permission.String(),
	})
}
