package handlers

import (
	"net/http"

	"memorial/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type GrantInfo struct {
	ID         uint64  `json:"id"`
	UserID     *uint64 `json:"user_id"`
	UserName   string  `json:"user_name"`
	Email      string  `json:"email"`
	Permission string  `json:"permission"`
	Kind       string  `json:"kind"`
	CreatedAt  int64   `json:"created_at"`
}

func newGrantInfo(g *models.AccessGrant) GrantInfo {
	info := GrantInfo{
		ID:         g.ID,
		UserID:     g.UserID,
		Email:      g.Email,
		Permission: g.Permission.String(),
		CreatedAt:  g.CreatedAt,
	}
	if g.User != nil {
		info.UserName = g.User.Name
	}
	switch g.Kind() {
	case models.GrantKindUser:
		info.Kind = "user"
	case models.GrantKindInvite:
		info.Kind = "invite"
	case models.GrantKindShareToken:
		info.Kind = "share_link"
	}
	return info
}

type AccessInviteRequest struct {
	MemorialID uint64 `form:"memorial_id" binding:"required"`
	Email      string `form:"email" binding:"required,email"`
	Permission string `form:"permission" binding:"required"`
}

type AccessSaveRequest struct {
	MemorialID uint64 `form:"memorial_id" binding:"required"`
	GrantID    uint64 `form:"grant_id" binding:"required"`
	Permission string `form:"permission" binding:"required"`
}

type AccessRevokeRequest struct {
	MemorialID uint64 `form:"memorial_id" binding:"required"`
	GrantID    uint64 `form:"grant_id" binding:"required"`
}

func AccessList(c *gin.Context, user *models.User) {
	r := MemorialIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	grants, err := models.ListGrants(r.MemorialID, user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	result := []GrantInfo{}
	for i := range grants {
		result = append(result, newGrantInfo(&grants[i]))
	}
	c.JSON(http.StatusOK, result)
}

func AccessInvite(c *gin.Context, user *models.User) {
	r := AccessInviteRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	permission, err := models.ParsePermission(r.Permission)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	grant, err := models.InviteUser(r.MemorialID, user.ID, r.Email, permission)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGrantInfo(&grant))
}

func AccessSave(c *gin.Context, user *models.User) {
	r := AccessSaveRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	permission, err := models.ParsePermission(r.Permission)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	grant, err := models.UpdateGrant(r.MemorialID, r.GrantID, user.ID, permission)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGrantInfo(&grant))
}

func AccessRevoke(c *gin.Context, user *models.User) {
	r := AccessRevokeRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	if err := models.RevokeGrant(r.MemorialID, r.GrantID, user.ID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

// ShareLink returns the memorial's share link, minting the token on first use
func ShareLink(c *gin.Context, user *models.User) {
	r := MemorialIDRequest{}
	if err := c.ShouldBindQuery(&r); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	token, err := models.EnsureShareLink(r.MemorialID, user.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"error": "",
		"token": token,
		"path":  "/w/memorial/" + token + "/",
	})
}
