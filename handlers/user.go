package handlers

import (
	"net/http"

	"memorial/auth"
	"memorial/config"
	"memorial/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserRegisterRequest struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=8"`
}

type UserLoginRequest struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type UserInfo struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func UserRegister(c *gin.Context) {
	r := UserRegisterRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	user, err := models.UserCreate(r.Name, r.Email, r.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	auth.LoadSession(c).LoginUser(user.ID)
	c.JSON(http.StatusOK, gin.H{"error": "", "user": UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}})
}

func UserLogin(c *gin.Context) {
	r := UserLoginRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	user, success := models.UserLogin(r.Email, r.Password)
	if !success {
		c.JSON(http.StatusUnauthorized, Response{Error: "invalid email or password"})
		return
	}
	auth.LoadSession(c).LoginUser(user.ID)
	result := gin.H{"error": "", "name": user.Name}
	// Bearer token for non-browser clients
	if config.JWT_SECRET != "" {
		if token, err := auth.NewToken(user.ID); err == nil {
			result["token"] = token
		}
	}
	c.JSON(http.StatusOK, result)
}

func UserLogout(c *gin.Context, user *models.User) {
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, OKResponse)
}

func UserGetStatus(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, gin.H{"error": "", "user": UserInfo{ID: user.ID, Name: user.Name, Email: user.Email}})
}
