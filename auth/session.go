package auth

import (
	"memorial/db"
	"memorial/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const userIdKey = "id"

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(userID uint64) {
	s.Set(userIdKey, userID)
	s.Save()
}

func (s *Session) LogoutUser() {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	s.Save()
}

func (s *Session) User() (user models.User) {
	id := s.Get(userIdKey)
	if id == nil {
		return
	}
	user.ID = id.(uint64)
	if db.Instance.First(&user).Error != nil {
		user.ID = 0
	}
	return
}

// CurrentUser resolves the requester from the session cookie, falling back to
// a Bearer token. Zero-ID user means anonymous.
func CurrentUser(c *gin.Context) (user models.User) {
	user = LoadSession(c).User()
	if user.ID != 0 {
		return
	}
	return bearerUser(c)
}

// CurrentUserID is for endpoints that serve anonymous callers too:
// nil when unauthenticated, the user id otherwise
func CurrentUserID(c *gin.Context) *uint64 {
	user := CurrentUser(c)
	if user.ID == 0 {
		return nil
	}
	return &user.ID
}
