package handlers

import (
	"log"
	"net/http"

	"memorial/auth"
	"memorial/email"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ContactRequest struct {
	Name    string `form:"name" binding:"required,max=100"`
	Email   string `form:"email" binding:"required,email"`
	Subject string `form:"subject" binding:"required,max=200"`
	Message string `form:"message" binding:"required,max=5000"`
}

// ContactSend relays the contact form to the configured address
func ContactSend(c *gin.Context) {
	r := ContactRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
		return
	}
	err := email.SendContactEmail(email.ContactMessage{
		Name:    r.Name,
		Email:   r.Email,
		Subject: r.Subject,
		Message: r.Message,
		UserID:  auth.CurrentUserID(c),
	})
	if err != nil {
		log.Printf("Contact relay failed: %v", err)
		c.JSON(http.StatusInternalServerError, Response{Error: "could not send your message"})
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
