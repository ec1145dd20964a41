package web

import (
	"net/http"

	"memorial/handlers"
	"memorial/models"
	"memorial/utils"

	"github.com/gin-gonic/gin"
)

// MemorialView renders the anonymous share-link page
func MemorialView(c *gin.Context) {
	token := c.Param("token")
	memorial, _, err := models.ResolveByToken(token)
	if err != nil {
		c.JSON(http.StatusNotFound, handlers.Response{Error: "not found"})
		return
	}
	moments, err := models.LifeMomentList(memorial.ID, &memorial.OwnerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handlers.DBError1Response)
		return
	}
	json := gin.H{
		"name":      memorial.FullName,
		"subtitle":  utils.GetLifeDatesString(memorial.DateOfBirth, memorial.DateOfPassing),
		"biography": memorial.Biography,
		"hasPhoto":  memorial.PhotoPath != "",
		"moments":   moments,
	}
	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, json)
		return
	}
	c.HTML(http.StatusOK, "memorial_view.tmpl", json)
}

func DisallowRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nDisallow: /\n")
}
