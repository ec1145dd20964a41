package handlers

import (
	"errors"
	"net/http"

	"memorial/models"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

var (
	OKResponse       = Response{}
	DBError1Response = Response{"DB Error 1"}
	DBError2Response = Response{"DB Error 2"}
)

// PageRequest is the shared pagination binding; pages are 1-based
type PageRequest struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

func (r *PageRequest) clamp() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 1
	}
	if r.Limit > 50 {
		r.Limit = 50
	}
}

type PagedResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int64       `json:"total_pages"`
}

func newPagedResponse(items interface{}, total int64, page, limit int) PagedResponse {
	return PagedResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
	}
}

// abortWithError translates model sentinels to status codes: the 404/403
// split deliberately mirrors the model layer's NotFound/Forbidden distinction
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, Response{Error: "not found"})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, Response{Error: "access denied"})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, Response{Error: err.Error()})
	case errors.Is(err, models.ErrPhotoLimit):
		c.JSON(http.StatusBadRequest, Response{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Response{Error: "something went wrong"})
	}
}
